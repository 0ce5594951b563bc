package services

import (
	"errors"
	"log"
	"mime/multipart"

	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

const maxEquivalentPictureDim = 500

// EquivalentService manages the reward catalog and coin redemption. A
// redemption snapshots the catalog cost at request time and is admitted only
// if the derived balance covers it.
type EquivalentService interface {
	CreateEquivalent(equivalent *models.Equivalent, picture *multipart.FileHeader) (*models.Equivalent, error)
	GetAllEquivalents() ([]models.Equivalent, error)
	DeleteEquivalent(equivalentID uint) error
	RequestEquivalent(userID, equivalentID uint) (*models.EquivalentRequest, error)
	GetRequests() ([]models.EquivalentRequestWithDetails, error)
	GetUserRequests(userID uint) ([]models.EquivalentRequest, error)
	DecideRequest(requestID uint, action string) error
}

type equivalentService struct {
	Config         *config.Config
	equivalentRepo db.EquivalentRepository
	mediaService   MediaService
}

func NewEquivalentService(equivalentRepo db.EquivalentRepository, mediaService MediaService, conf *config.Config) EquivalentService {
	return &equivalentService{
		Config:         conf,
		equivalentRepo: equivalentRepo,
		mediaService:   mediaService,
	}
}

func (s *equivalentService) CreateEquivalent(equivalent *models.Equivalent, picture *multipart.FileHeader) (*models.Equivalent, error) {
	if picture != nil {
		if err := s.mediaService.ValidateSquarePicture(picture, maxEquivalentPictureDim); err != nil {
			return nil, err
		}
		pictureURL, err := s.mediaService.UploadFileToS3(picture, "equivalents")
		if err != nil {
			log.Printf("CreateEquivalent picture upload error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		equivalent.PictureURL = pictureURL
	}

	if err := s.equivalentRepo.CreateEquivalent(equivalent); err != nil {
		log.Printf("CreateEquivalent error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return equivalent, nil
}

func (s *equivalentService) GetAllEquivalents() ([]models.Equivalent, error) {
	equivalents, err := s.equivalentRepo.GetAllEquivalents()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return equivalents, nil
}

func (s *equivalentService) DeleteEquivalent(equivalentID uint) error {
	if _, err := s.equivalentRepo.GetEquivalentByID(equivalentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("equivalent not found", 404)
		}
		return apiError.ErrInternalServerError
	}
	if err := s.equivalentRepo.DeleteEquivalent(equivalentID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// RequestEquivalent places a redemption. The affordability check and the
// insert run atomically in the repository; a balance that cannot cover the
// cost rejects the request without touching the store.
func (s *equivalentService) RequestEquivalent(userID, equivalentID uint) (*models.EquivalentRequest, error) {
	equivalent, err := s.equivalentRepo.GetEquivalentByID(equivalentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("equivalent not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	request := &models.EquivalentRequest{
		EquivalentID: equivalentID,
		UserID:       userID,
		Coins:        equivalent.Coins,
		Status:       models.StatusPending,
	}
	if err := s.equivalentRepo.CreateRequestIfAffordable(request); err != nil {
		if errors.Is(err, apiError.ErrInsufficientBalance) {
			return nil, apiError.ErrInsufficientBalance
		}
		log.Printf("RequestEquivalent error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return request, nil
}

func (s *equivalentService) GetRequests() ([]models.EquivalentRequestWithDetails, error) {
	requests, err := s.equivalentRepo.GetRequestsWithDetails()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return requests, nil
}

func (s *equivalentService) GetUserRequests(userID uint) ([]models.EquivalentRequest, error) {
	requests, err := s.equivalentRepo.GetRequestsByUserID(userID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return requests, nil
}

// DecideRequest moves a pending request to accepted or rejected exactly once.
func (s *equivalentService) DecideRequest(requestID uint, action string) error {
	status := models.StatusRejected
	if action == "accept" {
		status = models.StatusApproved
	}

	if err := s.equivalentRepo.UpdateRequestStatus(requestID, status); err != nil {
		switch {
		case errors.Is(err, apiError.ErrRequestAlreadyDecided):
			return apiError.ErrRequestAlreadyDecided
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apiError.New("request not found", 404)
		default:
			log.Printf("DecideRequest error: %v", err)
			return apiError.ErrInternalServerError
		}
	}
	return nil
}
