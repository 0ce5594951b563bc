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

// AlertService handles the raise / confirm / close lifecycle. Every award is
// snapshotted from the zone's guide schedule at the moment the event
// happens; later schedule changes never touch issued awards.
type AlertService interface {
	RaiseAlert(userID uint, request *models.RaiseAlertRequest, photo *multipart.FileHeader) (*models.Alert, error)
	ConfirmAlert(userID, alertID uint) (*models.AlertConfirmation, error)
	CloseAlert(userID, alertID uint) (*models.AlertClosure, error)
	GetAlert(alertID uint) (*models.Alert, error)
	GetAllAlerts() ([]models.AlertWithUser, error)
	GetAlertsByZone(zoneID uint) ([]models.Alert, error)
}

type alertService struct {
	Config       *config.Config
	alertRepo    db.AlertRepository
	guideRepo    db.GuideRepository
	mediaService MediaService
}

func NewAlertService(alertRepo db.AlertRepository, guideRepo db.GuideRepository, mediaService MediaService, conf *config.Config) AlertService {
	return &alertService{
		Config:       conf,
		alertRepo:    alertRepo,
		guideRepo:    guideRepo,
		mediaService: mediaService,
	}
}

// guideForZone resolves the reward schedule the zone belongs to.
func (s *alertService) guideForZone(zoneID uint) (*models.Guide, error) {
	zone, err := s.guideRepo.GetZoneByID(zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("zone not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}
	guide, err := s.guideRepo.GetGuideByID(zone.GuideID)
	if err != nil {
		log.Printf("guideForZone: guide %d missing for zone %d: %v", zone.GuideID, zoneID, err)
		return nil, apiError.ErrInternalServerError
	}
	return guide, nil
}

func (s *alertService) RaiseAlert(userID uint, request *models.RaiseAlertRequest, photo *multipart.FileHeader) (*models.Alert, error) {
	guide, err := s.guideForZone(request.ZoneID)
	if err != nil {
		return nil, err
	}

	var photoURL string
	if photo != nil {
		photoURL, err = s.mediaService.UploadFileToS3(photo, "alerts")
		if err != nil {
			log.Printf("RaiseAlert photo upload error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	alert := &models.Alert{
		Category:  request.Category,
		Message:   request.Message,
		PhotoURL:  photoURL,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Points:    guide.CoinsForFirstAlert,
		ZoneID:    request.ZoneID,
		UserID:    userID,
	}
	if err := s.alertRepo.CreateAlert(alert); err != nil {
		log.Printf("RaiseAlert create error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return alert, nil
}

func (s *alertService) ConfirmAlert(userID, alertID uint) (*models.AlertConfirmation, error) {
	alert, err := s.alertRepo.GetAlertByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("alert not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	if alert.UserID == userID {
		return nil, apiError.ErrOwnAlertConfirmation
	}

	confirmed, err := s.alertRepo.HasUserConfirmed(userID, alertID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	if confirmed {
		return nil, apiError.ErrAlreadyConfirmed
	}

	closed, err := s.alertRepo.IsAlertClosed(alertID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	if closed {
		return nil, apiError.ErrAlertAlreadyClosed
	}

	guide, err := s.guideForZone(alert.ZoneID)
	if err != nil {
		return nil, err
	}

	confirmation := &models.AlertConfirmation{
		Points:  guide.CoinsForConfirmAlert,
		UserID:  userID,
		AlertID: alertID,
	}
	if err := s.alertRepo.CreateConfirmation(confirmation); err != nil {
		// the unique index catches a duplicate that raced past the check
		return nil, apiError.ErrAlreadyConfirmed
	}
	return confirmation, nil
}

// CloseAlert resolves an alert. Only the first closer earns the award; the
// repository serializes racing closers inside a transaction.
func (s *alertService) CloseAlert(userID, alertID uint) (*models.AlertClosure, error) {
	alert, err := s.alertRepo.GetAlertByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("alert not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	guide, err := s.guideForZone(alert.ZoneID)
	if err != nil {
		return nil, err
	}

	closure := &models.AlertClosure{
		Points:  guide.CoinsForCloseAlert,
		UserID:  userID,
		AlertID: alertID,
	}
	if err := s.alertRepo.CloseAlert(closure); err != nil {
		if errors.Is(err, apiError.ErrAlertAlreadyClosed) {
			return nil, apiError.ErrAlertAlreadyClosed
		}
		log.Printf("CloseAlert error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return closure, nil
}

func (s *alertService) GetAlert(alertID uint) (*models.Alert, error) {
	alert, err := s.alertRepo.GetAlertByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("alert not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}
	return alert, nil
}

func (s *alertService) GetAllAlerts() ([]models.AlertWithUser, error) {
	alerts, err := s.alertRepo.GetAlertsWithUsers()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return alerts, nil
}

func (s *alertService) GetAlertsByZone(zoneID uint) ([]models.Alert, error) {
	alerts, err := s.alertRepo.GetAlertsByZone(zoneID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return alerts, nil
}
