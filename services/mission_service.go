package services

import (
	"errors"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

// MissionService covers the gamified side: admin-managed quizzes, actions
// and paparazzi missions, campaign gating, and the citizen-facing completion
// flows that earn coins.
type MissionService interface {
	CreateQuiz(quiz *models.MissionQuiz) error
	GetAllQuizzes() ([]models.MissionQuiz, error)
	UpdateQuiz(quiz *models.MissionQuiz) error
	DeleteQuiz(quizID uint) error
	AnswerQuiz(userID, quizID uint, option int) (bool, int, error)

	CreateAction(action *models.MissionAction) error
	GetAllActions() ([]models.MissionAction, error)
	UpdateAction(action *models.MissionAction) error
	DeleteAction(actionID uint) error
	CompleteAction(userID, actionID uint) (*models.MissionActionCompletion, error)

	CreatePaparazzi(mission *models.MissionPaparazzi) error
	GetAllPaparazzi() ([]models.MissionPaparazzi, error)
	DeletePaparazzi(missionID uint) error
	SubmitPaparazzi(userID, missionID uint, text string, photo *multipart.FileHeader) (*models.MissionPaparazziCompletion, error)
	UpdatePaparazziStatus(uniqueID string, status int) error
	GetPaparazziCompletions() ([]models.MissionPaparazziCompletion, error)
	GetActionCompletions() ([]models.MissionActionCompletion, error)

	ToggleCampaign(campaignID uint) (*models.MissionCampaign, error)
}

type missionService struct {
	Config       *config.Config
	missionRepo  db.MissionRepository
	mediaService MediaService
}

func NewMissionService(missionRepo db.MissionRepository, mediaService MediaService, conf *config.Config) MissionService {
	return &missionService{
		Config:       conf,
		missionRepo:  missionRepo,
		mediaService: mediaService,
	}
}

// guardCampaign rejects mission mutation while the matching campaign runs.
func (s *missionService) guardCampaign(campaignType string) error {
	campaign, err := s.missionRepo.GetCampaignByType(campaignType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apiError.ErrInternalServerError
	}
	if campaign.Active {
		return apiError.ErrCampaignActive
	}
	return nil
}

func (s *missionService) CreateQuiz(quiz *models.MissionQuiz) error {
	if err := s.guardCampaign(models.CampaignQuiz); err != nil {
		return err
	}
	if err := s.missionRepo.CreateQuiz(quiz); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *missionService) GetAllQuizzes() ([]models.MissionQuiz, error) {
	quizzes, err := s.missionRepo.GetAllQuizzes()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return quizzes, nil
}

func (s *missionService) UpdateQuiz(quiz *models.MissionQuiz) error {
	if err := s.guardCampaign(models.CampaignQuiz); err != nil {
		return err
	}
	if _, err := s.missionRepo.GetQuizByID(quiz.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("quiz not found", 404)
		}
		return apiError.ErrInternalServerError
	}
	if err := s.missionRepo.UpdateQuiz(quiz); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *missionService) DeleteQuiz(quizID uint) error {
	if err := s.guardCampaign(models.CampaignQuiz); err != nil {
		return err
	}
	if err := s.missionRepo.DeleteQuiz(quizID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// AnswerQuiz awards the quiz coins on a correct answer by recording an
// action-type completion. A wrong answer earns nothing and is not an error.
func (s *missionService) AnswerQuiz(userID, quizID uint, option int) (bool, int, error) {
	quiz, err := s.missionRepo.GetQuizByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, apiError.New("quiz not found", 404)
		}
		return false, 0, apiError.ErrInternalServerError
	}

	if option != quiz.CorrectOption {
		return false, 0, nil
	}

	completion := &models.MissionActionCompletion{
		UserID:    userID,
		MissionID: quizID,
		Text:      quiz.Question,
		Coins:     quiz.Coins,
	}
	if err := s.missionRepo.CreateActionCompletion(completion); err != nil {
		log.Printf("AnswerQuiz completion error: %v", err)
		return false, 0, apiError.ErrInternalServerError
	}
	return true, quiz.Coins, nil
}

func (s *missionService) CreateAction(action *models.MissionAction) error {
	if err := s.guardCampaign(models.CampaignMissionAction); err != nil {
		return err
	}
	if err := s.missionRepo.CreateAction(action); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *missionService) GetAllActions() ([]models.MissionAction, error) {
	actions, err := s.missionRepo.GetAllActions()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return actions, nil
}

func (s *missionService) UpdateAction(action *models.MissionAction) error {
	if err := s.guardCampaign(models.CampaignMissionAction); err != nil {
		return err
	}
	if _, err := s.missionRepo.GetActionByID(action.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("mission not found", 404)
		}
		return apiError.ErrInternalServerError
	}
	if err := s.missionRepo.UpdateAction(action); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *missionService) DeleteAction(actionID uint) error {
	if err := s.guardCampaign(models.CampaignMissionAction); err != nil {
		return err
	}
	if err := s.missionRepo.DeleteAction(actionID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// CompleteAction records an action completion with the mission's coins
// snapshotted. Action coins count toward the balance unconditionally.
func (s *missionService) CompleteAction(userID, actionID uint) (*models.MissionActionCompletion, error) {
	action, err := s.missionRepo.GetActionByID(actionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("mission not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	completion := &models.MissionActionCompletion{
		UserID:    userID,
		MissionID: actionID,
		Text:      action.Text,
		Coins:     action.Coins,
	}
	if err := s.missionRepo.CreateActionCompletion(completion); err != nil {
		log.Printf("CompleteAction error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return completion, nil
}

func (s *missionService) CreatePaparazzi(mission *models.MissionPaparazzi) error {
	if err := s.guardCampaign(models.CampaignMissionPaparazzi); err != nil {
		return err
	}
	if err := s.missionRepo.CreatePaparazzi(mission); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *missionService) GetAllPaparazzi() ([]models.MissionPaparazzi, error) {
	missions, err := s.missionRepo.GetAllPaparazzi()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return missions, nil
}

func (s *missionService) DeletePaparazzi(missionID uint) error {
	if err := s.guardCampaign(models.CampaignMissionPaparazzi); err != nil {
		return err
	}
	if err := s.missionRepo.DeletePaparazzi(missionID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// SubmitPaparazzi stores a photo submission as pending. The coins do not
// count toward the balance until a moderator approves it.
func (s *missionService) SubmitPaparazzi(userID, missionID uint, text string, photo *multipart.FileHeader) (*models.MissionPaparazziCompletion, error) {
	mission, err := s.missionRepo.GetPaparazziByID(missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("mission not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	if photo == nil {
		return nil, apiError.New("photo is required", 400)
	}
	photoURL, err := s.mediaService.UploadFileToS3(photo, "paparazzi")
	if err != nil {
		log.Printf("SubmitPaparazzi photo upload error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	completion := &models.MissionPaparazziCompletion{
		UserID:    userID,
		UniqueID:  uuid.New().String(),
		MissionID: missionID,
		PhotoURL:  photoURL,
		Text:      text,
		Coins:     mission.Coins,
		Status:    models.StatusPending,
	}
	if err := s.missionRepo.CreatePaparazziCompletion(completion); err != nil {
		log.Printf("SubmitPaparazzi completion error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return completion, nil
}

func (s *missionService) UpdatePaparazziStatus(uniqueID string, status int) error {
	if status != models.StatusApproved && status != models.StatusRejected {
		return apiError.New("status must be approved or rejected", 400)
	}
	if err := s.missionRepo.UpdatePaparazziCompletionStatus(uniqueID, status); err != nil {
		switch {
		case errors.Is(err, apiError.ErrRequestAlreadyDecided):
			return apiError.ErrRequestAlreadyDecided
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apiError.New("submission not found", 404)
		default:
			log.Printf("UpdatePaparazziStatus error: %v", err)
			return apiError.ErrInternalServerError
		}
	}
	return nil
}

func (s *missionService) GetPaparazziCompletions() ([]models.MissionPaparazziCompletion, error) {
	completions, err := s.missionRepo.GetPaparazziCompletions()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return completions, nil
}

func (s *missionService) GetActionCompletions() ([]models.MissionActionCompletion, error) {
	completions, err := s.missionRepo.GetActionCompletions()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return completions, nil
}

// ToggleCampaign flips a campaign's active flag. Deactivating the Mission
// Action campaign also wipes its mission catalog, matching the console's
// start-fresh-per-campaign workflow.
func (s *missionService) ToggleCampaign(campaignID uint) (*models.MissionCampaign, error) {
	campaign, err := s.missionRepo.GetCampaignByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("campaign not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	campaign.Active = !campaign.Active
	if err := s.missionRepo.SaveCampaign(campaign); err != nil {
		return nil, apiError.ErrInternalServerError
	}

	if !campaign.Active && campaign.CampaignType == models.CampaignMissionAction {
		if err := s.missionRepo.DeleteAllActions(); err != nil {
			log.Printf("ToggleCampaign action wipe error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}
	return campaign, nil
}
