package db

import (
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

type MissionRepository interface {
	CreateQuiz(quiz *models.MissionQuiz) error
	GetQuizByID(quizID uint) (*models.MissionQuiz, error)
	GetAllQuizzes() ([]models.MissionQuiz, error)
	UpdateQuiz(quiz *models.MissionQuiz) error
	DeleteQuiz(quizID uint) error

	CreateAction(action *models.MissionAction) error
	GetActionByID(actionID uint) (*models.MissionAction, error)
	GetAllActions() ([]models.MissionAction, error)
	UpdateAction(action *models.MissionAction) error
	DeleteAction(actionID uint) error
	DeleteAllActions() error

	CreatePaparazzi(mission *models.MissionPaparazzi) error
	GetPaparazziByID(missionID uint) (*models.MissionPaparazzi, error)
	GetAllPaparazzi() ([]models.MissionPaparazzi, error)
	DeletePaparazzi(missionID uint) error

	GetCampaignByType(campaignType string) (*models.MissionCampaign, error)
	GetCampaignByID(campaignID uint) (*models.MissionCampaign, error)
	SaveCampaign(campaign *models.MissionCampaign) error

	CreateActionCompletion(completion *models.MissionActionCompletion) error
	GetActionCompletions() ([]models.MissionActionCompletion, error)
	CreatePaparazziCompletion(completion *models.MissionPaparazziCompletion) error
	GetPaparazziCompletions() ([]models.MissionPaparazziCompletion, error)
	GetPaparazziCompletionByUniqueID(uniqueID string) (*models.MissionPaparazziCompletion, error)
	UpdatePaparazziCompletionStatus(uniqueID string, status int) error
}

type missionRepo struct {
	DB *gorm.DB
}

func NewMissionRepo(db *GormDB) MissionRepository {
	return &missionRepo{db.DB}
}

func (r *missionRepo) CreateQuiz(quiz *models.MissionQuiz) error {
	return r.DB.Create(quiz).Error
}

func (r *missionRepo) GetQuizByID(quizID uint) (*models.MissionQuiz, error) {
	var quiz models.MissionQuiz
	if err := r.DB.First(&quiz, quizID).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *missionRepo) GetAllQuizzes() ([]models.MissionQuiz, error) {
	var quizzes []models.MissionQuiz
	if err := r.DB.Order("id DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *missionRepo) UpdateQuiz(quiz *models.MissionQuiz) error {
	return r.DB.Save(quiz).Error
}

func (r *missionRepo) DeleteQuiz(quizID uint) error {
	return r.DB.Delete(&models.MissionQuiz{}, quizID).Error
}

func (r *missionRepo) CreateAction(action *models.MissionAction) error {
	return r.DB.Create(action).Error
}

func (r *missionRepo) GetActionByID(actionID uint) (*models.MissionAction, error) {
	var action models.MissionAction
	if err := r.DB.First(&action, actionID).Error; err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *missionRepo) GetAllActions() ([]models.MissionAction, error) {
	var actions []models.MissionAction
	if err := r.DB.Order("id DESC").Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *missionRepo) UpdateAction(action *models.MissionAction) error {
	return r.DB.Save(action).Error
}

func (r *missionRepo) DeleteAction(actionID uint) error {
	return r.DB.Delete(&models.MissionAction{}, actionID).Error
}

// DeleteAllActions wipes the action catalog; used when the Mission Action
// campaign is deactivated.
func (r *missionRepo) DeleteAllActions() error {
	return r.DB.Where("1 = 1").Delete(&models.MissionAction{}).Error
}

func (r *missionRepo) CreatePaparazzi(mission *models.MissionPaparazzi) error {
	return r.DB.Create(mission).Error
}

func (r *missionRepo) GetPaparazziByID(missionID uint) (*models.MissionPaparazzi, error) {
	var mission models.MissionPaparazzi
	if err := r.DB.First(&mission, missionID).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepo) GetAllPaparazzi() ([]models.MissionPaparazzi, error) {
	var missions []models.MissionPaparazzi
	if err := r.DB.Order("id DESC").Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *missionRepo) DeletePaparazzi(missionID uint) error {
	return r.DB.Delete(&models.MissionPaparazzi{}, missionID).Error
}

func (r *missionRepo) GetCampaignByType(campaignType string) (*models.MissionCampaign, error) {
	var campaign models.MissionCampaign
	if err := r.DB.Where("campaign_type = ?", campaignType).First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *missionRepo) GetCampaignByID(campaignID uint) (*models.MissionCampaign, error) {
	var campaign models.MissionCampaign
	if err := r.DB.First(&campaign, campaignID).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *missionRepo) SaveCampaign(campaign *models.MissionCampaign) error {
	return r.DB.Save(campaign).Error
}

func (r *missionRepo) CreateActionCompletion(completion *models.MissionActionCompletion) error {
	return r.DB.Create(completion).Error
}

func (r *missionRepo) GetActionCompletions() ([]models.MissionActionCompletion, error) {
	var completions []models.MissionActionCompletion
	if err := r.DB.Preload("User").Order("id DESC").Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *missionRepo) CreatePaparazziCompletion(completion *models.MissionPaparazziCompletion) error {
	return r.DB.Create(completion).Error
}

func (r *missionRepo) GetPaparazziCompletions() ([]models.MissionPaparazziCompletion, error) {
	var completions []models.MissionPaparazziCompletion
	if err := r.DB.Preload("User").Order("id DESC").Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *missionRepo) GetPaparazziCompletionByUniqueID(uniqueID string) (*models.MissionPaparazziCompletion, error) {
	var completion models.MissionPaparazziCompletion
	if err := r.DB.Where("unique_id = ?", uniqueID).First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// UpdatePaparazziCompletionStatus moves a pending submission to approved or
// rejected exactly once.
func (r *missionRepo) UpdatePaparazziCompletionStatus(uniqueID string, status int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var completion models.MissionPaparazziCompletion
		if err := tx.Where("unique_id = ?", uniqueID).First(&completion).Error; err != nil {
			return err
		}
		if completion.Status != models.StatusPending {
			return errs.ErrRequestAlreadyDecided
		}
		return tx.Model(&completion).Update("status", status).Error
	})
}
