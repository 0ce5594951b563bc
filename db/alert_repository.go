package db

import (
	"github.com/pkg/errors"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository interface {
	CreateAlert(alert *models.Alert) error
	GetAlertByID(alertID uint) (*models.Alert, error)
	GetAlertsWithUsers() ([]models.AlertWithUser, error)
	GetAlertsByZone(zoneID uint) ([]models.Alert, error)
	HasUserConfirmed(userID, alertID uint) (bool, error)
	CreateConfirmation(confirmation *models.AlertConfirmation) error
	IsAlertClosed(alertID uint) (bool, error)
	CloseAlert(closure *models.AlertClosure) error
}

type alertRepo struct {
	DB *gorm.DB
}

func NewAlertRepo(db *GormDB) AlertRepository {
	return &alertRepo{db.DB}
}

func (r *alertRepo) CreateAlert(alert *models.Alert) error {
	if alert == nil {
		return errors.New("alert is nil")
	}
	return r.DB.Create(alert).Error
}

func (r *alertRepo) GetAlertByID(alertID uint) (*models.Alert, error) {
	var alert models.Alert
	if err := r.DB.First(&alert, alertID).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) GetAlertsWithUsers() ([]models.AlertWithUser, error) {
	var alerts []models.AlertWithUser
	err := r.DB.Model(&models.Alert{}).
		Select("alerts.*, users.fullname AS user_fullname, users.email AS user_email, users.telephone AS user_telephone").
		Joins("JOIN users ON users.id = alerts.user_id").
		Order("alerts.id DESC").
		Scan(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) GetAlertsByZone(zoneID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := r.DB.Where("zone_id = ?", zoneID).Order("id DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) HasUserConfirmed(userID, alertID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.AlertConfirmation{}).
		Where("user_id = ? AND alert_id = ?", userID, alertID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *alertRepo) CreateConfirmation(confirmation *models.AlertConfirmation) error {
	return r.DB.Create(confirmation).Error
}

func (r *alertRepo) IsAlertClosed(alertID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.AlertClosure{}).Where("alert_id = ?", alertID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CloseAlert inserts the closure under a row lock on the alert, so two
// racing closers serialize and the loser sees the existing closure. The
// unique index on alert_id backstops the lock.
func (r *alertRepo) CloseAlert(closure *models.AlertClosure) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var alert models.Alert
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&alert, closure.AlertID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.AlertClosure{}).
			Where("alert_id = ?", closure.AlertID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.ErrAlertAlreadyClosed
		}

		return tx.Create(closure).Error
	})
}
