package db

import (
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EquivalentRepository interface {
	CreateEquivalent(equivalent *models.Equivalent) error
	GetEquivalentByID(equivalentID uint) (*models.Equivalent, error)
	GetAllEquivalents() ([]models.Equivalent, error)
	DeleteEquivalent(equivalentID uint) error
	CreateRequestIfAffordable(request *models.EquivalentRequest) error
	GetRequestByID(requestID uint) (*models.EquivalentRequest, error)
	GetRequestsWithDetails() ([]models.EquivalentRequestWithDetails, error)
	GetRequestsByUserID(userID uint) ([]models.EquivalentRequest, error)
	UpdateRequestStatus(requestID uint, status int) error
}

type equivalentRepo struct {
	DB *gorm.DB
}

func NewEquivalentRepo(db *GormDB) EquivalentRepository {
	return &equivalentRepo{db.DB}
}

func (r *equivalentRepo) CreateEquivalent(equivalent *models.Equivalent) error {
	return r.DB.Create(equivalent).Error
}

func (r *equivalentRepo) GetEquivalentByID(equivalentID uint) (*models.Equivalent, error) {
	var equivalent models.Equivalent
	if err := r.DB.First(&equivalent, equivalentID).Error; err != nil {
		return nil, err
	}
	return &equivalent, nil
}

func (r *equivalentRepo) GetAllEquivalents() ([]models.Equivalent, error) {
	var equivalents []models.Equivalent
	if err := r.DB.Order("id DESC").Find(&equivalents).Error; err != nil {
		return nil, err
	}
	return equivalents, nil
}

func (r *equivalentRepo) DeleteEquivalent(equivalentID uint) error {
	return r.DB.Delete(&models.Equivalent{}, equivalentID).Error
}

// CreateRequestIfAffordable admits the redemption only if the derived
// balance covers its cost. The balance check and the insert happen in one
// transaction holding a row lock on the user, so two concurrent requests
// from the same user serialize instead of both passing a stale check.
func (r *equivalentRepo) CreateRequestIfAffordable(request *models.EquivalentRequest) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, request.UserID).Error; err != nil {
			return err
		}

		balance, err := sumUserPoints(tx, request.UserID)
		if err != nil {
			return err
		}
		if balance < request.Coins {
			return errs.ErrInsufficientBalance
		}

		return tx.Create(request).Error
	})
}

func (r *equivalentRepo) GetRequestByID(requestID uint) (*models.EquivalentRequest, error) {
	var request models.EquivalentRequest
	if err := r.DB.First(&request, requestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *equivalentRepo) GetRequestsWithDetails() ([]models.EquivalentRequestWithDetails, error) {
	var requests []models.EquivalentRequestWithDetails
	err := r.DB.Model(&models.EquivalentRequest{}).
		Select("equivalent_requests.*, equivalents.name AS equivalent_name, users.fullname AS user_fullname, users.email AS user_email").
		Joins("JOIN equivalents ON equivalents.id = equivalent_requests.equivalent_id").
		Joins("JOIN users ON users.id = equivalent_requests.user_id").
		Order("equivalent_requests.created_at DESC").
		Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *equivalentRepo) GetRequestsByUserID(userID uint) ([]models.EquivalentRequest, error) {
	var requests []models.EquivalentRequest
	if err := r.DB.Where("user_id = ?", userID).Order("id DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequestStatus transitions a pending request exactly once; deciding
// an already-decided request is rejected, not overwritten.
func (r *equivalentRepo) UpdateRequestStatus(requestID uint, status int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var request models.EquivalentRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, requestID).Error; err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return errs.ErrRequestAlreadyDecided
		}
		return tx.Model(&request).Update("status", status).Error
	})
}
