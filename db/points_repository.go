package db

import (
	"fmt"

	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

// PointsRepository derives a user's coin balance on read. There is no ledger
// table of record: the balance is the fold of five event tables minus
// pending and accepted redemptions.
type PointsRepository interface {
	UserExists(userID uint) (bool, error)
	SumUserPoints(userID uint) (int, error)
}

type pointsRepo struct {
	DB *gorm.DB
}

func NewPointsRepo(db *GormDB) PointsRepository {
	return &pointsRepo{db.DB}
}

func (r *pointsRepo) UserExists(userID uint) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pointsRepo) SumUserPoints(userID uint) (int, error) {
	return sumUserPoints(r.DB, userID)
}

// sumUserPoints runs on whatever connection or transaction it is handed, so
// the redemption admission check can reuse it under its row lock. Any failed
// scan fails the whole computation; a partial sum is never returned.
func sumUserPoints(tx *gorm.DB, userID uint) (int, error) {
	sum := func(model interface{}, column string, conds ...interface{}) (int, error) {
		var total int
		q := tx.Model(model).Where("user_id = ?", userID)
		if len(conds) > 0 {
			q = q.Where(conds[0], conds[1:]...)
		}
		err := q.Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).Scan(&total).Error
		return total, err
	}

	alertPoints, err := sum(&models.Alert{}, "points")
	if err != nil {
		return 0, err
	}
	confirmPoints, err := sum(&models.AlertConfirmation{}, "points")
	if err != nil {
		return 0, err
	}
	closePoints, err := sum(&models.AlertClosure{}, "points")
	if err != nil {
		return 0, err
	}
	actionCoins, err := sum(&models.MissionActionCompletion{}, "coins")
	if err != nil {
		return 0, err
	}
	paparazziCoins, err := sum(&models.MissionPaparazziCompletion{}, "coins", "status = ?", models.StatusApproved)
	if err != nil {
		return 0, err
	}
	redeemedCoins, err := sum(&models.EquivalentRequest{}, "coins", "status IN ?", []int{models.StatusPending, models.StatusApproved})
	if err != nil {
		return 0, err
	}

	return alertPoints + confirmPoints + closePoints + actionCoins + paparazziCoins - redeemedCoins, nil
}
