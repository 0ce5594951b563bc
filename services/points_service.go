package services

import (
	"log"
	"net/http"

	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	apiError "github.com/techagentng/cityalert/errors"
)

// PointsService answers "how many coins does this user have right now".
// The balance is derived on every read; nothing is cached or stored.
type PointsService interface {
	UserBalance(userID uint) (int, error)
}

type pointsService struct {
	Config     *config.Config
	pointsRepo db.PointsRepository
}

func NewPointsService(pointsRepo db.PointsRepository, conf *config.Config) PointsService {
	return &pointsService{
		Config:     conf,
		pointsRepo: pointsRepo,
	}
}

// UserBalance returns the user's spendable coin balance. Asking about a user
// that does not exist is an error, not a zero balance.
func (s *pointsService) UserBalance(userID uint) (int, error) {
	exists, err := s.pointsRepo.UserExists(userID)
	if err != nil {
		log.Printf("UserBalance existence check error: %v", err)
		return 0, apiError.ErrInternalServerError
	}
	if !exists {
		return 0, apiError.New("user not found", http.StatusNotFound)
	}

	balance, err := s.pointsRepo.SumUserPoints(userID)
	if err != nil {
		log.Printf("UserBalance aggregation error: %v", err)
		return 0, apiError.ErrInternalServerError
	}
	return balance, nil
}
