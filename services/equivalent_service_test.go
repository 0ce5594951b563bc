package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/cityalert/config"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

// fakeEquivalentRepo mimics the transactional admission: it derives the
// balance from a configured earned total minus its own recorded requests.
type fakeEquivalentRepo struct {
	equivalents map[uint]*models.Equivalent
	requests    []*models.EquivalentRequest
	earned      int
}

func newFakeEquivalentRepo(earned int) *fakeEquivalentRepo {
	return &fakeEquivalentRepo{
		equivalents: make(map[uint]*models.Equivalent),
		earned:      earned,
	}
}

func (f *fakeEquivalentRepo) balance() int {
	b := f.earned
	for _, r := range f.requests {
		if r.Status == models.StatusPending || r.Status == models.StatusApproved {
			b -= r.Coins
		}
	}
	return b
}

func (f *fakeEquivalentRepo) CreateEquivalent(equivalent *models.Equivalent) error {
	equivalent.ID = uint(len(f.equivalents) + 1)
	f.equivalents[equivalent.ID] = equivalent
	return nil
}

func (f *fakeEquivalentRepo) GetEquivalentByID(equivalentID uint) (*models.Equivalent, error) {
	e, ok := f.equivalents[equivalentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeEquivalentRepo) GetAllEquivalents() ([]models.Equivalent, error) { return nil, nil }
func (f *fakeEquivalentRepo) DeleteEquivalent(equivalentID uint) error {
	delete(f.equivalents, equivalentID)
	return nil
}

func (f *fakeEquivalentRepo) CreateRequestIfAffordable(request *models.EquivalentRequest) error {
	if f.balance() < request.Coins {
		return apiError.ErrInsufficientBalance
	}
	request.ID = uint(len(f.requests) + 1)
	f.requests = append(f.requests, request)
	return nil
}

func (f *fakeEquivalentRepo) GetRequestByID(requestID uint) (*models.EquivalentRequest, error) {
	for _, r := range f.requests {
		if r.ID == requestID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEquivalentRepo) GetRequestsWithDetails() ([]models.EquivalentRequestWithDetails, error) {
	return nil, nil
}

func (f *fakeEquivalentRepo) GetRequestsByUserID(userID uint) ([]models.EquivalentRequest, error) {
	return nil, nil
}

func (f *fakeEquivalentRepo) UpdateRequestStatus(requestID uint, status int) error {
	for _, r := range f.requests {
		if r.ID == requestID {
			if r.Status != models.StatusPending {
				return apiError.ErrRequestAlreadyDecided
			}
			r.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newEquivalentFixture(earned int) (*fakeEquivalentRepo, EquivalentService) {
	repo := newFakeEquivalentRepo(earned)
	repo.equivalents[1] = &models.Equivalent{
		Model: models.Model{ID: 1},
		Name:  "Bus ticket",
		Coins: 80,
	}
	svc := NewEquivalentService(repo, nil, &config.Config{})
	return repo, svc
}

func TestEquivalentService_RequestEquivalent(t *testing.T) {
	t.Run("admits a covered request and snapshots the cost", func(t *testing.T) {
		repo, svc := newEquivalentFixture(100)

		request, err := svc.RequestEquivalent(7, 1)
		require.NoError(t, err)
		assert.Equal(t, 80, request.Coins)
		assert.Equal(t, models.StatusPending, request.Status)

		// raising the catalog price later must not touch the snapshot
		repo.equivalents[1].Coins = 200
		assert.Equal(t, 80, repo.requests[0].Coins)
	})

	t.Run("a second identical request no longer fits", func(t *testing.T) {
		_, svc := newEquivalentFixture(100)

		_, err := svc.RequestEquivalent(7, 1)
		require.NoError(t, err)

		// 100 earned, 80 held pending: only 20 spendable remain
		_, err = svc.RequestEquivalent(7, 1)
		assert.ErrorIs(t, err, apiError.ErrInsufficientBalance)
		assert.True(t, apiError.IsWarning(err))
	})

	t.Run("rejecting a request frees its coins", func(t *testing.T) {
		repo, svc := newEquivalentFixture(100)

		first, err := svc.RequestEquivalent(7, 1)
		require.NoError(t, err)

		require.NoError(t, svc.DecideRequest(first.ID, "reject"))

		_, err = svc.RequestEquivalent(7, 1)
		assert.NoError(t, err)
		assert.Len(t, repo.requests, 2)
	})

	t.Run("accepting a request keeps its coins deducted", func(t *testing.T) {
		_, svc := newEquivalentFixture(100)

		first, err := svc.RequestEquivalent(7, 1)
		require.NoError(t, err)

		require.NoError(t, svc.DecideRequest(first.ID, "accept"))

		_, err = svc.RequestEquivalent(7, 1)
		assert.ErrorIs(t, err, apiError.ErrInsufficientBalance)
	})

	t.Run("unknown equivalent is not found", func(t *testing.T) {
		_, svc := newEquivalentFixture(100)

		_, err := svc.RequestEquivalent(7, 42)
		var e *apiError.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, 404, e.Status)
	})
}

func TestEquivalentService_DecideRequestOnce(t *testing.T) {
	_, svc := newEquivalentFixture(100)

	request, err := svc.RequestEquivalent(7, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DecideRequest(request.ID, "accept"))
	err = svc.DecideRequest(request.ID, "reject")
	assert.ErrorIs(t, err, apiError.ErrRequestAlreadyDecided)
}
