package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/cityalert/config"
	apiError "github.com/techagentng/cityalert/errors"
)

type fakePointsRepo struct {
	exists    bool
	existsErr error
	balance   int
	sumErr    error
	sumCalls  int
}

func (f *fakePointsRepo) UserExists(userID uint) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakePointsRepo) SumUserPoints(userID uint) (int, error) {
	f.sumCalls++
	return f.balance, f.sumErr
}

func TestPointsService_UserBalance(t *testing.T) {
	tests := []struct {
		name       string
		repo       *fakePointsRepo
		want       int
		wantStatus int
		wantErr    bool
	}{
		{
			name: "returns the derived balance",
			repo: &fakePointsRepo{exists: true, balance: 140},
			want: 140,
		},
		{
			name: "zero activity is a zero balance",
			repo: &fakePointsRepo{exists: true, balance: 0},
			want: 0,
		},
		{
			name:       "unknown user is not found, not zero",
			repo:       &fakePointsRepo{exists: false},
			wantErr:    true,
			wantStatus: 404,
		},
		{
			name:       "storage failure propagates whole",
			repo:       &fakePointsRepo{exists: true, sumErr: fmt.Errorf("connection reset")},
			wantErr:    true,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPointsService(tt.repo, &config.Config{})
			balance, err := svc.UserBalance(1)

			if tt.wantErr {
				require.Error(t, err)
				var e *apiError.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.wantStatus, e.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, balance)
		})
	}
}

// Asking twice without writes in between yields the same answer.
func TestPointsService_UserBalanceIdempotent(t *testing.T) {
	repo := &fakePointsRepo{exists: true, balance: 90}
	svc := NewPointsService(repo, &config.Config{})

	first, err := svc.UserBalance(5)
	require.NoError(t, err)
	second, err := svc.UserBalance(5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, repo.sumCalls)
}

func TestPointsService_UserBalanceNeverClamps(t *testing.T) {
	repo := &fakePointsRepo{exists: true, balance: -15}
	svc := NewPointsService(repo, &config.Config{})

	balance, err := svc.UserBalance(5)
	require.NoError(t, err)
	assert.Equal(t, -15, balance)
}
