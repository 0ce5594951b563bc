package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
)

func expectUserLock(mock sqlmock.Sqlmock, userID uint) {
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
}

func TestEquivalentRepo_CreateRequestIfAffordable(t *testing.T) {
	tests := []struct {
		name    string
		coins   int
		mockFn  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:  "admits a covered request",
			coins: 80,
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectUserLock(mock, 7)
				expectBalanceSums(mock, 7, 100, 0, 0, 0, 0, 0)
				mock.ExpectQuery(`INSERT INTO "equivalent_requests"`).
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint(2), uint(7), 80, 0).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "rejects an uncovered request without inserting",
			coins: 80,
			mockFn: func(mock sqlmock.Sqlmock) {
				// a prior 80-coin request is already pending, so only 20 remain
				mock.ExpectBegin()
				expectUserLock(mock, 7)
				expectBalanceSums(mock, 7, 100, 0, 0, 0, 0, 80)
				mock.ExpectRollback()
			},
			wantErr: errs.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewEquivalentRepo(&GormDB{DB: gormDB})
			tt.mockFn(mock)

			err := repo.CreateRequestIfAffordable(&models.EquivalentRequest{
				EquivalentID: 2,
				UserID:       7,
				Coins:        tt.coins,
				Status:       models.StatusPending,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEquivalentRepo_UpdateRequestStatus(t *testing.T) {
	tests := []struct {
		name      string
		curStatus int
		mockFn    func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name:      "decides a pending request",
			curStatus: models.StatusPending,
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "equivalent_requests" .*FOR UPDATE`).
					WithArgs(uint(4), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(4, models.StatusPending))
				mock.ExpectExec(`UPDATE "equivalent_requests" SET`).
					WithArgs(models.StatusApproved, sqlmock.AnyArg(), uint(4)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:      "re-deciding a decided request is rejected",
			curStatus: models.StatusApproved,
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "equivalent_requests" .*FOR UPDATE`).
					WithArgs(uint(4), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(4, models.StatusApproved))
				mock.ExpectRollback()
			},
			wantErr: errs.ErrRequestAlreadyDecided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewEquivalentRepo(&GormDB{DB: gormDB})
			tt.mockFn(mock)

			err := repo.UpdateRequestStatus(4, models.StatusApproved)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
