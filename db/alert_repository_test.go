package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
)

func TestAlertRepo_CloseAlert(t *testing.T) {
	tests := []struct {
		name    string
		mockFn  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "first closer wins",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "alerts" .*FOR UPDATE`).
					WithArgs(uint(12), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "zone_id", "user_id"}).AddRow(12, 1, 2))
				mock.ExpectQuery(`SELECT count\(\*\) FROM "alert_closures"`).
					WithArgs(uint(12)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`INSERT INTO "alert_closures"`).
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 30, uint(5), uint(12)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
		},
		{
			name: "second closer is rejected without a second row",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "alerts" .*FOR UPDATE`).
					WithArgs(uint(12), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "zone_id", "user_id"}).AddRow(12, 1, 2))
				mock.ExpectQuery(`SELECT count\(\*\) FROM "alert_closures"`).
					WithArgs(uint(12)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
			},
			wantErr: errs.ErrAlertAlreadyClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewAlertRepo(&GormDB{DB: gormDB})
			tt.mockFn(mock)

			err := repo.CloseAlert(&models.AlertClosure{
				Points:  30,
				UserID:  5,
				AlertID: 12,
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

func TestAlertRepo_HasUserConfirmed(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewAlertRepo(&GormDB{DB: gormDB})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "alert_confirmations"`).
		WithArgs(uint(3), uint(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	confirmed, err := repo.HasUserConfirmed(3, 8)
	assert.NoError(t, err)
	assert.True(t, confirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepo_IsAlertClosed(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewAlertRepo(&GormDB{DB: gormDB})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "alert_closures"`).
		WithArgs(uint(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	closed, err := repo.IsAlertClosed(8)
	assert.NoError(t, err)
	assert.False(t, closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
