package db

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock database: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm connection: %v", err)
	}

	return gormDB, mock
}

func sumRow(v int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"coalesce"}).AddRow(v)
}

// expectBalanceSums queues the six aggregation queries in the order the
// repository issues them.
func expectBalanceSums(mock sqlmock.Sqlmock, userID uint, alerts, confirms, closes, actions, paparazzi, redeemed int) {
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM "alerts"`).
		WithArgs(userID).WillReturnRows(sumRow(alerts))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM "alert_confirmations"`).
		WithArgs(userID).WillReturnRows(sumRow(confirms))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM "alert_closures"`).
		WithArgs(userID).WillReturnRows(sumRow(closes))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(coins\), 0\) FROM "mission_action_completions"`).
		WithArgs(userID).WillReturnRows(sumRow(actions))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(coins\), 0\) FROM "mission_paparazzi_completions"`).
		WithArgs(userID, 1).WillReturnRows(sumRow(paparazzi))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(coins\), 0\) FROM "equivalent_requests"`).
		WithArgs(userID, 0, 1).WillReturnRows(sumRow(redeemed))
}

func TestPointsRepo_SumUserPoints(t *testing.T) {
	tests := []struct {
		name        string
		userID      uint
		mockFn      func(sqlmock.Sqlmock)
		wantBalance int
		wantErr     bool
	}{
		{
			name:   "combines all sources and subtracts redemptions",
			userID: 7,
			mockFn: func(mock sqlmock.Sqlmock) {
				// 100 raise + 50 confirm + 20 approved paparazzi - 30 pending redemption
				expectBalanceSums(mock, 7, 100, 50, 0, 0, 20, 30)
			},
			wantBalance: 140,
		},
		{
			name:   "no activity means zero, not an error",
			userID: 3,
			mockFn: func(mock sqlmock.Sqlmock) {
				expectBalanceSums(mock, 3, 0, 0, 0, 0, 0, 0)
			},
			wantBalance: 0,
		},
		{
			name:   "redemptions can exceed earnings",
			userID: 4,
			mockFn: func(mock sqlmock.Sqlmock) {
				expectBalanceSums(mock, 4, 10, 0, 0, 0, 0, 25)
			},
			wantBalance: -15,
		},
		{
			name:   "a failing scan fails the whole computation",
			userID: 9,
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM "alerts"`).
					WithArgs(uint(9)).WillReturnRows(sumRow(100))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM "alert_confirmations"`).
					WithArgs(uint(9)).WillReturnError(fmt.Errorf("database connection error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewPointsRepo(&GormDB{DB: gormDB})
			tt.mockFn(mock)

			balance, err := repo.SumUserPoints(tt.userID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantBalance, balance)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Reading the balance twice without intervening writes yields the same value.
func TestPointsRepo_SumUserPointsIdempotent(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewPointsRepo(&GormDB{DB: gormDB})

	expectBalanceSums(mock, 5, 100, 0, 30, 40, 0, 80)
	expectBalanceSums(mock, 5, 100, 0, 30, 40, 0, 80)

	first, err := repo.SumUserPoints(5)
	require.NoError(t, err)
	second, err := repo.SumUserPoints(5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 90, first)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsRepo_UserExists(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		count  int64
		want   bool
	}{
		{name: "existing user", userID: 1, count: 1, want: true},
		{name: "unknown user", userID: 99, count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewPointsRepo(&GormDB{DB: gormDB})

			mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
				WithArgs(tt.userID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := repo.UserExists(tt.userID)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
