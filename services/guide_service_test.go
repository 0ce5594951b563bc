package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/models"
)

func TestPolygonCentroid(t *testing.T) {
	tests := []struct {
		name    string
		coords  [][2]float64
		wantLat float64
		wantLng float64
	}{
		{
			name:    "unit square",
			coords:  [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			wantLat: 0.5,
			wantLng: 0.5,
		},
		{
			name:    "offset rectangle",
			coords:  [][2]float64{{2, 2}, {6, 2}, {6, 4}, {2, 4}},
			wantLat: 3,
			wantLng: 4,
		},
		{
			name:    "degenerate line falls back to vertex average",
			coords:  [][2]float64{{0, 0}, {2, 0}, {4, 0}},
			wantLat: 0,
			wantLng: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng := polygonCentroid(tt.coords)
			assert.InDelta(t, tt.wantLat, lat, 1e-9)
			assert.InDelta(t, tt.wantLng, lng, 1e-9)
		})
	}
}

func TestGuideService_UpdateGuideSettings(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	guideRepo.guides[1] = &models.Guide{
		Model:                models.Model{ID: 1},
		Title:                "Springfield",
		CoinsForFirstAlert:   100,
		CoinsForConfirmAlert: 50,
		CoinsForCloseAlert:   30,
	}
	svc := NewGuideService(guideRepo, &config.Config{})

	guide, err := svc.UpdateGuideSettings(1, &models.GuideSettingsRequest{
		FirstAlert:   10,
		ConfirmAlert: 5,
		CloseAlert:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, guide.CoinsForFirstAlert)
	assert.Equal(t, 5, guide.CoinsForConfirmAlert)
	assert.Equal(t, 3, guide.CoinsForCloseAlert)
}

func TestGuideService_CreateGuideDefaults(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	svc := NewGuideService(guideRepo, &config.Config{})

	guide := &models.Guide{Title: "Shelbyville"}
	require.NoError(t, svc.CreateGuide(guide))
	assert.Equal(t, 100, guide.CoinsForFirstAlert)
	assert.Equal(t, 50, guide.CoinsForConfirmAlert)
	assert.Equal(t, 30, guide.CoinsForCloseAlert)
}
