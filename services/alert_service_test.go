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

type fakeAlertRepo struct {
	alerts        map[uint]*models.Alert
	confirmations []models.AlertConfirmation
	closures      []models.AlertClosure
	closed        map[uint]bool
	confirmedBy   map[[2]uint]bool
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{
		alerts:      make(map[uint]*models.Alert),
		closed:      make(map[uint]bool),
		confirmedBy: make(map[[2]uint]bool),
	}
}

func (f *fakeAlertRepo) CreateAlert(alert *models.Alert) error {
	alert.ID = uint(len(f.alerts) + 1)
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeAlertRepo) GetAlertByID(alertID uint) (*models.Alert, error) {
	alert, ok := f.alerts[alertID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return alert, nil
}

func (f *fakeAlertRepo) GetAlertsWithUsers() ([]models.AlertWithUser, error) { return nil, nil }

func (f *fakeAlertRepo) GetAlertsByZone(zoneID uint) ([]models.Alert, error) { return nil, nil }

func (f *fakeAlertRepo) HasUserConfirmed(userID, alertID uint) (bool, error) {
	return f.confirmedBy[[2]uint{userID, alertID}], nil
}

func (f *fakeAlertRepo) CreateConfirmation(confirmation *models.AlertConfirmation) error {
	f.confirmedBy[[2]uint{confirmation.UserID, confirmation.AlertID}] = true
	f.confirmations = append(f.confirmations, *confirmation)
	return nil
}

func (f *fakeAlertRepo) IsAlertClosed(alertID uint) (bool, error) {
	return f.closed[alertID], nil
}

func (f *fakeAlertRepo) CloseAlert(closure *models.AlertClosure) error {
	if f.closed[closure.AlertID] {
		return apiError.ErrAlertAlreadyClosed
	}
	f.closed[closure.AlertID] = true
	f.closures = append(f.closures, *closure)
	return nil
}

type fakeGuideRepo struct {
	guides map[uint]*models.Guide
	zones  map[uint]*models.Zone
	roads  map[string]*models.Road
}

func newFakeGuideRepo() *fakeGuideRepo {
	return &fakeGuideRepo{
		guides: make(map[uint]*models.Guide),
		zones:  make(map[uint]*models.Zone),
		roads:  make(map[string]*models.Road),
	}
}

func (f *fakeGuideRepo) CreateGuide(guide *models.Guide) error {
	guide.ID = uint(len(f.guides) + 1)
	f.guides[guide.ID] = guide
	return nil
}

func (f *fakeGuideRepo) GetGuideByID(guideID uint) (*models.Guide, error) {
	guide, ok := f.guides[guideID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return guide, nil
}

func (f *fakeGuideRepo) GetGuidesWithZoneCounts() ([]models.GuideWithZoneCount, error) {
	return nil, nil
}

func (f *fakeGuideRepo) UpdateGuide(guide *models.Guide) error {
	f.guides[guide.ID] = guide
	return nil
}

func (f *fakeGuideRepo) DeleteGuide(guideID uint) error {
	delete(f.guides, guideID)
	return nil
}

func (f *fakeGuideRepo) CreateZoneWithPoints(zone *models.Zone, points []models.ZonePoint) error {
	zone.ID = uint(len(f.zones) + 1)
	f.zones[zone.ID] = zone
	return nil
}

func (f *fakeGuideRepo) GetZoneByID(zoneID uint) (*models.Zone, error) {
	zone, ok := f.zones[zoneID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return zone, nil
}

func (f *fakeGuideRepo) GetZoneByName(name string) (*models.Zone, error) {
	for _, z := range f.zones {
		if z.Name == name {
			return z, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGuideRepo) GetAllZones() ([]models.Zone, error)              { return nil, nil }
func (f *fakeGuideRepo) GetZonePoints(zoneID uint) ([]models.ZonePoint, error) { return nil, nil }
func (f *fakeGuideRepo) UpdateZoneCentroid(zoneID uint, lat, lng float64) error { return nil }
func (f *fakeGuideRepo) DeleteZone(zoneID uint) error {
	delete(f.zones, zoneID)
	return nil
}

func (f *fakeGuideRepo) CreateRoadWithPoints(road *models.Road, points []models.RoadPoint) error {
	f.roads[road.Name] = road
	return nil
}

func (f *fakeGuideRepo) GetRoadByName(name string) (*models.Road, error) {
	road, ok := f.roads[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return road, nil
}

func (f *fakeGuideRepo) GetAllRoads() ([]models.Road, error)                   { return nil, nil }
func (f *fakeGuideRepo) GetRoadPoints(roadID uint) ([]models.RoadPoint, error) { return nil, nil }
func (f *fakeGuideRepo) DeleteRoad(roadID uint) error                          { return nil }

func newAlertFixture() (*fakeAlertRepo, *fakeGuideRepo, AlertService) {
	alertRepo := newFakeAlertRepo()
	guideRepo := newFakeGuideRepo()

	guideRepo.guides[1] = &models.Guide{
		Model:                models.Model{ID: 1},
		Title:                "Springfield",
		CoinsForFirstAlert:   100,
		CoinsForConfirmAlert: 50,
		CoinsForCloseAlert:   30,
	}
	guideRepo.zones[1] = &models.Zone{
		Model:   models.Model{ID: 1},
		Name:    "Downtown",
		GuideID: 1,
	}

	svc := NewAlertService(alertRepo, guideRepo, nil, &config.Config{})
	return alertRepo, guideRepo, svc
}

func TestAlertService_RaiseAlertSnapshotsReward(t *testing.T) {
	alertRepo, guideRepo, svc := newAlertFixture()

	alert, err := svc.RaiseAlert(1, &models.RaiseAlertRequest{
		Category:  "pothole",
		Message:   "deep pothole on main street",
		Latitude:  45.1,
		Longitude: 7.6,
		ZoneID:    1,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, alert.Points)

	// lowering the schedule later must not touch the issued award
	guideRepo.guides[1].CoinsForFirstAlert = 10
	assert.Equal(t, 100, alertRepo.alerts[alert.ID].Points)
}

func TestAlertService_RaiseAlertUnknownZone(t *testing.T) {
	_, _, svc := newAlertFixture()

	_, err := svc.RaiseAlert(1, &models.RaiseAlertRequest{
		Category:  "pothole",
		Message:   "nope",
		Latitude:  45.1,
		Longitude: 7.6,
		ZoneID:    42,
	}, nil)
	require.Error(t, err)
	var e *apiError.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.Status)
}

func TestAlertService_ConfirmAlert(t *testing.T) {
	alertRepo, _, svc := newAlertFixture()
	alertRepo.alerts[1] = &models.Alert{Model: models.Model{ID: 1}, ZoneID: 1, UserID: 1}

	t.Run("snapshots the confirm reward", func(t *testing.T) {
		confirmation, err := svc.ConfirmAlert(2, 1)
		require.NoError(t, err)
		assert.Equal(t, 50, confirmation.Points)
	})

	t.Run("rejects a duplicate confirmation", func(t *testing.T) {
		_, err := svc.ConfirmAlert(2, 1)
		assert.ErrorIs(t, err, apiError.ErrAlreadyConfirmed)
	})

	t.Run("rejects confirming your own alert", func(t *testing.T) {
		_, err := svc.ConfirmAlert(1, 1)
		assert.ErrorIs(t, err, apiError.ErrOwnAlertConfirmation)
	})
}

func TestAlertService_CloseAlertOnce(t *testing.T) {
	alertRepo, _, svc := newAlertFixture()
	alertRepo.alerts[1] = &models.Alert{Model: models.Model{ID: 1}, ZoneID: 1, UserID: 1}

	closure, err := svc.CloseAlert(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, closure.Points)
	require.Len(t, alertRepo.closures, 1)

	// second closer gets a business-rule rejection and no second row
	_, err = svc.CloseAlert(3, 1)
	assert.ErrorIs(t, err, apiError.ErrAlertAlreadyClosed)
	assert.True(t, apiError.IsWarning(err))
	assert.Len(t, alertRepo.closures, 1)
}

func TestAlertService_ConfirmClosedAlert(t *testing.T) {
	alertRepo, _, svc := newAlertFixture()
	alertRepo.alerts[1] = &models.Alert{Model: models.Model{ID: 1}, ZoneID: 1, UserID: 1}
	alertRepo.closed[1] = true

	_, err := svc.ConfirmAlert(2, 1)
	assert.ErrorIs(t, err, apiError.ErrAlertAlreadyClosed)
}
