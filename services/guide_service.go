package services

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

// GuideService manages cities and their geography: reward schedules, zones
// with boundary polygons, and roads with polylines, both uploaded from the
// console as JSON coordinate files.
type GuideService interface {
	CreateGuide(guide *models.Guide) error
	GetGuide(guideID uint) (*models.Guide, error)
	GetGuidesWithZoneCounts() ([]models.GuideWithZoneCount, error)
	UpdateGuideSettings(guideID uint, settings *models.GuideSettingsRequest) (*models.Guide, error)
	DeleteGuide(guideID uint) error

	CreateZone(guideID uint, name string, file *multipart.FileHeader) (*models.Zone, error)
	GetAllZones() ([]models.Zone, error)
	GetZonePoints(zoneID uint) ([]models.ZonePoint, error)
	DeleteZone(zoneID uint) error

	CreateRoad(guideID uint, name string, file *multipart.FileHeader) (*models.Road, error)
	GetAllRoads() ([]models.Road, error)
	GetRoadPoints(roadID uint) ([]models.RoadPoint, error)
	DeleteRoad(roadID uint) error
}

type guideService struct {
	Config    *config.Config
	guideRepo db.GuideRepository
}

func NewGuideService(guideRepo db.GuideRepository, conf *config.Config) GuideService {
	return &guideService{
		Config:    conf,
		guideRepo: guideRepo,
	}
}

func (s *guideService) CreateGuide(guide *models.Guide) error {
	if guide.CoinsForFirstAlert == 0 {
		guide.CoinsForFirstAlert = 100
	}
	if guide.CoinsForConfirmAlert == 0 {
		guide.CoinsForConfirmAlert = 50
	}
	if guide.CoinsForCloseAlert == 0 {
		guide.CoinsForCloseAlert = 30
	}
	if err := s.guideRepo.CreateGuide(guide); err != nil {
		log.Printf("CreateGuide error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *guideService) GetGuide(guideID uint) (*models.Guide, error) {
	guide, err := s.guideRepo.GetGuideByID(guideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("guide not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}
	return guide, nil
}

func (s *guideService) GetGuidesWithZoneCounts() ([]models.GuideWithZoneCount, error) {
	guides, err := s.guideRepo.GetGuidesWithZoneCounts()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return guides, nil
}

// UpdateGuideSettings changes the coin schedule going forward. Awards that
// were already snapshotted keep their original values.
func (s *guideService) UpdateGuideSettings(guideID uint, settings *models.GuideSettingsRequest) (*models.Guide, error) {
	guide, err := s.guideRepo.GetGuideByID(guideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("guide not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	guide.CoinsForFirstAlert = settings.FirstAlert
	guide.CoinsForConfirmAlert = settings.ConfirmAlert
	guide.CoinsForCloseAlert = settings.CloseAlert
	if err := s.guideRepo.UpdateGuide(guide); err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return guide, nil
}

func (s *guideService) DeleteGuide(guideID uint) error {
	if _, err := s.guideRepo.GetGuideByID(guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("guide not found", 404)
		}
		return apiError.ErrInternalServerError
	}
	if err := s.guideRepo.DeleteGuide(guideID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// parseGeoFile reads an uploaded coordinates document. Coordinates come in
// [lng, lat] order.
func parseGeoFile(file *multipart.FileHeader) (*models.GeoFile, error) {
	f, err := file.Open()
	if err != nil {
		return nil, apiError.New("could not open coordinates file", 400)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, apiError.New("could not read coordinates file", 400)
	}

	var geo models.GeoFile
	if err := json.Unmarshal(raw, &geo); err != nil {
		return nil, apiError.New("coordinates file is not valid JSON", 400)
	}
	if len(geo.Coordinates) < 2 {
		return nil, apiError.New("coordinates file needs at least two points", 400)
	}
	return &geo, nil
}

// polygonCentroid computes the area-weighted centroid of the boundary
// polygon. Falls back to the vertex average for degenerate (zero-area)
// input.
func polygonCentroid(coords [][2]float64) (lat, lng float64) {
	var area, cx, cy float64
	n := len(coords)
	for i := 0; i < n; i++ {
		x1, y1 := coords[i][0], coords[i][1]
		x2, y2 := coords[(i+1)%n][0], coords[(i+1)%n][1]
		cross := x1*y2 - x2*y1
		area += cross
		cx += (x1 + x2) * cross
		cy += (y1 + y2) * cross
	}
	area /= 2
	if area == 0 {
		cx, cy = 0, 0
		for _, c := range coords {
			cx += c[0]
			cy += c[1]
		}
		return cy / float64(n), cx / float64(n)
	}
	cx /= 6 * area
	cy /= 6 * area
	return cy, cx
}

func (s *guideService) CreateZone(guideID uint, name string, file *multipart.FileHeader) (*models.Zone, error) {
	if name == "" {
		return nil, apiError.New("zone name is required", 400)
	}
	if _, err := s.guideRepo.GetGuideByID(guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("guide not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	if _, err := s.guideRepo.GetZoneByName(name); err == nil {
		return nil, apiError.New("zone with this name already exists", 409)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrInternalServerError
	}

	geo, err := parseGeoFile(file)
	if err != nil {
		return nil, err
	}

	lat, lng := polygonCentroid(geo.Coordinates)
	zone := &models.Zone{
		Name:        name,
		CentroidLat: lat,
		CentroidLng: lng,
		GuideID:     guideID,
	}
	points := make([]models.ZonePoint, 0, len(geo.Coordinates))
	for _, c := range geo.Coordinates {
		points = append(points, models.ZonePoint{Lat: c[1], Lng: c[0]})
	}

	if err := s.guideRepo.CreateZoneWithPoints(zone, points); err != nil {
		log.Printf("CreateZone error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return zone, nil
}

func (s *guideService) GetAllZones() ([]models.Zone, error) {
	zones, err := s.guideRepo.GetAllZones()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return zones, nil
}

func (s *guideService) GetZonePoints(zoneID uint) ([]models.ZonePoint, error) {
	if _, err := s.guideRepo.GetZoneByID(zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("zone not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}
	points, err := s.guideRepo.GetZonePoints(zoneID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return points, nil
}

func (s *guideService) DeleteZone(zoneID uint) error {
	if _, err := s.guideRepo.GetZoneByID(zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("zone not found", 404)
		}
		return apiError.ErrInternalServerError
	}
	if err := s.guideRepo.DeleteZone(zoneID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *guideService) CreateRoad(guideID uint, name string, file *multipart.FileHeader) (*models.Road, error) {
	if name == "" {
		return nil, apiError.New("road name is required", 400)
	}
	if _, err := s.guideRepo.GetGuideByID(guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("guide not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}

	if _, err := s.guideRepo.GetRoadByName(name); err == nil {
		return nil, apiError.New("road with this name already exists", 409)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrInternalServerError
	}

	geo, err := parseGeoFile(file)
	if err != nil {
		return nil, err
	}

	road := &models.Road{
		Name:    name,
		GuideID: guideID,
	}
	points := make([]models.RoadPoint, 0, len(geo.Coordinates))
	for _, c := range geo.Coordinates {
		points = append(points, models.RoadPoint{Lat: c[1], Lng: c[0]})
	}

	if err := s.guideRepo.CreateRoadWithPoints(road, points); err != nil {
		log.Printf("CreateRoad error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return road, nil
}

func (s *guideService) GetAllRoads() ([]models.Road, error) {
	roads, err := s.guideRepo.GetAllRoads()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return roads, nil
}

func (s *guideService) GetRoadPoints(roadID uint) ([]models.RoadPoint, error) {
	points, err := s.guideRepo.GetRoadPoints(roadID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return points, nil
}

func (s *guideService) DeleteRoad(roadID uint) error {
	if err := s.guideRepo.DeleteRoad(roadID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}
