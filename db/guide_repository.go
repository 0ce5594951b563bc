package db

import (
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

type GuideRepository interface {
	CreateGuide(guide *models.Guide) error
	GetGuideByID(guideID uint) (*models.Guide, error)
	GetGuidesWithZoneCounts() ([]models.GuideWithZoneCount, error)
	UpdateGuide(guide *models.Guide) error
	DeleteGuide(guideID uint) error

	CreateZoneWithPoints(zone *models.Zone, points []models.ZonePoint) error
	GetZoneByID(zoneID uint) (*models.Zone, error)
	GetZoneByName(name string) (*models.Zone, error)
	GetAllZones() ([]models.Zone, error)
	GetZonePoints(zoneID uint) ([]models.ZonePoint, error)
	UpdateZoneCentroid(zoneID uint, lat, lng float64) error
	DeleteZone(zoneID uint) error

	CreateRoadWithPoints(road *models.Road, points []models.RoadPoint) error
	GetRoadByName(name string) (*models.Road, error)
	GetAllRoads() ([]models.Road, error)
	GetRoadPoints(roadID uint) ([]models.RoadPoint, error)
	DeleteRoad(roadID uint) error
}

type guideRepo struct {
	DB *gorm.DB
}

func NewGuideRepo(db *GormDB) GuideRepository {
	return &guideRepo{db.DB}
}

func (r *guideRepo) CreateGuide(guide *models.Guide) error {
	return r.DB.Create(guide).Error
}

func (r *guideRepo) GetGuideByID(guideID uint) (*models.Guide, error) {
	var guide models.Guide
	if err := r.DB.First(&guide, guideID).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepo) GetGuidesWithZoneCounts() ([]models.GuideWithZoneCount, error) {
	var guides []models.GuideWithZoneCount
	err := r.DB.Model(&models.Guide{}).
		Select("guides.*, COUNT(zones.id) AS zone_count").
		Joins("LEFT JOIN zones ON zones.guide_id = guides.id AND zones.deleted_at IS NULL").
		Group("guides.id").
		Order("guides.id DESC").
		Scan(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *guideRepo) UpdateGuide(guide *models.Guide) error {
	return r.DB.Save(guide).Error
}

func (r *guideRepo) DeleteGuide(guideID uint) error {
	return r.DB.Delete(&models.Guide{}, guideID).Error
}

// CreateZoneWithPoints inserts the zone and bulk-inserts its boundary points
// in one transaction so a bad coordinates file leaves nothing behind.
func (r *guideRepo) CreateZoneWithPoints(zone *models.Zone, points []models.ZonePoint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(zone).Error; err != nil {
			return err
		}
		for i := range points {
			points[i].ZoneID = zone.ID
		}
		return tx.CreateInBatches(points, 500).Error
	})
}

func (r *guideRepo) GetZoneByID(zoneID uint) (*models.Zone, error) {
	var zone models.Zone
	if err := r.DB.First(&zone, zoneID).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *guideRepo) GetZoneByName(name string) (*models.Zone, error) {
	var zone models.Zone
	if err := r.DB.Where("name = ?", name).First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *guideRepo) GetAllZones() ([]models.Zone, error) {
	var zones []models.Zone
	if err := r.DB.Order("guide_id DESC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *guideRepo) GetZonePoints(zoneID uint) ([]models.ZonePoint, error) {
	var points []models.ZonePoint
	if err := r.DB.Where("zone_id = ?", zoneID).Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *guideRepo) UpdateZoneCentroid(zoneID uint, lat, lng float64) error {
	return r.DB.Model(&models.Zone{}).Where("id = ?", zoneID).
		Updates(map[string]interface{}{"centroid_lat": lat, "centroid_lng": lng}).Error
}

func (r *guideRepo) DeleteZone(zoneID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("zone_id = ?", zoneID).Delete(&models.ZonePoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Zone{}, zoneID).Error
	})
}

func (r *guideRepo) CreateRoadWithPoints(road *models.Road, points []models.RoadPoint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(road).Error; err != nil {
			return err
		}
		for i := range points {
			points[i].RoadID = road.ID
		}
		return tx.CreateInBatches(points, 500).Error
	})
}

func (r *guideRepo) GetRoadByName(name string) (*models.Road, error) {
	var road models.Road
	if err := r.DB.Where("name = ?", name).First(&road).Error; err != nil {
		return nil, err
	}
	return &road, nil
}

func (r *guideRepo) GetAllRoads() ([]models.Road, error) {
	var roads []models.Road
	if err := r.DB.Order("guide_id DESC").Find(&roads).Error; err != nil {
		return nil, err
	}
	return roads, nil
}

func (r *guideRepo) GetRoadPoints(roadID uint) ([]models.RoadPoint, error) {
	var points []models.RoadPoint
	if err := r.DB.Where("road_id = ?", roadID).Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *guideRepo) DeleteRoad(roadID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("road_id = ?", roadID).Delete(&models.RoadPoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Road{}, roadID).Error
	})
}
