package models

// Guide is a city managed from the console. Its coin schedule feeds the
// alert reward snapshots; changing it never touches already-issued awards.
type Guide struct {
	Model
	Title                string `json:"title" binding:"required,min=3" conform:"trim"`
	CoinsForFirstAlert   int    `json:"coins_for_first_alert" gorm:"not null;default:100"`
	CoinsForConfirmAlert int    `json:"coins_for_confirm_alert" gorm:"not null;default:50"`
	CoinsForCloseAlert   int    `json:"coins_for_close_alert" gorm:"not null;default:30"`
}

type Zone struct {
	Model
	Name        string      `json:"name" gorm:"unique;not null"`
	CentroidLat float64     `json:"centroid_lat"`
	CentroidLng float64     `json:"centroid_lng"`
	GuideID     uint        `json:"guide_id" gorm:"not null;index"`
	Guide       Guide       `gorm:"foreignKey:GuideID" json:"-"`
	Points      []ZonePoint `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"points,omitempty"`
}

type ZonePoint struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Lat    float64 `json:"lat" gorm:"not null"`
	Lng    float64 `json:"lng" gorm:"not null"`
	ZoneID uint    `json:"zone_id" gorm:"not null;index"`
}

type Road struct {
	Model
	Name    string      `json:"name" gorm:"unique;not null"`
	GuideID uint        `json:"guide_id" gorm:"not null;index"`
	Guide   Guide       `gorm:"foreignKey:GuideID" json:"-"`
	Points  []RoadPoint `gorm:"foreignKey:RoadID;constraint:OnDelete:CASCADE" json:"points,omitempty"`
}

type RoadPoint struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Lat    float64 `json:"lat" gorm:"not null"`
	Lng    float64 `json:"lng" gorm:"not null"`
	RoadID uint    `json:"road_id" gorm:"not null;index"`
}

// GeoFile is the JSON document uploaded from the console for zones and roads;
// coordinates come in [lng, lat] order, GeoJSON style.
type GeoFile struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

// GuideSettingsRequest updates a guide's coin schedule
type GuideSettingsRequest struct {
	FirstAlert   int `json:"first_alert" binding:"min=0"`
	ConfirmAlert int `json:"confirm_alert" binding:"min=0"`
	CloseAlert   int `json:"close_alert" binding:"min=0"`
}

// GuideWithZoneCount backs the console city listing
type GuideWithZoneCount struct {
	Guide
	ZoneCount int `json:"zone_count"`
}
