package models

// Alert is a geotagged issue raised by a citizen. Points is the award the
// raiser earned, snapshotted from the zone's guide at creation time.
type Alert struct {
	Model
	Category  string  `json:"category" binding:"required" conform:"trim"`
	Message   string  `json:"message" binding:"required" conform:"trim"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Points    int     `json:"points"`
	ZoneID    uint    `json:"zone_id" gorm:"not null;index"`
	Zone      Zone    `gorm:"foreignKey:ZoneID" json:"-"`
	UserID    uint    `json:"user_id" gorm:"not null;index"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
}

// AlertConfirmation records one citizen vouching that an alert is real.
// A user confirms a given alert at most once.
type AlertConfirmation struct {
	Model
	Points  int   `json:"points"`
	UserID  uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_confirm_user_alert"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`
	AlertID uint  `json:"alert_id" gorm:"not null;uniqueIndex:idx_confirm_user_alert"`
	Alert   Alert `gorm:"foreignKey:AlertID" json:"-"`
}

// AlertClosure marks an alert resolved. The unique index on AlertID enforces
// first-closer-wins at the store even if two closers race past the check.
type AlertClosure struct {
	Model
	Points  int   `json:"points"`
	UserID  uint  `json:"user_id" gorm:"not null;index"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`
	AlertID uint  `json:"alert_id" gorm:"not null;uniqueIndex"`
	Alert   Alert `gorm:"foreignKey:AlertID" json:"-"`
}

type RaiseAlertRequest struct {
	Category  string  `json:"category" binding:"required" conform:"trim"`
	Message   string  `json:"message" binding:"required" conform:"trim"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	ZoneID    uint    `json:"zone_id" binding:"required"`
}

// AlertWithUser backs the console alert listing
type AlertWithUser struct {
	Alert
	UserFullname  string `json:"fullname"`
	UserEmail     string `json:"email"`
	UserTelephone string `json:"telephone"`
}
