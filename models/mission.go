package models

// Approval / acceptance states shared by paparazzi completions and
// equivalent requests, matching the tri-state integer stored in the DB.
const (
	StatusPending  = 0
	StatusApproved = 1
	StatusRejected = -1
)

// MissionQuiz is a multiple-choice question worth coins when answered right
type MissionQuiz struct {
	Model
	Question      string `json:"question" binding:"required" conform:"trim"`
	Option1       string `json:"option_1" binding:"required"`
	Option2       string `json:"option_2" binding:"required"`
	Option3       string `json:"option_3" binding:"required"`
	Option4       string `json:"option_4" binding:"required"`
	CorrectOption int    `json:"correct_option" binding:"required,min=1,max=4"`
	Coins         int    `json:"coins" binding:"required,min=1"`
}

// MissionAction is a "visit this URL / do this thing" mission
type MissionAction struct {
	Model
	Text  string `json:"text" binding:"required" conform:"trim"`
	URL   string `json:"url" binding:"required,url"`
	Coins int    `json:"coins" binding:"required,min=1"`
}

// MissionPaparazzi asks for a photo taken within a radius of a location
type MissionPaparazzi struct {
	Model
	Text   string  `json:"text" binding:"required" conform:"trim"`
	Lat    float64 `json:"lat" binding:"required"`
	Lng    float64 `json:"lng" binding:"required"`
	Radius float64 `json:"radius"`
	Coins  int     `json:"coins" binding:"required,min=1"`
}

// MissionCampaign gates mission mutation: while a campaign is active its
// mission type cannot be added, edited or deleted from the console.
type MissionCampaign struct {
	Model
	CampaignType string `json:"campaign_type" gorm:"unique;not null"`
	Active       bool   `json:"active" gorm:"default:false"`
}

const (
	CampaignMissionAction    = "Mission Action"
	CampaignMissionPaparazzi = "Mission Paparazzi"
	CampaignQuiz             = "Quiz"
)

// MissionActionCompletion records coins earned for a completed action or a
// correctly answered quiz. Counts toward the balance unconditionally.
type MissionActionCompletion struct {
	Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	MissionID uint   `json:"mission_id"`
	Text      string `json:"text"`
	Coins     int    `json:"coins"`
}

// MissionPaparazziCompletion is a photo submission awaiting moderation.
// Coins count toward the balance only once Status is approved.
type MissionPaparazziCompletion struct {
	Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	UniqueID  string `json:"unique_id" gorm:"type:varchar(50);uniqueIndex;not null"`
	MissionID uint   `json:"mission_id"`
	PhotoURL  string `json:"photo_url"`
	Text      string `json:"text"`
	Coins     int    `json:"coins"`
	Status    int    `json:"status"`
}

type QuizAnswerRequest struct {
	Option int `json:"option" binding:"required,min=1,max=4"`
}

type PaparazziStatusRequest struct {
	Status int `json:"status" binding:"required,oneof=1 -1"`
}
