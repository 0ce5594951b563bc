package models

// Equivalent is a catalog reward citizens redeem coins for
type Equivalent struct {
	Model
	Name       string `json:"name" binding:"required,min=2" conform:"trim"`
	Coins      int    `json:"coins" binding:"required,min=1,max=999"`
	PictureURL string `json:"picture_url,omitempty"`
}

// EquivalentRequest is a redemption. Coins snapshots the catalog cost at
// request time; pending and accepted requests both deduct from the balance,
// rejected ones do not.
type EquivalentRequest struct {
	Model
	EquivalentID uint       `json:"equivalent_id" gorm:"not null;index"`
	Equivalent   Equivalent `gorm:"foreignKey:EquivalentID" json:"-"`
	UserID       uint       `json:"user_id" gorm:"not null;index"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	Coins        int        `json:"coins" gorm:"not null"`
	Status       int        `json:"status"`
}

type RedeemRequest struct {
	EquivalentID uint `json:"equivalent_id" binding:"required"`
}

type EquivalentRequestDecision struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// EquivalentRequestWithDetails backs the console moderation listing
type EquivalentRequestWithDetails struct {
	EquivalentRequest
	EquivalentName string `json:"equivalent_name"`
	UserFullname   string `json:"fullname"`
	UserEmail      string `json:"email"`
}
