package models

import "time"

// UserSession tracks signed-in JWT sessions for revocation and device listing.
type UserSession struct {
	Base
	SID       string     `json:"sid"        gorm:"uniqueIndex;size:36;not null"`
	UserID    uint       `json:"userId"     gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expiresAt"  gorm:"index;not null"`
	RevokedAt *time.Time `json:"revokedAt"  gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
