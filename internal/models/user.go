package models

import "time"

// Role controls which content kinds a user may edit.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleContentEditor Role = "content_editor"
	RoleNewsEditor    Role = "news_editor"
	RoleAreasEditor   Role = "areas_editor"
	RoleSpeciesEditor Role = "species_editor"
	RoleUser          Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContentEditor, RoleNewsEditor, RoleAreasEditor, RoleSpeciesEditor, RoleUser:
		return true
	}
	return false
}

// CanEdit reports whether the role may edit the given content kind
// ("species", "areas", "news"). Admin and content_editor cover every kind.
func (r Role) CanEdit(kind string) bool {
	switch r {
	case RoleAdmin, RoleContentEditor:
		return true
	case RoleNewsEditor:
		return kind == "news"
	case RoleAreasEditor:
		return kind == "areas"
	case RoleSpeciesEditor:
		return kind == "species"
	}
	return false
}

// UserModel is a platform account. ClerkID links the account to the external
// identity provider; the local row stays the source of truth for the role.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;size:191;not null"`
	Name          string     `json:"name"`
	Mail          string     `json:"mail"`
	Avatar        string     `json:"avatar"`
	Password      string     `json:"-"        gorm:"not null"`
	Role          Role       `json:"role"     gorm:"size:32;index;default:user"`
	ClerkID       *string    `json:"clerkId"  gorm:"uniqueIndex;size:191"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	LastLoginIP   string     `json:"lastLoginIp"`
}

func (UserModel) TableName() string { return "users" }
