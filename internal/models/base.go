package models

import (
	"time"

	"gorm.io/gorm"
)

// Base is the common identity/lifecycle block for all entities.
type Base struct {
	ID        uint           `json:"id"        gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`
}

// ContentStatus is the publication state of a content record.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ContentBase carries the shared publication, draft-overlay and edit-lock
// state for every content kind (species, protected areas, news).
//
// DraftData is a partial overlay of the published columns: keys present in
// the map (including keys explicitly set to null) win over the live value at
// publish time, absent keys fall through to the published column. HasDraft
// must equal (DraftData != nil) at all times; both are written together.
type ContentBase struct {
	Base
	Slug           string        `json:"slug"                     gorm:"uniqueIndex;size:191;not null"`
	Status         ContentStatus `json:"status"                   gorm:"size:20;index;default:draft"`
	DraftData      JSONMap       `json:"draftData,omitempty"      gorm:"type:longtext"`
	HasDraft       bool          `json:"hasDraft"                 gorm:"default:false;index"`
	DraftCreatedAt *time.Time    `json:"draftCreatedAt,omitempty"`
	PublishedAt    *time.Time    `json:"publishedAt,omitempty"`

	// Advisory edit lock. Checked at acquire time only; draft and publish
	// writes do not consult it.
	LockedByID    *uint      `json:"lockedBy,omitempty" gorm:"index"`
	LockedAt      *time.Time `json:"lockedAt,omitempty"`
	LockExpiresAt *time.Time `json:"lockExpiresAt,omitempty"`

	// Version backs the optional optimistic-concurrency mode.
	Version int `json:"-" gorm:"default:0"`
}

// ContentRef exposes the embedded ContentBase; content kind models satisfy
// the lifecycle.Content interface through this promoted method.
func (c *ContentBase) ContentRef() *ContentBase { return c }

// LockHeldBy reports whether userID holds a non-expired lock at the given time.
func (c *ContentBase) LockHeldBy(userID uint, now time.Time) bool {
	return c.LockedByID != nil && *c.LockedByID == userID && c.LockValid(now)
}

// LockValid reports whether any non-expired lock exists at the given time.
// An expired lock is treated as absent.
func (c *ContentBase) LockValid(now time.Time) bool {
	return c.LockedByID != nil && c.LockExpiresAt != nil && c.LockExpiresAt.After(now)
}
