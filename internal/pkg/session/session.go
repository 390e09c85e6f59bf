package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

// DefaultTTL is how long an issued session stays valid without activity.
const DefaultTTL = 14 * 24 * time.Hour

// Issue creates a session row and a signed JWT bound to it.
func Issue(db *gorm.DB, userID uint, ip, ua string, ttl time.Duration) (token string, sid string, err error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	sid = uuid.NewString()
	s := models.UserSession{
		SID:       sid,
		UserID:    userID,
		IP:        ip,
		UA:        ua,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err = db.Create(&s).Error; err != nil {
		return "", "", err
	}
	token, err = jwt.Sign(userID, sid, ttl)
	return token, sid, err
}

// IsActive reports whether the session exists, is unexpired and unrevoked.
func IsActive(db *gorm.DB, userID uint, sid string) (bool, error) {
	if sid == "" {
		return false, nil
	}
	var count int64
	err := db.Model(&models.UserSession{}).
		Where("sid = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", sid, userID, time.Now()).
		Count(&count).Error
	return count > 0, err
}

// Touch extends the session expiry on activity. Failures are ignored; the
// session simply expires sooner.
func Touch(db *gorm.DB, userID uint, sid string) {
	if sid == "" {
		return
	}
	db.Model(&models.UserSession{}).
		Where("sid = ? AND user_id = ? AND revoked_at IS NULL", sid, userID).
		UpdateColumn("expires_at", time.Now().Add(DefaultTTL))
}

// Revoke invalidates a single session.
func Revoke(db *gorm.DB, userID uint, sid string) error {
	res := db.Model(&models.UserSession{}).
		Where("sid = ? AND user_id = ? AND revoked_at IS NULL", sid, userID).
		UpdateColumn("revoked_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("session not found")
	}
	return nil
}

// RevokeAll invalidates every active session of a user.
func RevokeAll(db *gorm.DB, userID uint) error {
	return db.Model(&models.UserSession{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		UpdateColumn("revoked_at", time.Now()).Error
}
