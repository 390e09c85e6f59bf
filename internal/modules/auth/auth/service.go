package auth

import (
	"errors"
	"time"

	"github.com/terravita/core/internal/models"
	sessionpkg "github.com/terravita/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies the credentials and issues a session token. Failed lookups
// and wrong passwords are slowed down to blunt credential stuffing.
func (s *Service) Login(username, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongPassword
	}

	now := time.Now()
	s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	u.LastLoginTime = &now
	u.LastLoginIP = ip

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &u, err
}

// Register creates the initial admin account. It only works while the users
// table is empty; everyone after that is created by an admin.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := dto.Name
	if name == "" {
		name = dto.Username
	}
	u := models.UserModel{
		Username: dto.Username,
		Password: string(hash),
		Name:     name,
		Mail:     dto.Mail,
		Role:     models.RoleAdmin,
	}
	return &u, s.db.Create(&u).Error
}

// Logout revokes the current session.
func (s *Service) Logout(userID uint, sid string) error {
	return sessionpkg.Revoke(s.db, userID, sid)
}

// LogoutAll revokes every active session of the user.
func (s *Service) LogoutAll(userID uint) error {
	return sessionpkg.RevokeAll(s.db, userID)
}
