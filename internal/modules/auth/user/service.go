package user

import (
	"context"
	"errors"
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/identity"
	"github.com/terravita/core/internal/pkg/pagination"
	"github.com/terravita/core/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service handles account administration. Role changes are mirrored to the
// identity provider out of band; the local row is the source of truth and a
// failed push never rolls the change back.
type Service struct {
	db     *gorm.DB
	syncer identity.Syncer
	log    *zap.Logger
}

func NewService(db *gorm.DB, syncer identity.Syncer, log *zap.Logger) *Service {
	if syncer == nil {
		syncer = identity.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, syncer: syncer, log: log}
}

// List returns a page of accounts, newest first.
func (s *Service) List(q pagination.Query) ([]models.UserModel, response.Pagination, error) {
	var total int64
	if err := s.db.Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	var users []models.UserModel
	err := s.db.Order("created_at DESC, id ASC").
		Offset(q.Offset()).Limit(q.Size).
		Find(&users).Error
	return users, q.Meta(total), err
}

// GetByID fetches an account. Returns (nil, nil) when absent.
func (s *Service) GetByID(id uint) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create adds an account with the given role (admin operation).
func (s *Service) Create(ctx context.Context, dto *CreateUserDTO) (*models.UserModel, error) {
	role := dto.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, errInvalidRole
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
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
		Role:     role,
		ClerkID:  dto.ClerkID,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, err
	}

	s.pushRole(ctx, &u)
	return &u, nil
}

// UpdateRole changes a user's role. Admins only, and never their own role,
// so the last admin cannot demote themselves by accident.
func (s *Service) UpdateRole(ctx context.Context, actorID, targetID uint, role models.Role) (*models.UserModel, error) {
	if !role.Valid() {
		return nil, errInvalidRole
	}
	if actorID == targetID {
		return nil, errSelfRoleChange
	}

	u, err := s.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	if err := s.db.Model(u).Update("role", role).Error; err != nil {
		return nil, err
	}
	u.Role = role

	s.pushRole(ctx, u)
	return u, nil
}

// UpdateProfile patches the caller's own account.
func (s *Service) UpdateProfile(id uint, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Mail != nil {
		updates["mail"] = *dto.Mail
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// pushRole mirrors the role to the identity provider. Best effort: the
// outcome is logged and otherwise ignored.
func (s *Service) pushRole(ctx context.Context, u *models.UserModel) {
	if u.ClerkID == nil || *u.ClerkID == "" {
		return
	}
	pushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.syncer.PushRole(pushCtx, *u.ClerkID, u.Role); err != nil {
		s.log.Warn("identity role sync failed",
			zap.Uint("userId", u.ID),
			zap.String("role", string(u.Role)),
			zap.Error(err),
		)
	}
}
