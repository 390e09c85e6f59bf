package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockSyncer struct{ mock.Mock }

func (m *mockSyncer) PushRole(ctx context.Context, externalID string, role models.Role) error {
	args := m.Called(ctx, externalID, role)
	return args.Error(0)
}

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role, clerkID *string) *models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.UserModel{Username: username, Name: username, Password: string(hash), Role: role, ClerkID: clerkID}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestUpdateRolePushesToIdentityProvider(t *testing.T) {
	db := setupUserDB(t)
	clerkID := "user_2abc"
	admin := seedUser(t, db, "admin", models.RoleAdmin, nil)
	target := seedUser(t, db, "editor", models.RoleUser, &clerkID)

	syncer := new(mockSyncer)
	syncer.On("PushRole", mock.Anything, clerkID, models.RoleNewsEditor).Return(nil)

	svc := NewService(db, syncer, nil)
	out, err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.RoleNewsEditor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNewsEditor, out.Role)
	syncer.AssertExpectations(t)
}

// A failed provider push is logged and swallowed: the local role change is
// the source of truth and must never roll back.
func TestUpdateRoleSurvivesSyncFailure(t *testing.T) {
	db := setupUserDB(t)
	clerkID := "user_2def"
	admin := seedUser(t, db, "admin", models.RoleAdmin, nil)
	target := seedUser(t, db, "editor", models.RoleUser, &clerkID)

	syncer := new(mockSyncer)
	syncer.On("PushRole", mock.Anything, clerkID, models.RoleSpeciesEditor).
		Return(errors.New("clerk: 503"))

	svc := NewService(db, syncer, nil)
	out, err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.RoleSpeciesEditor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSpeciesEditor, out.Role)

	persisted, err := svc.GetByID(target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSpeciesEditor, persisted.Role)
	syncer.AssertExpectations(t)
}

func TestUpdateRoleSkipsPushWithoutExternalID(t *testing.T) {
	db := setupUserDB(t)
	admin := seedUser(t, db, "admin", models.RoleAdmin, nil)
	target := seedUser(t, db, "local-only", models.RoleUser, nil)

	syncer := new(mockSyncer)

	svc := NewService(db, syncer, nil)
	_, err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.RoleAreasEditor)
	require.NoError(t, err)
	syncer.AssertNotCalled(t, "PushRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRoleRejectsSelfChange(t *testing.T) {
	db := setupUserDB(t)
	admin := seedUser(t, db, "admin", models.RoleAdmin, nil)

	svc := NewService(db, nil, nil)
	_, err := svc.UpdateRole(context.Background(), admin.ID, admin.ID, models.RoleUser)
	assert.ErrorIs(t, err, errSelfRoleChange)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	db := setupUserDB(t)
	admin := seedUser(t, db, "admin", models.RoleAdmin, nil)
	target := seedUser(t, db, "target", models.RoleUser, nil)

	svc := NewService(db, nil, nil)
	_, err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.Role("superuser"))
	assert.ErrorIs(t, err, errInvalidRole)
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	db := setupUserDB(t)
	seedUser(t, db, "taken", models.RoleUser, nil)

	svc := NewService(db, nil, nil)
	_, err := svc.Create(context.Background(), &CreateUserDTO{
		Username: "taken",
		Password: "password123",
	})
	assert.ErrorIs(t, err, errUsernameTaken)
}

func TestListPaginatesUsers(t *testing.T) {
	db := setupUserDB(t)
	for _, name := range []string{"a", "b", "c"} {
		seedUser(t, db, name, models.RoleUser, nil)
	}

	svc := NewService(db, nil, nil)
	users, pag, err := svc.List(pagination.Query{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), pag.Total)
	assert.Equal(t, 2, pag.TotalPages)
}
