package user

import (
	"errors"

	"github.com/terravita/core/internal/models"
)

// CreateUserDTO is the request body for an admin creating an account.
type CreateUserDTO struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Name     string      `json:"name"`
	Mail     string      `json:"mail"`
	Role     models.Role `json:"role"`
	ClerkID  *string     `json:"clerkId"`
}

// UpdateProfileDTO is the request body for a user editing their own profile.
type UpdateProfileDTO struct {
	Name     *string `json:"name"`
	Mail     *string `json:"mail"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

// UpdateRoleDTO is the request body for an admin changing a user's role.
type UpdateRoleDTO struct {
	Role models.Role `json:"role" binding:"required"`
}

var (
	errUserNotFound   = errors.New("user not found")
	errInvalidRole    = errors.New("invalid role")
	errSelfRoleChange = errors.New("cannot change your own role")
	errUsernameTaken  = errors.New("username already exists")
)
