package auth

import "errors"

// LoginDTO is the request body for logging in.
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterDTO is the request body for registering the initial admin account.
type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
}

var (
	errUserNotFound      = errors.New("user not found")
	errWrongPassword     = errors.New("wrong password")
	errAlreadyRegistered = errors.New("an admin account already exists")
)
