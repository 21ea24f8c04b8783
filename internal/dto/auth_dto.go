package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Pin      string `json:"pin" validate:"required,min=4,max=32"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Pin      string `json:"pin" validate:"required"`
}

// AuthResponse mirrors the legacy wire contract the web client already speaks.
type AuthResponse struct {
	Success  bool      `json:"success"`
	UserId   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	UserId        *uuid.UUID `json:"userId,omitempty"`
	Username      string     `json:"username,omitempty"`
}
