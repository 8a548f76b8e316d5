package model

import "time"

type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
	Name       string `json:"name" binding:"required,max=100"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	ExpiresAt time.Time `json:"expiresAt"`
}
