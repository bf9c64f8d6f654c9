package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/storage"
)

// Config represents authentication configuration
type Config struct {
	JWT struct {
		Secret         string
		AccessTokenTTL time.Duration
		AdminTokenTTL  time.Duration
	}
	BcryptCost int
	Picture    storage.FileRules
}

// NewConfigFromAuthConfig creates an auth.Config from the loaded application config
func NewConfigFromAuthConfig(cfg *config.AuthConfig, video *config.VideoConfig) *Config {
	authConfig := &Config{}
	authConfig.JWT.Secret = cfg.JWT.Secret
	authConfig.JWT.AccessTokenTTL = cfg.JWT.AccessTokenTTL
	authConfig.JWT.AdminTokenTTL = cfg.JWT.AdminTokenTTL
	authConfig.BcryptCost = cfg.BcryptCost
	authConfig.Picture = storage.FileRules{
		MaxSize:        video.MaxPictureSize,
		AllowedFormats: video.AllowedImageFormats,
	}
	return authConfig
}

// RegisterRequest represents the registration payload, sent as JSON or multipart form
type RegisterRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required"`
	LastName  string `json:"lastName" form:"lastName" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by registration and both login flows
type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
	User      *User  `json:"user"`
}

// TokenClaims represents the JWT claims
type TokenClaims struct {
	UserID int64  `json:"userId"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
