package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/soldout/backend/internal/errors"
)

// JWTService implements the TokenService interface using HS256 JWT tokens
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT token service
func NewJWTService(config *Config) *JWTService {
	return &JWTService{
		secret: []byte(config.JWT.Secret),
		now:    time.Now,
	}
}

// IssueToken signs a token for user valid for ttl
func (s *JWTService) IssueToken(user *User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the claims
func (s *JWTService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewAuthenticationError(apperrors.CodeTokenExpired, "Token expired")
		}
		return nil, apperrors.NewAuthenticationError(apperrors.CodeInvalidToken, "Invalid token")
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, apperrors.NewAuthenticationError(apperrors.CodeInvalidToken, "Invalid token")
	}
	return claims, nil
}
