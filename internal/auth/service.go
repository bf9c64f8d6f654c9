package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/soldout/backend/internal/config"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt limit
)

// Service handles authentication-related business logic
type Service struct {
	users  UserRepository
	tokens TokenService
	store  storage.FileStore
	config *Config
	logger Logger
}

// NewService creates a new auth service instance
func NewService(users UserRepository, tokens TokenService, store storage.FileStore, config *Config, logger Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		store:  store,
		config: config,
		logger: logger,
	}
}

// RegisterInput carries a registration request plus an optional picture
type RegisterInput struct {
	RegisterRequest
	Picture *storage.Upload
}

// Register creates a USER account and returns a token for it
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	firstName := sanitize.Line(in.FirstName)
	lastName := sanitize.Line(in.LastName)
	email := normalizeEmail(in.Email)

	if firstName == "" || lastName == "" || email == "" || in.Password == "" {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "First name, last name, email and password are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Picture != nil {
		if err := s.config.Picture.Check("profilePicture", in.Picture); err != nil {
			return nil, err
		}
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	batch := storage.NewBatch(s.store, s.logger)
	user := &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
		Role:      RoleUser,
	}
	if in.Picture != nil {
		ref, err := batch.Save(ctx, storage.NewKey("profiles", in.Picture.Filename), in.Picture.Reader, in.Picture.Size, in.Picture.ContentType)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to store profile picture", err)
		}
		user.ProfilePicture = ref
	}

	if err := s.users.Create(ctx, user); err != nil {
		batch.Discard(ctx)
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperrors.NewConflictError(apperrors.CodeEmailTaken, "Email already registered")
		}
		return nil, apperrors.NewStorageError("failed to create user", err)
	}

	s.logger.LogInfo("User registered", map[string]interface{}{"user_id": user.ID})
	return s.respond(user, s.config.JWT.AccessTokenTTL)
}

// Login authenticates any account with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, apperrors.NewAuthorizationError(apperrors.CodeAccountBanned, "Account suspended")
	}
	return s.respond(user, s.config.JWT.AccessTokenTTL)
}

// AdminLogin authenticates an ADMIN or SUPER_ADMIN account
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("Admin privileges required")
	}
	if user.IsBanned {
		return nil, apperrors.NewAuthorizationError(apperrors.CodeAccountBanned, "Account suspended")
	}
	return s.respond(user, s.config.JWT.AdminTokenTTL)
}

// Authenticate verifies token and loads the live user, rejecting banned accounts
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NewAuthenticationError(apperrors.CodeInvalidToken, "Invalid token - user not found")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}
	if user.IsBanned {
		return nil, apperrors.NewAuthorizationError(apperrors.CodeAccountBanned, "Account suspended")
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return apperrors.NewStorageError("failed to load user", err)
	}
	if current == "" || next == "" {
		return apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Current and new password are required")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return apperrors.NewAuthenticationError(apperrors.CodeInvalidCreds, "Current password is incorrect")
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := s.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"password": hash}); err != nil {
		return apperrors.NewStorageError("failed to update password", err)
	}
	return nil
}

// SeedSuperAdmin makes sure the configured SUPER_ADMIN account exists. It
// does nothing when no email is configured or the account already exists.
func (s *Service) SeedSuperAdmin(ctx context.Context, cfg config.SuperAdminConfig) error {
	email := normalizeEmail(cfg.Email)
	if email == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.Role.IsSuperAdmin() {
			s.logger.LogWarn("Configured super admin email belongs to a non super admin account", map[string]interface{}{"user_id": existing.ID})
		}
		return nil
	case !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("failed to look up super admin: %w", err)
	}

	if err := validatePassword(cfg.Password); err != nil {
		return fmt.Errorf("invalid super admin password: %w", err)
	}
	hash, err := s.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	firstName := cfg.FirstName
	if firstName == "" {
		firstName = "Super"
	}
	lastName := cfg.LastName
	if lastName == "" {
		lastName = "Admin"
	}
	user := &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
		Role:      RoleSuperAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	s.logger.LogInfo("Seeded super admin account", map[string]interface{}{"user_id": user.ID})
	return nil
}

// HashPassword hashes password with the configured bcrypt cost
func (s *Service) HashPassword(password string) (string, error) {
	cost := s.config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ValidatePassword exposes the password policy to other account flows
func ValidatePassword(password string) error {
	return validatePassword(password)
}

// NormalizeEmail lower-cases and validates an email address
func NormalizeEmail(email string) (string, error) {
	normalized := normalizeEmail(email)
	if err := validateEmail(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func (s *Service) checkCredentials(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NewAuthenticationError(apperrors.CodeInvalidCreds, "Invalid credentials")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.NewAuthenticationError(apperrors.CodeInvalidCreds, "Invalid credentials")
	}
	return user, nil
}

func (s *Service) respond(user *User, ttl time.Duration) (*AuthResponse, error) {
	token, err := s.tokens.IssueToken(user, ttl)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to issue token", err)
	}
	return &AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
		User:      user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailRules checks addresses outside request binding, with the same rule set
var emailRules = validator.New()

func validateEmail(email string) error {
	if emailRules.Var(email, "required,email") != nil {
		return apperrors.NewValidationError("email", "Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("password", fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return apperrors.NewValidationError("password", fmt.Sprintf("Password must be at most %d bytes long", maxPasswordLength))
	}
	return nil
}
