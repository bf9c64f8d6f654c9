package admin

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/video"
)

const (
	maxNameLength   = 100
	maxReasonLength = 500
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// Service implements account and moderation queue management for admins
type Service struct {
	users     auth.UserRepository
	videos    VideoReader
	passwords Passwords
	audit     AuditRepository
	publisher events.Publisher
	logger    Logger
}

// NewService creates a new admin service
func NewService(users auth.UserRepository, videos VideoReader, passwords Passwords, audit AuditRepository, publisher events.Publisher, logger Logger) *Service {
	return &Service{
		users:     users,
		videos:    videos,
		passwords: passwords,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

// Dashboard counts videos per moderation status and all users
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		out Dashboard
		err error
	)
	if out.PendingVideos, err = s.videos.CountByStatus(ctx, video.StatusPending); err != nil {
		return nil, err
	}
	if out.ApprovedVideos, err = s.videos.CountByStatus(ctx, video.StatusApproved); err != nil {
		return nil, err
	}
	if out.RejectedVideos, err = s.videos.CountByStatus(ctx, video.StatusRejected); err != nil {
		return nil, err
	}
	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, apperrors.NewStorageError("failed to count users", err)
	}
	return &out, nil
}

// Videos lists every video in status, newest first
func (s *Service) Videos(ctx context.Context, status video.Status) ([]video.Video, error) {
	videos, err := s.videos.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []video.Video{}
	}
	return videos, nil
}

// Video returns any video regardless of status
func (s *Service) Video(ctx context.Context, id int64) (*video.Video, error) {
	return s.videos.Get(ctx, id)
}

// Users lists all accounts with the number of videos each has uploaded
func (s *Service) Users(ctx context.Context) ([]UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list users", err)
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	counts, err := s.videos.CountByOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, len(users))
	for i, u := range users {
		out[i] = UserSummary{User: u, VideoCount: counts[u.ID]}
	}
	return out, nil
}

// Admins lists ADMIN and SUPER_ADMIN accounts
func (s *Service) Admins(ctx context.Context) ([]auth.User, error) {
	admins, err := s.users.List(ctx, auth.RoleAdmin, auth.RoleSuperAdmin)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list admins", err)
	}
	if admins == nil {
		admins = []auth.User{}
	}
	return admins, nil
}

// UpdateUser changes a user's name, email or role. Any admin may edit names
// and emails of non super admin accounts; role changes need SUPER_ADMIN.
func (s *Service) UpdateUser(ctx context.Context, actor *auth.User, userID int64, req UpdateUserRequest) (*auth.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Role.IsSuperAdmin() && !actor.Role.IsSuperAdmin() {
		return nil, apperrors.NewForbidden("Only a super admin can edit a super admin account")
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		name, err := cleanName("firstName", *req.FirstName)
		if err != nil {
			return nil, err
		}
		fields["first_name"] = name
	}
	if req.LastName != nil {
		name, err := cleanName("lastName", *req.LastName)
		if err != nil {
			return nil, err
		}
		fields["last_name"] = name
	}
	if req.Email != nil {
		email, err := auth.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		fields["email"] = email
	}

	roleChanged := false
	if req.Role != nil && *req.Role != target.Role {
		if !actor.Role.IsSuperAdmin() {
			return nil, apperrors.NewForbidden("Only a super admin can change roles")
		}
		if !req.Role.Valid() {
			return nil, apperrors.NewValidationError("role", fmt.Sprintf("Unknown role %q", *req.Role))
		}
		if target.ID == actor.ID {
			return nil, apperrors.NewForbidden("You cannot change your own role")
		}
		if target.Role.IsSuperAdmin() {
			return nil, apperrors.NewForbidden("A super admin's role cannot be changed")
		}
		fields["role"] = *req.Role
		roleChanged = true
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Nothing to update")
	}

	if err := s.update(ctx, userID, fields); err != nil {
		return nil, err
	}
	updated, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if roleChanged {
		details := fmt.Sprintf("%s -> %s", target.Role, updated.Role)
		s.record(ctx, actor, ActionRoleChanged, &updated.ID, details)
		if updated.Role.IsSuperAdmin() {
			s.emit(ctx, events.UserPromoted, actor, updated.ID, map[string]interface{}{"from": string(target.Role), "to": string(updated.Role)})
		}
	}
	s.logger.LogInfo("User updated by admin", map[string]interface{}{"actor_id": actor.ID, "user_id": userID})
	return updated, nil
}

// Ban suspends an account. SUPER_ADMIN accounts cannot be banned, ADMIN
// accounts only by a SUPER_ADMIN, and nobody can ban themselves.
func (s *Service) Ban(ctx context.Context, actor *auth.User, userID int64, reason string) (*auth.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if actor.ID == userID {
		return nil, apperrors.NewForbidden("You cannot ban yourself")
	}
	reason = sanitize.Text(reason)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, apperrors.NewValidationError("reason", fmt.Sprintf("Reason must not exceed %d characters", maxReasonLength))
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := canManage(actor, target, "ban"); err != nil {
		return nil, err
	}
	if target.IsBanned {
		return target, nil
	}

	if err := s.update(ctx, userID, map[string]interface{}{"is_banned": true}); err != nil {
		return nil, err
	}
	target.IsBanned = true

	s.record(ctx, actor, ActionBanned, &target.ID, reason)
	s.emit(ctx, events.UserBanned, actor, target.ID, map[string]interface{}{"reason": reason})
	s.logger.LogInfo("User banned", map[string]interface{}{"actor_id": actor.ID, "user_id": userID})
	return target, nil
}

// Unban lifts a suspension under the same rules as Ban
func (s *Service) Unban(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := canManage(actor, target, "unban"); err != nil {
		return nil, err
	}
	if !target.IsBanned {
		return target, nil
	}

	if err := s.update(ctx, userID, map[string]interface{}{"is_banned": false}); err != nil {
		return nil, err
	}
	target.IsBanned = false

	s.record(ctx, actor, ActionUnbanned, &target.ID, "")
	s.emit(ctx, events.UserUnbanned, actor, target.ID, nil)
	s.logger.LogInfo("User unbanned", map[string]interface{}{"actor_id": actor.ID, "user_id": userID})
	return target, nil
}

// RegisterAdmin creates a new ADMIN account
func (s *Service) RegisterAdmin(ctx context.Context, actor *auth.User, req RegisterAdminRequest) (*auth.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if sanitize.Line(req.FirstName) == "" || sanitize.Line(req.LastName) == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "First name, last name, email and password are required")
	}
	firstName, err := cleanName("firstName", req.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := cleanName("lastName", req.LastName)
	if err != nil {
		return nil, err
	}
	email, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to hash password", err)
	}

	admin := &auth.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
		Role:      auth.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, apperrors.NewConflictError(apperrors.CodeEmailTaken, "Email already registered")
		}
		return nil, apperrors.NewStorageError("failed to create admin", err)
	}

	s.record(ctx, actor, ActionAdminCreated, &admin.ID, email)
	s.emit(ctx, events.AdminCreated, actor, admin.ID, map[string]interface{}{"email": email})
	s.logger.LogInfo("Admin registered", map[string]interface{}{"actor_id": actor.ID, "user_id": admin.ID})
	return admin, nil
}

// Promote raises an ADMIN to SUPER_ADMIN
func (s *Service) Promote(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, apperrors.NewValidationErrorCode("userId", apperrors.CodeMissingFields, "User ID is required")
	}
	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch {
	case target.Role.IsSuperAdmin():
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "User is already a super admin")
	case !target.Role.IsAdmin():
		return nil, apperrors.NewValidationError("userId", "Only admins can be promoted")
	case target.IsBanned:
		return nil, apperrors.NewValidationError("userId", "Banned accounts cannot be promoted")
	}

	if err := s.update(ctx, userID, map[string]interface{}{"role": auth.RoleSuperAdmin}); err != nil {
		return nil, err
	}
	target.Role = auth.RoleSuperAdmin

	s.record(ctx, actor, ActionPromoted, &target.ID, fmt.Sprintf("%s -> %s", auth.RoleAdmin, auth.RoleSuperAdmin))
	s.emit(ctx, events.UserPromoted, actor, target.ID, map[string]interface{}{"from": string(auth.RoleAdmin), "to": string(auth.RoleSuperAdmin)})
	s.logger.LogInfo("Admin promoted", map[string]interface{}{"actor_id": actor.ID, "user_id": userID})
	return target, nil
}

// DeleteAdmin removes an ADMIN account. SUPER_ADMIN accounts and regular
// users cannot be deleted through this path.
func (s *Service) DeleteAdmin(ctx context.Context, actor *auth.User, userID int64) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	target, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	switch {
	case target.Role.IsSuperAdmin():
		return apperrors.NewForbidden("A super admin cannot be deleted")
	case !target.Role.IsAdmin():
		return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "Admin not found")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "Admin not found")
		}
		return apperrors.NewStorageError("failed to delete admin", err)
	}

	// the row is gone, so the target is kept in the details only
	s.record(ctx, actor, ActionAdminDeleted, nil, fmt.Sprintf("id=%d email=%s", target.ID, target.Email))
	s.emit(ctx, events.AdminDeleted, actor, target.ID, map[string]interface{}{"email": target.Email})
	s.logger.LogInfo("Admin deleted", map[string]interface{}{"actor_id": actor.ID, "user_id": userID})
	return nil
}

// AuditLogs returns one page of audit entries, newest first, and the total
func (s *Service) AuditLogs(ctx context.Context, page, limit int) ([]AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	total, err := s.audit.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("failed to count audit logs", err)
	}
	entries, err := s.audit.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("failed to list audit logs", err)
	}
	if entries == nil {
		entries = []AuditLog{}
	}
	return entries, total, nil
}

// ChangePassword replaces the calling admin's password
func (s *Service) ChangePassword(ctx context.Context, actor *auth.User, req ChangePasswordRequest) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.passwords.ChangePassword(ctx, actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	s.logger.LogInfo("Admin password changed", map[string]interface{}{"user_id": actor.ID})
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}
	return u, nil
}

func (s *Service) update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if err := s.users.Update(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			return apperrors.NewConflictError(apperrors.CodeEmailTaken, "Email already registered")
		case errors.Is(err, auth.ErrUserNotFound):
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return apperrors.NewStorageError("failed to update user", err)
	}
	return nil
}

// record writes an audit entry. A failed write is logged and does not undo
// the change it describes.
func (s *Service) record(ctx context.Context, actor *auth.User, action Action, targetID *int64, details string) {
	entry := &AuditLog{ActorID: actor.ID, Action: action, TargetUserID: targetID, Details: details}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.LogError(err, "Failed to write audit log "+string(action))
	}
}

func (s *Service) emit(ctx context.Context, eventType events.EventType, actor *auth.User, subjectID int64, data map[string]interface{}) {
	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:      eventType,
		ActorID:   actor.ID,
		SubjectID: subjectID,
		Data:      data,
	})
}

func requireAdmin(actor *auth.User) error {
	if actor == nil || !actor.Role.IsAdmin() {
		return apperrors.NewForbidden("Admin privileges required")
	}
	return nil
}

func requireSuperAdmin(actor *auth.User) error {
	if actor == nil || !actor.Role.IsSuperAdmin() {
		return apperrors.NewForbidden("Super admin privileges required")
	}
	return nil
}

func canManage(actor, target *auth.User, verb string) error {
	switch {
	case target.Role.IsSuperAdmin():
		return apperrors.NewForbidden(fmt.Sprintf("A super admin cannot be %sned", verb))
	case target.Role.IsAdmin() && !actor.Role.IsSuperAdmin():
		return apperrors.NewForbidden(fmt.Sprintf("Only a super admin can %s an admin", verb))
	}
	return nil
}

func cleanName(field, name string) (string, error) {
	name = sanitize.Line(name)
	if name == "" {
		return "", apperrors.NewValidationErrorCode(field, apperrors.CodeMissingFields, "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("Name must not exceed %d characters", maxNameLength))
	}
	return name, nil
}
