package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// List returns every user ordered by username.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// Create adds an active user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.Series = strings.ToUpper(strings.TrimSpace(input.Series))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		Series:       input.Series,
		Permissions:  input.Permissions,
		Active:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("username", created.Username),
		slog.String("role", created.Role.String()))

	return created, nil
}

// UpdateRole changes the role of a user. Admins cannot demote themselves.
func (s *Service) UpdateRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be one of admin, manager, sales, warehouse")
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if callerID == targetUserID && !role.IsAdmin() {
		return nil, domain.NewValidationError("role", "cannot demote yourself")
	}

	user, err := s.users.UpdateRole(ctx, targetUserID, role)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateRole: %w", err)
	}
	s.perms.Invalidate(targetUserID)

	s.log.InfoContext(ctx, "user role updated",
		slog.String("target_user_id", targetUserID.String()),
		slog.String("new_role", role.String()),
	)

	return user, nil
}

// UpdatePermissions replaces the explicit grants of a user.
func (s *Service) UpdatePermissions(ctx context.Context, targetUserID uuid.UUID, grants []domain.PermissionGrant) (*domain.User, error) {
	if errs := validateGrants(grants); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	user, err := s.users.UpdatePermissions(ctx, targetUserID, grants)
	if err != nil {
		return nil, fmt.Errorf("user.UpdatePermissions: %w", err)
	}
	s.perms.Invalidate(targetUserID)

	s.log.InfoContext(ctx, "user permissions updated",
		slog.String("target_user_id", targetUserID.String()),
		slog.Int("grants", len(grants)),
	)

	return user, nil
}

// SetActive enables or disables a user. Callers cannot disable themselves.
func (s *Service) SetActive(ctx context.Context, targetUserID uuid.UUID, active bool) error {
	if callerID, ok := ctxutil.UserIDFromCtx(ctx); ok && callerID == targetUserID && !active {
		return domain.NewValidationError("active", "cannot deactivate yourself")
	}

	if err := s.users.SetActive(ctx, targetUserID, active); err != nil {
		return fmt.Errorf("user.SetActive: %w", err)
	}
	s.perms.Invalidate(targetUserID)
	if !active {
		if err := s.endSessions(ctx, targetUserID); err != nil {
			return fmt.Errorf("user.SetActive: %w", err)
		}
	}

	s.log.InfoContext(ctx, "user status changed",
		slog.String("target_user_id", targetUserID.String()),
		slog.Bool("active", active))
	return nil
}

// Promote grants the admin role to an existing user. If the user does not
// exist and a password is given, a new admin is created. created reports
// which of the two happened.
func (s *Service) Promote(ctx context.Context, input PromoteInput) (user *domain.User, created bool, err error) {
	input.Username = strings.TrimSpace(input.Username)
	if errs := validateUsername(input.Username); len(errs) > 0 {
		return nil, false, domain.NewValidationErrors(errs)
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	switch {
	case err == nil:
		user, err = s.users.UpdateRole(ctx, existing.ID, domain.UserRoleAdmin)
		if err != nil {
			return nil, false, fmt.Errorf("user.Promote: %w", err)
		}
		if !existing.Active {
			if err := s.users.SetActive(ctx, existing.ID, true); err != nil {
				return nil, false, fmt.Errorf("user.Promote: %w", err)
			}
			user.Active = true
		}
		s.perms.Invalidate(existing.ID)
		s.log.InfoContext(ctx, "user promoted to admin", slog.String("user_id", existing.ID.String()))
		return user, false, nil

	case errors.Is(err, domain.ErrNotFound):
		if input.Password == "" {
			return nil, false, fmt.Errorf("user.Promote %s: %w", input.Username, domain.ErrNotFound)
		}
		name := input.Name
		if name == "" {
			name = input.Username
		}
		user, err = s.Create(ctx, CreateInput{
			Username: input.Username,
			Name:     name,
			Password: input.Password,
			Role:     domain.UserRoleAdmin,
		})
		if err != nil {
			return nil, false, err
		}
		return user, true, nil

	default:
		return nil, false, fmt.Errorf("user.Promote: %w", err)
	}
}
