package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdatePermissions(ctx context.Context, id uuid.UUID, grants []domain.PermissionGrant) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// permissionCache is notified when a user's role, grants or status change.
type permissionCache interface {
	Invalidate(userID uuid.UUID)
}

// sessionRevoker ends every refresh session of a user.
type sessionRevoker interface {
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service implements user administration and profile operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	perms    permissionCache
	sessions sessionRevoker
	hashCost int
}

// NewService wires the user service. hashCost is the bcrypt cost for new
// passwords. Deactivation and password changes end the user's sessions
// through sessions.
func NewService(
	logger *slog.Logger,
	users userRepo,
	perms permissionCache,
	sessions sessionRevoker,
	hashCost int,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		perms:    perms,
		sessions: sessions,
		hashCost: hashCost,
	}
}

func (s *Service) endSessions(ctx context.Context, userID uuid.UUID) error {
	n, err := s.sessions.RevokeAllByUser(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "sessions revoked",
			slog.String("user_id", userID.String()),
			slog.Int("count", n))
	}
	return nil
}
