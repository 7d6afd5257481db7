package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// PermissionResolver evaluates permissions against the stored user, caching
// resolved sets per user for ttl.
type PermissionResolver struct {
	users userGetter
	cache *expirable.LRU[uuid.UUID, domain.PermissionSet]
}

// NewPermissionResolver creates a resolver caching at most size users.
func NewPermissionResolver(users userGetter, size int, ttl time.Duration) *PermissionResolver {
	return &PermissionResolver{
		users: users,
		cache: expirable.NewLRU[uuid.UUID, domain.PermissionSet](size, nil, ttl),
	}
}

// Resolve returns the permission set of userID. Unknown and inactive users
// resolve to an empty set.
func (r *PermissionResolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.PermissionSet, error) {
	if set, ok := r.cache.Get(userID); ok {
		return set, nil
	}

	u, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.PermissionSet{}, nil
	}
	if err != nil {
		return domain.PermissionSet{}, fmt.Errorf("resolve permissions: %w", err)
	}

	set := domain.PermissionSet{}
	if u.Active {
		set = domain.PermissionSet{Role: u.Role, Grants: u.Permissions}
	}
	r.cache.Add(userID, set)
	return set, nil
}

// Check returns domain.ErrForbidden when userID lacks perm.
func (r *PermissionResolver) Check(ctx context.Context, userID uuid.UUID, perm domain.Permission) error {
	set, err := r.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	if !set.Allows(perm) {
		return fmt.Errorf("permission %s: %w", perm, domain.ErrForbidden)
	}
	return nil
}

// Invalidate drops the cached set of userID after a role or grant change.
func (r *PermissionResolver) Invalidate(userID uuid.UUID) {
	r.cache.Remove(userID)
}
