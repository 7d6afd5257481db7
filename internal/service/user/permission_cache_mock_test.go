package user

import (
	"sync"

	"github.com/google/uuid"
)

var _ permissionCache = &permissionCacheMock{}

type permissionCacheMock struct {
	InvalidateFunc func(userID uuid.UUID)

	calls struct {
		Invalidate []struct {
			UserID uuid.UUID
		}
	}
	lockInvalidate sync.RWMutex
}

func (mock *permissionCacheMock) Invalidate(userID uuid.UUID) {
	if mock.InvalidateFunc == nil {
		panic("permissionCacheMock.InvalidateFunc: method is nil but permissionCache.Invalidate was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
	}{
		UserID: userID,
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	mock.InvalidateFunc(userID)
}

func (mock *permissionCacheMock) InvalidateCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
