package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ inventoryRepo = &inventoryRepoMock{}

type inventoryRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error)
	UpdateFunc       func(ctx context.Context, l *domain.InventoryList) error

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			L   *domain.InventoryList
		}
	}
	lockGetForUpdate sync.RWMutex
	lockUpdate       sync.RWMutex
}

func (mock *inventoryRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error) {
	if mock.GetForUpdateFunc == nil {
		panic("inventoryRepoMock.GetForUpdateFunc: method is nil but inventoryRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *inventoryRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) Update(ctx context.Context, l *domain.InventoryList) error {
	if mock.UpdateFunc == nil {
		panic("inventoryRepoMock.UpdateFunc: method is nil but inventoryRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.InventoryList
	}{
		Ctx: ctx,
		L:   l,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, l)
}

func (mock *inventoryRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	L   *domain.InventoryList
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
