package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ orderRepo = &orderRepoMock{}

type orderRepoMock struct {
	CreateFunc       func(ctx context.Context, o *domain.Order) error
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateFunc       func(ctx context.Context, o *domain.Order) error

	calls struct {
		Create []struct {
			Ctx context.Context
			O   *domain.Order
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			O   *domain.Order
		}
	}
	lockCreate       sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockUpdate       sync.RWMutex
}

func (mock *orderRepoMock) Create(ctx context.Context, o *domain.Order) error {
	if mock.CreateFunc == nil {
		panic("orderRepoMock.CreateFunc: method is nil but orderRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		O   *domain.Order
	}{
		Ctx: ctx,
		O:   o,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, o)
}

func (mock *orderRepoMock) CreateCalls() []struct {
	Ctx context.Context
	O   *domain.Order
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *orderRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if mock.GetForUpdateFunc == nil {
		panic("orderRepoMock.GetForUpdateFunc: method is nil but orderRepo.GetForUpdate was just called")
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

func (mock *orderRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *orderRepoMock) Update(ctx context.Context, o *domain.Order) error {
	if mock.UpdateFunc == nil {
		panic("orderRepoMock.UpdateFunc: method is nil but orderRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		O   *domain.Order
	}{
		Ctx: ctx,
		O:   o,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, o)
}

func (mock *orderRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	O   *domain.Order
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
