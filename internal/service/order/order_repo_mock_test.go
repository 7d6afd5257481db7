package order

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ orderRepo = &orderRepoMock{}

type orderRepoMock struct {
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListFunc         func(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	UpdateFunc       func(ctx context.Context, o *domain.Order) error

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.OrderFilter
		}
		Update []struct {
			Ctx context.Context
			O   *domain.Order
		}
	}
	lockGet          sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockList         sync.RWMutex
	lockUpdate       sync.RWMutex
}

func (mock *orderRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if mock.GetFunc == nil {
		panic("orderRepoMock.GetFunc: method is nil but orderRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *orderRepoMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
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

func (mock *orderRepoMock) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	if mock.ListFunc == nil {
		panic("orderRepoMock.ListFunc: method is nil but orderRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.OrderFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *orderRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.OrderFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
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
