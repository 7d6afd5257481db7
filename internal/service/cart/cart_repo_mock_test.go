package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ cartRepo = &cartRepoMock{}

type cartRepoMock struct {
	DeleteFunc       func(ctx context.Context, userID uuid.UUID) error
	GetFunc          func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	SaveFunc         func(ctx context.Context, c *domain.Cart) error

	calls struct {
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Save []struct {
			Ctx context.Context
			C   *domain.Cart
		}
	}
	lockDelete       sync.RWMutex
	lockGet          sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockSave         sync.RWMutex
}

func (mock *cartRepoMock) Delete(ctx context.Context, userID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("cartRepoMock.DeleteFunc: method is nil but cartRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID)
}

func (mock *cartRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *cartRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if mock.GetFunc == nil {
		panic("cartRepoMock.GetFunc: method is nil but cartRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *cartRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *cartRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if mock.GetForUpdateFunc == nil {
		panic("cartRepoMock.GetForUpdateFunc: method is nil but cartRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID)
}

func (mock *cartRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *cartRepoMock) Save(ctx context.Context, c *domain.Cart) error {
	if mock.SaveFunc == nil {
		panic("cartRepoMock.SaveFunc: method is nil but cartRepo.Save was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Cart
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, c)
}

func (mock *cartRepoMock) SaveCalls() []struct {
	Ctx context.Context
	C   *domain.Cart
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
