package product

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ productRepo = &productRepoMock{}

type productRepoMock struct {
	GetFunc  func(ctx context.Context, code string) (*domain.Product, error)
	ListFunc func(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)

	calls struct {
		Get []struct {
			Ctx  context.Context
			Code string
		}
		List []struct {
			Ctx context.Context
			F   domain.ProductFilter
		}
	}
	lockGet  sync.RWMutex
	lockList sync.RWMutex
}

func (mock *productRepoMock) Get(ctx context.Context, code string) (*domain.Product, error) {
	if mock.GetFunc == nil {
		panic("productRepoMock.GetFunc: method is nil but productRepo.Get was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, code)
}

func (mock *productRepoMock) GetCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *productRepoMock) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if mock.ListFunc == nil {
		panic("productRepoMock.ListFunc: method is nil but productRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ProductFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *productRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ProductFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
