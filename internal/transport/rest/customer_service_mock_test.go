package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/customer"
)

var _ customerService = &customerServiceMock{}

type customerServiceMock struct {
	AddressesFunc func(ctx context.Context, code string) ([]domain.CustomerAddress, error)
	BalanceFunc   func(ctx context.Context, code string) (customer.Summary, error)
	GetFunc       func(ctx context.Context, code string) (*domain.Customer, error)
	MovementsFunc func(ctx context.Context, input customer.MovementsInput) ([]domain.CustomerMovement, error)
	PushFunc      func(ctx context.Context, input customer.PushInput) (*domain.Customer, error)
	SearchFunc    func(ctx context.Context, input customer.SearchInput) ([]domain.Customer, error)

	calls struct {
		Addresses []struct {
			Ctx  context.Context
			Code string
		}
		Balance []struct {
			Ctx  context.Context
			Code string
		}
		Get []struct {
			Ctx  context.Context
			Code string
		}
		Movements []struct {
			Ctx   context.Context
			Input customer.MovementsInput
		}
		Push []struct {
			Ctx   context.Context
			Input customer.PushInput
		}
		Search []struct {
			Ctx   context.Context
			Input customer.SearchInput
		}
	}
	lockAddresses sync.RWMutex
	lockBalance   sync.RWMutex
	lockGet       sync.RWMutex
	lockMovements sync.RWMutex
	lockPush      sync.RWMutex
	lockSearch    sync.RWMutex
}

func (mock *customerServiceMock) Addresses(ctx context.Context, code string) ([]domain.CustomerAddress, error) {
	if mock.AddressesFunc == nil {
		panic("customerServiceMock.AddressesFunc: method is nil but customerService.Addresses was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockAddresses.Lock()
	mock.calls.Addresses = append(mock.calls.Addresses, callInfo)
	mock.lockAddresses.Unlock()
	return mock.AddressesFunc(ctx, code)
}

func (mock *customerServiceMock) AddressesCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockAddresses.RLock()
	calls := mock.calls.Addresses
	mock.lockAddresses.RUnlock()
	return calls
}

func (mock *customerServiceMock) Balance(ctx context.Context, code string) (customer.Summary, error) {
	if mock.BalanceFunc == nil {
		panic("customerServiceMock.BalanceFunc: method is nil but customerService.Balance was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockBalance.Lock()
	mock.calls.Balance = append(mock.calls.Balance, callInfo)
	mock.lockBalance.Unlock()
	return mock.BalanceFunc(ctx, code)
}

func (mock *customerServiceMock) BalanceCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockBalance.RLock()
	calls := mock.calls.Balance
	mock.lockBalance.RUnlock()
	return calls
}

func (mock *customerServiceMock) Get(ctx context.Context, code string) (*domain.Customer, error) {
	if mock.GetFunc == nil {
		panic("customerServiceMock.GetFunc: method is nil but customerService.Get was just called")
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

func (mock *customerServiceMock) GetCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *customerServiceMock) Movements(ctx context.Context, input customer.MovementsInput) ([]domain.CustomerMovement, error) {
	if mock.MovementsFunc == nil {
		panic("customerServiceMock.MovementsFunc: method is nil but customerService.Movements was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input customer.MovementsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockMovements.Lock()
	mock.calls.Movements = append(mock.calls.Movements, callInfo)
	mock.lockMovements.Unlock()
	return mock.MovementsFunc(ctx, input)
}

func (mock *customerServiceMock) MovementsCalls() []struct {
	Ctx   context.Context
	Input customer.MovementsInput
} {
	mock.lockMovements.RLock()
	calls := mock.calls.Movements
	mock.lockMovements.RUnlock()
	return calls
}

func (mock *customerServiceMock) Push(ctx context.Context, input customer.PushInput) (*domain.Customer, error) {
	if mock.PushFunc == nil {
		panic("customerServiceMock.PushFunc: method is nil but customerService.Push was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input customer.PushInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockPush.Lock()
	mock.calls.Push = append(mock.calls.Push, callInfo)
	mock.lockPush.Unlock()
	return mock.PushFunc(ctx, input)
}

func (mock *customerServiceMock) PushCalls() []struct {
	Ctx   context.Context
	Input customer.PushInput
} {
	mock.lockPush.RLock()
	calls := mock.calls.Push
	mock.lockPush.RUnlock()
	return calls
}

func (mock *customerServiceMock) Search(ctx context.Context, input customer.SearchInput) ([]domain.Customer, error) {
	if mock.SearchFunc == nil {
		panic("customerServiceMock.SearchFunc: method is nil but customerService.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input customer.SearchInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, input)
}

func (mock *customerServiceMock) SearchCalls() []struct {
	Ctx   context.Context
	Input customer.SearchInput
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
