package customer

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ erpSource = &erpSourceMock{}

type erpSourceMock struct {
	BalanceFunc     func(ctx context.Context, code string) (domain.ERPBalance, error)
	GetCustomerFunc func(ctx context.Context, code string) (*domain.Customer, error)
	MovementsFunc   func(ctx context.Context, f mikro.MovementFilter) ([]domain.CustomerMovement, error)

	calls struct {
		Balance []struct {
			Ctx  context.Context
			Code string
		}
		GetCustomer []struct {
			Ctx  context.Context
			Code string
		}
		Movements []struct {
			Ctx context.Context
			F   mikro.MovementFilter
		}
	}
	lockBalance     sync.RWMutex
	lockGetCustomer sync.RWMutex
	lockMovements   sync.RWMutex
}

func (mock *erpSourceMock) Balance(ctx context.Context, code string) (domain.ERPBalance, error) {
	if mock.BalanceFunc == nil {
		panic("erpSourceMock.BalanceFunc: method is nil but erpSource.Balance was just called")
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

func (mock *erpSourceMock) BalanceCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockBalance.RLock()
	calls := mock.calls.Balance
	mock.lockBalance.RUnlock()
	return calls
}

func (mock *erpSourceMock) GetCustomer(ctx context.Context, code string) (*domain.Customer, error) {
	if mock.GetCustomerFunc == nil {
		panic("erpSourceMock.GetCustomerFunc: method is nil but erpSource.GetCustomer was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGetCustomer.Lock()
	mock.calls.GetCustomer = append(mock.calls.GetCustomer, callInfo)
	mock.lockGetCustomer.Unlock()
	return mock.GetCustomerFunc(ctx, code)
}

func (mock *erpSourceMock) GetCustomerCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGetCustomer.RLock()
	calls := mock.calls.GetCustomer
	mock.lockGetCustomer.RUnlock()
	return calls
}

func (mock *erpSourceMock) Movements(ctx context.Context, f mikro.MovementFilter) ([]domain.CustomerMovement, error) {
	if mock.MovementsFunc == nil {
		panic("erpSourceMock.MovementsFunc: method is nil but erpSource.Movements was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   mikro.MovementFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockMovements.Lock()
	mock.calls.Movements = append(mock.calls.Movements, callInfo)
	mock.lockMovements.Unlock()
	return mock.MovementsFunc(ctx, f)
}

func (mock *erpSourceMock) MovementsCalls() []struct {
	Ctx context.Context
	F   mikro.MovementFilter
} {
	mock.lockMovements.RLock()
	calls := mock.calls.Movements
	mock.lockMovements.RUnlock()
	return calls
}
