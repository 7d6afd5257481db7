package sync

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ erpSource = &erpSourceMock{}

type erpSourceMock struct {
	AddressesAfterFunc func(ctx context.Context, after *time.Time) ([]domain.CustomerAddress, error)
	CustomersAfterFunc func(ctx context.Context, after *time.Time) ([]domain.Customer, error)
	MovementsAfterFunc func(ctx context.Context, after *time.Time) ([]domain.CustomerMovement, error)
	PricesAfterFunc    func(ctx context.Context, after *time.Time, listNo int) ([]domain.PriceListEntry, error)

	calls struct {
		AddressesAfter []struct {
			Ctx   context.Context
			After *time.Time
		}
		CustomersAfter []struct {
			Ctx   context.Context
			After *time.Time
		}
		MovementsAfter []struct {
			Ctx   context.Context
			After *time.Time
		}
		PricesAfter []struct {
			Ctx    context.Context
			After  *time.Time
			ListNo int
		}
	}
	lockAddressesAfter sync.RWMutex
	lockCustomersAfter sync.RWMutex
	lockMovementsAfter sync.RWMutex
	lockPricesAfter    sync.RWMutex
}

func (mock *erpSourceMock) AddressesAfter(ctx context.Context, after *time.Time) ([]domain.CustomerAddress, error) {
	if mock.AddressesAfterFunc == nil {
		panic("erpSourceMock.AddressesAfterFunc: method is nil but erpSource.AddressesAfter was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After *time.Time
	}{
		Ctx:   ctx,
		After: after,
	}
	mock.lockAddressesAfter.Lock()
	mock.calls.AddressesAfter = append(mock.calls.AddressesAfter, callInfo)
	mock.lockAddressesAfter.Unlock()
	return mock.AddressesAfterFunc(ctx, after)
}

func (mock *erpSourceMock) AddressesAfterCalls() []struct {
	Ctx   context.Context
	After *time.Time
} {
	mock.lockAddressesAfter.RLock()
	calls := mock.calls.AddressesAfter
	mock.lockAddressesAfter.RUnlock()
	return calls
}

func (mock *erpSourceMock) CustomersAfter(ctx context.Context, after *time.Time) ([]domain.Customer, error) {
	if mock.CustomersAfterFunc == nil {
		panic("erpSourceMock.CustomersAfterFunc: method is nil but erpSource.CustomersAfter was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After *time.Time
	}{
		Ctx:   ctx,
		After: after,
	}
	mock.lockCustomersAfter.Lock()
	mock.calls.CustomersAfter = append(mock.calls.CustomersAfter, callInfo)
	mock.lockCustomersAfter.Unlock()
	return mock.CustomersAfterFunc(ctx, after)
}

func (mock *erpSourceMock) CustomersAfterCalls() []struct {
	Ctx   context.Context
	After *time.Time
} {
	mock.lockCustomersAfter.RLock()
	calls := mock.calls.CustomersAfter
	mock.lockCustomersAfter.RUnlock()
	return calls
}

func (mock *erpSourceMock) MovementsAfter(ctx context.Context, after *time.Time) ([]domain.CustomerMovement, error) {
	if mock.MovementsAfterFunc == nil {
		panic("erpSourceMock.MovementsAfterFunc: method is nil but erpSource.MovementsAfter was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After *time.Time
	}{
		Ctx:   ctx,
		After: after,
	}
	mock.lockMovementsAfter.Lock()
	mock.calls.MovementsAfter = append(mock.calls.MovementsAfter, callInfo)
	mock.lockMovementsAfter.Unlock()
	return mock.MovementsAfterFunc(ctx, after)
}

func (mock *erpSourceMock) MovementsAfterCalls() []struct {
	Ctx   context.Context
	After *time.Time
} {
	mock.lockMovementsAfter.RLock()
	calls := mock.calls.MovementsAfter
	mock.lockMovementsAfter.RUnlock()
	return calls
}

func (mock *erpSourceMock) PricesAfter(ctx context.Context, after *time.Time, listNo int) ([]domain.PriceListEntry, error) {
	if mock.PricesAfterFunc == nil {
		panic("erpSourceMock.PricesAfterFunc: method is nil but erpSource.PricesAfter was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		After  *time.Time
		ListNo int
	}{
		Ctx:    ctx,
		After:  after,
		ListNo: listNo,
	}
	mock.lockPricesAfter.Lock()
	mock.calls.PricesAfter = append(mock.calls.PricesAfter, callInfo)
	mock.lockPricesAfter.Unlock()
	return mock.PricesAfterFunc(ctx, after, listNo)
}

func (mock *erpSourceMock) PricesAfterCalls() []struct {
	Ctx    context.Context
	After  *time.Time
	ListNo int
} {
	mock.lockPricesAfter.RLock()
	calls := mock.calls.PricesAfter
	mock.lockPricesAfter.RUnlock()
	return calls
}
