package sync

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ customerStore = &customerStoreMock{}

type customerStoreMock struct {
	UpsertAddressesFunc func(ctx context.Context, addrs []domain.CustomerAddress) error
	UpsertFromERPFunc   func(ctx context.Context, customers []domain.Customer, syncedAt time.Time) error

	calls struct {
		UpsertAddresses []struct {
			Ctx   context.Context
			Addrs []domain.CustomerAddress
		}
		UpsertFromERP []struct {
			Ctx       context.Context
			Customers []domain.Customer
			SyncedAt  time.Time
		}
	}
	lockUpsertAddresses sync.RWMutex
	lockUpsertFromERP   sync.RWMutex
}

func (mock *customerStoreMock) UpsertAddresses(ctx context.Context, addrs []domain.CustomerAddress) error {
	if mock.UpsertAddressesFunc == nil {
		panic("customerStoreMock.UpsertAddressesFunc: method is nil but customerStore.UpsertAddresses was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Addrs []domain.CustomerAddress
	}{
		Ctx:   ctx,
		Addrs: addrs,
	}
	mock.lockUpsertAddresses.Lock()
	mock.calls.UpsertAddresses = append(mock.calls.UpsertAddresses, callInfo)
	mock.lockUpsertAddresses.Unlock()
	return mock.UpsertAddressesFunc(ctx, addrs)
}

func (mock *customerStoreMock) UpsertAddressesCalls() []struct {
	Ctx   context.Context
	Addrs []domain.CustomerAddress
} {
	mock.lockUpsertAddresses.RLock()
	calls := mock.calls.UpsertAddresses
	mock.lockUpsertAddresses.RUnlock()
	return calls
}

func (mock *customerStoreMock) UpsertFromERP(ctx context.Context, customers []domain.Customer, syncedAt time.Time) error {
	if mock.UpsertFromERPFunc == nil {
		panic("customerStoreMock.UpsertFromERPFunc: method is nil but customerStore.UpsertFromERP was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Customers []domain.Customer
		SyncedAt  time.Time
	}{
		Ctx:       ctx,
		Customers: customers,
		SyncedAt:  syncedAt,
	}
	mock.lockUpsertFromERP.Lock()
	mock.calls.UpsertFromERP = append(mock.calls.UpsertFromERP, callInfo)
	mock.lockUpsertFromERP.Unlock()
	return mock.UpsertFromERPFunc(ctx, customers, syncedAt)
}

func (mock *customerStoreMock) UpsertFromERPCalls() []struct {
	Ctx       context.Context
	Customers []domain.Customer
	SyncedAt  time.Time
} {
	mock.lockUpsertFromERP.RLock()
	calls := mock.calls.UpsertFromERP
	mock.lockUpsertFromERP.RUnlock()
	return calls
}
