package sync

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ productStore = &productStoreMock{}

type productStoreMock struct {
	UpsertFromERPFunc func(ctx context.Context, entries []domain.PriceListEntry, syncedAt time.Time) error

	calls struct {
		UpsertFromERP []struct {
			Ctx      context.Context
			Entries  []domain.PriceListEntry
			SyncedAt time.Time
		}
	}
	lockUpsertFromERP sync.RWMutex
}

func (mock *productStoreMock) UpsertFromERP(ctx context.Context, entries []domain.PriceListEntry, syncedAt time.Time) error {
	if mock.UpsertFromERPFunc == nil {
		panic("productStoreMock.UpsertFromERPFunc: method is nil but productStore.UpsertFromERP was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entries  []domain.PriceListEntry
		SyncedAt time.Time
	}{
		Ctx:      ctx,
		Entries:  entries,
		SyncedAt: syncedAt,
	}
	mock.lockUpsertFromERP.Lock()
	mock.calls.UpsertFromERP = append(mock.calls.UpsertFromERP, callInfo)
	mock.lockUpsertFromERP.Unlock()
	return mock.UpsertFromERPFunc(ctx, entries, syncedAt)
}

func (mock *productStoreMock) UpsertFromERPCalls() []struct {
	Ctx      context.Context
	Entries  []domain.PriceListEntry
	SyncedAt time.Time
} {
	mock.lockUpsertFromERP.RLock()
	calls := mock.calls.UpsertFromERP
	mock.lockUpsertFromERP.RUnlock()
	return calls
}
