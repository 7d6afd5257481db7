package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ transactionLister = &transactionListerMock{}

type transactionListerMock struct {
	ListFunc func(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)

	calls struct {
		List []struct {
			Ctx context.Context
			F   domain.TransactionFilter
		}
	}
	lockList sync.RWMutex
}

func (mock *transactionListerMock) List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	if mock.ListFunc == nil {
		panic("transactionListerMock.ListFunc: method is nil but transactionLister.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.TransactionFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *transactionListerMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.TransactionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
