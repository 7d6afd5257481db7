package cart

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ productReader = &productReaderMock{}

type productReaderMock struct {
	GetFunc func(ctx context.Context, code string) (*domain.Product, error)

	calls struct {
		Get []struct {
			Ctx  context.Context
			Code string
		}
	}
	lockGet sync.RWMutex
}

func (mock *productReaderMock) Get(ctx context.Context, code string) (*domain.Product, error) {
	if mock.GetFunc == nil {
		panic("productReaderMock.GetFunc: method is nil but productReader.Get was just called")
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

func (mock *productReaderMock) GetCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
