package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ settingsProvider = &settingsProviderMock{}

type settingsProviderMock struct {
	CurrentFunc func(ctx context.Context) (domain.Settings, error)

	calls struct {
		Current []struct {
			Ctx context.Context
		}
	}
	lockCurrent sync.RWMutex
}

func (mock *settingsProviderMock) Current(ctx context.Context) (domain.Settings, error) {
	if mock.CurrentFunc == nil {
		panic("settingsProviderMock.CurrentFunc: method is nil but settingsProvider.Current was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockCurrent.Lock()
	mock.calls.Current = append(mock.calls.Current, callInfo)
	mock.lockCurrent.Unlock()
	return mock.CurrentFunc(ctx)
}

func (mock *settingsProviderMock) CurrentCalls() []struct {
	Ctx context.Context
} {
	mock.lockCurrent.RLock()
	calls := mock.calls.Current
	mock.lockCurrent.RUnlock()
	return calls
}
