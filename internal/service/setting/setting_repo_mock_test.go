package setting

import (
	"context"
	"encoding/json"
	"sync"
)

var _ settingRepo = &settingRepoMock{}

type settingRepoMock struct {
	GetFunc func(ctx context.Context, key string) (json.RawMessage, error)
	SetFunc func(ctx context.Context, key string, value json.RawMessage) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value json.RawMessage
		}
	}
	lockGet sync.RWMutex
	lockSet sync.RWMutex
}

func (mock *settingRepoMock) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if mock.GetFunc == nil {
		panic("settingRepoMock.GetFunc: method is nil but settingRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *settingRepoMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *settingRepoMock) Set(ctx context.Context, key string, value json.RawMessage) error {
	if mock.SetFunc == nil {
		panic("settingRepoMock.SetFunc: method is nil but settingRepo.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value json.RawMessage
	}{
		Ctx:   ctx,
		Key:   key,
		Value: value,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *settingRepoMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value json.RawMessage
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
