package sync

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ stateRepo = &stateRepoMock{}

type stateRepoMock struct {
	GetFunc  func(ctx context.Context, table domain.SyncTable) (domain.SyncState, error)
	ListFunc func(ctx context.Context) ([]domain.SyncState, error)
	SaveFunc func(ctx context.Context, s domain.SyncState) error

	calls struct {
		Get []struct {
			Ctx   context.Context
			Table domain.SyncTable
		}
		List []struct {
			Ctx context.Context
		}
		Save []struct {
			Ctx context.Context
			S   domain.SyncState
		}
	}
	lockGet  sync.RWMutex
	lockList sync.RWMutex
	lockSave sync.RWMutex
}

func (mock *stateRepoMock) Get(ctx context.Context, table domain.SyncTable) (domain.SyncState, error) {
	if mock.GetFunc == nil {
		panic("stateRepoMock.GetFunc: method is nil but stateRepo.Get was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Table domain.SyncTable
	}{
		Ctx:   ctx,
		Table: table,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, table)
}

func (mock *stateRepoMock) GetCalls() []struct {
	Ctx   context.Context
	Table domain.SyncTable
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *stateRepoMock) List(ctx context.Context) ([]domain.SyncState, error) {
	if mock.ListFunc == nil {
		panic("stateRepoMock.ListFunc: method is nil but stateRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *stateRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *stateRepoMock) Save(ctx context.Context, s domain.SyncState) error {
	if mock.SaveFunc == nil {
		panic("stateRepoMock.SaveFunc: method is nil but stateRepo.Save was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.SyncState
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, s)
}

func (mock *stateRepoMock) SaveCalls() []struct {
	Ctx context.Context
	S   domain.SyncState
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
