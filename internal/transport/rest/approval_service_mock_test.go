package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

var _ approvalService = &approvalServiceMock{}

type approvalServiceMock struct {
	CountPendingFunc func(ctx context.Context) (int, error)
	DecideFunc       func(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (*domain.Approval, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	ListFunc         func(ctx context.Context, input approval.ListInput) ([]domain.Approval, error)

	calls struct {
		CountPending []struct {
			Ctx context.Context
		}
		Decide []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Status domain.ApprovalStatus
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input approval.ListInput
		}
	}
	lockCountPending sync.RWMutex
	lockDecide       sync.RWMutex
	lockGet          sync.RWMutex
	lockList         sync.RWMutex
}

func (mock *approvalServiceMock) CountPending(ctx context.Context) (int, error) {
	if mock.CountPendingFunc == nil {
		panic("approvalServiceMock.CountPendingFunc: method is nil but approvalService.CountPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockCountPending.Lock()
	mock.calls.CountPending = append(mock.calls.CountPending, callInfo)
	mock.lockCountPending.Unlock()
	return mock.CountPendingFunc(ctx)
}

func (mock *approvalServiceMock) CountPendingCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountPending.RLock()
	calls := mock.calls.CountPending
	mock.lockCountPending.RUnlock()
	return calls
}

func (mock *approvalServiceMock) Decide(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (*domain.Approval, error) {
	if mock.DecideFunc == nil {
		panic("approvalServiceMock.DecideFunc: method is nil but approvalService.Decide was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Status domain.ApprovalStatus
	}{
		Ctx:    ctx,
		ID:     id,
		Status: status,
	}
	mock.lockDecide.Lock()
	mock.calls.Decide = append(mock.calls.Decide, callInfo)
	mock.lockDecide.Unlock()
	return mock.DecideFunc(ctx, id, status)
}

func (mock *approvalServiceMock) DecideCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Status domain.ApprovalStatus
} {
	mock.lockDecide.RLock()
	calls := mock.calls.Decide
	mock.lockDecide.RUnlock()
	return calls
}

func (mock *approvalServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	if mock.GetFunc == nil {
		panic("approvalServiceMock.GetFunc: method is nil but approvalService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *approvalServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *approvalServiceMock) List(ctx context.Context, input approval.ListInput) ([]domain.Approval, error) {
	if mock.ListFunc == nil {
		panic("approvalServiceMock.ListFunc: method is nil but approvalService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *approvalServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input approval.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
