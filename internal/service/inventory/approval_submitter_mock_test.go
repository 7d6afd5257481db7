package inventory

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

var _ approvalSubmitter = &approvalSubmitterMock{}

type approvalSubmitterMock struct {
	SubmitFunc func(ctx context.Context, input approval.SubmitInput) (*domain.Approval, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Input approval.SubmitInput
		}
	}
	lockSubmit sync.RWMutex
}

func (mock *approvalSubmitterMock) Submit(ctx context.Context, input approval.SubmitInput) (*domain.Approval, error) {
	if mock.SubmitFunc == nil {
		panic("approvalSubmitterMock.SubmitFunc: method is nil but approvalSubmitter.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.SubmitInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *approvalSubmitterMock) SubmitCalls() []struct {
	Ctx   context.Context
	Input approval.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}
