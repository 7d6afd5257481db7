package rest

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ reportService = &reportServiceMock{}

type reportServiceMock struct {
	DailyFunc      func(ctx context.Context, day time.Time) (domain.DailyReport, error)
	WriteDailyFunc func(ctx context.Context, w io.Writer, day time.Time) error

	calls struct {
		Daily []struct {
			Ctx context.Context
			Day time.Time
		}
		WriteDaily []struct {
			Ctx context.Context
			W   io.Writer
			Day time.Time
		}
	}
	lockDaily      sync.RWMutex
	lockWriteDaily sync.RWMutex
}

func (mock *reportServiceMock) Daily(ctx context.Context, day time.Time) (domain.DailyReport, error) {
	if mock.DailyFunc == nil {
		panic("reportServiceMock.DailyFunc: method is nil but reportService.Daily was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Day time.Time
	}{
		Ctx: ctx,
		Day: day,
	}
	mock.lockDaily.Lock()
	mock.calls.Daily = append(mock.calls.Daily, callInfo)
	mock.lockDaily.Unlock()
	return mock.DailyFunc(ctx, day)
}

func (mock *reportServiceMock) DailyCalls() []struct {
	Ctx context.Context
	Day time.Time
} {
	mock.lockDaily.RLock()
	calls := mock.calls.Daily
	mock.lockDaily.RUnlock()
	return calls
}

func (mock *reportServiceMock) WriteDaily(ctx context.Context, w io.Writer, day time.Time) error {
	if mock.WriteDailyFunc == nil {
		panic("reportServiceMock.WriteDailyFunc: method is nil but reportService.WriteDaily was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   io.Writer
		Day time.Time
	}{
		Ctx: ctx,
		W:   w,
		Day: day,
	}
	mock.lockWriteDaily.Lock()
	mock.calls.WriteDaily = append(mock.calls.WriteDaily, callInfo)
	mock.lockWriteDaily.Unlock()
	return mock.WriteDailyFunc(ctx, w, day)
}

func (mock *reportServiceMock) WriteDailyCalls() []struct {
	Ctx context.Context
	W   io.Writer
	Day time.Time
} {
	mock.lockWriteDaily.RLock()
	calls := mock.calls.WriteDaily
	mock.lockWriteDaily.RUnlock()
	return calls
}
