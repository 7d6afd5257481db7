package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/shopspring/decimal"
)

var _ productRepo = &productRepoMock{}

type productRepoMock struct {
	AdjustStockFunc   func(ctx context.Context, code string, delta decimal.Decimal) (*domain.Product, error)
	ApplyChangeFunc   func(ctx context.Context, change domain.ProductChangePayload) (*domain.Product, error)
	LockForUpdateFunc func(ctx context.Context, codes []string) (map[string]domain.Product, error)

	calls struct {
		AdjustStock []struct {
			Ctx   context.Context
			Code  string
			Delta decimal.Decimal
		}
		ApplyChange []struct {
			Ctx    context.Context
			Change domain.ProductChangePayload
		}
		LockForUpdate []struct {
			Ctx   context.Context
			Codes []string
		}
	}
	lockAdjustStock   sync.RWMutex
	lockApplyChange   sync.RWMutex
	lockLockForUpdate sync.RWMutex
}

func (mock *productRepoMock) AdjustStock(ctx context.Context, code string, delta decimal.Decimal) (*domain.Product, error) {
	if mock.AdjustStockFunc == nil {
		panic("productRepoMock.AdjustStockFunc: method is nil but productRepo.AdjustStock was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Code  string
		Delta decimal.Decimal
	}{
		Ctx:   ctx,
		Code:  code,
		Delta: delta,
	}
	mock.lockAdjustStock.Lock()
	mock.calls.AdjustStock = append(mock.calls.AdjustStock, callInfo)
	mock.lockAdjustStock.Unlock()
	return mock.AdjustStockFunc(ctx, code, delta)
}

func (mock *productRepoMock) AdjustStockCalls() []struct {
	Ctx   context.Context
	Code  string
	Delta decimal.Decimal
} {
	mock.lockAdjustStock.RLock()
	calls := mock.calls.AdjustStock
	mock.lockAdjustStock.RUnlock()
	return calls
}

func (mock *productRepoMock) ApplyChange(ctx context.Context, change domain.ProductChangePayload) (*domain.Product, error) {
	if mock.ApplyChangeFunc == nil {
		panic("productRepoMock.ApplyChangeFunc: method is nil but productRepo.ApplyChange was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Change domain.ProductChangePayload
	}{
		Ctx:    ctx,
		Change: change,
	}
	mock.lockApplyChange.Lock()
	mock.calls.ApplyChange = append(mock.calls.ApplyChange, callInfo)
	mock.lockApplyChange.Unlock()
	return mock.ApplyChangeFunc(ctx, change)
}

func (mock *productRepoMock) ApplyChangeCalls() []struct {
	Ctx    context.Context
	Change domain.ProductChangePayload
} {
	mock.lockApplyChange.RLock()
	calls := mock.calls.ApplyChange
	mock.lockApplyChange.RUnlock()
	return calls
}

func (mock *productRepoMock) LockForUpdate(ctx context.Context, codes []string) (map[string]domain.Product, error) {
	if mock.LockForUpdateFunc == nil {
		panic("productRepoMock.LockForUpdateFunc: method is nil but productRepo.LockForUpdate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Codes []string
	}{
		Ctx:   ctx,
		Codes: codes,
	}
	mock.lockLockForUpdate.Lock()
	mock.calls.LockForUpdate = append(mock.calls.LockForUpdate, callInfo)
	mock.lockLockForUpdate.Unlock()
	return mock.LockForUpdateFunc(ctx, codes)
}

func (mock *productRepoMock) LockForUpdateCalls() []struct {
	Ctx   context.Context
	Codes []string
} {
	mock.lockLockForUpdate.RLock()
	calls := mock.calls.LockForUpdate
	mock.lockLockForUpdate.RUnlock()
	return calls
}
