package product

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ priceSource = &priceSourceMock{}

type priceSourceMock struct {
	PricesFunc func(ctx context.Context, stockCode string, listNo int, limit int) ([]domain.PriceListEntry, error)

	calls struct {
		Prices []struct {
			Ctx       context.Context
			StockCode string
			ListNo    int
			Limit     int
		}
	}
	lockPrices sync.RWMutex
}

func (mock *priceSourceMock) Prices(ctx context.Context, stockCode string, listNo int, limit int) ([]domain.PriceListEntry, error) {
	if mock.PricesFunc == nil {
		panic("priceSourceMock.PricesFunc: method is nil but priceSource.Prices was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		StockCode string
		ListNo    int
		Limit     int
	}{
		Ctx:       ctx,
		StockCode: stockCode,
		ListNo:    listNo,
		Limit:     limit,
	}
	mock.lockPrices.Lock()
	mock.calls.Prices = append(mock.calls.Prices, callInfo)
	mock.lockPrices.Unlock()
	return mock.PricesFunc(ctx, stockCode, listNo, limit)
}

func (mock *priceSourceMock) PricesCalls() []struct {
	Ctx       context.Context
	StockCode string
	ListNo    int
	Limit     int
} {
	mock.lockPrices.RLock()
	calls := mock.calls.Prices
	mock.lockPrices.RUnlock()
	return calls
}
