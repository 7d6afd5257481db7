package product

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

type productRepo interface {
	Get(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
}

type priceSource interface {
	Prices(ctx context.Context, stockCode string, listNo, limit int) ([]domain.PriceListEntry, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type approvalSubmitter interface {
	Submit(ctx context.Context, input approval.SubmitInput) (*domain.Approval, error)
}

// Service serves the product catalog. Stock is local; price list rows come
// from the ERP through the cache.
type Service struct {
	log       *slog.Logger
	products  productRepo
	prices    priceSource
	cache     cacheStore
	approvals approvalSubmitter
	priceList int
}

// NewService creates a new product service. priceList is the ERP sales
// price list number mirrored locally.
func NewService(
	log *slog.Logger,
	products productRepo,
	prices priceSource,
	cache cacheStore,
	approvals approvalSubmitter,
	priceList int,
) *Service {
	return &Service{
		log:       log.With("service", "product"),
		products:  products,
		prices:    prices,
		cache:     cache,
		approvals: approvals,
		priceList: priceList,
	}
}
