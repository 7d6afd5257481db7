package product

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
	"github.com/heartmarshall/mikro-backoffice/internal/service/workflow"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// ListInput pages through the catalog.
type ListInput struct {
	Search string
	Limit  int
	Cursor string
}

// Page is one page of products. NextCursor is empty on the last page.
type Page struct {
	Products   []domain.Product
	NextCursor string
}

// ChangeInput requests a price, stock or name change. Nil fields are kept.
type ChangeInput struct {
	Name  *string
	Price *decimal.Decimal
	Stock *decimal.Decimal
}

// List returns a page of products ordered by code.
func (s *Service) List(ctx context.Context, input ListInput) (Page, error) {
	if input.Limit < 0 || input.Limit > maxLimit {
		return Page{}, domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", maxLimit))
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	f := domain.ProductFilter{Limit: limit + 1, Cursor: input.Cursor}
	if search := strings.TrimSpace(input.Search); search != "" {
		f.Search = &search
	}
	products, err := s.products.List(ctx, f)
	if err != nil {
		return Page{}, fmt.Errorf("product.List: %w", err)
	}

	page := Page{Products: products}
	if len(products) > limit {
		page.Products = products[:limit]
		page.NextCursor = page.Products[limit-1].Code
	}
	return page, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, code string) (*domain.Product, error) {
	return s.products.Get(ctx, code)
}

// Prices returns the ERP price list rows of a product. listNo 0 means the
// configured list.
func (s *Service) Prices(ctx context.Context, code string, listNo int) ([]domain.PriceListEntry, error) {
	if listNo == 0 {
		listNo = s.priceList
	}
	key := pricesKey(code, listNo)

	var cached []domain.PriceListEntry
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.WarnContext(ctx, "price cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if ok {
		return cached, nil
	}

	entries, err := s.prices.Prices(ctx, code, listNo, 0)
	if err != nil {
		return nil, fmt.Errorf("product.Prices: %w", err)
	}
	if err := s.cache.Set(ctx, key, entries); err != nil {
		s.log.WarnContext(ctx, "price cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return entries, nil
}

// Invalidate drops cached price rows of the given products for the
// configured list.
func (s *Service) Invalidate(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, len(codes))
	for i, c := range codes {
		keys[i] = pricesKey(c, s.priceList)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "price cache invalidation failed", slog.Int("keys", len(keys)), slog.String("error", err.Error()))
	}
}

// RequestChange submits a product approval. The current values travel as
// OldData so the reviewer sees both sides.
func (s *Service) RequestChange(ctx context.Context, code string, input ChangeInput) (*domain.Approval, error) {
	change := domain.ProductChangePayload{
		ProductCode: code,
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := workflow.ValidateProductChange(change); err != nil {
		return nil, err
	}

	current, err := s.products.Get(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("product.RequestChange: %w", err)
	}
	old := domain.ProductChangePayload{
		ProductCode: current.Code,
		Name:        &current.Name,
		Price:       &current.Price,
		Stock:       &current.Stock,
	}

	a, err := s.approvals.Submit(ctx, approval.SubmitInput{
		Type:        domain.ApprovalTypeProduct,
		Description: fmt.Sprintf("Ürün değişikliği: %s %s", current.Code, current.Name),
		OldData:     old,
		NewData:     change,
	})
	if err != nil {
		return nil, fmt.Errorf("product.RequestChange: %w", err)
	}
	return a, nil
}

func pricesKey(code string, listNo int) string {
	return "prices:" + strconv.Itoa(listNo) + ":" + code
}
