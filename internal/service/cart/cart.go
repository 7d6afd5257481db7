package cart

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
	"github.com/heartmarshall/mikro-backoffice/internal/service/workflow"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Get returns the caller's cart. A user without one gets an empty cart.
func (s *Service) Get(ctx context.Context) (*domain.Cart, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.carts.Get(ctx, userID)
}

// Update changes the selected customer, discount or order note.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Cart, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(c *domain.Cart) error {
		if input.CustomerCode != nil {
			c.CustomerCode = strings.TrimSpace(*input.CustomerCode)
		}
		if input.Discount != nil {
			c.Discount = *input.Discount
		}
		if input.OrderNote != nil {
			c.OrderNote = *input.OrderNote
		}
		return nil
	})
}

// SetItem adds a line or replaces the existing line of the same product.
func (s *Service) SetItem(ctx context.Context, input ItemInput) (*domain.Cart, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(input.ProductCode)

	p, err := s.products.Get(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("cart.SetItem: %w", err)
	}
	price := p.Price
	if input.Price != nil {
		price = *input.Price
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		c.SetItem(domain.LineItem{
			ProductCode: p.Code,
			ProductName: p.Name,
			Quantity:    input.Quantity,
			Price:       price,
			Note:        input.Note,
		})
		return nil
	})
}

// RemoveItem drops the line of productCode.
func (s *Service) RemoveItem(ctx context.Context, productCode string) (*domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) error {
		if !c.RemoveItem(productCode) {
			return fmt.Errorf("cart item %s: %w", productCode, domain.ErrNotFound)
		}
		return nil
	})
}

// Clear deletes the caller's cart.
func (s *Service) Clear(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := s.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("cart.Clear: %w", err)
	}
	return nil
}

// Checkout submits the cart as a sale and empties it. The customer stays
// selected for the next sale.
func (s *Service) Checkout(ctx context.Context) (*domain.Approval, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var a *domain.Approval
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The row lock makes a second checkout wait and then see the
		// emptied cart.
		c, err := s.carts.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		payload := domain.SalePayload{
			CustomerCode: c.CustomerCode,
			Items:        c.Items,
			Discount:     c.Discount,
			Note:         c.OrderNote,
			Series:       s.series(ctx),
		}
		if err := workflow.ValidateSale(payload); err != nil {
			return err
		}

		amount := payload.Total()
		code := c.CustomerCode
		a, err = s.approvals.Submit(ctx, approval.SubmitInput{
			Type:         domain.ApprovalTypeSale,
			Description:  fmt.Sprintf("Satış - %d kalem", len(c.Items)),
			Amount:       &amount,
			CustomerCode: &code,
			NewData:      payload,
		})
		if err != nil {
			return err
		}

		c.Clear()
		c.UpdatedAt = s.now()
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("cart.Checkout: %w", err)
	}

	s.log.InfoContext(ctx, "cart checked out",
		slog.String("user_id", userID.String()),
		slog.String("approval_id", a.ID.String()),
		slog.String("status", a.Status.String()))
	return a, nil
}

func (s *Service) mutate(ctx context.Context, fn func(c *domain.Cart) error) (*domain.Cart, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var c *domain.Cart
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if c.UserID == uuid.Nil {
			c.UserID = userID
		}
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = s.now()
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("cart: %w", err)
	}
	return c, nil
}

func (s *Service) series(ctx context.Context) string {
	if series := ctxutil.SeriesFromCtx(ctx); series != "" {
		return series
	}
	return s.defaultSeries
}
