package ledger

import (
	"context"
	"fmt"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
	"github.com/heartmarshall/mikro-backoffice/internal/service/workflow"
)

// SubmitPayment requests a payment or expense entry. The entry is written
// by the approval fan-out, immediately when the type is not gated.
func (s *Service) SubmitPayment(ctx context.Context, input PaymentInput) (*domain.Approval, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.PaymentPayload{
		CustomerCode: input.CustomerCode,
		Amount:       input.Amount,
		Method:       input.Method,
		Description:  input.Description,
		Series:       s.series(ctx),
	}
	kind := domain.ApprovalTypePayment
	if input.Kind == domain.TransactionTypeExpense {
		kind = domain.ApprovalTypeExpense
	}

	amount := input.Amount
	code := input.CustomerCode
	a, err := s.approvals.Submit(ctx, approval.SubmitInput{
		Type:         kind,
		Description:  payload.RenderDescription(input.Kind),
		Amount:       &amount,
		CustomerCode: &code,
		NewData:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.SubmitPayment: %w", err)
	}
	return a, nil
}

// SubmitReturn requests a return entry; stock is restored by the fan-out.
func (s *Service) SubmitReturn(ctx context.Context, input ReturnInput) (*domain.Approval, error) {
	payload := domain.SalePayload{
		CustomerCode: input.CustomerCode,
		Items:        input.Items,
		Discount:     input.Discount,
		Note:         input.Note,
		Series:       s.series(ctx),
	}
	if err := workflow.ValidateSale(payload); err != nil {
		return nil, err
	}

	amount := payload.Total()
	code := input.CustomerCode
	a, err := s.approvals.Submit(ctx, approval.SubmitInput{
		Type:         domain.ApprovalTypeReturn,
		Description:  fmt.Sprintf("İade - %d kalem", len(input.Items)),
		Amount:       &amount,
		CustomerCode: &code,
		NewData:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.SubmitReturn: %w", err)
	}
	return a, nil
}
