package setting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	approvalKeyPrefix = "approval."
	inventoryKey      = "inventory.requireApproval"
)

type settingRepo interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reads and writes the workflow switches. Missing rows fall back to
// the configured defaults.
type Service struct {
	log      *slog.Logger
	repo     settingRepo
	tx       txManager
	defaults config.WorkflowConfig
}

// NewService creates a new settings service.
func NewService(log *slog.Logger, repo settingRepo, tx txManager, defaults config.WorkflowConfig) *Service {
	return &Service{
		log:      log.With("service", "setting"),
		repo:     repo,
		tx:       tx,
		defaults: defaults,
	}
}

// UpdateInput flips individual switches. Types missing from Gating keep
// their current value.
type UpdateInput struct {
	Gating                   map[domain.ApprovalType]bool
	InventoryRequireApproval *bool
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	for t := range i.Gating {
		if !t.IsValid() {
			errs = append(errs, domain.FieldError{Field: "gating." + string(t), Message: "unknown approval type"})
		}
	}
	if len(i.Gating) == 0 && i.InventoryRequireApproval == nil {
		errs = append(errs, domain.FieldError{Field: "settings", Message: "nothing to update"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Current returns the effective settings.
func (s *Service) Current(ctx context.Context) (domain.Settings, error) {
	out := domain.DefaultSettings(s.defaults.DefaultGating, s.defaults.InventoryRequireApprove)

	for _, t := range domain.AllApprovalTypes {
		if t == domain.ApprovalTypeInventory {
			continue
		}
		v, ok, err := s.readBool(ctx, approvalKeyPrefix+string(t))
		if err != nil {
			return domain.Settings{}, err
		}
		if ok {
			out.Gating[t] = v
		}
	}

	v, ok, err := s.readBool(ctx, inventoryKey)
	if err != nil {
		return domain.Settings{}, err
	}
	if ok {
		out.InventoryRequireApproval = v
		out.Gating[domain.ApprovalTypeInventory] = v
	}
	return out, nil
}

// Update writes the given switches and returns the resulting settings.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Settings, error) {
	if err := input.Validate(); err != nil {
		return domain.Settings{}, err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for t, v := range input.Gating {
			key := approvalKeyPrefix + string(t)
			if t == domain.ApprovalTypeInventory {
				key = inventoryKey
			}
			if err := s.writeBool(ctx, key, v); err != nil {
				return err
			}
		}
		if input.InventoryRequireApproval != nil {
			return s.writeBool(ctx, inventoryKey, *input.InventoryRequireApproval)
		}
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("setting.Update: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated", slog.Int("gating_changes", len(input.Gating)))
	return s.Current(ctx)
}

func (s *Service) readBool(ctx context.Context, key string) (bool, bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read setting %s: %w", key, err)
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.WarnContext(ctx, "ignoring malformed setting", slog.String("key", key))
		return false, false, nil
	}
	return v, true, nil
}

func (s *Service) writeBool(ctx context.Context, key string, v bool) error {
	raw, _ := json.Marshal(v)
	if err := s.repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}
