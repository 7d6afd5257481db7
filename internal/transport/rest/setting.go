package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/setting"
)

type settingService interface {
	Current(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, input setting.UpdateInput) (domain.Settings, error)
}

// SettingHandler serves the workflow switches.
type SettingHandler struct {
	svc settingService
	log *slog.Logger
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(svc settingService, logger *slog.Logger) *SettingHandler {
	return &SettingHandler{svc: svc, log: logger.With("handler", "setting")}
}

type settingsRequest struct {
	Gating                   map[string]bool `json:"gating"`
	InventoryRequireApproval *bool           `json:"inventoryRequireApproval"`
}

// Get handles GET /api/v1/settings.
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Current(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(s))
}

// Update handles PUT /api/v1/settings. Approval types are validated by the
// service.
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	gating := make(map[domain.ApprovalType]bool, len(req.Gating))
	for t, on := range req.Gating {
		gating[domain.ApprovalType(t)] = on
	}
	s, err := h.svc.Update(r.Context(), setting.UpdateInput{
		Gating:                   gating,
		InventoryRequireApproval: req.InventoryRequireApproval,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(s))
}
