// Package report builds end-of-day summaries of the local ledger.
package report

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type transactionLister interface {
	List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
}

// Renderer writes a report in a binary format such as xlsx.
type Renderer func(w io.Writer, r domain.DailyReport) error

// Service implements report operations.
type Service struct {
	log    *slog.Logger
	txs    transactionLister
	loc    *time.Location
	render Renderer
}

// NewService creates a report service. Days are cut in loc.
func NewService(logger *slog.Logger, txs transactionLister, loc *time.Location, render Renderer) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:    logger.With("service", "report"),
		txs:    txs,
		loc:    loc,
		render: render,
	}
}
