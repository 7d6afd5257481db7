// Package mikro reads the Mikro ERP SQL Server database.
package mikro

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb" // registers the "sqlserver" driver

	"github.com/heartmarshall/mikro-backoffice/internal/config"
)

// Open creates a database/sql pool against the ERP and verifies
// connectivity. When the ping fails the pool is still returned together with
// the error: database/sql reconnects lazily, so callers may keep serving in a
// degraded mode.
func Open(ctx context.Context, cfg config.ERPConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("mikro: open: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return db, fmt.Errorf("mikro: ping %s:%d: %w", cfg.Server, cfg.Port, err)
	}

	return db, nil
}
