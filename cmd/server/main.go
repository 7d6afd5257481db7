// Command server runs the back-office HTTP API and the ERP sync scheduler.
//
// Configuration is read from environment variables and an optional .env
// file; see internal/config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // business timezone must resolve in minimal images

	"github.com/heartmarshall/mikro-backoffice/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
