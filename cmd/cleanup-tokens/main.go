// Command cleanup-tokens purges expired refresh tokens. Revoked tokens are
// kept until they expire so replays stay detectable. Run it from cron; it
// reads the same environment as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/app"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "abort the purge after this long")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	n, err := app.CleanupTokens(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cleanup-tokens:", err)
		os.Exit(1)
	}
	fmt.Printf("purged %d expired refresh tokens\n", n)
}
