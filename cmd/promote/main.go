// Command promote grants the admin role to a user by username. It is used to
// bootstrap the first administrator: when the user does not exist and
// --password is given, the account is created.
//
// Usage:
//
//	promote --username=ayse --name="Ayşe Yılmaz" --password=...
//
// Reads the same configuration as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/app"
	"github.com/heartmarshall/mikro-backoffice/internal/service/user"
)

func main() {
	username := flag.String("username", "", "username to promote to admin")
	name := flag.String("name", "", "display name when the user is created")
	password := flag.String("password", "", "password when the user is created")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --username=NAME [--name=DISPLAY] [--password=SECRET]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u, created, err := app.Promote(ctx, user.PromoteInput{
		Username: *username,
		Name:     *name,
		Password: *password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "promote: %v\n", err)
		os.Exit(1)
	}

	if created {
		fmt.Printf("Admin %q created.\n", u.Username)
		return
	}
	fmt.Printf("User %q promoted to admin.\n", u.Username)
}
