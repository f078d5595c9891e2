package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/hwlend/internal/lending/app"
	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"golang.org/x/term"
)

// readPassword is swapped out in tests.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func runAdmin(ctx context.Context, cfg app.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("expected create-user or create-hwset")
	}

	switch args[0] {
	case "create-user":
		return createUser(ctx, cfg, args[1:], out)
	case "create-hwset":
		return createHardwareSet(ctx, cfg, args[1:], out)
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func createUser(ctx context.Context, cfg app.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "account name")
	email := fs.String("email", "", "contact address")
	admin := fs.Bool("admin", true, "grant hardware:admin")
	generate := fs.Bool("generate-password", false, "generate a random password instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return errors.New("-username and -email are required")
	}

	var password string
	if *generate {
		p, err := cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		password = p
	} else {
		fmt.Fprint(out, "Enter password: ")
		p, err := readPassword()
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(p)
	}

	role := domain.RoleUser
	if *admin {
		role = domain.RoleAdmin
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.Accounts.CreateUser(ctx, *username, *email, password, role)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created %s (%s)\n", u.Username, u.Role)
	if *generate {
		fmt.Fprintf(out, "password: %s\n", password)
	}
	return nil
}

func createHardwareSet(ctx context.Context, cfg app.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-hwset", flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "", "hardware set name")
	capacity := fs.Int("capacity", 0, "number of units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	h, err := a.Hardware.CreateHardwareSet(ctx, *name, *capacity)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created %s with %d units\n", h.Name, h.Capacity)
	return nil
}
