package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/hwlend/internal/lending/app"
)

const usage = `usage: hwlend [command]

commands:
  serve                                   run the HTTP API (default)
  admin create-user -username U -email E  create an account (prompts for the password)
  admin create-hwset -name N -capacity C  register a hardware set
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"serve"}
	}

	cfg := app.LoadConfig()

	switch args[0] {
	case "serve":
		serve(cfg)
	case "admin":
		if err := runAdmin(context.Background(), cfg, args[1:], os.Stdout); err != nil {
			log.Fatalf("admin: %v", err)
		}
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve(cfg app.Config) {
	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
