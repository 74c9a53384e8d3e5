package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"cafe-cli/cli"
	"cafe-cli/config"
	"cafe-cli/db"
	"cafe-cli/logging"
	"cafe-cli/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "migrate":
			runMigrate(ctx, cfg)
			return
		case "import":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "usage: cafe-cli import <menu-file>")
				os.Exit(2)
			}
			runImport(ctx, cfg, args[1])
			return
		default:
			cfg.Menu.File = args[0]
		}
	}

	cafe, err := services.Open(ctx, cfg, services.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load menu:", err)
		os.Exit(1)
	}

	session := cli.New(cafe, os.Stdin, os.Stdout,
		cli.RecordOnConfirm(cfg.Orders.RecordOnConfirm),
		cli.WithLogger(logger),
	)
	if err := session.Run(ctx); err != nil {
		logger.Warn("session ended", "error", err)
		if errors.Is(err, context.Canceled) {
			stop()
			os.Exit(130)
		}
	}
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, pool, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// runImport copies a menu file into the menu_items table used by MENU_SOURCE=db.
func runImport(ctx context.Context, cfg *config.Config, path string) {
	loadOpts := []services.LoadOption{}
	if cfg.Menu.Lenient {
		loadOpts = append(loadOpts, services.Lenient())
	}
	menu, err := services.LoadMenuFile(path, loadOpts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "menu:", err)
		os.Exit(1)
	}

	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := services.ImportMenu(ctx, pool, menu); err != nil {
		fmt.Fprintln(os.Stderr, "import:", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d menu items.\n", menu.Len())
}
