package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/currency_convertor/internal/core/services"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/platform/config"
	"github.com/SscSPs/currency_convertor/internal/repositories"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// Logs go to stderr so they never interleave with the form.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	ctx := context.Background()
	repos, closeStore, err := repositories.NewRepositoryProvider(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open store:", err)
		os.Exit(1)
	}
	defer closeStore()

	container := services.NewServiceContainer(repos, logger,
		services.WithStorageKeys(cfg.StateKey, cfg.RatesKey),
		services.WithStoreTimeout(cfg.StoreTimeout),
	)
	if starter, ok := container.ConversionForm.(portssvc.Starter); ok {
		if err := starter.Start(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to start conversion form:", err)
			os.Exit(1)
		}
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Currency Convertor. Type help for commands.")
	}
	if err := newREPL(container.ConversionForm, os.Stdout).run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
		closeStore()
		os.Exit(1)
	}
}
