// Package main is the entry point for the editflow CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/cli"
	"github.com/runoshun/editflow/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is a function variable so tests can observe command execution.
var newRootCommand = cli.NewRootCommand

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	dataDir := domain.ResolveDataDir(cli.DataDirFromArgs(args), cwd)

	container, err := app.New(ctx, dataDir)
	if err != nil {
		// Help, version and the config template don't need a store.
		if canRunWithoutStore(args) {
			return execute(ctx, nil, args)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return execute(ctx, container, args)
}

func execute(ctx context.Context, c *app.Container, args []string) error {
	rootCmd := newRootCommand(c, version)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func canRunWithoutStore(args []string) bool {
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--version" || arg == "--help" || arg == "-h":
			return true
		case arg == "--"+cli.DataDirFlag:
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) == 0 {
		return false
	}
	switch positional[0] {
	case "help":
		return true
	case "config":
		return len(positional) > 1 && positional[1] == "template"
	}
	return false
}
