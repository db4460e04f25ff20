package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/futbol/internal/client/api"
	"github.com/iudanet/futbol/internal/client/cli"
	"github.com/iudanet/futbol/internal/client/iocli"
	"github.com/iudanet/futbol/internal/client/session"
	"github.com/iudanet/futbol/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "futbol-client.db", "Path to local database")
	cookiesReliable := flag.Bool("cookies-reliable", false, "Trust the cookie channel for session confirmation")
	passwordFile := flag.String("password-file", "", "Path to file containing the password")
	verbose := flag.Bool("verbose", false, "Log session protocol details to stderr")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL, api.WithTokenSource(boltStorage))
	manager := session.NewManager(logger, apiClient, boltStorage, *cookiesReliable)

	c := cli.New(stdio, manager, apiClient, boltStorage, cli.Passwords{FromFile: *passwordFile})

	runErr := c.Run(ctx, args[0], args[1:])

	if err := boltStorage.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Futbol Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
