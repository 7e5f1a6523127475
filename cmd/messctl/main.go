package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yigit/hostelmess/internal/cli"
	"github.com/yigit/hostelmess/internal/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(cli.Options{}).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "messctl: %v\n", err)
		os.Exit(1)
	}
}
