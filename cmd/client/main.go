package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"MoodKeeper/internal/cli/commands"
	"MoodKeeper/internal/config"

	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	// CLI пишет в stderr только предупреждения и ошибки
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := zcfg.Build()
	if err == nil {
		commands.SetLogger(logger.Sugar())
		defer func() { _ = logger.Sync() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("MoodKeeper CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
