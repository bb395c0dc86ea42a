package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"GophAuth/internal/cli/commands"
	"GophAuth/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
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

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}
	sugar := logger.Sugar()
	commands.SetLogger(sugar)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	_ = logger.Sync()
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

// newLogger — консольный логгер в stderr, чтобы не смешивать логи с выводом команд.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func printVersion() {
	fmt.Printf("GophAuth CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
