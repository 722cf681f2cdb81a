// Package cmd drives the process lifecycle: config load, bootstrap,
// signal handling, transport run.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/Niksavenkov/shopbot/core/bootstrap"
	coreconfig "github.com/Niksavenkov/shopbot/core/config"
	"github.com/Niksavenkov/shopbot/core/logger"
	coretelegram "github.com/Niksavenkov/shopbot/core/telegram"
)

// Options describe how to locate configuration and run the bot.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig     func(path string) (*coreconfig.Config, error)
	Bootstrap      func(bootstrap.Options) (*bootstrap.App, error)
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error
	ShutdownLogger func() error
}

// Run loads configuration, bootstraps the app and serves Telegram updates
// until SIGINT or SIGTERM.
func Run(opts Options) error {
	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		return fmt.Errorf("cmd: config path not provided via %s or DefaultConfigPath", env)
	}

	loadConfig := opts.LoadConfig
	if loadConfig == nil {
		loadConfig = coreconfig.Load
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	boot := opts.Bootstrap
	if boot == nil {
		boot = bootstrap.Run
	}

	startedAt := time.Now()
	app, err := boot(bootstrap.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn(logger.Background(), "app", "close.fail",
				slog.String("err", err.Error()),
			)
		}
	}()

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	logger.Info(logger.Background(), "app", "ready",
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	run := opts.RunTelegram
	if run == nil {
		run = coretelegram.RunTelegram
	}

	err = run(ctx, coretelegram.RunOptions{
		Config:  cfg,
		Handler: app.Handler,
	})

	logger.Info(logger.Background(), "app", "shutdown")

	return err
}
