package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stashbox-hq/stashbox-transfer/internal/app"
	"github.com/stashbox-hq/stashbox-transfer/internal/config"
	"github.com/stashbox-hq/stashbox-transfer/internal/logger"
)

const (
	FlagProfile      = "profile"
	FlagProfilesFile = "profiles-file"
	FlagLogLevel     = "log-level"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// RootCmd creates the root command for the stashctl CLI, configuring global
// flags and adding all subcommands.
func RootCmd() *cobra.Command {
	r := &cobra.Command{
		Use:   "stashctl",
		Short: "stashctl moves files in and out of stashbox storage.",
	}

	r.PersistentFlags().String(FlagProfile, "", "storage profile id (default: the registry default)")
	r.PersistentFlags().String(FlagProfilesFile, "", "path to the profiles file (overrides config)")
	r.PersistentFlags().String(FlagLogLevel, "", "log level. debug|info|warn|error")

	if err := viper.BindPFlags(r.PersistentFlags()); err != nil {
		panic(err)
	}

	r.AddCommand(GetCmd(), PutCmd(), DelCmd(), ProfilesCmd(), VersionCmd())

	return r
}

// Execute runs the root command under a signal-aware context.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stashctl version",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("Version: %s\n", version)
			return nil
		},
	}
}

// loadConfig reads the app config and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(viper.GetString(FlagProfilesFile)); v != "" {
		cfg.ProfilesFile = v
	}
	if v := strings.TrimSpace(viper.GetString(FlagLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// newRuntime builds the transfer runtime shared by the file subcommands.
// Callers own closing the returned logger.
func newRuntime(cmd *cobra.Command) (*app.Transfer, *logger.ZapLogger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	runtime, err := app.NewTransfer(cmd.Context(), cfg, viper.GetString(FlagProfile), log)
	if err != nil {
		log.ErrorObj("failed to initialize transfer runtime", "error", err)
		_ = log.Close()
		return nil, nil, err
	}

	return runtime, log, nil
}
