/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/api"
	"github.com/ssargent/portbin/pkg/config"
	"github.com/ssargent/portbin/pkg/storage"
	"github.com/ssargent/portbin/pkg/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portbin",
	Short: "portbin - portable binary records",
	Long: `portbin writes and reads fixed-layout records in a portable binary
format: big-endian 32-bit integers and raw IEEE-754 32-bit floats, laid out
identically on every host.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		setLogger(l)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is $HOME/.config/portbin/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().String("data-file", "", "Record file name or absolute path (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadConfig reads the config file when one exists and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	c := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		c.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("data-file"); v != "" {
		c.DataFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		c.Logging.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newLogger builds a zap logger writing to stderr at the configured level
func newLogger(l config.Logging) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func setLogger(l *zap.Logger) {
	logger = l
	store.SetLogger(l)
	storage.SetLogger(l)
	api.SetLogger(l)
}
