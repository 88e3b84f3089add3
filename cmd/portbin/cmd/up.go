/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/config"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap configuration if needed and start the server",
	Long: `Create a config file with a generated API key if none exists, then start
the REST API server. This is the quickest way to get portbin serving.

Examples:
  portbin up
  portbin up --config ./portbin.yaml --data-dir ./mydata --port 9000`,
	Args: cobra.NoArgs,
	// The config file is created here when missing
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if err := ensureConfig(cmd.OutOrStdout(), configPath, dataDir); err != nil {
			return err
		}
		return rootCmd.PersistentPreRunE(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	upCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides config)")
	upCmd.Flags().String("bind", "127.0.0.1", "Address to bind to (overrides config)")
	upCmd.Flags().String("api-key", "", "API key for client authentication (overrides config)")
}

// ensureConfig bootstraps a config at configPath unless one already exists
func ensureConfig(out io.Writer, configPath, dataDir string) error {
	if config.ConfigExists(configPath) {
		return nil
	}

	c, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return fmt.Errorf("failed to bootstrap config: %w", err)
	}

	fmt.Fprintf(out, "Created config at %s\n", configPath)
	fmt.Fprintf(out, "API key: %s\n", c.Security.APIKey)
	return nil
}
