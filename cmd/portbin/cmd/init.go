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

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with a generated API key",
	Long: `Write a portbin config file with default settings and a freshly generated
API key for the REST server.

Examples:
  portbin init
  portbin init --config ./portbin.yaml --data-dir ./data --force`,
	Args: cobra.NoArgs,
	// The config file may not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		return runInit(cmd.OutOrStdout(), configPath, dataDir, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInit(out io.Writer, configPath, dataDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
	}

	c, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote config to %s\n", configPath)
	fmt.Fprintf(out, "Data directory: %s\n", c.DataDir)
	fmt.Fprintf(out, "API key: %s\n", c.Security.APIKey)
	fmt.Fprintf(out, "\nStart the server with:\n  portbin serve --config %s\n", configPath)
	return nil
}
