/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/store"
	"go.uber.org/zap"
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Append a record to the data file",
	Long: `Append a single record to the end of the data file and print its index.

Example:
  portbin write --id 123 --value 456.789
  portbin write --id 7 --value-bits 7fc00000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		path := cfg.DataFilePath()
		writer, err := store.NewLogWriter(store.LogWriterConfig{
			FilePath:      path,
			FsyncInterval: cfg.FsyncInterval,
			BufferSize:    cfg.BufferSize,
		})
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		offset, err := writer.Append(rec)
		if err != nil {
			writer.Close()
			return fmt.Errorf("failed to append record: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}

		logger.Debug("appended record", zap.String("path", path), zap.Int64("offset", offset))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote record %d (%s) to %s\n", offset/codec.RecordSize, rec, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	addRecordFlags(writeCmd)
}
