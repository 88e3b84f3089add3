/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/store"
	"go.uber.org/zap"
)

// demoRecord is the record written and read back by the demo command
var demoRecord = codec.Record{ID: 123, Value: 456.789}

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a sample record to a file and read it back",
	Long: `Write the record {id: 123, value: 456.789} to a fresh file, close it,
reopen it and decode the record from the file contents.

The file is replaced on every run. Any failure to open, write or read the
file, including a truncated file, exits with a non-zero status.

Example:
  portbin demo
  portbin demo --file /tmp/sample.bin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.DataFilePath()
		}
		return runDemo(cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringP("file", "f", "", "File to write the sample record to (default is the configured data file)")
}

// runDemo writes demoRecord to path, reopens the file and prints the decoded record
func runDemo(out io.Writer, path string) error {
	writer, err := store.NewLogWriter(store.LogWriterConfig{
		FilePath:   path,
		BufferSize: cfg.BufferSize,
		Truncate:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}

	if _, err := writer.Append(demoRecord); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	logger.Debug("wrote sample record", zap.String("path", path), zap.Stringer("record", demoRecord))

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for reading: %w", path, err)
	}
	defer file.Close()

	rec, err := codec.ReadRecord(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("failed to read record from %s: %w", path, err)
	}

	fmt.Fprintln(out, formatRecord(rec))
	return nil
}
