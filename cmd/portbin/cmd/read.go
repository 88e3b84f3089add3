/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/store"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read records from the data file",
	Long: `Read records from the data file. Without --index every record is printed
in file order. A file that ends inside a record is reported as truncated.

Example:
  portbin read
  portbin read --index 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DataFilePath()
		reader, err := store.NewLogReader(store.LogReaderConfig{FilePath: path})
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer reader.Close()

		if cmd.Flags().Changed("index") {
			index, _ := cmd.Flags().GetInt64("index")
			return readOne(cmd.OutOrStdout(), reader, index)
		}
		return readAll(cmd.OutOrStdout(), reader)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().Int64P("index", "i", 0, "Index of a single record to read")
}

func readOne(out io.Writer, reader *store.LogReader, index int64) error {
	rec, err := reader.ReadAt(index)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatRecord(rec))
	return nil
}

func readAll(out io.Writer, reader *store.LogReader) error {
	it := reader.Iterator()
	defer it.Close()

	var n int
	for it.Next() {
		fmt.Fprintln(out, formatRecord(it.Record()))
		n++
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("after %d records: %w", n, err)
	}
	return nil
}
