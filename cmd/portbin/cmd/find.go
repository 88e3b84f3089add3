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

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find records in the data file by id",
	Long: `Index the data file by record id and print every record carrying the
given id together with its position in the file.

Example:
  portbin find --id 123`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt32("id")

		path := cfg.DataFilePath()
		reader, err := store.NewLogReader(store.LogReaderConfig{FilePath: path})
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer reader.Close()

		return findByID(cmd.OutOrStdout(), reader, id)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().Int32("id", 0, "Record id to look for")
	_ = findCmd.MarkFlagRequired("id")
}

func findByID(out io.Writer, reader *store.LogReader, id int32) error {
	idx := store.NewIDIndex()
	if err := idx.BuildFromLog(reader); err != nil {
		return err
	}

	positions := idx.Lookup(id)
	if len(positions) == 0 {
		return fmt.Errorf("no record with id %d", id)
	}

	for _, pos := range positions {
		rec, err := reader.ReadAt(pos)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", pos, formatRecord(rec))
	}
	return nil
}
