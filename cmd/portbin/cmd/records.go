/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/storage"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Store a record under a new key",
	Long: `Store a record in the keyed record storage and print the generated key.

Example:
  portbin put --id 123 --value 456.789`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openStorage()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Create(rec)
		if err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id.String())
		return nil
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a stored record by key",
	Long: `Read a record from the keyed record storage.

Example:
  portbin get 2HbR5BRZ0h8cPuVhHFkwbH6bHUM`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		s, err := openStorage()
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.Read(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatRecord(rec))
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <key>",
	Short: "Replace a stored record",
	Long: `Replace the record stored under an existing key.

Example:
  portbin update 2HbR5BRZ0h8cPuVhHFkwbH6bHUM --id 123 --value 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openStorage()
		if err != nil {
			return err
		}
		defer s.Close()

		return updateRecord(cmd.OutOrStdout(), s, id, rec)
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a stored record by key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		s, err := openStorage()
		if err != nil {
			return err
		}
		defer s.Close()

		return deleteRecord(cmd.OutOrStdout(), s, id)
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStorage()
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.List(limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Key, e.Record)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)

	addRecordFlags(putCmd)
	addRecordFlags(updateCmd)
	listCmd.Flags().IntP("limit", "l", 0, "Maximum number of records to list (0 = all)")
}

func openStorage() (*storage.DefaultStorage, error) {
	dir := cfg.StorageDir()
	s, err := storage.NewDefaultStorage(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", dir, err)
	}
	return s, nil
}

func updateRecord(out io.Writer, s *storage.DefaultStorage, id ksuid.KSUID, rec codec.Record) error {
	if err := s.Update(id, rec); err != nil {
		return fmt.Errorf("failed to update %s: %w", id, err)
	}
	fmt.Fprintf(out, "Updated %s (%s)\n", id, rec)
	return nil
}

func deleteRecord(out io.Writer, s *storage.DefaultStorage, id ksuid.KSUID) error {
	if err := s.Delete(id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}
