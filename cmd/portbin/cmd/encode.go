/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/codec"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the wire bytes of a record as hex",
	Long: `Encode a record and print its 8 wire bytes as hex.

Example:
  portbin encode --id 123 --value 456.789
  # 0000007b43e464fe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encodeHex(rec))
		return nil
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a record from hex wire bytes",
	Long: `Decode a record from its wire bytes given as hex. Input shorter than
8 bytes is reported as truncated.

Example:
  portbin decode 0000007b43e464fe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := decodeHex(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatRecord(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	addRecordFlags(encodeCmd)
}

func encodeHex(r codec.Record) string {
	wire := codec.EncodeRecord(r)
	return hex.EncodeToString(wire[:])
}

// decodeHex decodes exactly one record from a hex string
func decodeHex(s string) (codec.Record, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return codec.Record{}, fmt.Errorf("invalid hex input: %w", err)
	}

	var rec codec.Record
	if err := rec.UnmarshalBinary(data); err != nil {
		return codec.Record{}, err
	}
	return rec, nil
}
