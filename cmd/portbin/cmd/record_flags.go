/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ssargent/portbin/pkg/codec"
)

// addRecordFlags registers --id, --value and --value-bits on c
func addRecordFlags(c *cobra.Command) {
	c.Flags().Int32("id", 0, "Record id")
	c.Flags().Float32("value", 0, "Record value")
	c.Flags().String("value-bits", "", "Record value as 8 hex digits of raw IEEE-754 bits (overrides --value)")
}

// recordFromFlags builds a record from the flags added by addRecordFlags
func recordFromFlags(c *cobra.Command) (codec.Record, error) {
	id, err := c.Flags().GetInt32("id")
	if err != nil {
		return codec.Record{}, err
	}

	value, err := c.Flags().GetFloat32("value")
	if err != nil {
		return codec.Record{}, err
	}

	if raw, _ := c.Flags().GetString("value-bits"); raw != "" {
		bits, err := strconv.ParseUint(raw, 16, 32)
		if err != nil {
			return codec.Record{}, fmt.Errorf("invalid --value-bits %q: %w", raw, err)
		}
		value = math.Float32frombits(uint32(bits))
	}

	return codec.Record{ID: id, Value: value}, nil
}

// formatRecord prints a record the way the sample program does
func formatRecord(r codec.Record) string {
	return fmt.Sprintf("Read id: %d, value: %f", r.ID, r.Value)
}
