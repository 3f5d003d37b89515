// cmd/xtherma/set.go
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/xtherma-fp/internal/coordinator"
)

var setCmd = &cobra.Command{
	Use:   "set <config> <key> <value>",
	Short: "Write one value to the heat pump",
	Long: `Write one engineering value (for example 42.5 for a temperature) to a
writable entity. Only the Modbus transport accepts writes.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	key := args[1]
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("value %q: %w", args[2], err)
	}

	co, logger, err := open(cmd, args[0])
	if err != nil {
		return err
	}
	defer co.Close(context.Background())

	desc, ok := co.Descriptor(key)
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}

	// log the current value before writing
	if err := co.Refresh(cmd.Context()); err != nil {
		logger.Warn("refresh before write failed", "err", err)
	} else if cur, ok := co.ReadValue(key); ok {
		logger.Info("current value", "key", key, "value", cur)
	}

	value = desc.Align(value)
	if err := co.Write(cmd.Context(), desc, value); err != nil {
		var wf *coordinator.WriteFailed
		if errors.As(err, &wf) {
			fmt.Fprintln(cmd.ErrOrStderr(), wf.TranslationKey)
		}
		return err
	}

	logger.Info("write accepted", "key", key, "value", value)
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%g\n", key, value)
	return nil
}
