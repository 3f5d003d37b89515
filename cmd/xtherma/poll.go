// cmd/xtherma/poll.go
package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/xtherma-fp/internal/coordinator"
)

var pollOnce bool

var pollCmd = &cobra.Command{
	Use:   "poll <config>",
	Short: "Poll the heat pump and print values",
	Long: `Poll the heat pump at the transport's update interval and print every
published snapshot. Stops on SIGINT or SIGTERM.

With --once a single poll cycle is run and its failure, if any, is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoll,
}

func init() {
	pollCmd.Flags().BoolVar(&pollOnce, "once", false, "Run one poll cycle and exit")
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	co, logger, err := open(cmd, args[0])
	if err != nil {
		return err
	}
	defer co.Close(context.Background())

	out := cmd.OutOrStdout()

	if pollOnce {
		if err := co.Refresh(ctx); err != nil {
			return err
		}
		printSnapshot(out, co)
		return nil
	}

	remove := co.AddListener(func() {
		if co.LastUpdateSuccess() {
			printSnapshot(out, co)
			return
		}
		printHealth(out, co)
	})
	defer remove()

	logger.Info("polling", "interval", co.UpdateInterval())
	co.Run(ctx)
	return nil
}

func printSnapshot(w io.Writer, co *coordinator.Coordinator) {
	data := co.Data()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		unit := ""
		if d, ok := co.Descriptor(k); ok {
			unit = d.Unit
		}
		fmt.Fprintf(w, "%s=%g%s\n", k, data[k], unitSuffix(unit))
	}
	fmt.Fprintln(w)
}

func printHealth(w io.Writer, co *coordinator.Coordinator) {
	st := co.Status()
	fmt.Fprintf(w, "health=%s failure=%s failures=%d in_error_for=%s\n",
		st.Health, st.LastFailure, st.ConsecutiveFailures, st.InErrorFor(time.Now()).Truncate(time.Second))
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
