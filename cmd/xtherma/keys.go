// cmd/xtherma/keys.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tamzrod/xtherma-fp/internal/coordinator"
)

var keysCmd = &cobra.Command{
	Use:   "keys <config>",
	Short: "List the entity keys known to the configured transport",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	co, err := coordinator.Build(cfg.Xtherma, newLogger(cfg.Xtherma))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tUNIT\tWRITABLE\tFACTOR\tREGISTER")
	for _, d := range co.Descriptors() {
		reg := "-"
		if d.HasRegister {
			reg = fmt.Sprint(d.Register)
		}
		factor := string(d.Factor)
		if factor == "" {
			factor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n", d.Key, d.Kind, d.Unit, d.Writable, factor, reg)
	}
	return w.Flush()
}
