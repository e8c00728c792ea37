package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available Scenarios:")
			for _, name := range scenario.BuiltinNames() {
				data, err := scenario.Builtin(name)
				if err != nil {
					return err
				}
				s, err := scenario.Parse(data, name+".yaml")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s - %s\n", name, s.Title)
			}
			return nil
		},
	}
}
