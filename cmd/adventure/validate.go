package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario-file>...",
		Short: "Check scenario files for errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				if err := validateFile(cmd, filename); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v\n", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenario files are invalid", failed, len(args))
			}
			return nil
		},
	}
}

func validateFile(cmd *cobra.Command, filename string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", filename)

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if !scenario.IsValidID(base) {
		return fmt.Errorf("scenario filename '%s' must be lowercase snake_case (e.g., my_scenario.yaml)", filepath.Base(filename))
	}

	s, err := scenario.ReadFile(filename)
	if err != nil {
		return err
	}
	warnings, err := scenario.Validate(s)
	for _, w := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	if err != nil {
		return err
	}
	if _, err := scenario.Build(s, nil); err != nil {
		return err
	}

	fmt.Fprintln(out, "Scenario file is valid!")
	return nil
}
