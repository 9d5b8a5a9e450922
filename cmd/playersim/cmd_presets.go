package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/playersim/internal/config"
)

func newPresetsCmd() *cobra.Command {
	var plan planFlags
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Print the built-in presets as a YAML preset file",
		Long: `Print the built-in session slots, spend and stage profiles, archetypes and
acquisition plan as YAML. Edit the output and pass it to 'events --config'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := plan.validate(); err != nil {
				return err
			}
			f := config.Default(plan.players, plan.days, plan.mix(), plan.acquisition())

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return config.Write(cmd.OutOrStdout(), f)
			}
			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := config.Write(out, f); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Presets written to %s\n", output)
			return nil
		},
	}
	addPlanFlags(cmd, &plan)
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}
