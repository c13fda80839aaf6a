package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"imagepuller/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [target]",
		Short: "Verify the Graph token and directory access",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("imagepuller", colorize) {
				fmt.Fprintln(out, line)
			}
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found, defaults used)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configDetail, colorize))

			results := []preflight.Result{preflight.CheckGraphFromConfig(cmd.Context(), cfg)}
			if len(args) == 1 {
				results = append(results, preflight.RunAll(cmd.Context(), cfg, args[0])...)
			} else {
				results = append(results, preflight.CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
			}

			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			if _, failed := preflight.FirstFailure(results); failed {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
