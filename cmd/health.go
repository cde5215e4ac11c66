package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/quantum-job-console/internal/render"
)

// errAPIOffline makes `qjobs health` exit non-zero when no candidate answered.
var errAPIOffline = errors.New("api offline")

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the API health endpoints",
		Long: `Tries each configured health path in order (default /health, then /)
and prints the first success, or the last failure when none succeed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			result := appInstance.GetConsole().Status(cmd.Context())
			out := render.NewText(cmd.OutOrStdout(), appInstance.GetConfig().Preview.MaxLength)
			if err := out.Status(result); err != nil {
				return err
			}
			if !result.OK {
				return errAPIOffline
			}
			return nil
		},
	}
}
