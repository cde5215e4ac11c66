package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/quantum-job-console/internal/render"
)

var errJobsUnavailable = errors.New("job list unavailable")

func newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List jobs in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			view := appInstance.GetConsole().Jobs(cmd.Context())
			out := render.NewText(cmd.OutOrStdout(), appInstance.GetConfig().Preview.MaxLength)
			if err := out.Jobs(view); err != nil {
				return err
			}
			if view.Failed() {
				return errJobsUnavailable
			}
			return nil
		},
	}
}
