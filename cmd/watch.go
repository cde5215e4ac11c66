package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/quantum-job-console/internal/poller"
	"github.com/JakeFAU/quantum-job-console/internal/render"
)

func newWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		rounds   int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-list jobs on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			cfg := appInstance.GetConfig()
			if interval <= 0 {
				interval = cfg.WatchInterval()
			}

			c := appInstance.GetConsole()
			w := cmd.OutOrStdout()
			out := render.NewText(w, cfg.Preview.MaxLength)
			p := poller.New(
				poller.Config{Interval: interval, MaxRounds: rounds},
				func(ctx context.Context) render.JobsView { return c.Jobs(ctx) },
				func(view render.JobsView) error {
					if _, err := fmt.Fprintf(w, "--- %s ---\n", time.Now().Format(time.TimeOnly)); err != nil {
						return fmt.Errorf("write header: %w", err)
					}
					return out.Jobs(view)
				},
				appInstance.GetLogger().Named("watch"),
			)
			return p.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default watch.interval_seconds)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "stop after this many refreshes (0 = until interrupted)")
	return cmd
}
