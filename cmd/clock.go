package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdesk/internal/countdown"
)

var clockCmd = &cobra.Command{
	Use:   "clock <duration>",
	Short: "Run a countdown in the terminal without an exam",
	Long:  "Counts down from the given duration (for example 90s or 25m), printing the remaining time each tick. Ctrl+C cancels.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("parse duration: %w", err)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		th := cfg.Thresholds()
		out := cmd.OutOrStdout()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		done := make(chan struct{})
		c := countdown.New(int(d/time.Second), countdown.Callbacks{
			OnTimeUpdate: func(remaining int) {
				line := countdown.Format(remaining)
				if level := th.Level(remaining); level != countdown.UrgencyNone {
					line += "  " + level.String()
				}
				fmt.Fprintln(out, line)
			},
			OnTimeUp: func() {
				fmt.Fprintln(out, "Time up")
				close(done)
			},
		})

		fmt.Fprintln(out, countdown.Format(c.Remaining()))
		c.Start()

		select {
		case <-done:
		case <-ctx.Done():
			c.Stop()
			fmt.Fprintln(out, "Cancelled at", countdown.Format(c.Remaining()))
		}
		return nil
	},
}
