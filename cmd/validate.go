package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
)

var validateCmd = &cobra.Command{
	Use:   "validate <exam.yaml>...",
	Short: "Check exam files without starting an attempt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			e, err := exam.Load(path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
				failed++
				continue
			}
			choice := 0
			for _, q := range e.Questions {
				if q.Kind == exam.KindChoice {
					choice++
				}
			}
			fmt.Fprintf(out, "✓ %s: %q (%s), %d questions (%d choice, %d text), time limit %s\n",
				path, e.Title, e.ID, e.Total(), choice, e.Total()-choice,
				countdown.Format(e.DurationSeconds()))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d exam files invalid", failed, len(args))
		}
		return nil
	},
}
