package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
	"github.com/abhisek/examdesk/internal/store"
)

const historyTimeLayout = "2006-01-02 15:04"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded attempts (newest first)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		examID, _ := cmd.Flags().GetString("exam")
		if limit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.AttemptRepo().ListAttempts(cmd.Context(), store.QueryOpts{
			Limit:  limit,
			ExamID: examID,
		})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No attempts recorded.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-24s  %-16s  %-11s  %8s  %8s\n",
			"Attempt", "Exam", "Started", "Status", "Answered", "Used")
		fmt.Fprintln(out, strings.Repeat("─", 112))

		for _, a := range attempts {
			title := a.ExamTitle
			if len(title) > 24 {
				title = title[:21] + "..."
			}
			fmt.Fprintf(out, "%-36s  %-24s  %-16s  %-11s  %8s  %8s\n",
				a.ID, title, a.StartedAt.Local().Format(historyTimeLayout),
				attemptStatus(a), fmt.Sprintf("%d/%d", a.Answered, a.Total),
				countdown.Format(a.UsedSecs()))
		}

		fmt.Fprintf(out, "\n%d attempts\n", len(attempts))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <attempt-id>",
	Short: "Show the event log of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.AttemptRepo().AttemptEvents(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("attempt events: %w", err)
		}
		if len(events) == 0 {
			return fmt.Errorf("no attempt %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%6s  %-19s  %-9s  %8s  %3s  %s\n",
			"Seq", "Time", "Event", "Left", "Q", "Response")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, ev := range events {
			q := "-"
			if ev.Question > 0 {
				q = fmt.Sprint(ev.Question)
			}
			fmt.Fprintf(out, "%6d  %-19s  %-9s  %8s  %3s  %s\n",
				ev.Sequence, ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Kind, countdown.Format(ev.RemainingSecs), q, ev.Response)
		}
		return nil
	},
}

// attemptStatus is the status column: how an attempt ended, if it did.
func attemptStatus(a store.Attempt) string {
	if a.Status != exam.StatusSubmitted {
		return "unfinished"
	}
	if a.Reason == exam.ReasonTimeUp {
		return "time up"
	}
	return "submitted"
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum attempts to list (0 = all)")
	historyCmd.Flags().String("exam", "", "Only list attempts of this exam id")

	historyCmd.AddCommand(historyShowCmd)
}
