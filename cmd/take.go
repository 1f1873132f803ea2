package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdesk/internal/app"
	"github.com/abhisek/examdesk/internal/countdown"
	"github.com/abhisek/examdesk/internal/exam"
)

var takeCmd = &cobra.Command{
	Use:   "take <exam.yaml>",
	Short: "Take a timed exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := exam.Load(args[0])
		if err != nil {
			return err
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

		// Submissions arrive on the program's goroutine; Run returns after
		// the program has exited.
		var results []exam.Result
		repo := st.AttemptRepo()
		err = app.Run(app.Options{
			Exam:       e,
			Recorder:   repo,
			History:    repo,
			Thresholds: cfg.Thresholds(),
			OnSubmit:   func(r exam.Result) { results = append(results, r) },
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No attempt submitted.")
			return nil
		}
		printResult(out, results[len(results)-1])
		return nil
	},
}

// printResult writes a plain summary of a submitted attempt.
func printResult(w io.Writer, r exam.Result) {
	how := "submitted"
	if r.Reason == exam.ReasonTimeUp {
		how = "submitted automatically, time ran out"
	}
	fmt.Fprintf(w, "%s: %s\n", r.ExamTitle, how)
	fmt.Fprintf(w, "  answered  %d of %d\n", r.Answered, r.Total)
	fmt.Fprintf(w, "  time used %s of %s\n", countdown.Format(r.UsedSeconds()), countdown.Format(r.DurationSeconds))
	if len(r.Unanswered) > 0 {
		nums := make([]string, len(r.Unanswered))
		for i, n := range r.Unanswered {
			nums[i] = fmt.Sprint(n)
		}
		fmt.Fprintf(w, "  unanswered %s\n", strings.Join(nums, ", "))
	}
	fmt.Fprintf(w, "  attempt   %s\n", r.SessionID)
}
