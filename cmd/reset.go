package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		examID, _ := cmd.Flags().GetString("exam")
		if !yes {
			return fmt.Errorf("refusing to delete attempts without --yes")
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

		n, err := st.AttemptRepo().DeleteAttempts(cmd.Context(), examID)
		if err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d attempts\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
	resetCmd.Flags().String("exam", "", "Only delete attempts of this exam id")
}
