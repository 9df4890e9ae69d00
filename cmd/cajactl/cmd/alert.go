package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
)

func alertCmd() *cobra.Command {
	alertRoot := &cobra.Command{
		Use:   "alert",
		Short: "Inspect and act on the stock alert",
	}

	alertRoot.AddCommand(
		alertShowCmd(),
		alertSnoozeCmd(),
		alertDeactivateCmd(),
	)

	return alertRoot
}

func alertShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active or snoozed alert",
		Example: `  cajactl alert show
  cajactl alert show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().GetActiveAlert(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			if res.Alert == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active alert.")
				return nil
			}
			return printAlert(cmd.OutOrStdout(), res.Alert, res.Stale)
		},
	}
}

func alertSnoozeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snooze <id> <short|medium|tomorrow>",
		Short: "Snooze an alert",
		Long: "Snooze an alert for 15 minutes (short), one hour (medium) or until\n" +
			"09:00 the next day (tomorrow).",
		Example: `  cajactl alert snooze 3f0c... medium`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := snooze.ParseKind(args[1])
			if err != nil {
				return err
			}
			a, err := newClient().SnoozeAlert(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), a)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alert %s snoozed until %s (snoozed %d times).\n",
				a.ID, formatTime(a.SnoozedUntil), a.SnoozeCount)
			return nil
		},
	}
}

func alertDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeactivateAlert(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alert %s deactivated.\n", args[0])
			return nil
		},
	}
}
