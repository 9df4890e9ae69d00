package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func soundCmd() *cobra.Command {
	soundRoot := &cobra.Command{
		Use:   "sound",
		Short: "Show or toggle the alert sound cue",
	}

	soundRoot.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show whether the sound cue is on",
			RunE: func(cmd *cobra.Command, _ []string) error {
				enabled, err := newClient().GetSoundEnabled(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), onOff(enabled))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <on|off>",
			Short:     "Turn the sound cue on or off",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled := args[0] == "on"
				if err := newClient().SetSoundEnabled(cmd.Context(), enabled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sound %s.\n", onOff(enabled))
				return nil
			},
		},
	)

	return soundRoot
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
