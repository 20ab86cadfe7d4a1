package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slotctl",
		Short:         "slotctl: arbitrate one execution slot between chats and automations",
		Long:          "slotctl decides which session holds the single execution slot. Chats and automation runs request the slot, wait in the queue, or get skipped; a daemon enforces inactivity timeouts and starts scheduled automations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRequestCmd(app),
		newActivityCmd(app),
		newPhaseCmd(app),
		newNetworkCmd(app),
		newCompleteCmd(app),
		newCancelCmd(app),
		newTickCmd(app),
		newStatusCmd(app),
		newAutomationCmd(app),
		newDaemonCmd(app),
	)

	return rootCmd
}
