package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/slotctl/internal/application"
	"github.com/bnema/slotctl/internal/domain"
	"github.com/spf13/cobra"
)

func newAutomationCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "automation",
		Short: "Manage scheduled automations",
	}

	cmd.AddCommand(
		newAutomationAddCmd(app),
		newAutomationListCmd(app),
		newAutomationRemoveCmd(app),
		newAutomationRunCmd(app),
	)

	return cmd
}

func newAutomationAddCmd(app *app) *cobra.Command {
	var (
		name     string
		schedule string
		timezone string
		command  []string
		disabled bool
	)

	cmd := &cobra.Command{
		Use:   "add <automation-id>",
		Short: "Add or update an automation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				name = args[0]
			}

			saved, err := app.automations.Add(cmd.Context(), domain.Automation{
				ID:       domain.AutomationID(args[0]),
				Name:     strings.TrimSpace(name),
				Schedule: schedule,
				Timezone: strings.TrimSpace(timezone),
				Command:  command,
				Enabled:  !disabled,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved automation %s (%s)\n", saved.ID, saved.Schedule)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the id)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression or descriptor such as @daily")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone the schedule is evaluated in")
	cmd.Flags().StringArrayVar(&command, "command", nil, "Command argv element (repeat for each argument)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Save the automation without scheduling it")
	_ = cmd.MarkFlagRequired("schedule")

	return cmd
}

func newAutomationListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List automations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			automations, err := app.automations.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(automations)
			}

			if len(automations) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No automations.")
				return nil
			}
			for _, automation := range automations {
				state := "enabled"
				if !automation.Enabled {
					state = "disabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", automation.ID, automation.Name, automation.Schedule, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newAutomationRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <automation-id>",
		Short: "Remove an automation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.automations.Remove(cmd.Context(), domain.AutomationID(args[0])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed automation %s\n", args[0])
			return nil
		},
	}
}

func newAutomationRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <automation-id>",
		Short: "Request a manual run of an automation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				id, result, err := app.automations.RunNow(cmd.Context(), owner, domain.AutomationID(args[0]))
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s: %s\n", id, result)
				return nil
			})
		},
	}
}
