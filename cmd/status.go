package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/slotctl/internal/adapters/render/status"
	cronprovider "github.com/bnema/slotctl/internal/adapters/schedule/cron"
	"github.com/bnema/slotctl/internal/application"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Snapshot    application.SlotSnapshot
	Automations []statusadapter.AutomationLine
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the slot occupant, its clocks, the queue and upcoming automations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snapshot application.SlotSnapshot
			err := app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				var err error
				snapshot, err = owner.Snapshot(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			lines, err := loadAutomationLines(cmd, app, snapshot)
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, snapshot, lines, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func loadAutomationLines(cmd *cobra.Command, app *app, snapshot application.SlotSnapshot) ([]statusadapter.AutomationLine, error) {
	automations, err := app.automations.List(cmd.Context())
	if err != nil {
		return nil, err
	}

	lines := make([]statusadapter.AutomationLine, 0, len(automations))
	for _, automation := range automations {
		line := statusadapter.AutomationLine{Automation: automation}
		if automation.Enabled {
			next, err := cronprovider.NextFire(automation, snapshot.Now)
			if err != nil {
				app.logger.Warn("compute next fire", "automation_id", automation.ID, "error", err)
			} else {
				line.NextFire = next
			}
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func writeStatusOutput(cmd *cobra.Command, app *app, snapshot application.SlotSnapshot, lines []statusadapter.AutomationLine, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statusOutput{Snapshot: snapshot, Automations: lines})
	}

	rendered, err := app.statusRenderer(snapshot, statusadapter.RenderOptions{
		Timeouts:    app.cfg.Timeouts,
		Automations: lines,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
