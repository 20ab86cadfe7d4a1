package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/slotctl/internal/application"
	"github.com/bnema/slotctl/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const waitPollInterval = 500 * time.Millisecond

func newRequestCmd(app *app) *cobra.Command {
	var (
		sessionID    string
		sessionType  string
		trigger      string
		automationID string
		wait         bool
		waitTimeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request the execution slot for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedType, err := domain.ParseSessionType(sessionType)
			if err != nil {
				return err
			}
			parsedTrigger, err := domain.ParseTrigger(trigger)
			if err != nil {
				return err
			}
			if strings.TrimSpace(sessionID) == "" {
				sessionID = uuid.NewString()
			}

			req := application.SessionRequest{
				SessionID:    domain.SessionID(strings.TrimSpace(sessionID)),
				Type:         parsedType,
				Trigger:      parsedTrigger,
				AutomationID: domain.AutomationID(strings.TrimSpace(automationID)),
			}

			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				result, err := owner.Request(cmd.Context(), req)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s: %s\n", req.SessionID, result)
				if !wait || result.Kind != domain.ActivationEnqueue {
					return nil
				}

				ctx := cmd.Context()
				if waitTimeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, waitTimeout)
					defer cancel()
				}

				err = runWaitSpinner(ctx, cmd.ErrOrStderr(), "Waiting for the slot...", func(ctx context.Context) error {
					return waitForActivation(ctx, app, owner, req.SessionID)
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s: active\n", req.SessionID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sessionID, "id", "", "Session ID (generated when empty)")
	cmd.Flags().StringVar(&sessionType, "type", string(domain.SessionTypeChat), "Session type: chat or automation")
	cmd.Flags().StringVar(&trigger, "trigger", string(domain.TriggerManual), "Trigger: manual or scheduled")
	cmd.Flags().StringVar(&automationID, "automation", "", "Automation this session runs")
	cmd.Flags().BoolVar(&wait, "wait", false, "Block until a queued session holds the slot")
	cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 0, "Give up waiting after this long (0 waits forever)")

	return cmd
}

// waitForActivation polls the session record, running a heartbeat between polls so
// a freed slot is filled even without a daemon.
func waitForActivation(ctx context.Context, app *app, owner *application.SlotOwner, id domain.SessionID) error {
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	status := domain.SessionStatusQueued
	for {
		if err := owner.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return waitAborted(ctx, id, status)
			}
			return err
		}

		record, err := app.sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		status = record.Status
		switch {
		case status == domain.SessionStatusActive:
			return nil
		case status.Terminal():
			return fmt.Errorf("session %s ended while waiting: %s (%s)", id, status, record.EndReason)
		}

		select {
		case <-ctx.Done():
			return waitAborted(ctx, id, status)
		case <-ticker.C:
		}
	}
}

func waitAborted(ctx context.Context, id domain.SessionID, status domain.SessionStatus) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("waiting for slot: session %s is still %s", id, status)
	}
	return ctx.Err()
}

func newActivityCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <session-id>",
		Short: "Record activity for the slot occupant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.RecordActivity(cmd.Context(), domain.SessionID(args[0]))
			})
		},
	}
}

func newPhaseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "phase <session-id> <phase>",
		Short: "Set the occupant phase (starting, running, awaiting_validation, awaiting_response, waiting_network_retry)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			phase, err := domain.ParsePhase(args[1])
			if err != nil {
				return err
			}

			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.SetPhase(cmd.Context(), domain.SessionID(args[0]), phase)
			})
		},
	}
}

func newNetworkCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Report that the network is reachable again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.NetworkAvailable(cmd.Context())
			})
		},
	}
}

func newCompleteCmd(app *app) *cobra.Command {
	var failure string

	cmd := &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Mark the occupant as finished and admit the next session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runErr error
			if strings.TrimSpace(failure) != "" {
				runErr = errors.New(strings.TrimSpace(failure))
			}

			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.Complete(cmd.Context(), domain.SessionID(args[0]), runErr)
			})
		},
	}

	cmd.Flags().StringVar(&failure, "error", "", "Mark the session failed with this reason")

	return cmd
}

func newCancelCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <session-id>",
		Short: "Cancel a queued session or the occupant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.Cancel(cmd.Context(), domain.SessionID(args[0]))
			})
		},
	}
}

func newTickCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run one heartbeat: enforce timeouts and admit waiting work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withOwner(cmd.Context(), func(owner *application.SlotOwner) error {
				return owner.Tick(cmd.Context())
			})
		},
	}
}
