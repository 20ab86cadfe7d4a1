package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/robfig/cron/v3"
)

// maxCatchUpFires bounds how many missed fire times are skipped over when coalescing a backlog.
const maxCatchUpFires = 1024

var cronParser = cron.NewParser(
	cron.SecondOptional |
		cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// Provider decides which automation should run next from persisted sessions and
// cron schedules.
type Provider struct {
	automations ports.AutomationRepository
	sessions    ports.SessionRepository
	slots       ports.SlotStateRepository
	clock       ports.Clock
	logger      *slog.Logger
}

var _ ports.DueProvider = (*Provider)(nil)

func NewProvider(automations ports.AutomationRepository, sessions ports.SessionRepository, slots ports.SlotStateRepository, clock ports.Clock, logger *slog.Logger) *Provider {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Provider{
		automations: automations,
		sessions:    sessions,
		slots:       slots,
		clock:       clock,
		logger:      logger.With("component", "due_provider"),
	}
}

// NextSession prefers resuming an interrupted automation session over creating a
// new one. Of several due automations the one with the earliest fire time wins.
func (p *Provider) NextSession(ctx context.Context) (domain.DueSession, error) {
	resume, ok, err := p.interruptedSession(ctx)
	if err != nil {
		return domain.DueSession{}, err
	}
	if ok {
		return domain.DueResume(resume), nil
	}

	automations, err := p.automations.List(ctx)
	if err != nil {
		return domain.DueSession{}, fmt.Errorf("list automations: %w", err)
	}

	now := p.clock.Now()
	var (
		best  domain.Automation
		dueAt time.Time
		found bool
	)
	for _, automation := range automations {
		if !automation.Enabled {
			continue
		}

		fireAt, due, err := DueAt(automation, now)
		if err != nil {
			p.logger.Warn("skipping automation with invalid schedule", "automation_id", automation.ID, "schedule", automation.Schedule, "error", err)
			continue
		}
		if !due {
			continue
		}
		if !found || fireAt.Before(dueAt) {
			best, dueAt, found = automation, fireAt, true
		}
	}

	if !found {
		return domain.DueNone(), nil
	}
	return domain.DueCreate(best.ID, dueAt), nil
}

// ValidateSchedule reports whether expr and timezone can be evaluated.
func (p *Provider) ValidateSchedule(expr, timezone string) error {
	if _, err := parseSchedule(expr, timezone); err != nil {
		return err
	}
	return nil
}

func (p *Provider) interruptedSession(ctx context.Context) (domain.SessionID, bool, error) {
	state, err := p.slots.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("load slot state: %w", err)
	}

	records, err := p.sessions.List(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list sessions: %w", err)
	}

	var (
		oldest domain.SessionRecord
		found  bool
	)
	for _, record := range records {
		if record.Type != domain.SessionTypeAutomation || state.OccupiedBy(record.ID) {
			continue
		}
		if record.Status != domain.SessionStatusPending && record.Status != domain.SessionStatusActive {
			continue
		}
		if !found || record.CreatedAt.Before(oldest.CreatedAt) {
			oldest, found = record, true
		}
	}

	return oldest.ID, found, nil
}

// DueAt returns the most recent fire time of the automation's schedule that falls
// after its anchor and at or before now. Missed fires collapse into one run.
func DueAt(automation domain.Automation, now time.Time) (time.Time, bool, error) {
	schedule, err := parseSchedule(automation.Schedule, automation.Timezone)
	if err != nil {
		return time.Time{}, false, err
	}

	loc, err := scheduleLocation(automation.Timezone, now)
	if err != nil {
		return time.Time{}, false, err
	}

	anchor := automation.ScheduleAnchor()
	if anchor.IsZero() {
		return time.Time{}, false, nil
	}

	next := schedule.Next(anchor.In(loc))
	if next.IsZero() || next.After(now) {
		return time.Time{}, false, nil
	}

	for range maxCatchUpFires {
		following := schedule.Next(next)
		if following.IsZero() || following.After(now) {
			break
		}
		next = following
	}

	return next, true, nil
}

// NextFire returns the first fire time strictly after now, for display.
func NextFire(automation domain.Automation, now time.Time) (time.Time, error) {
	schedule, err := parseSchedule(automation.Schedule, automation.Timezone)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := scheduleLocation(automation.Timezone, now)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(now.In(loc)), nil
}

// scheduleLocation resolves timezone, falling back to now's location when unset.
func scheduleLocation(timezone string, now time.Time) (*time.Location, error) {
	tz := strings.TrimSpace(timezone)
	if tz == "" {
		return now.Location(), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func parseSchedule(expr, timezone string) (cron.Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("schedule is required")
	}
	if _, err := scheduleLocation(timezone, time.Time{}); err != nil {
		return nil, err
	}

	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}
