package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/google/uuid"
)

// ScheduleValidator rejects schedules the due-provider cannot evaluate.
type ScheduleValidator interface {
	ValidateSchedule(expr, timezone string) error
}

type SessionRequester interface {
	Request(ctx context.Context, req SessionRequest) (domain.ActivationResult, error)
}

type AutomationService struct {
	automations ports.AutomationRepository
	validator   ScheduleValidator
	clock       ports.Clock
}

func NewAutomationService(automations ports.AutomationRepository, validator ScheduleValidator, clock ports.Clock) *AutomationService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AutomationService{automations: automations, validator: validator, clock: clock}
}

func (s *AutomationService) Add(ctx context.Context, automation domain.Automation) (domain.Automation, error) {
	automation.ID = domain.AutomationID(strings.TrimSpace(string(automation.ID)))
	automation.Schedule = strings.TrimSpace(automation.Schedule)
	if err := automation.Validate(); err != nil {
		return domain.Automation{}, err
	}
	if s.validator != nil {
		if err := s.validator.ValidateSchedule(automation.Schedule, automation.Timezone); err != nil {
			return domain.Automation{}, fmt.Errorf("validate schedule: %w", err)
		}
	}

	existing, err := s.automations.GetByID(ctx, automation.ID)
	switch {
	case err == nil:
		automation.CreatedAt = existing.CreatedAt
		automation.LastScheduledFor = existing.LastScheduledFor
	case errors.Is(err, domain.ErrAutomationNotFound):
		automation.CreatedAt = s.clock.Now()
	default:
		return domain.Automation{}, fmt.Errorf("get automation: %w", err)
	}

	if err := s.automations.Save(ctx, automation); err != nil {
		return domain.Automation{}, fmt.Errorf("save automation: %w", err)
	}

	return automation, nil
}

func (s *AutomationService) List(ctx context.Context) ([]domain.Automation, error) {
	automations, err := s.automations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list automations: %w", err)
	}

	sort.Slice(automations, func(i, j int) bool {
		return string(automations[i].ID) < string(automations[j].ID)
	})
	return automations, nil
}

func (s *AutomationService) Remove(ctx context.Context, id domain.AutomationID) error {
	if _, err := s.automations.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.automations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete automation: %w", err)
	}

	return nil
}

// RunNow requests a manually triggered session for the automation. Manual runs queue
// behind a busy slot instead of being dropped.
func (s *AutomationService) RunNow(ctx context.Context, requester SessionRequester, id domain.AutomationID) (domain.SessionID, domain.ActivationResult, error) {
	if _, err := s.automations.GetByID(ctx, id); err != nil {
		return "", domain.ActivationResult{}, err
	}

	sessionID := domain.SessionID(uuid.NewString())
	result, err := requester.Request(ctx, SessionRequest{
		SessionID:    sessionID,
		Type:         domain.SessionTypeAutomation,
		Trigger:      domain.TriggerManual,
		AutomationID: id,
	})
	if err != nil {
		return "", domain.ActivationResult{}, fmt.Errorf("request automation session: %w", err)
	}

	return sessionID, result, nil
}
