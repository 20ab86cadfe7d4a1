package application

import (
	"context"
	"fmt"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
)

// DequeueSelector picks the next session for a free slot: queued chats, then queued
// manual automations, then whatever the due-provider offers.
type DequeueSelector struct {
	due ports.DueProvider
}

func NewDequeueSelector(due ports.DueProvider) *DequeueSelector {
	return &DequeueSelector{due: due}
}

func (s *DequeueSelector) NextSession(ctx context.Context, queue []domain.QueuedSession) (domain.SessionToActivate, bool, error) {
	if entry, ok := oldestQueued(queue, domain.SessionTypeChat, ""); ok {
		return domain.NewQueuedActivation(entry), true, nil
	}
	if entry, ok := oldestQueued(queue, domain.SessionTypeAutomation, domain.TriggerManual); ok {
		return domain.NewQueuedActivation(entry), true, nil
	}

	if s.due == nil {
		return domain.SessionToActivate{}, false, nil
	}

	due, err := s.due.NextSession(ctx)
	if err != nil {
		return domain.SessionToActivate{}, false, fmt.Errorf("query due automation: %w", err)
	}

	switch due.Kind {
	case domain.DueKindResume:
		return domain.NewResumeActivation(due.SessionID), true, nil
	case domain.DueKindCreate:
		return domain.NewCreateActivation(due.AutomationID, due.ScheduledFor), true, nil
	default:
		return domain.SessionToActivate{}, false, nil
	}
}

// oldestQueued returns the earliest queued entry of the given type. An empty trigger
// matches any trigger. Ties keep queue order.
func oldestQueued(queue []domain.QueuedSession, sessionType domain.SessionType, trigger domain.Trigger) (domain.QueuedSession, bool) {
	var (
		picked domain.QueuedSession
		found  bool
	)
	for _, entry := range queue {
		if entry.SessionType != sessionType {
			continue
		}
		if trigger != "" && entry.Trigger != trigger {
			continue
		}
		if !found || entry.QueuedAt.Before(picked.QueuedAt) {
			picked = entry
			found = true
		}
	}

	return picked, found
}
