package ports

import (
	"context"
	"time"

	"github.com/bnema/slotctl/internal/domain"
)

// DueProvider answers which automation, if any, should run next.
type DueProvider interface {
	NextSession(ctx context.Context) (domain.DueSession, error)
}

// SessionRunner starts and stops the work behind a session. Cancel must not return
// until the session's work has stopped.
type SessionRunner interface {
	Start(ctx context.Context, session domain.SessionRecord) error
	Cancel(ctx context.Context, id domain.SessionID) error
}

type DecisionRecorder interface {
	RecordDecision(kind domain.ActivationKind)
	RecordTimeout(sessionType domain.SessionType)
	RecordOccupancy(state domain.SlotState)
	RecordSessionEnded(sessionType domain.SessionType, status domain.SessionStatus, lifetime time.Duration)
}

type NopDecisionRecorder struct{}

func (NopDecisionRecorder) RecordDecision(domain.ActivationKind) {}

func (NopDecisionRecorder) RecordTimeout(domain.SessionType) {}

func (NopDecisionRecorder) RecordOccupancy(domain.SlotState) {}

func (NopDecisionRecorder) RecordSessionEnded(domain.SessionType, domain.SessionStatus, time.Duration) {}
