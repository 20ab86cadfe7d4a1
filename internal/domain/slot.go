package domain

import (
	"fmt"
	"strings"
	"time"
)

type Phase string

const (
	PhaseStarting            Phase = "starting"
	PhaseRunning             Phase = "running"
	PhaseAwaitingValidation  Phase = "awaiting_validation"
	PhaseAwaitingResponse    Phase = "awaiting_response"
	PhaseWaitingNetworkRetry Phase = "waiting_network_retry"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseStarting, PhaseRunning, PhaseAwaitingValidation, PhaseAwaitingResponse, PhaseWaitingNetworkRetry:
		return true
	default:
		return false
	}
}

func ParsePhase(raw string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhase, raw)
	}
	return p, nil
}

// SlotState describes the single execution slot. The zero value is a free slot.
type SlotState struct {
	OccupantSessionID        SessionID
	OccupantType             SessionType
	Phase                    Phase
	SessionCreatedAt         time.Time
	LastActivityAt           time.Time
	LastNetworkAvailableTime time.Time
	// NetworkDownTime accumulates retry episodes that already ended for this occupant.
	NetworkDownTime time.Duration
}

func (s SlotState) Occupied() bool {
	return s.OccupantSessionID != ""
}

func (s SlotState) OccupiedBy(id SessionID) bool {
	return id != "" && s.OccupantSessionID == id
}

// Validate checks that occupant id and type are either both set or both empty.
func (s SlotState) Validate() error {
	hasID := strings.TrimSpace(string(s.OccupantSessionID)) != ""
	hasType := s.OccupantType != ""
	if hasID != hasType {
		return fmt.Errorf("slot occupant id and type must be set together (id=%q type=%q)", s.OccupantSessionID, s.OccupantType)
	}
	if hasType && !s.OccupantType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionType, s.OccupantType)
	}
	if hasID && s.Phase != "" && !s.Phase.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, s.Phase)
	}

	return nil
}

// Occupy returns the slot state for a session that starts at now.
func Occupy(id SessionID, sessionType SessionType, now time.Time) SlotState {
	return SlotState{
		OccupantSessionID:        id,
		OccupantType:             sessionType,
		Phase:                    PhaseStarting,
		SessionCreatedAt:         now,
		LastActivityAt:           now,
		LastNetworkAvailableTime: now,
	}
}

type QueuedSession struct {
	SessionID   SessionID
	SessionType SessionType
	Trigger     Trigger
	QueuedAt    time.Time
}

// Queueable reports whether the entry may wait for the slot. Scheduled automations never queue.
func (q QueuedSession) Queueable() bool {
	switch q.SessionType {
	case SessionTypeChat:
		return true
	case SessionTypeAutomation:
		return q.Trigger == TriggerManual
	default:
		return false
	}
}

type Timeouts struct {
	ChatInactivity   time.Duration
	AutoInactivity   time.Duration
	AutomationGlobal time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		ChatInactivity:   5 * time.Minute,
		AutoInactivity:   2 * time.Minute,
		AutomationGlobal: 10 * time.Minute,
	}
}

func (t Timeouts) Validate() error {
	if t.ChatInactivity <= 0 {
		return fmt.Errorf("chat inactivity timeout must be positive")
	}
	if t.AutoInactivity <= 0 {
		return fmt.Errorf("automation inactivity timeout must be positive")
	}
	if t.AutomationGlobal <= 0 {
		return fmt.Errorf("automation global timeout must be positive")
	}

	return nil
}
