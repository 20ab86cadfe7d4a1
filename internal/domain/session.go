package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionID string
type AutomationID string

type SessionType string
type Trigger string
type SessionStatus string

const (
	SessionTypeChat       SessionType = "chat"
	SessionTypeAutomation SessionType = "automation"

	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusQueued    SessionStatus = "queued"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusFailed    SessionStatus = "failed"
	SessionStatusTimedOut  SessionStatus = "timed_out"
	SessionStatusSkipped   SessionStatus = "skipped"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeChat, SessionTypeAutomation:
		return true
	default:
		return false
	}
}

func ParseSessionType(raw string) (SessionType, error) {
	t := SessionType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSessionType, raw)
	}
	return t, nil
}

func (t Trigger) Valid() bool {
	switch t {
	case TriggerManual, TriggerScheduled:
		return true
	default:
		return false
	}
}

func ParseTrigger(raw string) (Trigger, error) {
	t := Trigger(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTrigger, raw)
	}
	return t, nil
}

// Terminal reports whether a session in this status will never hold the slot again.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionStatusCompleted, SessionStatusCancelled, SessionStatusFailed, SessionStatusTimedOut, SessionStatusSkipped:
		return true
	default:
		return false
	}
}

// SessionRecord is the persisted view of a chat or automation session.
type SessionRecord struct {
	ID           SessionID
	Type         SessionType
	Trigger      Trigger
	AutomationID AutomationID
	Status       SessionStatus
	ScheduledFor time.Time
	CreatedAt    time.Time
	StartedAt    time.Time
	EndedAt      time.Time
	EndReason    string
}

func (r SessionRecord) Validate() error {
	if strings.TrimSpace(string(r.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionType, r.Type)
	}
	if !r.Trigger.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTrigger, r.Trigger)
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}

	return nil
}
