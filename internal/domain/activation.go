package domain

import (
	"fmt"
	"time"
)

type ActivationKind string

const (
	ActivationImmediate ActivationKind = "activate_immediate"
	ActivationEvict     ActivationKind = "evict_and_activate"
	ActivationEnqueue   ActivationKind = "enqueue"
	ActivationSkip      ActivationKind = "skip"
)

type EvictionReason string

const EvictionCancelled EvictionReason = "cancelled"

const (
	PriorityChat             = 1
	PriorityManualAutomation = 2
)

// ActivationResult is the arbiter's decision for one request. Only the fields of
// the variant named by Kind are set.
type ActivationResult struct {
	Kind ActivationKind

	// ActivationImmediate, ActivationEvict, ActivationEnqueue
	SessionID SessionID

	// ActivationEvict
	EvictSessionID SessionID
	EvictionReason EvictionReason

	// ActivationEnqueue
	Priority int

	// ActivationSkip
	Reason string
}

func ActivateImmediate(id SessionID) ActivationResult {
	return ActivationResult{Kind: ActivationImmediate, SessionID: id}
}

func EvictAndActivate(evict, activate SessionID, reason EvictionReason) ActivationResult {
	return ActivationResult{Kind: ActivationEvict, SessionID: activate, EvictSessionID: evict, EvictionReason: reason}
}

func Enqueue(id SessionID, priority int) ActivationResult {
	return ActivationResult{Kind: ActivationEnqueue, SessionID: id, Priority: priority}
}

func Skip(reason string) ActivationResult {
	return ActivationResult{Kind: ActivationSkip, Reason: reason}
}

func (r ActivationResult) String() string {
	switch r.Kind {
	case ActivationImmediate:
		return fmt.Sprintf("activate %s", r.SessionID)
	case ActivationEvict:
		return fmt.Sprintf("evict %s (%s) and activate %s", r.EvictSessionID, r.EvictionReason, r.SessionID)
	case ActivationEnqueue:
		return fmt.Sprintf("enqueue %s (priority %d)", r.SessionID, r.Priority)
	case ActivationSkip:
		return fmt.Sprintf("skip: %s", r.Reason)
	default:
		return fmt.Sprintf("unknown activation %q", r.Kind)
	}
}

// SessionToActivate names the next session to run once the slot frees. Exactly one
// of SessionID (resume) or AutomationID (create) is set.
type SessionToActivate struct {
	SessionID       SessionID
	AutomationID    AutomationID
	ScheduledFor    time.Time
	SessionType     SessionType
	Trigger         Trigger
	RemoveFromQueue bool
}

func NewSessionToActivate(sessionID SessionID, automationID AutomationID, scheduledFor time.Time, sessionType SessionType, trigger Trigger, removeFromQueue bool) (SessionToActivate, error) {
	if (sessionID == "") == (automationID == "") {
		return SessionToActivate{}, fmt.Errorf("%w (session=%q automation=%q)", ErrAmbiguousActivationTarget, sessionID, automationID)
	}
	if sessionID != "" {
		scheduledFor = time.Time{}
	}

	return SessionToActivate{
		SessionID:       sessionID,
		AutomationID:    automationID,
		ScheduledFor:    scheduledFor,
		SessionType:     sessionType,
		Trigger:         trigger,
		RemoveFromQueue: removeFromQueue,
	}, nil
}

// MustSessionToActivate panics when the target is ambiguous; that is a selector bug.
func MustSessionToActivate(sessionID SessionID, automationID AutomationID, scheduledFor time.Time, sessionType SessionType, trigger Trigger, removeFromQueue bool) SessionToActivate {
	target, err := NewSessionToActivate(sessionID, automationID, scheduledFor, sessionType, trigger, removeFromQueue)
	if err != nil {
		panic(err)
	}
	return target
}

func NewQueuedActivation(entry QueuedSession) SessionToActivate {
	return MustSessionToActivate(entry.SessionID, "", time.Time{}, entry.SessionType, entry.Trigger, true)
}

func NewResumeActivation(id SessionID) SessionToActivate {
	return MustSessionToActivate(id, "", time.Time{}, SessionTypeAutomation, TriggerScheduled, false)
}

func NewCreateActivation(automationID AutomationID, scheduledFor time.Time) SessionToActivate {
	return MustSessionToActivate("", automationID, scheduledFor, SessionTypeAutomation, TriggerScheduled, false)
}

func (s SessionToActivate) Resumes() bool {
	return s.SessionID != ""
}

type DueKind string

const (
	DueKindNone   DueKind = "none"
	DueKindResume DueKind = "resume"
	DueKindCreate DueKind = "create"
)

// DueSession is the due-provider's answer to "what automation should run next".
type DueSession struct {
	Kind         DueKind
	SessionID    SessionID
	AutomationID AutomationID
	ScheduledFor time.Time
}

func DueNone() DueSession {
	return DueSession{Kind: DueKindNone}
}

func DueResume(id SessionID) DueSession {
	return DueSession{Kind: DueKindResume, SessionID: id}
}

func DueCreate(id AutomationID, scheduledFor time.Time) DueSession {
	return DueSession{Kind: DueKindCreate, AutomationID: id, ScheduledFor: scheduledFor}
}

func (d DueSession) Pending() bool {
	return d.Kind == DueKindResume || d.Kind == DueKindCreate
}
