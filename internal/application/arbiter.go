package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
)

type admissionOutcome int

const (
	admitEvict admissionOutcome = iota + 1
	admitEvictWhenIdle
	admitSkip
)

type admissionKey struct {
	requested domain.SessionType
	trigger   domain.Trigger
	occupant  domain.SessionType
}

type admissionRule struct {
	outcome   admissionOutcome
	idleLimit func(domain.Timeouts) time.Duration
	priority  int
	reason    string
}

func autoIdleLimit(t domain.Timeouts) time.Duration { return t.AutoInactivity }

var (
	chatReplacesChat    = admissionRule{outcome: admitEvict}
	chatVsAutomation    = admissionRule{outcome: admitEvictWhenIdle, idleLimit: autoIdleLimit, priority: domain.PriorityChat}
	manualVsChat        = admissionRule{outcome: admitEvictWhenIdle, idleLimit: autoIdleLimit, priority: domain.PriorityManualAutomation}
	manualVsAutomation  = admissionRule{outcome: admitEvictWhenIdle, idleLimit: autoIdleLimit, priority: domain.PriorityManualAutomation}
	scheduledNeverWaits = admissionRule{outcome: admitSkip, reason: "scheduled automation does not wait for an occupied slot"}
)

// admissionTable maps (requested type, trigger, occupant type) to an outcome for an
// occupied slot. Combinations missing from the table are skipped.
var admissionTable = map[admissionKey]admissionRule{
	{domain.SessionTypeChat, domain.TriggerManual, domain.SessionTypeChat}:          chatReplacesChat,
	{domain.SessionTypeChat, domain.TriggerScheduled, domain.SessionTypeChat}:       chatReplacesChat,
	{domain.SessionTypeChat, domain.TriggerManual, domain.SessionTypeAutomation}:    chatVsAutomation,
	{domain.SessionTypeChat, domain.TriggerScheduled, domain.SessionTypeAutomation}: chatVsAutomation,

	{domain.SessionTypeAutomation, domain.TriggerManual, domain.SessionTypeChat}:       manualVsChat,
	{domain.SessionTypeAutomation, domain.TriggerManual, domain.SessionTypeAutomation}: manualVsAutomation,

	{domain.SessionTypeAutomation, domain.TriggerScheduled, domain.SessionTypeChat}:       scheduledNeverWaits,
	{domain.SessionTypeAutomation, domain.TriggerScheduled, domain.SessionTypeAutomation}: scheduledNeverWaits,
}

// Arbiter decides admission to the execution slot. It never mutates state.
type Arbiter struct {
	timeouts domain.Timeouts
	clock    ports.Clock
}

func NewArbiter(timeouts domain.Timeouts, clock ports.Clock) *Arbiter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Arbiter{timeouts: timeouts, clock: clock}
}

func (a *Arbiter) RequestSession(id domain.SessionID, sessionType domain.SessionType, trigger domain.Trigger, state domain.SlotState) domain.ActivationResult {
	if strings.TrimSpace(string(id)) == "" {
		return domain.Skip("session id is empty")
	}
	if !sessionType.Valid() || !trigger.Valid() {
		return domain.Skip(fmt.Sprintf("no admission rule for session type %q with trigger %q", sessionType, trigger))
	}

	if !state.Occupied() {
		return domain.ActivateImmediate(id)
	}

	key := admissionKey{requested: sessionType, trigger: trigger, occupant: state.OccupantType}
	rule, ok := admissionTable[key]
	if !ok {
		return domain.Skip(fmt.Sprintf("no admission rule for %s/%s against %q occupant", sessionType, trigger, state.OccupantType))
	}

	switch rule.outcome {
	case admitEvict:
		return domain.EvictAndActivate(state.OccupantSessionID, id, domain.EvictionCancelled)
	case admitEvictWhenIdle:
		inactivity := a.clock.Now().Sub(state.LastActivityAt)
		if inactivity > rule.idleLimit(a.timeouts) {
			return domain.EvictAndActivate(state.OccupantSessionID, id, domain.EvictionCancelled)
		}
		return domain.Enqueue(id, rule.priority)
	case admitSkip:
		return domain.Skip(rule.reason)
	default:
		return domain.Skip(fmt.Sprintf("unhandled admission outcome %d", rule.outcome))
	}
}
