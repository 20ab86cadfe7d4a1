package application

import (
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
)

type TimeoutDetector struct {
	timeouts domain.Timeouts
	clock    ports.Clock
}

func NewTimeoutDetector(timeouts domain.Timeouts, clock ports.Clock) *TimeoutDetector {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TimeoutDetector{timeouts: timeouts, clock: clock}
}

// ShouldTimeout reports whether the occupant has gone stale. A chat occupant only
// expires when other work is waiting; an automation retrying the network never does.
func (d *TimeoutDetector) ShouldTimeout(state domain.SlotState, hasWaitingAutomations bool) bool {
	if !state.Occupied() {
		return false
	}

	now := d.clock.Now()
	switch state.OccupantType {
	case domain.SessionTypeChat:
		if !hasWaitingAutomations {
			return false
		}
		return now.Sub(state.LastActivityAt) > d.timeouts.ChatInactivity
	case domain.SessionTypeAutomation:
		if state.Phase == domain.PhaseWaitingNetworkRetry {
			return false
		}
		if ActiveTime(state, now) > d.timeouts.AutomationGlobal {
			return true
		}
		return now.Sub(state.LastActivityAt) > d.timeouts.AutoInactivity
	default:
		return false
	}
}

// ActiveTime is the occupant's lifetime minus time spent waiting for the network:
// resolved retry episodes plus the current one when the phase is a network retry.
func ActiveTime(state domain.SlotState, now time.Time) time.Duration {
	downTime := state.NetworkDownTime
	if state.Phase == domain.PhaseWaitingNetworkRetry {
		downTime += now.Sub(state.LastNetworkAvailableTime)
	}

	return now.Sub(state.SessionCreatedAt) - downTime
}
