package domain

import (
	"fmt"
	"strings"
	"time"
)

// Automation is a background task fired by its cron schedule or by hand.
type Automation struct {
	ID               AutomationID
	Name             string
	Schedule         string
	Timezone         string
	Command          []string
	Enabled          bool
	CreatedAt        time.Time
	LastScheduledFor time.Time
}

func (a Automation) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(a.Schedule) == "" {
		return fmt.Errorf("schedule is required")
	}

	return nil
}

// ScheduleAnchor is the instant after which the next fire time is computed.
func (a Automation) ScheduleAnchor() time.Time {
	if !a.LastScheduledFor.IsZero() {
		return a.LastScheduledFor
	}
	return a.CreatedAt
}
