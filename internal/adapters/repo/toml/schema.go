package toml

import "fmt"

const (
	currentSlotSchemaVersion        = 1
	currentQueueSchemaVersion       = 1
	currentSessionsSchemaVersion    = 1
	currentAutomationsSchemaVersion = 1
)

func checkVersion(kind string, version, current int) error {
	if version > current {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, current)
	}

	return nil
}

func defaultVersion(version *int, current int) {
	if *version == 0 {
		*version = current
	}
}

type slotFileSchema struct {
	Version int        `toml:"version"`
	Slot    slotSchema `toml:"slot"`
}

type slotSchema struct {
	OccupantSessionID        string `toml:"occupant_session_id,omitempty"`
	OccupantType             string `toml:"occupant_type,omitempty"`
	Phase                    string `toml:"phase,omitempty"`
	SessionCreatedAt         string `toml:"session_created_at,omitempty"`
	LastActivityAt           string `toml:"last_activity_at,omitempty"`
	LastNetworkAvailableTime string `toml:"last_network_available_time,omitempty"`
	NetworkDownTime          string `toml:"network_down_time,omitempty"`
}

type queueFileSchema struct {
	Version int                   `toml:"version"`
	Entries []queuedSessionSchema `toml:"entries"`
}

type queuedSessionSchema struct {
	SessionID   string `toml:"session_id"`
	SessionType string `toml:"session_type"`
	Trigger     string `toml:"trigger"`
	QueuedAt    string `toml:"queued_at"`
}

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

type sessionSchema struct {
	ID           string `toml:"id"`
	Type         string `toml:"type"`
	Trigger      string `toml:"trigger"`
	AutomationID string `toml:"automation_id,omitempty"`
	Status       string `toml:"status"`
	ScheduledFor string `toml:"scheduled_for,omitempty"`
	CreatedAt    string `toml:"created_at"`
	StartedAt    string `toml:"started_at,omitempty"`
	EndedAt      string `toml:"ended_at,omitempty"`
	EndReason    string `toml:"end_reason,omitempty"`
}

type automationsFileSchema struct {
	Version     int                `toml:"version"`
	Automations []automationSchema `toml:"automations"`
}

type automationSchema struct {
	ID               string   `toml:"id"`
	Name             string   `toml:"name"`
	Schedule         string   `toml:"schedule"`
	Timezone         string   `toml:"timezone,omitempty"`
	Command          []string `toml:"command,omitempty"`
	Enabled          bool     `toml:"enabled"`
	CreatedAt        string   `toml:"created_at"`
	LastScheduledFor string   `toml:"last_scheduled_for,omitempty"`
}
