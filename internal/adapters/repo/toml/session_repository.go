package toml

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/spf13/viper"
)

const (
	SessionsPathKey  = "sessions.path"
	sessionsFileName = "sessions.toml"
)

type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	path, err := resolvePath(cfg, SessionsPathKey, sessionsFileName)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionRecord{}, err
	}

	for _, session := range file.Sessions {
		if session.ID == string(id) {
			return fromSessionSchema(session)
		}
	}

	return domain.SessionRecord{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
}

// List returns records ordered by creation time, then id.
func (r *SessionRepository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(file.Sessions))
	for _, session := range file.Sessions {
		record, err := fromSessionSchema(session)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

func (r *SessionRepository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	record.ID = domain.SessionID(strings.TrimSpace(string(record.ID)))
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSessionSchema(record)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	var file sessionsFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return sessionsFileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := checkVersion("sessions", file.Version, currentSessionsSchemaVersion); err != nil {
		return sessionsFileSchema{}, err
	}
	defaultVersion(&file.Version, currentSessionsSchemaVersion)

	return file, nil
}

func toSessionSchema(record domain.SessionRecord) sessionSchema {
	return sessionSchema{
		ID:           string(record.ID),
		Type:         string(record.Type),
		Trigger:      string(record.Trigger),
		AutomationID: string(record.AutomationID),
		Status:       string(record.Status),
		ScheduledFor: formatTime(record.ScheduledFor),
		CreatedAt:    formatTime(record.CreatedAt),
		StartedAt:    formatTime(record.StartedAt),
		EndedAt:      formatTime(record.EndedAt),
		EndReason:    record.EndReason,
	}
}

func fromSessionSchema(schema sessionSchema) (domain.SessionRecord, error) {
	record := domain.SessionRecord{
		ID:           domain.SessionID(schema.ID),
		Type:         domain.SessionType(schema.Type),
		Trigger:      domain.Trigger(schema.Trigger),
		AutomationID: domain.AutomationID(schema.AutomationID),
		Status:       domain.SessionStatus(schema.Status),
		EndReason:    schema.EndReason,
	}

	var err error
	if record.ScheduledFor, err = parseTime("scheduled_for", schema.ScheduledFor); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session %s: %w", schema.ID, err)
	}
	if record.CreatedAt, err = parseTime("created_at", schema.CreatedAt); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session %s: %w", schema.ID, err)
	}
	if record.StartedAt, err = parseTime("started_at", schema.StartedAt); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session %s: %w", schema.ID, err)
	}
	if record.EndedAt, err = parseTime("ended_at", schema.EndedAt); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session %s: %w", schema.ID, err)
	}

	return record, nil
}
