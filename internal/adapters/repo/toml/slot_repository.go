package toml

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/spf13/viper"
)

const (
	SlotPathKey   = "slot.path"
	slotFileName  = "slot.toml"
	QueuePathKey  = "queue.path"
	queueFileName = "queue.toml"
)

type SlotRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SlotStateRepository = (*SlotRepository)(nil)

func NewSlotRepository(cfg *viper.Viper) (*SlotRepository, error) {
	path, err := resolvePath(cfg, SlotPathKey, slotFileName)
	if err != nil {
		return nil, err
	}

	return &SlotRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SlotRepository) Load(ctx context.Context) (domain.SlotState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SlotState{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file slotFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return domain.SlotState{}, fmt.Errorf("decode slot file: %w", err)
	}
	if err := checkVersion("slot", file.Version, currentSlotSchemaVersion); err != nil {
		return domain.SlotState{}, err
	}

	state, err := fromSlotSchema(file.Slot)
	if err != nil {
		return domain.SlotState{}, fmt.Errorf("decode slot file: %w", err)
	}
	if err := state.Validate(); err != nil {
		return domain.SlotState{}, fmt.Errorf("invalid slot file: %w", err)
	}

	return state, nil
}

func (r *SlotRepository) Save(ctx context.Context, state domain.SlotState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := slotFileSchema{Slot: toSlotSchema(state)}
	defaultVersion(&file.Version, currentSlotSchemaVersion)

	return writeTOMLFile(r.path, file)
}

type QueueRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.QueueRepository = (*QueueRepository)(nil)

func NewQueueRepository(cfg *viper.Viper) (*QueueRepository, error) {
	path, err := resolvePath(cfg, QueuePathKey, queueFileName)
	if err != nil {
		return nil, err
	}

	return &QueueRepository{path: path, mu: lockForPath(path)}, nil
}

// List returns entries oldest first.
func (r *QueueRepository) List(ctx context.Context) ([]domain.QueuedSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.QueuedSession, 0, len(file.Entries))
	for _, entry := range file.Entries {
		decoded, err := fromQueuedSessionSchema(entry)
		if err != nil {
			return nil, err
		}
		entries = append(entries, decoded)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].QueuedAt.Before(entries[j].QueuedAt)
	})

	return entries, nil
}

func (r *QueueRepository) Upsert(ctx context.Context, entry domain.QueuedSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entry.Queueable() {
		return fmt.Errorf("session %s (%s/%s) cannot be queued", entry.SessionID, entry.SessionType, entry.Trigger)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toQueuedSessionSchema(entry)
	updated := false
	for i := range file.Entries {
		if file.Entries[i].SessionID == encoded.SessionID {
			file.Entries[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Entries = append(file.Entries, encoded)
	}

	return writeTOMLFile(r.path, file)
}

// Remove deletes the entry for id; removing an absent entry is not an error.
func (r *QueueRepository) Remove(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Entries[:0]
	removed := false
	for _, entry := range file.Entries {
		if entry.SessionID == string(id) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return nil
	}
	file.Entries = kept

	return writeTOMLFile(r.path, file)
}

func (r *QueueRepository) readSchema() (queueFileSchema, error) {
	var file queueFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return queueFileSchema{}, fmt.Errorf("decode queue file: %w", err)
	}
	if err := checkVersion("queue", file.Version, currentQueueSchemaVersion); err != nil {
		return queueFileSchema{}, err
	}
	defaultVersion(&file.Version, currentQueueSchemaVersion)

	return file, nil
}

func toSlotSchema(state domain.SlotState) slotSchema {
	return slotSchema{
		OccupantSessionID:        string(state.OccupantSessionID),
		OccupantType:             string(state.OccupantType),
		Phase:                    string(state.Phase),
		SessionCreatedAt:         formatTime(state.SessionCreatedAt),
		LastActivityAt:           formatTime(state.LastActivityAt),
		LastNetworkAvailableTime: formatTime(state.LastNetworkAvailableTime),
		NetworkDownTime:          formatDuration(state.NetworkDownTime),
	}
}

func fromSlotSchema(schema slotSchema) (domain.SlotState, error) {
	state := domain.SlotState{
		OccupantSessionID: domain.SessionID(schema.OccupantSessionID),
		OccupantType:      domain.SessionType(schema.OccupantType),
		Phase:             domain.Phase(schema.Phase),
	}

	var err error
	if state.SessionCreatedAt, err = parseTime("session_created_at", schema.SessionCreatedAt); err != nil {
		return domain.SlotState{}, err
	}
	if state.LastActivityAt, err = parseTime("last_activity_at", schema.LastActivityAt); err != nil {
		return domain.SlotState{}, err
	}
	if state.LastNetworkAvailableTime, err = parseTime("last_network_available_time", schema.LastNetworkAvailableTime); err != nil {
		return domain.SlotState{}, err
	}
	if state.NetworkDownTime, err = parseDuration("network_down_time", schema.NetworkDownTime); err != nil {
		return domain.SlotState{}, err
	}

	return state, nil
}

func toQueuedSessionSchema(entry domain.QueuedSession) queuedSessionSchema {
	return queuedSessionSchema{
		SessionID:   string(entry.SessionID),
		SessionType: string(entry.SessionType),
		Trigger:     string(entry.Trigger),
		QueuedAt:    formatTime(entry.QueuedAt),
	}
}

func fromQueuedSessionSchema(schema queuedSessionSchema) (domain.QueuedSession, error) {
	queuedAt, err := parseTime("queued_at", schema.QueuedAt)
	if err != nil {
		return domain.QueuedSession{}, fmt.Errorf("decode queue entry %s: %w", schema.SessionID, err)
	}

	return domain.QueuedSession{
		SessionID:   domain.SessionID(schema.SessionID),
		SessionType: domain.SessionType(schema.SessionType),
		Trigger:     domain.Trigger(schema.Trigger),
		QueuedAt:    queuedAt,
	}, nil
}
