package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/slotctl/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memSlots struct {
	mu    sync.Mutex
	state domain.SlotState
}

func (m *memSlots) Load(context.Context) (domain.SlotState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *memSlots) Save(_ context.Context, state domain.SlotState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

type memQueue struct {
	mu      sync.Mutex
	entries []domain.QueuedSession
}

func (m *memQueue) List(context.Context) ([]domain.QueuedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append([]domain.QueuedSession(nil), m.entries...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].QueuedAt.Before(entries[j].QueuedAt) })
	return entries, nil
}

func (m *memQueue) Upsert(_ context.Context, entry domain.QueuedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].SessionID == entry.SessionID {
			m.entries[i] = entry
			return nil
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memQueue) Remove(_ context.Context, id domain.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for _, entry := range m.entries {
		if entry.SessionID != id {
			kept = append(kept, entry)
		}
	}
	m.entries = kept
	return nil
}

type memSessions struct {
	mu      sync.Mutex
	records map[domain.SessionID]domain.SessionRecord
}

func newMemSessions() *memSessions {
	return &memSessions{records: map[domain.SessionID]domain.SessionRecord{}}
}

func (m *memSessions) GetByID(_ context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return domain.SessionRecord{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return record, nil
}

func (m *memSessions) List(context.Context) ([]domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]domain.SessionRecord, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *memSessions) Save(_ context.Context, record domain.SessionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *memSessions) status(id domain.SessionID) domain.SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id].Status
}

type memAutomations struct {
	mu          sync.Mutex
	automations map[domain.AutomationID]domain.Automation
}

func newMemAutomations(automations ...domain.Automation) *memAutomations {
	m := &memAutomations{automations: map[domain.AutomationID]domain.Automation{}}
	for _, automation := range automations {
		m.automations[automation.ID] = automation
	}
	return m
}

func (m *memAutomations) GetByID(_ context.Context, id domain.AutomationID) (domain.Automation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	automation, ok := m.automations[id]
	if !ok {
		return domain.Automation{}, fmt.Errorf("%w: %s", domain.ErrAutomationNotFound, id)
	}
	return automation, nil
}

func (m *memAutomations) List(context.Context) ([]domain.Automation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	automations := make([]domain.Automation, 0, len(m.automations))
	for _, automation := range m.automations {
		automations = append(automations, automation)
	}
	return automations, nil
}

func (m *memAutomations) Save(_ context.Context, automation domain.Automation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.automations[automation.ID] = automation
	return nil
}

func (m *memAutomations) Delete(_ context.Context, id domain.AutomationID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.automations[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrAutomationNotFound, id)
	}
	delete(m.automations, id)
	return nil
}

// trackingRunner records starts and cancels and fails on overlap, which would mean
// two sessions doing work at once.
type trackingRunner struct {
	mu       sync.Mutex
	running  map[domain.SessionID]bool
	started  []domain.SessionID
	canceled []domain.SessionID
	startErr map[domain.SessionID]error
	overlap  bool
}

func newTrackingRunner() *trackingRunner {
	return &trackingRunner{running: map[domain.SessionID]bool{}, startErr: map[domain.SessionID]error{}}
}

func (r *trackingRunner) Start(_ context.Context, session domain.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.startErr[session.ID]; err != nil {
		return err
	}
	if len(r.running) > 0 {
		r.overlap = true
	}
	r.running[session.ID] = true
	r.started = append(r.started, session.ID)
	return nil
}

func (r *trackingRunner) Cancel(_ context.Context, id domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.running, id)
	r.canceled = append(r.canceled, id)
	return nil
}

// finish simulates work ending on its own.
func (r *trackingRunner) finish(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, id)
}

func (r *trackingRunner) Running() []domain.SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]domain.SessionID, 0, len(r.running))
	for id := range r.running {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *trackingRunner) snapshot() (started, canceled []domain.SessionID, overlap bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SessionID(nil), r.started...), append([]domain.SessionID(nil), r.canceled...), r.overlap
}
