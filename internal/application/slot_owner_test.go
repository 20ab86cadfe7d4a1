package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubDue struct {
	mu     sync.Mutex
	result domain.DueSession
	calls  int
}

func (s *stubDue) NextSession(context.Context) (domain.DueSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.result.Kind == "" {
		return domain.DueNone(), nil
	}
	return s.result, nil
}

func (s *stubDue) set(result domain.DueSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

type ownerHarness struct {
	owner       *SlotOwner
	clock       *fakeClock
	slots       *memSlots
	queue       *memQueue
	sessions    *memSessions
	automations *memAutomations
	runner      *trackingRunner
	due         *stubDue
}

func newOwnerHarness(t *testing.T, configure ...func(*SlotOwnerDeps)) *ownerHarness {
	t.Helper()

	h := &ownerHarness{
		clock:       newFakeClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)),
		slots:       &memSlots{},
		queue:       &memQueue{},
		sessions:    newMemSessions(),
		automations: newMemAutomations(),
		runner:      newTrackingRunner(),
		due:         &stubDue{},
	}

	deps := SlotOwnerDeps{
		Slots:       h.slots,
		Queue:       h.queue,
		Sessions:    h.sessions,
		Automations: h.automations,
		Due:         h.due,
		Runner:      h.runner,
		Clock:       h.clock,
	}
	for _, fn := range configure {
		fn(&deps)
	}

	h.owner = NewSlotOwner(domain.DefaultTimeouts(), 0, deps)
	go func() { _ = h.owner.Run(context.Background()) }()
	t.Cleanup(h.owner.Stop)

	return h
}

func (h *ownerHarness) request(t *testing.T, id domain.SessionID, sessionType domain.SessionType, trigger domain.Trigger) domain.ActivationResult {
	t.Helper()

	result, err := h.owner.Request(context.Background(), SessionRequest{SessionID: id, Type: sessionType, Trigger: trigger})
	require.NoError(t, err)
	return result
}

func (h *ownerHarness) state(t *testing.T) domain.SlotState {
	t.Helper()

	state, err := h.slots.Load(context.Background())
	require.NoError(t, err)
	return state
}

func (h *ownerHarness) queueIDs(t *testing.T) []domain.SessionID {
	t.Helper()

	entries, err := h.queue.List(context.Background())
	require.NoError(t, err)
	ids := make([]domain.SessionID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.SessionID)
	}
	return ids
}

func TestSlotOwnerActivatesOnFreeSlot(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	result := h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)

	assert.Equal(t, domain.ActivateImmediate("chat-1"), result)
	state := h.state(t)
	assert.True(t, state.OccupiedBy("chat-1"))
	assert.Equal(t, domain.PhaseStarting, state.Phase)
	assert.Equal(t, h.clock.Now(), state.SessionCreatedAt)
	assert.Equal(t, h.clock.Now(), state.LastNetworkAvailableTime)
	assert.Equal(t, domain.SessionStatusActive, h.sessions.status("chat-1"))

	started, _, _ := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"chat-1"}, started)
}

func TestSlotOwnerEvictionCancelsOccupantBeforeActivating(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-a", domain.SessionTypeChat, domain.TriggerManual)
	result := h.request(t, "chat-b", domain.SessionTypeChat, domain.TriggerManual)

	assert.Equal(t, domain.EvictAndActivate("chat-a", "chat-b", domain.EvictionCancelled), result)
	assert.True(t, h.state(t).OccupiedBy("chat-b"))

	evicted, err := h.sessions.GetByID(context.Background(), "chat-a")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCancelled, evicted.Status)
	assert.Equal(t, string(domain.EvictionCancelled), evicted.EndReason)

	started, canceled, overlap := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"chat-a", "chat-b"}, started)
	assert.Equal(t, []domain.SessionID{"chat-a"}, canceled)
	assert.False(t, overlap)
}

func TestSlotOwnerKeepsOccupantWhenCancelFails(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockSessionRunner(t)
	runner.EXPECT().Start(mock.Anything, mock.MatchedBy(func(r domain.SessionRecord) bool { return r.ID == "chat-a" })).Return(nil).Once()
	runner.EXPECT().Cancel(mock.Anything, domain.SessionID("chat-a")).Return(errors.New("process did not exit")).Once()

	h := newOwnerHarness(t, func(deps *SlotOwnerDeps) { deps.Runner = runner })

	h.request(t, "chat-a", domain.SessionTypeChat, domain.TriggerManual)
	_, err := h.owner.Request(context.Background(), SessionRequest{SessionID: "chat-b", Type: domain.SessionTypeChat, Trigger: domain.TriggerManual})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancel session chat-a")
	assert.True(t, h.state(t).OccupiedBy("chat-a"))
	assert.Equal(t, domain.SessionStatusActive, h.sessions.status("chat-a"))
}

func TestSlotOwnerEnqueuesManualAutomationBehindActiveChat(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.clock.Advance(time.Minute)
	result := h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)

	assert.Equal(t, domain.Enqueue("auto-1", domain.PriorityManualAutomation), result)
	assert.True(t, h.state(t).OccupiedBy("chat-1"))
	assert.Equal(t, []domain.SessionID{"auto-1"}, h.queueIDs(t))
	assert.Equal(t, domain.SessionStatusQueued, h.sessions.status("auto-1"))
}

func TestSlotOwnerSkipsScheduledAutomationOnBusySlot(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	result := h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerScheduled)

	assert.Equal(t, domain.ActivationSkip, result.Kind)
	assert.Empty(t, h.queueIDs(t))
	assert.Equal(t, domain.SessionStatusSkipped, h.sessions.status("auto-1"))
}

func TestSlotOwnerSkipsMalformedRequestWithoutPersisting(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	result := h.request(t, "x", "batch", domain.TriggerManual)

	assert.Equal(t, domain.ActivationSkip, result.Kind)
	_, err := h.sessions.GetByID(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, h.state(t).Occupied())
}

func TestSlotOwnerOccupantRequestRefreshesActivity(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.clock.Advance(4 * time.Minute)
	result := h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)

	assert.Equal(t, domain.ActivateImmediate("chat-1"), result)
	assert.Equal(t, h.clock.Now(), h.state(t).LastActivityAt)
	_, canceled, _ := h.runner.snapshot()
	assert.Empty(t, canceled)
}

func TestSlotOwnerNewerQueuedChatSupersedesOlder(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	assert.Equal(t, domain.ActivationEnqueue, h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual).Kind)
	h.clock.Advance(10 * time.Second)
	assert.Equal(t, domain.ActivationEnqueue, h.request(t, "chat-2", domain.SessionTypeChat, domain.TriggerManual).Kind)

	assert.Equal(t, []domain.SessionID{"chat-2"}, h.queueIDs(t))
	assert.Equal(t, domain.SessionStatusCancelled, h.sessions.status("chat-1"))
}

func TestSlotOwnerTickTimesOutStaleAutomationAndAdmitsQueuedChat(t *testing.T) {
	t.Parallel()

	metrics := mocks.NewMockDecisionRecorder(t)
	metrics.EXPECT().RecordDecision(mock.Anything).Return().Maybe()
	metrics.EXPECT().RecordOccupancy(mock.Anything).Return().Maybe()
	metrics.EXPECT().RecordSessionEnded(domain.SessionTypeAutomation, domain.SessionStatusTimedOut, 3*time.Minute).Return().Once()
	metrics.EXPECT().RecordTimeout(domain.SessionTypeAutomation).Return().Once()

	h := newOwnerHarness(t, func(deps *SlotOwnerDeps) { deps.Metrics = metrics })

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.clock.Advance(3 * time.Minute)

	require.NoError(t, h.owner.Tick(context.Background()))

	assert.Equal(t, domain.SessionStatusTimedOut, h.sessions.status("auto-1"))
	assert.True(t, h.state(t).OccupiedBy("chat-1"))
	assert.Empty(t, h.queueIDs(t))
	assert.Equal(t, domain.SessionStatusActive, h.sessions.status("chat-1"))

	_, canceled, overlap := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"auto-1"}, canceled)
	assert.False(t, overlap)
}

func TestSlotOwnerTickKeepsLoneChat(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.clock.Advance(time.Hour)

	require.NoError(t, h.owner.Tick(context.Background()))

	assert.True(t, h.state(t).OccupiedBy("chat-1"))
	assert.Equal(t, domain.SessionStatusActive, h.sessions.status("chat-1"))
}

func TestSlotOwnerTickEndsIdleChatForDueAutomation(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	scheduledFor := h.clock.Now().Add(2 * time.Minute)
	require.NoError(t, h.automations.Save(context.Background(), domain.Automation{ID: "nightly", Name: "Nightly", Schedule: "@daily", Enabled: true}))

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.clock.Advance(6 * time.Minute)
	h.due.set(domain.DueCreate("nightly", scheduledFor))

	require.NoError(t, h.owner.Tick(context.Background()))

	assert.Equal(t, domain.SessionStatusTimedOut, h.sessions.status("chat-1"))
	state := h.state(t)
	require.True(t, state.Occupied())
	assert.Equal(t, domain.SessionTypeAutomation, state.OccupantType)

	record, err := h.sessions.GetByID(context.Background(), state.OccupantSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.AutomationID("nightly"), record.AutomationID)
	assert.Equal(t, domain.TriggerScheduled, record.Trigger)
	assert.Equal(t, scheduledFor, record.ScheduledFor)
	assert.Equal(t, domain.SessionStatusActive, record.Status)

	automation, err := h.automations.GetByID(context.Background(), "nightly")
	require.NoError(t, err)
	assert.Equal(t, scheduledFor, automation.LastScheduledFor)
}

func TestSlotOwnerTickResumesInterruptedAutomation(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	require.NoError(t, h.sessions.Save(context.Background(), domain.SessionRecord{
		ID: "auto-7", Type: domain.SessionTypeAutomation, Trigger: domain.TriggerScheduled,
		Status: domain.SessionStatusActive, CreatedAt: h.clock.Now().Add(-time.Hour),
	}))
	h.due.set(domain.DueResume("auto-7"))

	require.NoError(t, h.owner.Tick(context.Background()))

	assert.True(t, h.state(t).OccupiedBy("auto-7"))
	started, _, _ := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"auto-7"}, started)
}

func TestSlotOwnerTickReapsOrphanedWork(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	require.NoError(t, h.slots.Save(context.Background(), domain.SlotState{}))

	require.NoError(t, h.owner.Tick(context.Background()))

	_, canceled, _ := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"auto-1"}, canceled)
	assert.Empty(t, h.runner.Running())
}

func TestSlotOwnerTickAdoptsAutomationAdmittedElsewhere(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)
	ctx := context.Background()

	now := h.clock.Now()
	require.NoError(t, h.sessions.Save(ctx, domain.SessionRecord{
		ID: "auto-9", Type: domain.SessionTypeAutomation, Trigger: domain.TriggerManual,
		Status: domain.SessionStatusActive, CreatedAt: now, StartedAt: now,
	}))
	require.NoError(t, h.slots.Save(ctx, domain.Occupy("auto-9", domain.SessionTypeAutomation, now)))

	require.NoError(t, h.owner.Tick(ctx))
	require.NoError(t, h.owner.Tick(ctx))

	started, _, _ := h.runner.snapshot()
	assert.Equal(t, []domain.SessionID{"auto-9"}, started)
	assert.True(t, h.state(t).OccupiedBy("auto-9"))

	h.runner.finish("auto-9")
	require.NoError(t, h.owner.Tick(ctx))
	started, _, _ = h.runner.snapshot()
	assert.Len(t, started, 1, "exited work is not restarted")
}

func TestSlotOwnerCompleteReleasesAndAdmitsNext(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	h.request(t, "auto-2", domain.SessionTypeAutomation, domain.TriggerManual)

	err := h.owner.Complete(context.Background(), "auto-2", nil)
	require.ErrorIs(t, err, domain.ErrNotOccupant)

	h.runner.finish("auto-1")
	require.NoError(t, h.owner.Complete(context.Background(), "auto-1", nil))

	assert.Equal(t, domain.SessionStatusCompleted, h.sessions.status("auto-1"))
	assert.True(t, h.state(t).OccupiedBy("auto-2"))
	assert.Empty(t, h.queueIDs(t))

	require.NoError(t, h.owner.Complete(context.Background(), "auto-1", nil), "completing an ended session is a no-op")

	h.runner.finish("auto-2")
	require.NoError(t, h.owner.Complete(context.Background(), "auto-2", errors.New("exit status 1")))

	failed, err := h.sessions.GetByID(context.Background(), "auto-2")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusFailed, failed.Status)
	assert.Equal(t, "exit status 1", failed.EndReason)
	assert.False(t, h.state(t).Occupied())

	_, _, overlap := h.runner.snapshot()
	assert.False(t, overlap)
}

func TestSlotOwnerCancel(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)
	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	h.request(t, "auto-2", domain.SessionTypeAutomation, domain.TriggerManual)

	require.NoError(t, h.owner.Cancel(context.Background(), "auto-1"))
	assert.Equal(t, domain.SessionStatusCancelled, h.sessions.status("auto-1"))
	assert.Equal(t, []domain.SessionID{"auto-2"}, h.queueIDs(t))

	require.NoError(t, h.owner.Cancel(context.Background(), "chat-1"))
	assert.Equal(t, domain.SessionStatusCancelled, h.sessions.status("chat-1"))
	assert.True(t, h.state(t).OccupiedBy("auto-2"))

	err := h.owner.Cancel(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSlotOwnerTracksCumulativeNetworkDownTime(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)
	ctx := context.Background()

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	require.NoError(t, h.owner.RecordActivity(ctx, "auto-1"))
	assert.Equal(t, domain.PhaseRunning, h.state(t).Phase)

	require.NoError(t, h.owner.SetPhase(ctx, "auto-1", domain.PhaseWaitingNetworkRetry))
	h.clock.Advance(3 * time.Minute)
	require.NoError(t, h.owner.NetworkAvailable(ctx))

	state := h.state(t)
	assert.Equal(t, domain.PhaseRunning, state.Phase)
	assert.Equal(t, 3*time.Minute, state.NetworkDownTime)
	assert.Equal(t, h.clock.Now(), state.LastActivityAt)

	require.NoError(t, h.owner.SetPhase(ctx, "auto-1", domain.PhaseWaitingNetworkRetry))
	h.clock.Advance(2 * time.Minute)
	require.NoError(t, h.owner.Tick(ctx))
	assert.True(t, h.state(t).OccupiedBy("auto-1"), "network retry never times out")

	require.NoError(t, h.owner.SetPhase(ctx, "auto-1", domain.PhaseRunning))
	state = h.state(t)
	assert.Equal(t, 5*time.Minute, state.NetworkDownTime)
	assert.Equal(t, 0*time.Minute, ActiveTime(state, h.clock.Now()))
}

func TestSlotOwnerShortOutageKeepsGlobalTimeout(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)
	ctx := context.Background()

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	for range 9 {
		h.clock.Advance(time.Minute)
		require.NoError(t, h.owner.RecordActivity(ctx, "auto-1"))
	}

	require.NoError(t, h.owner.SetPhase(ctx, "auto-1", domain.PhaseWaitingNetworkRetry))
	assert.Equal(t, h.clock.Now(), h.state(t).LastNetworkAvailableTime)
	h.clock.Advance(10 * time.Second)
	require.NoError(t, h.owner.SetPhase(ctx, "auto-1", domain.PhaseRunning))
	assert.Equal(t, 10*time.Second, h.state(t).NetworkDownTime)

	h.clock.Advance(time.Minute)
	require.NoError(t, h.owner.RecordActivity(ctx, "auto-1"))
	h.clock.Advance(20 * time.Second)

	state := h.state(t)
	assert.Equal(t, 10*time.Minute+20*time.Second, ActiveTime(state, h.clock.Now()))

	require.NoError(t, h.owner.Tick(ctx))
	assert.Equal(t, domain.SessionStatusTimedOut, h.sessions.status("auto-1"))
	assert.False(t, h.state(t).Occupied())
}

func TestSlotOwnerRejectsUpdatesFromNonOccupant(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)
	ctx := context.Background()

	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)

	require.ErrorIs(t, h.owner.RecordActivity(ctx, "chat-2"), domain.ErrNotOccupant)
	require.ErrorIs(t, h.owner.SetPhase(ctx, "chat-2", domain.PhaseRunning), domain.ErrNotOccupant)
	require.ErrorIs(t, h.owner.SetPhase(ctx, "chat-1", "sleeping"), domain.ErrInvalidPhase)
}

func TestSlotOwnerStartFailureReleasesSlot(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)
	h.runner.startErr["auto-1"] = errors.New("no such binary")

	_, err := h.owner.Request(context.Background(), SessionRequest{SessionID: "auto-1", Type: domain.SessionTypeAutomation, Trigger: domain.TriggerManual})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such binary")
	assert.False(t, h.state(t).Occupied())
	assert.Equal(t, domain.SessionStatusFailed, h.sessions.status("auto-1"))
}

func TestSlotOwnerSnapshot(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.request(t, "auto-1", domain.SessionTypeAutomation, domain.TriggerManual)
	h.request(t, "chat-1", domain.SessionTypeChat, domain.TriggerManual)

	snapshot, err := h.owner.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, h.clock.Now(), snapshot.Now)
	assert.True(t, snapshot.State.OccupiedBy("auto-1"))
	require.NotNil(t, snapshot.Occupant)
	assert.Equal(t, domain.SessionID("auto-1"), snapshot.Occupant.ID)
	require.Len(t, snapshot.Queue, 1)
	assert.Equal(t, domain.SessionID("chat-1"), snapshot.Queue[0].SessionID)
}

func TestSlotOwnerSerializesConcurrentRequests(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	var wg sync.WaitGroup
	for i := range 24 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := SessionRequest{SessionID: domain.SessionID(fmt.Sprintf("chat-%d", i)), Type: domain.SessionTypeChat, Trigger: domain.TriggerManual}
			if i%3 == 0 {
				req = SessionRequest{SessionID: domain.SessionID(fmt.Sprintf("auto-%d", i)), Type: domain.SessionTypeAutomation, Trigger: domain.TriggerManual}
			}
			_, err := h.owner.Request(context.Background(), req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := h.sessions.List(context.Background())
	require.NoError(t, err)
	active := 0
	for _, record := range records {
		if record.Status == domain.SessionStatusActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.True(t, h.state(t).Occupied())
	assert.Len(t, h.runner.Running(), 1)

	_, _, overlap := h.runner.snapshot()
	assert.False(t, overlap)
}

func TestSlotOwnerStopped(t *testing.T) {
	t.Parallel()
	h := newOwnerHarness(t)

	h.owner.Stop()

	_, err := h.owner.Request(context.Background(), SessionRequest{SessionID: "chat-1", Type: domain.SessionTypeChat, Trigger: domain.TriggerManual})
	require.ErrorIs(t, err, ErrSlotOwnerStopped)
	require.ErrorIs(t, h.owner.Run(context.Background()), ErrSlotOwnerStopped)
}

func TestSlotOwnerRunAfterStopWithoutStart(t *testing.T) {
	t.Parallel()

	owner := NewSlotOwner(domain.DefaultTimeouts(), 0, SlotOwnerDeps{
		Slots:    &memSlots{},
		Queue:    &memQueue{},
		Sessions: newMemSessions(),
		Runner:   newTrackingRunner(),
	})
	owner.Stop()

	done := make(chan error, 1)
	go func() { done <- owner.Run(context.Background()) }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrSlotOwnerStopped)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
