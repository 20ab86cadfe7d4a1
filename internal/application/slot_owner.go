package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/google/uuid"
)

var ErrSlotOwnerStopped = errors.New("slot owner is not running")

// maxAdmissionsPerPass bounds how many candidates one pass may try when activations fail.
const maxAdmissionsPerPass = 8

type SessionRequest struct {
	SessionID    domain.SessionID
	Type         domain.SessionType
	Trigger      domain.Trigger
	AutomationID domain.AutomationID
}

type SlotSnapshot struct {
	Now      time.Time
	State    domain.SlotState
	Occupant *domain.SessionRecord
	Queue    []domain.QueuedSession
}

type SlotOwnerDeps struct {
	Slots       ports.SlotStateRepository
	Queue       ports.QueueRepository
	Sessions    ports.SessionRepository
	Automations ports.AutomationRepository
	Due         ports.DueProvider
	Runner      ports.SessionRunner
	Metrics     ports.DecisionRecorder
	Clock       ports.Clock
	Logger      *slog.Logger
}

type operation struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// SlotOwner applies arbiter decisions to the slot. Every read-decide-mutate sequence
// runs on the goroutine started by Run, so decisions are strictly serialized.
type SlotOwner struct {
	arbiter  *Arbiter
	selector *DequeueSelector
	detector *TimeoutDetector

	slots       ports.SlotStateRepository
	queue       ports.QueueRepository
	sessions    ports.SessionRepository
	automations ports.AutomationRepository
	due         ports.DueProvider
	runner      ports.SessionRunner
	metrics     ports.DecisionRecorder
	clock       ports.Clock
	logger      *slog.Logger
	heartbeat   time.Duration

	// launched holds occupants whose work this owner started. Only the Run goroutine touches it.
	launched map[domain.SessionID]bool

	ops    chan operation
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

func NewSlotOwner(timeouts domain.Timeouts, heartbeat time.Duration, deps SlotOwnerDeps) *SlotOwner {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopDecisionRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	return &SlotOwner{
		arbiter:     NewArbiter(timeouts, deps.Clock),
		selector:    NewDequeueSelector(deps.Due),
		detector:    NewTimeoutDetector(timeouts, deps.Clock),
		slots:       deps.Slots,
		queue:       deps.Queue,
		sessions:    deps.Sessions,
		automations: deps.Automations,
		due:         deps.Due,
		runner:      deps.Runner,
		metrics:     deps.Metrics,
		clock:       deps.Clock,
		logger:      deps.Logger.With("component", "slot_owner"),
		heartbeat:   heartbeat,
		launched:    map[domain.SessionID]bool{},
		ops:         make(chan operation),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Run processes operations and heartbeat ticks until ctx is cancelled or Stop is
// called. A non-positive heartbeat disables the periodic tick.
func (o *SlotOwner) Run(ctx context.Context) error {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return ErrSlotOwnerStopped
	}
	if o.started {
		o.mu.Unlock()
		return errors.New("slot owner already running")
	}
	o.started = true
	o.mu.Unlock()
	defer close(o.doneCh)

	var tickC <-chan time.Time
	if o.heartbeat > 0 {
		ticker := time.NewTicker(o.heartbeat)
		defer ticker.Stop()
		tickC = ticker.C
	}

	o.logger.Info("slot owner started", "heartbeat", o.heartbeat)
	for {
		select {
		case <-ctx.Done():
			o.logger.Info("slot owner stopping (context cancelled)")
			return ctx.Err()
		case <-o.stopCh:
			o.logger.Info("slot owner stopping (stop called)")
			return nil
		case op := <-o.ops:
			op.done <- op.fn(op.ctx)
		case <-tickC:
			if err := o.tick(ctx); err != nil {
				o.logger.Error("heartbeat tick", "error", err)
			}
		}
	}
}

// Stop ends Run and waits for the in-flight operation to finish.
func (o *SlotOwner) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	started := o.started
	o.mu.Unlock()

	close(o.stopCh)
	if started {
		<-o.doneCh
	}
}

func (o *SlotOwner) do(ctx context.Context, fn func(context.Context) error) error {
	op := operation{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case o.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-o.doneCh:
		return ErrSlotOwnerStopped
	case <-o.stopCh:
		return ErrSlotOwnerStopped
	}

	select {
	case err := <-op.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *SlotOwner) Request(ctx context.Context, req SessionRequest) (domain.ActivationResult, error) {
	var result domain.ActivationResult
	err := o.do(ctx, func(ctx context.Context) error {
		var err error
		result, err = o.request(ctx, req)
		return err
	})
	return result, err
}

func (o *SlotOwner) RecordActivity(ctx context.Context, id domain.SessionID) error {
	return o.do(ctx, func(ctx context.Context) error {
		return o.updateOccupant(ctx, id, func(state *domain.SlotState, now time.Time) {
			state.LastActivityAt = now
			if state.Phase == domain.PhaseStarting {
				state.Phase = domain.PhaseRunning
			}
		})
	})
}

func (o *SlotOwner) SetPhase(ctx context.Context, id domain.SessionID, phase domain.Phase) error {
	if !phase.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPhase, phase)
	}

	return o.do(ctx, func(ctx context.Context) error {
		return o.updateOccupant(ctx, id, func(state *domain.SlotState, now time.Time) {
			switch {
			case state.Phase == domain.PhaseWaitingNetworkRetry && phase != domain.PhaseWaitingNetworkRetry:
				endNetworkRetry(state, now)
			case state.Phase != domain.PhaseWaitingNetworkRetry && phase == domain.PhaseWaitingNetworkRetry:
				// The occupant was online until this retry episode began.
				state.LastNetworkAvailableTime = now
			}
			if phase != domain.PhaseWaitingNetworkRetry {
				state.LastActivityAt = now
			}
			state.Phase = phase
		})
	})
}

// NetworkAvailable records confirmed connectivity. An occupant retrying the network
// goes back to running and the finished outage is added to its down time.
func (o *SlotOwner) NetworkAvailable(ctx context.Context) error {
	return o.do(ctx, func(ctx context.Context) error {
		state, err := o.slots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load slot state: %w", err)
		}
		if !state.Occupied() {
			return nil
		}

		now := o.clock.Now()
		if state.Phase == domain.PhaseWaitingNetworkRetry {
			endNetworkRetry(&state, now)
			state.Phase = domain.PhaseRunning
			state.LastActivityAt = now
		} else {
			state.LastNetworkAvailableTime = now
		}

		return o.saveState(ctx, state)
	})
}

func endNetworkRetry(state *domain.SlotState, now time.Time) {
	if episode := now.Sub(state.LastNetworkAvailableTime); episode > 0 {
		state.NetworkDownTime += episode
	}
	state.LastNetworkAvailableTime = now
}

// Complete ends the occupant after its work finished and admits the next session.
// Completing a session that already ended is a no-op.
func (o *SlotOwner) Complete(ctx context.Context, id domain.SessionID, runErr error) error {
	return o.do(ctx, func(ctx context.Context) error {
		state, err := o.slots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load slot state: %w", err)
		}

		if !state.OccupiedBy(id) {
			record, err := o.sessions.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get session %s: %w", id, err)
			}
			if record.Status.Terminal() {
				return nil
			}
			return fmt.Errorf("%w: %s", domain.ErrNotOccupant, id)
		}

		status, reason := domain.SessionStatusCompleted, ""
		if runErr != nil {
			status, reason = domain.SessionStatusFailed, runErr.Error()
		}
		if err := o.release(ctx, state, status, reason); err != nil {
			return err
		}

		return o.admitNext(ctx)
	})
}

// Cancel withdraws a queued session or cancels the occupant.
func (o *SlotOwner) Cancel(ctx context.Context, id domain.SessionID) error {
	return o.do(ctx, func(ctx context.Context) error {
		state, err := o.slots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load slot state: %w", err)
		}

		if state.OccupiedBy(id) {
			if err := o.stopOccupant(ctx, state, domain.SessionStatusCancelled, "cancelled by request"); err != nil {
				return err
			}
			return o.admitNext(ctx)
		}

		queue, err := o.queue.List(ctx)
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}
		for _, entry := range queue {
			if entry.SessionID == id {
				return o.dropQueued(ctx, entry, "cancelled by request")
			}
		}

		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	})
}

// Tick runs one heartbeat: time out a stale occupant, then admit waiting work.
func (o *SlotOwner) Tick(ctx context.Context) error {
	return o.do(ctx, o.tick)
}

func (o *SlotOwner) Snapshot(ctx context.Context) (SlotSnapshot, error) {
	var snapshot SlotSnapshot
	err := o.do(ctx, func(ctx context.Context) error {
		state, err := o.slots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load slot state: %w", err)
		}
		queue, err := o.queue.List(ctx)
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}

		snapshot = SlotSnapshot{Now: o.clock.Now(), State: state, Queue: queue}
		if state.Occupied() {
			record, err := o.sessions.GetByID(ctx, state.OccupantSessionID)
			if err == nil {
				snapshot.Occupant = &record
			} else if !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("get occupant session: %w", err)
			}
		}
		return nil
	})
	return snapshot, err
}

func (o *SlotOwner) request(ctx context.Context, req SessionRequest) (domain.ActivationResult, error) {
	state, err := o.slots.Load(ctx)
	if err != nil {
		return domain.ActivationResult{}, fmt.Errorf("load slot state: %w", err)
	}

	if state.OccupiedBy(req.SessionID) {
		state.LastActivityAt = o.clock.Now()
		if err := o.saveState(ctx, state); err != nil {
			return domain.ActivationResult{}, err
		}
		return domain.ActivateImmediate(req.SessionID), nil
	}

	result := o.arbiter.RequestSession(req.SessionID, req.Type, req.Trigger, state)
	o.metrics.RecordDecision(result.Kind)
	o.logger.Info("slot decision",
		"session_id", req.SessionID,
		"session_type", req.Type,
		"trigger", req.Trigger,
		"occupant_id", state.OccupantSessionID,
		"decision", result.Kind,
		"reason", result.Reason,
	)

	if result.Kind == domain.ActivationSkip && (!req.Type.Valid() || !req.Trigger.Valid() || req.SessionID == "") {
		return result, nil
	}

	record, err := o.recordForRequest(ctx, req)
	if err != nil {
		return domain.ActivationResult{}, err
	}

	switch result.Kind {
	case domain.ActivationImmediate:
		err = o.activate(ctx, record)
	case domain.ActivationEvict:
		if err = o.stopOccupant(ctx, state, domain.SessionStatusCancelled, string(result.EvictionReason)); err == nil {
			err = o.activate(ctx, record)
		}
	case domain.ActivationEnqueue:
		err = o.enqueue(ctx, record)
	case domain.ActivationSkip:
		err = o.endRecord(ctx, record, domain.SessionStatusSkipped, result.Reason)
	default:
		err = fmt.Errorf("unknown activation kind %q", result.Kind)
	}
	if err != nil {
		return domain.ActivationResult{}, err
	}

	return result, nil
}

func (o *SlotOwner) recordForRequest(ctx context.Context, req SessionRequest) (domain.SessionRecord, error) {
	record, err := o.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.SessionRecord{}, fmt.Errorf("get session %s: %w", req.SessionID, err)
		}
		return domain.SessionRecord{
			ID:           req.SessionID,
			Type:         req.Type,
			Trigger:      req.Trigger,
			AutomationID: req.AutomationID,
			Status:       domain.SessionStatusPending,
			CreatedAt:    o.clock.Now(),
		}, nil
	}

	record.Type = req.Type
	record.Trigger = req.Trigger
	if req.AutomationID != "" {
		record.AutomationID = req.AutomationID
	}
	if record.Status.Terminal() {
		record.Status = domain.SessionStatusPending
		record.EndedAt = time.Time{}
		record.EndReason = ""
	}

	return record, nil
}

func (o *SlotOwner) activate(ctx context.Context, record domain.SessionRecord) error {
	now := o.clock.Now()

	if err := o.queue.Remove(ctx, record.ID); err != nil {
		return fmt.Errorf("remove %s from queue: %w", record.ID, err)
	}

	record.Status = domain.SessionStatusActive
	record.StartedAt = now
	record.EndedAt = time.Time{}
	record.EndReason = ""
	if err := o.sessions.Save(ctx, record); err != nil {
		return fmt.Errorf("save session %s: %w", record.ID, err)
	}

	state := domain.Occupy(record.ID, record.Type, now)
	if err := o.saveState(ctx, state); err != nil {
		return err
	}

	if err := o.runner.Start(ctx, record); err != nil {
		startErr := fmt.Errorf("start session %s: %w", record.ID, err)
		if releaseErr := o.release(ctx, state, domain.SessionStatusFailed, err.Error()); releaseErr != nil {
			return errors.Join(startErr, releaseErr)
		}
		return startErr
	}
	o.launched[record.ID] = true

	o.logger.Info("session activated", "session_id", record.ID, "session_type", record.Type, "trigger", record.Trigger)
	return nil
}

func (o *SlotOwner) enqueue(ctx context.Context, record domain.SessionRecord) error {
	now := o.clock.Now()

	queue, err := o.queue.List(ctx)
	if err != nil {
		return fmt.Errorf("list queue: %w", err)
	}

	entry := domain.QueuedSession{SessionID: record.ID, SessionType: record.Type, Trigger: record.Trigger, QueuedAt: now}
	for _, queued := range queue {
		if queued.SessionID == record.ID {
			entry.QueuedAt = queued.QueuedAt
			continue
		}
		if record.Type == domain.SessionTypeChat && queued.SessionType == domain.SessionTypeChat {
			if err := o.dropQueued(ctx, queued, fmt.Sprintf("superseded by chat %s", record.ID)); err != nil {
				return err
			}
		}
	}

	if err := o.queue.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("enqueue %s: %w", record.ID, err)
	}

	record.Status = domain.SessionStatusQueued
	if err := o.sessions.Save(ctx, record); err != nil {
		return fmt.Errorf("save session %s: %w", record.ID, err)
	}

	return nil
}

func (o *SlotOwner) dropQueued(ctx context.Context, entry domain.QueuedSession, reason string) error {
	if err := o.queue.Remove(ctx, entry.SessionID); err != nil {
		return fmt.Errorf("remove %s from queue: %w", entry.SessionID, err)
	}

	record, err := o.sessions.GetByID(ctx, entry.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("get session %s: %w", entry.SessionID, err)
	}

	return o.endRecord(ctx, record, domain.SessionStatusCancelled, reason)
}

// stopOccupant cancels the occupant's work, waits for it to stop, then frees the slot.
func (o *SlotOwner) stopOccupant(ctx context.Context, state domain.SlotState, status domain.SessionStatus, reason string) error {
	if err := o.runner.Cancel(ctx, state.OccupantSessionID); err != nil {
		return fmt.Errorf("cancel session %s: %w", state.OccupantSessionID, err)
	}

	return o.release(ctx, state, status, reason)
}

func (o *SlotOwner) release(ctx context.Context, state domain.SlotState, status domain.SessionStatus, reason string) error {
	now := o.clock.Now()

	record, err := o.sessions.GetByID(ctx, state.OccupantSessionID)
	switch {
	case err == nil:
		if err := o.endRecord(ctx, record, status, reason); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrSessionNotFound):
		o.logger.Warn("occupant has no session record", "session_id", state.OccupantSessionID)
	default:
		return fmt.Errorf("get session %s: %w", state.OccupantSessionID, err)
	}

	if err := o.saveState(ctx, domain.SlotState{}); err != nil {
		return err
	}
	delete(o.launched, state.OccupantSessionID)

	o.metrics.RecordSessionEnded(state.OccupantType, status, now.Sub(state.SessionCreatedAt))
	o.logger.Info("session ended", "session_id", state.OccupantSessionID, "session_type", state.OccupantType, "status", status, "reason", reason)
	return nil
}

func (o *SlotOwner) endRecord(ctx context.Context, record domain.SessionRecord, status domain.SessionStatus, reason string) error {
	record.Status = status
	record.EndedAt = o.clock.Now()
	record.EndReason = reason

	if err := o.sessions.Save(ctx, record); err != nil {
		return fmt.Errorf("save session %s: %w", record.ID, err)
	}
	return nil
}

func (o *SlotOwner) updateOccupant(ctx context.Context, id domain.SessionID, mutate func(*domain.SlotState, time.Time)) error {
	state, err := o.slots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load slot state: %w", err)
	}
	if !state.OccupiedBy(id) {
		return fmt.Errorf("%w: %s", domain.ErrNotOccupant, id)
	}

	mutate(&state, o.clock.Now())
	return o.saveState(ctx, state)
}

func (o *SlotOwner) saveState(ctx context.Context, state domain.SlotState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if err := o.slots.Save(ctx, state); err != nil {
		return fmt.Errorf("save slot state: %w", err)
	}

	o.metrics.RecordOccupancy(state)
	return nil
}

func (o *SlotOwner) tick(ctx context.Context) error {
	state, err := o.slots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load slot state: %w", err)
	}
	if err := o.reapOrphans(ctx, state); err != nil {
		return err
	}
	if err := o.adoptOccupant(ctx, state); err != nil {
		return err
	}
	if state, err = o.slots.Load(ctx); err != nil {
		return fmt.Errorf("load slot state: %w", err)
	}

	if state.Occupied() {
		waiting, err := o.hasWaitingWork(ctx)
		if err != nil {
			return err
		}

		if o.detector.ShouldTimeout(state, waiting) {
			now := o.clock.Now()
			o.metrics.RecordTimeout(state.OccupantType)
			o.logger.Warn("session timed out",
				"session_id", state.OccupantSessionID,
				"session_type", state.OccupantType,
				"phase", state.Phase,
				"idle", now.Sub(state.LastActivityAt),
				"active", ActiveTime(state, now),
			)
			if err := o.stopOccupant(ctx, state, domain.SessionStatusTimedOut, "session went stale"); err != nil {
				return err
			}
		} else {
			o.logger.Debug("heartbeat: occupant healthy", "session_id", state.OccupantSessionID, "waiting", waiting)
			return nil
		}
	}

	return o.admitNext(ctx)
}

// runningLister is implemented by runners that know which sessions still have live work.
type runningLister interface {
	Running() []domain.SessionID
}

// reapOrphans stops work left running for sessions that no longer hold the slot,
// e.g. after another process released it through the state files.
func (o *SlotOwner) reapOrphans(ctx context.Context, state domain.SlotState) error {
	lister, ok := o.runner.(runningLister)
	if !ok {
		return nil
	}

	for _, id := range lister.Running() {
		if state.OccupiedBy(id) {
			continue
		}
		o.logger.Warn("stopping work of session that no longer holds the slot", "session_id", id)
		if err := o.runner.Cancel(ctx, id); err != nil {
			return fmt.Errorf("cancel orphaned session %s: %w", id, err)
		}
	}

	return nil
}

// adoptOccupant starts work for an automation another process admitted into the slot.
// Occupants this owner launched itself are left alone, even after their work exited.
func (o *SlotOwner) adoptOccupant(ctx context.Context, state domain.SlotState) error {
	lister, ok := o.runner.(runningLister)
	if !ok || !state.Occupied() || state.OccupantType != domain.SessionTypeAutomation || o.launched[state.OccupantSessionID] {
		return nil
	}
	for _, id := range lister.Running() {
		if id == state.OccupantSessionID {
			return nil
		}
	}

	record, err := o.sessions.GetByID(ctx, state.OccupantSessionID)
	if err != nil {
		return fmt.Errorf("get session %s: %w", state.OccupantSessionID, err)
	}

	o.logger.Info("adopting slot occupant", "session_id", record.ID)
	if err := o.runner.Start(ctx, record); err != nil {
		o.logger.Error("start adopted session", "session_id", record.ID, "error", err)
		return o.release(ctx, state, domain.SessionStatusFailed, err.Error())
	}
	o.launched[record.ID] = true

	return nil
}

func (o *SlotOwner) hasWaitingWork(ctx context.Context) (bool, error) {
	queue, err := o.queue.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list queue: %w", err)
	}
	if len(queue) > 0 {
		return true, nil
	}
	if o.due == nil {
		return false, nil
	}

	due, err := o.due.NextSession(ctx)
	if err != nil {
		return false, fmt.Errorf("query due automation: %w", err)
	}
	return due.Pending(), nil
}

// admitNext fills a free slot with the selector's choice. Candidates that fail to
// start are marked failed and the next one is tried.
func (o *SlotOwner) admitNext(ctx context.Context) error {
	for range maxAdmissionsPerPass {
		state, err := o.slots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load slot state: %w", err)
		}
		if state.Occupied() {
			return nil
		}

		queue, err := o.queue.List(ctx)
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}

		target, ok, err := o.selector.NextSession(ctx, queue)
		if err != nil {
			return err
		}
		if !ok {
			o.logger.Debug("slot free, nothing waiting")
			return nil
		}

		record, err := o.recordForTarget(ctx, target)
		if err != nil {
			return err
		}

		o.metrics.RecordDecision(domain.ActivationImmediate)
		if err := o.activate(ctx, record); err != nil {
			o.logger.Error("activate next session", "session_id", record.ID, "error", err)
			continue
		}
		return nil
	}

	return nil
}

func (o *SlotOwner) recordForTarget(ctx context.Context, target domain.SessionToActivate) (domain.SessionRecord, error) {
	now := o.clock.Now()

	if target.Resumes() {
		record, err := o.sessions.GetByID(ctx, target.SessionID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) || !target.RemoveFromQueue {
			return domain.SessionRecord{}, fmt.Errorf("get session %s: %w", target.SessionID, err)
		}
		return domain.SessionRecord{
			ID:        target.SessionID,
			Type:      target.SessionType,
			Trigger:   target.Trigger,
			Status:    domain.SessionStatusPending,
			CreatedAt: now,
		}, nil
	}

	automation, err := o.automations.GetByID(ctx, target.AutomationID)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("get automation %s: %w", target.AutomationID, err)
	}
	automation.LastScheduledFor = target.ScheduledFor
	if err := o.automations.Save(ctx, automation); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("save automation %s: %w", automation.ID, err)
	}

	record := domain.SessionRecord{
		ID:           domain.SessionID(uuid.NewString()),
		Type:         target.SessionType,
		Trigger:      target.Trigger,
		AutomationID: target.AutomationID,
		Status:       domain.SessionStatusPending,
		ScheduledFor: target.ScheduledFor,
		CreatedAt:    now,
	}
	if err := o.sessions.Save(ctx, record); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("save session %s: %w", record.ID, err)
	}

	return record, nil
}
