package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
)

const (
	defaultStopGrace = 10 * time.Second
	maxOutputLine    = 1024 * 1024
)

// Reporter receives progress from running sessions. Calls happen on runner
// goroutines, never from inside Start or Cancel.
type Reporter interface {
	RecordActivity(ctx context.Context, id domain.SessionID) error
	Complete(ctx context.Context, id domain.SessionID, runErr error) error
}

type Options struct {
	// Command is the argv used for automations that do not set their own.
	Command []string
	// Launch disables process execution when false; sessions are then only tracked.
	Launch    bool
	StopGrace time.Duration
	Logger    *slog.Logger
}

type child struct {
	id        domain.SessionID
	cancel    context.CancelFunc
	done      chan struct{}
	activity  chan struct{}
	cancelled bool
}

// Runner runs automation sessions as child processes. Chat sessions have no
// process; the person chatting is the work.
type Runner struct {
	automations ports.AutomationRepository
	command     []string
	launch      bool
	stopGrace   time.Duration
	logger      *slog.Logger

	mu       sync.Mutex
	reporter Reporter
	children map[domain.SessionID]*child
}

var _ ports.SessionRunner = (*Runner)(nil)

func NewRunner(automations ports.AutomationRepository, opts Options) *Runner {
	if opts.StopGrace <= 0 {
		opts.StopGrace = defaultStopGrace
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{
		automations: automations,
		command:     slices.Clone(opts.Command),
		launch:      opts.Launch,
		stopGrace:   opts.StopGrace,
		logger:      opts.Logger.With("component", "runner"),
		children:    map[domain.SessionID]*child{},
	}
}

// Attach sets the reporter notified about output and exits.
func (r *Runner) Attach(reporter Reporter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reporter = reporter
}

func (r *Runner) Start(ctx context.Context, session domain.SessionRecord) error {
	if session.Type != domain.SessionTypeAutomation || !r.launch {
		return nil
	}

	argv, err := r.commandFor(ctx, session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.children[session.ID]; ok {
		return nil
	}

	childCtx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(childCtx, argv[0], argv[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.stopGrace
	cmd.Env = append(os.Environ(), sessionEnv(session)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("open output pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start %s: %w", argv[0], err)
	}

	c := &child{
		id:       session.ID,
		cancel:   cancel,
		done:     make(chan struct{}),
		activity: make(chan struct{}, 1),
	}
	r.children[session.ID] = c
	reporter := r.reporter

	logger := r.logger.With("session_id", session.ID, "automation_id", session.AutomationID)
	logger.Info("automation process started", "command", argv, "pid", cmd.Process.Pid)

	go r.forwardActivity(c, reporter)
	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxOutputLine)
		for scanner.Scan() {
			logger.Info("automation output", "line", scanner.Text())
			select {
			case c.activity <- struct{}{}:
			default:
			}
		}

		waitErr := cmd.Wait()
		cancel()

		r.mu.Lock()
		delete(r.children, c.id)
		cancelled := c.cancelled
		r.mu.Unlock()
		close(c.done)

		if cancelled {
			logger.Info("automation process stopped", "error", waitErr)
			return
		}

		logger.Info("automation process exited", "error", waitErr)
		if reporter != nil {
			if err := reporter.Complete(context.Background(), c.id, waitErr); err != nil {
				logger.Warn("report completion", "error", err)
			}
		}
	}()

	return nil
}

// Cancel interrupts the session's process and waits for it to exit. Unknown
// sessions have nothing to stop.
func (r *Runner) Cancel(ctx context.Context, id domain.SessionID) error {
	r.mu.Lock()
	c, ok := r.children[id]
	if ok {
		c.cancelled = true
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}

	c.cancel()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for session %s to stop: %w", id, ctx.Err())
	}
}

// Running lists sessions whose processes have not exited yet.
func (r *Runner) Running() []domain.SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]domain.SessionID, 0, len(r.children))
	for id := range r.children {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Shutdown stops every running process.
func (r *Runner) Shutdown(ctx context.Context) error {
	var errs []error
	for _, id := range r.Running() {
		if err := r.Cancel(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) forwardActivity(c *child, reporter Reporter) {
	for {
		select {
		case <-c.done:
			return
		case <-c.activity:
			if reporter == nil {
				continue
			}
			if err := reporter.RecordActivity(context.Background(), c.id); err != nil && !errors.Is(err, domain.ErrNotOccupant) {
				r.logger.Warn("report activity", "session_id", c.id, "error", err)
			}
		}
	}
}

func (r *Runner) commandFor(ctx context.Context, session domain.SessionRecord) ([]string, error) {
	argv := r.command
	if session.AutomationID != "" && r.automations != nil {
		automation, err := r.automations.GetByID(ctx, session.AutomationID)
		if err != nil {
			return nil, fmt.Errorf("get automation %s: %w", session.AutomationID, err)
		}
		if len(automation.Command) > 0 {
			argv = automation.Command
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("no command configured for automation session %s", session.ID)
	}

	return slices.Clone(argv), nil
}

func sessionEnv(session domain.SessionRecord) []string {
	env := []string{
		"SLOTCTL_SESSION_ID=" + string(session.ID),
		"SLOTCTL_SESSION_TYPE=" + string(session.Type),
		"SLOTCTL_TRIGGER=" + string(session.Trigger),
	}
	if session.AutomationID != "" {
		env = append(env, "SLOTCTL_AUTOMATION_ID="+string(session.AutomationID))
	}
	if !session.ScheduledFor.IsZero() {
		env = append(env, "SLOTCTL_SCHEDULED_FOR="+session.ScheduledFor.Format(time.RFC3339))
	}
	return env
}
