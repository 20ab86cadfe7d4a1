package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	metricsadapter "github.com/bnema/slotctl/internal/adapters/metrics/prometheus"
	statusadapter "github.com/bnema/slotctl/internal/adapters/render/status"
	tomlrepo "github.com/bnema/slotctl/internal/adapters/repo/toml"
	"github.com/bnema/slotctl/internal/adapters/runner/process"
	cronprovider "github.com/bnema/slotctl/internal/adapters/schedule/cron"
	"github.com/bnema/slotctl/internal/application"
	"github.com/bnema/slotctl/internal/config"
	"github.com/bnema/slotctl/internal/logging"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config.Config
	logger         *slog.Logger
	slots          ports.SlotStateRepository
	queue          ports.QueueRepository
	sessions       ports.SessionRepository
	automationRepo ports.AutomationRepository
	schedule       *cronprovider.Provider
	automations    *application.AutomationService
	registry       *prometheus.Registry
	metrics        *metricsadapter.Recorder
	statusRenderer func(application.SlotSnapshot, statusadapter.RenderOptions) (string, error)
	clock          ports.Clock
}

func wireApp() (*app, error) {
	v := viper.New()
	if path := envOrDefault("SLOTCTL_CONFIG", ""); path != "" {
		v.SetConfigFile(path)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	clock := ports.SystemClock{}

	slots, err := tomlrepo.NewSlotRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire slot repository: %w", err)
	}
	queue, err := tomlrepo.NewQueueRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire queue repository: %w", err)
	}
	sessions, err := tomlrepo.NewSessionRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}
	automationRepo, err := tomlrepo.NewAutomationRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire automation repository: %w", err)
	}

	schedule := cronprovider.NewProvider(automationRepo, sessions, slots, clock, logger)
	registry := prometheus.NewRegistry()

	return &app{
		cfg:            cfg,
		logger:         logger,
		slots:          slots,
		queue:          queue,
		sessions:       sessions,
		automationRepo: automationRepo,
		schedule:       schedule,
		automations:    application.NewAutomationService(automationRepo, schedule, clock),
		registry:       registry,
		metrics:        metricsadapter.NewRecorder(registry),
		statusRenderer: statusadapter.Render,
		clock:          clock,
	}, nil
}

// newOwner builds a slot owner and its runner. Only the daemon launches processes
// and runs the heartbeat; one-shot commands record decisions in the state files.
func (a *app) newOwner(launch bool) (*application.SlotOwner, *process.Runner) {
	runner := process.NewRunner(a.automationRepo, process.Options{
		Command: a.cfg.RunnerCommand,
		Launch:  launch,
		Logger:  a.logger,
	})

	var heartbeat time.Duration
	if launch {
		heartbeat = a.cfg.Heartbeat
	}

	owner := application.NewSlotOwner(a.cfg.Timeouts, heartbeat, application.SlotOwnerDeps{
		Slots:       a.slots,
		Queue:       a.queue,
		Sessions:    a.sessions,
		Automations: a.automationRepo,
		Due:         a.schedule,
		Runner:      runner,
		Metrics:     a.metrics,
		Clock:       a.clock,
		Logger:      a.logger,
	})
	runner.Attach(owner)

	return owner, runner
}

// withOwner runs fn against a one-shot owner that stops when fn returns.
func (a *app) withOwner(ctx context.Context, fn func(*application.SlotOwner) error) error {
	owner, _ := a.newOwner(false)
	go func() { _ = owner.Run(ctx) }()
	defer owner.Stop()

	return fn(owner)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
