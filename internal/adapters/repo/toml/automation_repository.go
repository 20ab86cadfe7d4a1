package toml

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/spf13/viper"
)

const (
	AutomationsPathKey  = "automations.path"
	automationsFileName = "automations.toml"
)

type AutomationRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.AutomationRepository = (*AutomationRepository)(nil)

func NewAutomationRepository(cfg *viper.Viper) (*AutomationRepository, error) {
	path, err := resolvePath(cfg, AutomationsPathKey, automationsFileName)
	if err != nil {
		return nil, err
	}

	return &AutomationRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *AutomationRepository) GetByID(ctx context.Context, id domain.AutomationID) (domain.Automation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Automation{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Automation{}, err
	}

	for _, automation := range file.Automations {
		if automation.ID == string(id) {
			return fromAutomationSchema(automation)
		}
	}

	return domain.Automation{}, fmt.Errorf("%w: %s", domain.ErrAutomationNotFound, id)
}

func (r *AutomationRepository) List(ctx context.Context) ([]domain.Automation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	automations := make([]domain.Automation, 0, len(file.Automations))
	for _, automation := range file.Automations {
		decoded, err := fromAutomationSchema(automation)
		if err != nil {
			return nil, err
		}
		automations = append(automations, decoded)
	}
	sort.Slice(automations, func(i, j int) bool {
		return automations[i].ID < automations[j].ID
	})

	return automations, nil
}

func (r *AutomationRepository) Save(ctx context.Context, automation domain.Automation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	automation.ID = domain.AutomationID(strings.TrimSpace(string(automation.ID)))
	if err := automation.Validate(); err != nil {
		return fmt.Errorf("invalid automation: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toAutomationSchema(automation)
	updated := false
	for i := range file.Automations {
		if file.Automations[i].ID == encoded.ID {
			file.Automations[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Automations = append(file.Automations, encoded)
	}

	return writeTOMLFile(r.path, file)
}

func (r *AutomationRepository) Delete(ctx context.Context, id domain.AutomationID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(file.Automations, func(a automationSchema) bool {
		return a.ID == string(id)
	})
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrAutomationNotFound, id)
	}
	file.Automations = slices.Delete(file.Automations, index, index+1)

	return writeTOMLFile(r.path, file)
}

func (r *AutomationRepository) readSchema() (automationsFileSchema, error) {
	var file automationsFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return automationsFileSchema{}, fmt.Errorf("decode automations file: %w", err)
	}
	if err := checkVersion("automations", file.Version, currentAutomationsSchemaVersion); err != nil {
		return automationsFileSchema{}, err
	}
	defaultVersion(&file.Version, currentAutomationsSchemaVersion)

	return file, nil
}

func toAutomationSchema(automation domain.Automation) automationSchema {
	return automationSchema{
		ID:               string(automation.ID),
		Name:             automation.Name,
		Schedule:         automation.Schedule,
		Timezone:         automation.Timezone,
		Command:          slices.Clone(automation.Command),
		Enabled:          automation.Enabled,
		CreatedAt:        formatTime(automation.CreatedAt),
		LastScheduledFor: formatTime(automation.LastScheduledFor),
	}
}

func fromAutomationSchema(schema automationSchema) (domain.Automation, error) {
	createdAt, err := parseTime("created_at", schema.CreatedAt)
	if err != nil {
		return domain.Automation{}, fmt.Errorf("decode automation %s: %w", schema.ID, err)
	}
	lastScheduledFor, err := parseTime("last_scheduled_for", schema.LastScheduledFor)
	if err != nil {
		return domain.Automation{}, fmt.Errorf("decode automation %s: %w", schema.ID, err)
	}

	return domain.Automation{
		ID:               domain.AutomationID(schema.ID),
		Name:             schema.Name,
		Schedule:         schema.Schedule,
		Timezone:         schema.Timezone,
		Command:          slices.Clone(schema.Command),
		Enabled:          schema.Enabled,
		CreatedAt:        createdAt,
		LastScheduledFor: lastScheduledFor,
	}, nil
}
