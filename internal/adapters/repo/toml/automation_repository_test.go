package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomationRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewAutomationRepository(newTestConfig(t))
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	nightly := domain.Automation{
		ID:               "nightly",
		Name:             "Nightly digest",
		Schedule:         "0 2 * * *",
		Timezone:         "Europe/Paris",
		Command:          []string{"digest", "--since", "24h"},
		Enabled:          true,
		CreatedAt:        now,
		LastScheduledFor: now.Add(18 * time.Hour),
	}
	hourly := domain.Automation{
		ID:        "hourly",
		Name:      "Hourly sync",
		Schedule:  "@hourly",
		CreatedAt: now,
	}

	require.NoError(t, repo.Save(context.Background(), nightly))
	require.NoError(t, repo.Save(context.Background(), hourly))

	got, err := repo.GetByID(context.Background(), nightly.ID)
	require.NoError(t, err)
	assert.Equal(t, nightly, got)

	automations, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Automation{hourly, nightly}, automations)
}

func TestAutomationRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo, err := NewAutomationRepository(newTestConfig(t))
	require.NoError(t, err)

	automation := domain.Automation{ID: "nightly", Name: "Nightly", Schedule: "@daily", CreatedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Save(context.Background(), automation))

	require.NoError(t, repo.Delete(context.Background(), automation.ID))
	_, err = repo.GetByID(context.Background(), automation.ID)
	require.ErrorIs(t, err, domain.ErrAutomationNotFound)

	require.ErrorIs(t, repo.Delete(context.Background(), automation.ID), domain.ErrAutomationNotFound)
}

func TestAutomationRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "automations.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"[[automations]]",
		"id = \"backup\"",
		"name = \"Backup\"",
		"schedule = \"30 3 * * *\"",
		"command = [\"backup\", \"--quiet\"]",
		"enabled = true",
		"created_at = \"2026-03-01T00:00:00Z\"",
	}, "\n")), 0o600))

	config := viper.New()
	config.Set(AutomationsPathKey, path)
	repo, err := NewAutomationRepository(config)
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), "backup")
	require.NoError(t, err)
	assert.Equal(t, []string{"backup", "--quiet"}, got.Command)
	assert.True(t, got.Enabled)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got.CreatedAt)
	assert.True(t, got.LastScheduledFor.IsZero())
}

func TestAutomationRepositoryRejectsCorruptLastScheduledFor(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "automations.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"[[automations]]",
		"id = \"backup\"",
		"name = \"Backup\"",
		"schedule = \"30 3 * * *\"",
		"enabled = true",
		"created_at = \"2026-03-01T00:00:00Z\"",
		"last_scheduled_for = \"03:30\"",
	}, "\n")), 0o600))

	config := viper.New()
	config.Set(AutomationsPathKey, path)
	repo, err := NewAutomationRepository(config)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode automation backup")
	assert.Contains(t, err.Error(), "invalid last_scheduled_for \"03:30\"")

	_, err = repo.GetByID(context.Background(), "backup")
	require.Error(t, err)
}

func TestAutomationRepositorySaveRejectsMissingSchedule(t *testing.T) {
	t.Parallel()

	repo, err := NewAutomationRepository(newTestConfig(t))
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.Automation{ID: "x", Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule is required")
}
