package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/slotctl/internal/application"
	"github.com/bnema/slotctl/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Timeouts    domain.Timeouts
	Automations []AutomationLine
}

// AutomationLine is one scheduled automation with its next fire time already computed.
type AutomationLine struct {
	Automation domain.Automation
	NextFire   time.Time
}

func renderView(snapshot application.SlotSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Execution Slot"),
		s.header.Render(fmt.Sprintf("queued: %d", len(snapshot.Queue))),
		s.section.Render(renderOccupant(snapshot, opts, s)),
		s.section.Render(renderQueue(snapshot, s)),
	}

	if len(opts.Automations) > 0 {
		lines = append(lines, s.section.Render(renderAutomations(opts.Automations, snapshot.Now, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOccupant(snapshot application.SlotSnapshot, opts RenderOptions, s styles) string {
	state := snapshot.State
	if !state.Occupied() {
		return s.empty.Render("Slot is free.")
	}

	title := fmt.Sprintf("%s %s", state.OccupantType, state.OccupantSessionID)
	if occupant := snapshot.Occupant; occupant != nil {
		title = fmt.Sprintf("%s/%s %s", occupant.Type, occupant.Trigger, occupant.ID)
		if occupant.AutomationID != "" {
			title += fmt.Sprintf(" (%s)", occupant.AutomationID)
		}
	}

	parts := []string{
		s.occupant.Render(title),
		s.detail.Render(fmt.Sprintf("phase: %s", phaseLabel(state.Phase))),
	}

	now := snapshot.Now
	idleLimit := opts.Timeouts.AutoInactivity
	if state.OccupantType == domain.SessionTypeChat {
		idleLimit = opts.Timeouts.ChatInactivity
	}
	parts = append(parts, clockLine("idle:", now.Sub(state.LastActivityAt), idleLimit, s))

	if state.OccupantType == domain.SessionTypeAutomation {
		parts = append(parts, clockLine("active:", application.ActiveTime(state, now), opts.Timeouts.AutomationGlobal, s))
	}

	if down := networkDownTime(state, now); down > 0 {
		parts = append(parts, s.clockMeta.Render(fmt.Sprintf("network down: %s", formatDuration(down))))
	}
	if state.Phase == domain.PhaseWaitingNetworkRetry {
		parts = append(parts, s.warning.Render("[waiting for network]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderQueue(snapshot application.SlotSnapshot, s styles) string {
	if len(snapshot.Queue) == 0 {
		return s.empty.Render("Nothing waiting.")
	}

	parts := []string{s.title.Render("Waiting")}
	for i, entry := range snapshot.Queue {
		parts = append(parts, s.detail.Render(fmt.Sprintf(
			"%d. %s/%s %s (queued %s ago)",
			i+1,
			entry.SessionType,
			entry.Trigger,
			entry.SessionID,
			formatDuration(snapshot.Now.Sub(entry.QueuedAt)),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAutomations(lines []AutomationLine, now time.Time, s styles) string {
	parts := []string{s.title.Render("Automations")}
	for _, line := range lines {
		automation := line.Automation
		text := fmt.Sprintf("%s  %s  %s", automation.ID, automation.Schedule, nextFireLabel(line.NextFire, now))
		if !automation.Enabled {
			parts = append(parts, s.disabled.Render(text+"  [disabled]"))
			continue
		}
		parts = append(parts, s.detail.Render(text))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func clockLine(label string, elapsed, limit time.Duration, s styles) string {
	if elapsed < 0 {
		elapsed = 0
	}

	usedPercent := 0.0
	if limit > 0 {
		usedPercent = clampPercent(100 * elapsed.Seconds() / limit.Seconds())
	}

	meta := lipgloss.NewStyle().Foreground(interpolateColor(usedPercent, 0, 100)).
		Render(fmt.Sprintf("%s / %s", formatDuration(elapsed), formatDuration(limit)))

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.clockKey.Render(fmt.Sprintf("%-7s", label)),
		" ",
		renderProgressBar(usedPercent, barWidth, s),
		" ",
		meta,
	)
	if limit > 0 && elapsed > limit {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func networkDownTime(state domain.SlotState, now time.Time) time.Duration {
	down := state.NetworkDownTime
	if state.Phase == domain.PhaseWaitingNetworkRetry {
		if episode := now.Sub(state.LastNetworkAvailableTime); episode > 0 {
			down += episode
		}
	}
	return down
}

func phaseLabel(phase domain.Phase) string {
	if phase == "" {
		return "unknown"
	}
	return strings.ReplaceAll(string(phase), "_", " ")
}

func nextFireLabel(next, now time.Time) string {
	if next.IsZero() {
		return "next: never"
	}
	if now.IsZero() || !next.After(now) {
		return "next: " + next.Format(time.RFC3339)
	}
	return fmt.Sprintf("next: in %s (%s)", formatDuration(next.Sub(now)), next.Format("15:04 on 02 Jan"))
}

// renderProgressBar fills the bar with the elapsed share of a limit.
func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(usedPercent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// 240 (faded) at min, 255 (bright) at max on the ANSI greyscale ramp.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
