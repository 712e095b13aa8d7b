package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/tapburst/internal/config"
	"github.com/olivier-w/tapburst/internal/util"
)

const (
	indent = 2

	// A button lights up while its pulse is above this level.
	pulseThreshold = 0.15
)

func buttonLabel(i int, r config.Reaction) string {
	return fmt.Sprintf("%d %s", i+1, r.Icon)
}

func renderButtons(catalog []config.Reaction, springs *springField) string {
	parts := make([]string, len(catalog))
	for i, r := range catalog {
		style := buttonStyle
		if springs.value(i) > pulseThreshold {
			style = buttonActiveStyle
		}
		parts[i] = style.Render(buttonLabel(i, r))
	}
	return strings.Repeat(" ", indent) + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// buttonAt returns the catalog slot under column x of the button row.
func buttonAt(catalog []config.Reaction, x int) (int, bool) {
	left := indent
	for i, r := range catalog {
		right := left + lipgloss.Width(buttonStyle.Render(buttonLabel(i, r)))
		if x >= left && x < right {
			return i, true
		}
		left = right
	}
	return 0, false
}

func renderStats(total, active int, t *tally, uptime time.Duration) string {
	s := fmt.Sprintf("Reactions: %d  |  Active: %d", total, active)
	if glyph, n := t.leader(); glyph != "" {
		s += fmt.Sprintf("  |  Top: %s ×%d", glyph, n)
	}
	s += fmt.Sprintf("  |  %s  |  %s", util.FormatDuration(uptime), util.FormatRate(total, uptime))
	return s
}

func renderHeader(width int, burst BurstMode, soundOn bool) string {
	left := headerStyle.Render("tapburst")
	var flags []string
	if icon := burst.Icon(); icon != "" {
		flags = append(flags, icon)
	}
	if !soundOn {
		flags = append(flags, "[muted]")
	}
	if len(flags) == 0 {
		return left
	}
	right := statusStyle.Render(strings.Join(flags, " "))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2*indent
	return left + strings.Repeat(" ", max(gap, 2)) + right
}
