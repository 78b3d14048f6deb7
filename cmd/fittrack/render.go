package fittrack

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

const barWidth = 20

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(9)
	fillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	fullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// progressBar draws a clamped ratio. An unknown ratio draws an empty track.
func progressBar(r nutrition.Ratio, width int) string {
	if !r.Known {
		return "[" + emptyStyle.Render(strings.Repeat("·", width)) + "]"
	}
	filled := int(math.Round(r.Percent / 100 * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	fill := fillStyle
	if filled == width {
		fill = fullStyle
	}
	return "[" + fill.Render(strings.Repeat("█", filled)) + emptyStyle.Render(strings.Repeat("░", width-filled)) + "]"
}

func renderMacroRow(row service.MacroRow) string {
	label := labelStyle.Render(row.Name)
	if !row.HasTarget {
		return fmt.Sprintf("%s %.0f %s  %s  %s", label, row.Actual, row.Unit, progressBar(row.Progress, barWidth), row.Progress)
	}
	left := fmt.Sprintf("%.0f %s left", row.Remaining, row.Unit)
	if row.Remaining < 0 {
		left = fmt.Sprintf("over by %.0f %s", -row.Remaining, row.Unit)
	}
	return fmt.Sprintf("%s %.0f / %.0f %s  %s  %s  %s",
		label, row.Actual, row.Target, row.Unit, progressBar(row.Progress, barWidth), row.Progress, left)
}
