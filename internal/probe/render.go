package probe

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	service "github.com/okian/netmon/internal/app"
	"github.com/okian/netmon/internal/domain/overview"
)

// Semantic colors for status indication.
const (
	ColorSuccess lipgloss.Color = "2"
	ColorError   lipgloss.Color = "1"
	ColorInfo    lipgloss.Color = "6"
	ColorMuted   lipgloss.Color = "8"
)

// Status symbols.
const (
	SymbolPass = "✓"
	SymbolFail = "✗"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			Width(18)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	passStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	failStyle   = lipgloss.NewStyle().Foreground(ColorError)
	errBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
)

// RenderOverview renders the overview state the way the dashboard panel does:
// four stat cards plus the bytes line, or the error panel.
func RenderOverview(state overview.State) string {
	switch state.Phase {
	case overview.PhaseError:
		body := failStyle.Bold(true).Render("Error Loading Dashboard") + "\n" + state.Message
		return errBoxStyle.Render(body) + "\n"
	case overview.PhaseLoading:
		return mutedStyle.Render("Loading dashboard...") + "\n"
	}

	stats := state.Stats()
	cards := make([]string, len(stats))
	for i, s := range stats {
		cards[i] = cardStyle.Render(fmt.Sprintf("%s %s\n%s", s.Icon, s.Label, valueStyle.Render(s.Value)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Network Overview"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Quick Metrics"))
	b.WriteString("\n")
	b.WriteString("Total Bytes Processed: " + valueStyle.Render(state.BytesProcessed()))
	b.WriteString("\n")
	return b.String()
}

// RenderCheck renders one row per endpoint result.
func RenderCheck(results []service.CheckResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := passStyle.Render(SymbolPass)
		detail := fmt.Sprintf("%d items", r.Count)
		if !r.Passed() {
			status = failStyle.Render(SymbolFail)
			detail = r.Message
			if r.Kind != "" {
				detail = fmt.Sprintf("%s (%s)", r.Message, r.Kind)
			}
		}
		rows = append(rows, []string{status, r.Path, formatLatency(r.Duration), detail})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("", "ENDPOINT", "LATENCY", "DETAIL").
		Rows(rows...)
	return t.Render() + "\n"
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
