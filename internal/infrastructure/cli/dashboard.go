package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI showing the latest review",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("SPECFORGE_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var scoreGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var scoreWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var scoreBad = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table    table.Model
	reviewID string
	provider string
	fallback string
	score    float64
	total    int
	err      error
}

func initialModel() model {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return model{err: err}
	}

	result, err := services.Store.LoadLatest()
	if err != nil {
		return model{err: err}
	}
	if result == nil {
		return model{err: fmt.Errorf("no saved reviews yet, run `specforge review` first")}
	}

	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Severity", Width: 10},
		{Title: "Rule", Width: 20},
		{Title: "Line", Width: 6},
		{Title: "Message", Width: 50},
	}

	rows := []table.Row{}
	for _, sev := range review.Severities {
		for _, f := range result.Findings {
			if f.Severity != sev {
				continue
			}
			line := "-"
			if f.Line > 0 {
				line = fmt.Sprintf("%d", f.Line)
			}
			rows = append(rows, table.Row{f.ID, string(f.Severity), f.Rule, line, f.Message})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	m := model{
		table:    t,
		reviewID: result.Metadata.ReviewID,
		score:    result.Summary.QualityScore,
		total:    result.Summary.TotalFindings,
	}
	if pm := result.Metadata.ReviewProvider; pm != nil {
		m.provider = string(pm.EffectiveProvider)
		if pm.FallbackUsed {
			m.fallback = pm.FallbackReason
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("SpecForge Review %s", m.reviewID))

	scoreText := fmt.Sprintf("Quality: %.1f / 10  Findings: %d  Provider: %s", m.score, m.total, m.provider)
	switch {
	case m.score >= 8:
		scoreText = scoreGood.Render(scoreText)
	case m.score >= 5:
		scoreText = scoreWarn.Render(scoreText)
	default:
		scoreText = scoreBad.Render(scoreText)
	}

	fallbackView := ""
	if m.fallback != "" {
		fallbackView = scoreWarn.Render(fmt.Sprintf("\nAI fallback: %s", m.fallback))
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			scoreText,
			fallbackView,
			"\nFindings:",
			m.table.View(),
			"\n(q to quit)",
		),
	)
}
