// Package tui renders the interactive timeline viewer: a paged,
// reverse-chronological list of entries with the current streak on top.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyohei682474/1day1growth/internal/timeline"
)

// pageLoadedMsg carries the result of an async page fetch.
type pageLoadedMsg struct {
	added int
	err   error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	effortStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TimelineModel is the bubbletea model for the timeline viewer. The page
// accumulation state lives in a timeline.Session owned by this model, one
// per viewer lifetime.
type TimelineModel struct {
	sess     *timeline.Session
	spinner  spinner.Model
	now      func() time.Time
	loading  bool
	loadErr  error
	quitting bool
}

// NewTimelineModel creates a timeline viewer paging through p.
func NewTimelineModel(p timeline.Pager, pageSize int) TimelineModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return TimelineModel{
		sess:    timeline.NewSession(p, pageSize),
		spinner: s,
		now:     time.Now,
		loading: true,
	}
}

// Init implements tea.Model. The first page loads immediately.
func (m TimelineModel) Init() tea.Cmd {
	return tea.Batch(m.loadPage(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes {
			switch msg.Runes[0] {
			case 'q':
				m.quitting = true
				return m, tea.Quit
			case 'm':
				// The load-more trigger is disabled while a fetch is
				// outstanding; Session rejects overlap as a second line
				// of defense.
				if m.loading || !m.sess.HasMore() {
					return m, nil
				}
				m.loading = true
				m.loadErr = nil
				return m, tea.Batch(m.loadPage(), m.spinner.Tick)
			}
		}

	case pageLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m TimelineModel) loadPage() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		added, err := sess.LoadMore()
		return pageLoadedMsg{added: added, err: err}
	}
}

// View implements tea.Model.
func (m TimelineModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  1day1growth — timeline"))
	b.WriteString("\n\n")

	entries := m.sess.Entries()
	streak := m.sess.Streak(m.now())
	label := fmt.Sprintf("  streak: %d day(s)", streak)
	if m.sess.HasMore() {
		label += " (loaded so far)"
	}
	b.WriteString(streakStyle.Render(label))
	b.WriteString("\n\n")

	if len(entries) == 0 && !m.loading {
		b.WriteString("  No entries yet. Log one with `growth add`.\n")
	}

	for _, e := range entries {
		b.WriteString("  ")
		b.WriteString(dateStyle.Render(e.CreatedTime().Format("2006-01-02 15:04")))
		b.WriteString(" ")
		b.WriteString(effortStyle.Render(fmt.Sprintf("[%d/5]", e.Effort)))
		b.WriteString(" ")
		b.WriteString(e.Text)
		if len(e.Tags) > 0 {
			b.WriteString(" ")
			b.WriteString(tagStyle.Render("#" + strings.Join(e.Tags, " #")))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ load failed: %s", m.loadErr)))
		b.WriteString("\n")
	}
	switch {
	case m.loading:
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" loading…\n")
	case m.sess.HasMore():
		b.WriteString(helpStyle.Render("  [m]ore  [q]uit"))
		b.WriteString("\n")
	default:
		b.WriteString(helpStyle.Render("  end of timeline  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Loaded returns how many entries the viewer has accumulated.
func (m TimelineModel) Loaded() int {
	return len(m.sess.Entries())
}
