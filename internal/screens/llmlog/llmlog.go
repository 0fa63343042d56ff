package llmlog

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// pageSize bounds how many requests are listed.
const pageSize = 50

type eventsLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// LLMLogScreen lists recent LLM requests from the event store.
type LLMLogScreen struct {
	repo     store.EventRepo
	events   []store.LLMEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*LLMLogScreen)(nil)
var _ screen.KeyHintProvider = (*LLMLogScreen)(nil)

// New creates a new LLMLogScreen.
func New(repo store.EventRepo) *LLMLogScreen {
	return &LLMLogScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *LLMLogScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return eventsLoadedMsg{Events: events, Err: err}
	}
}

func (s *LLMLogScreen) Title() string {
	return "LLM Log"
}

func (s *LLMLogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LLMLogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *LLMLogScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(theme.Dimmed, width, "\n\n  Loading requests...")
	}
	if len(s.events) == 0 {
		return layout.Centered(theme.Hint, width, "\n\n  No LLM requests yet. Generate some trivia!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		line := fmt.Sprintf("%s#%-4d %s  %-8s %-22s %5dms  %s",
			prefix, e.ID, e.Timestamp.Local().Format("Jan 02 15:04"),
			e.Purpose, truncate(e.Model, 22), e.LatencyMs, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !e.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetails(e)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetails(e store.LLMEvent) string {
	lines := []string{
		fmt.Sprintf("    provider %s  tokens in %d / out %d", e.Provider, e.InputTokens, e.OutputTokens),
	}
	if e.ErrorMessage != "" {
		lines = append(lines, "    error: "+truncate(e.ErrorMessage, 70))
	}
	return theme.Dimmed.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
