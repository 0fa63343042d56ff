package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const (
	titleFull    = "F  L  A  S  H  Q  U  I  Z"
	titleCompact = "FLASHQUIZ"
	tagline      = "flashcards with a trivia reward"
)

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer, and frame gaps.
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.sess.Len(), h.sess.TriviaRemaining(), cw, compact),
	}
	if msg := h.renderMessage(cw); msg != "" {
		sections = append(sections, msg)
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View(compact)))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	if compact {
		return layout.Centered(lipgloss.NewStyle(), cw, style.Render(titleCompact))
	}
	return layout.Centered(lipgloss.NewStyle(), cw, style.Render(titleFull)) + "\n" +
		layout.Centered(theme.Hint, cw, tagline)
}

// renderStatsBar shows what is loaded in a double-bordered box.
func renderStatsBar(questions, facts, cw int, compact bool) string {
	qStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			qStyle.Render(fmt.Sprintf("Q%d", questions)),
			tStyle.Render(fmt.Sprintf("T%d", facts)))
	} else {
		stats = fmt.Sprintf("%s  %s",
			qStyle.Render(fmt.Sprintf("%d QUESTIONS", questions)),
			tStyle.Render(fmt.Sprintf("%d TRIVIA FACTS", facts)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func (h *HomeScreen) renderMessage(cw int) string {
	switch {
	case h.errMsg != "":
		return layout.Centered(theme.Incorrect, cw, h.errMsg)
	case h.notice != "":
		return layout.Centered(theme.Dimmed, cw, h.notice)
	}
	return ""
}
