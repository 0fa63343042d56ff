package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// MultiChoice renders up to four numbered options with a movable cursor.
type MultiChoice struct {
	Options []string
	Cursor  int

	// Set by Reveal once the item is graded.
	Revealed bool
	Chosen   string
	Correct  string
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor or picks an option. picked is true when the
// user chose an option, by number key or Enter on the cursor.
func (m MultiChoice) Update(msg tea.Msg) (_ MultiChoice, choice string, picked bool) {
	if m.Revealed || len(m.Options) == 0 {
		return m, "", false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, "", false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, m.Options[m.Cursor], true
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.Options) {
			m.Cursor = i
			return m, m.Options[i], true
		}
	}
	return m, "", false
}

// Reveal marks the selector as graded so the view colors the options.
func (m MultiChoice) Reveal(chosen, correct string) MultiChoice {
	m.Revealed = true
	m.Chosen = chosen
	m.Correct = correct
	return m
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && opt == m.Correct:
			style = theme.Correct
		case m.Revealed && opt == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = theme.Dimmed
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
