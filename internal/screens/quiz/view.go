package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if fact, ok := s.sess.PendingTrivia(); ok {
		return renderTrivia(fact, width, height)
	}

	var b strings.Builder
	b.WriteString(s.renderBanner(width))

	if _, ok := s.sess.Current(); ok {
		b.WriteString(s.renderQuestionView(width))
	} else {
		b.WriteString(renderEmpty(width))
	}

	if s.prompt != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderPrompt(width))
	}
	return b.String()
}

// renderBanner shows the last error or notice, or a blank line.
func (s *QuizScreen) renderBanner(width int) string {
	switch {
	case s.errMsg != "":
		return layout.Centered(theme.Incorrect, width, s.errMsg) + "\n"
	case s.notice != "":
		return layout.Centered(theme.Dimmed, width, s.notice) + "\n"
	}
	return "\n"
}

func (s *QuizScreen) renderQuestionView(width int) string {
	item, _ := s.sess.Current()
	var b strings.Builder

	info := fmt.Sprintf("  Question %d of %d", s.sess.Cursor()+1, s.sess.Len())
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info)
	infoRight := theme.Dimmed.Render(fmt.Sprintf("Trivia left: %d", s.sess.TriviaRemaining()))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("  Progress", s.sess.Progress(), true, width-4)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(item.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(question, components.ContentWidth(width))))
	b.WriteString("\n\n")

	if item.Type == deck.TypeDefinition {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+s.input.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	}

	if s.sess.Answered() {
		b.WriteString("\n")
		b.WriteString(renderFeedback(item, s.sess.Feedback(), width))
	}
	return b.String()
}

func renderFeedback(item deck.Item, fb session.Feedback, width int) string {
	if fb == session.FeedbackCorrect {
		return layout.Centered(theme.Correct, width, "Correct!")
	}
	answer := item.Answer.String()
	if item.Type != deck.TypeDefinition {
		answer = item.CorrectChoice()
	}
	return layout.Centered(theme.Incorrect, width, "Not quite") + "\n" +
		layout.Centered(theme.Dimmed, width, "Correct answer: "+answer)
}

func (s *QuizScreen) renderPrompt(width int) string {
	label := fmt.Sprintf("Open %s file: ", s.promptKind)
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, label+s.prompt.View())
}

func renderEmpty(width int) string {
	return "\n\n" +
		layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "No questions loaded.") +
		"\n\n" +
		layout.Centered(theme.Dimmed, width, "Press o to open a questions file (JSON or YAML),") +
		"\n" +
		layout.Centered(theme.Dimmed, width, "or t to open a trivia file.")
}

func renderTrivia(fact string, width, height int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render("Did you know?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 10).Render(fact) +
		"\n\n" +
		theme.Hint.Render("Press any key to continue")
	modal := theme.Modal.Width(cw).Align(lipgloss.Center).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
