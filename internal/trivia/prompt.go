package trivia

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write trivia facts shown to a student as a reward during a flashcard quiz.

Rules:
- Each fact is true, surprising, and self-contained in one or two sentences.
- Plain text only. No markdown, no numbering, no emoji.
- Relate facts to the topic or to the subjects of the listed deck questions.
- Never state the answer to any listed deck question.
- Do not repeat any fact from the "already known" list.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of facts: %d\n", input.Count)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}

	if len(input.Questions) > 0 {
		b.WriteString("\nDeck questions:\n")
		b.WriteString(numbered(input.Questions, cfg.MaxQuestions))
		b.WriteString("\n")
	}

	b.WriteString("\nAlready known:\n")
	b.WriteString(numbered(input.Avoid, 0))

	return b.String()
}

// numbered renders a 1-based list, keeping the first max entries
// (0 = all). Returns "None" for an empty list.
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
