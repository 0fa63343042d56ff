package session

import (
	"math"
	"slices"
	"strings"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/grading"
	"github.com/abhisek/flashquiz/internal/shuffle"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoadQuestions parses a questions file and, only if it yields at least one
// item, replaces the deck. On error the session is left untouched.
func (s *Session) LoadQuestions(data []byte, format deck.Format) error {
	items, err := deck.ParseQuestions(data, format)
	if err != nil {
		s.log.Warn("questions rejected", zap.Error(err))
		return err
	}
	return s.ReplaceItems(items)
}

// ReplaceItems installs already-normalized items, reshuffling the order and
// resetting score, streak, the current answer, and any undismissed trivia
// reveal. The unused trivia queue is kept.
func (s *Session) ReplaceItems(items []deck.Item) error {
	if len(items) == 0 {
		return &deck.NoValidItemsError{Kind: "questions"}
	}

	s.items = slices.Clone(items)
	s.order = shuffle.Indices(s.rng, len(items))
	s.cursor = 0
	s.score = Score{}
	s.streak = 0
	s.runID = uuid.NewString()
	s.resetAnswer()
	s.DismissTrivia()

	s.log.Info("questions loaded",
		zap.String("run_id", s.runID),
		zap.Int("items", len(items)),
	)
	return nil
}

// LoadTrivia parses a trivia file and replaces the unused-fact queue with
// its facts in random order. On error the queue is left untouched.
func (s *Session) LoadTrivia(data []byte, format deck.Format) error {
	facts, err := deck.ParseTrivia(data, format)
	if err != nil {
		s.log.Warn("trivia rejected", zap.Error(err))
		return err
	}
	return s.ReplaceTrivia(facts)
}

// ReplaceTrivia installs a new fact queue in random order.
func (s *Session) ReplaceTrivia(facts []string) error {
	if len(facts) == 0 {
		return &deck.NoValidItemsError{Kind: "trivia facts"}
	}
	s.trivia = shuffle.Shuffle(s.rng, facts)
	s.log.Info("trivia loaded", zap.Int("facts", len(facts)))
	return nil
}

// SelectChoice answers the current multiple-choice item with a rendered
// option. It is a no-op (applied=false) when the item is already answered,
// there is no current item, or the item is a definition.
func (s *Session) SelectChoice(choice string) (out Outcome, applied bool) {
	item, ok := s.Current()
	if !ok || s.Answered() || item.Type == deck.TypeDefinition {
		return Outcome{}, false
	}
	return s.answer(item, choice, grading.Choice(choice)), true
}

// SubmitDefinition answers the current definition item with typed text.
// Blank text, an answered item, or a multiple-choice item make it a no-op.
func (s *Session) SubmitDefinition(text string) (out Outcome, applied bool) {
	item, ok := s.Current()
	if !ok || s.Answered() || item.Type != deck.TypeDefinition {
		return Outcome{}, false
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, false
	}
	return s.answer(item, text, grading.Text(text)), true
}

func (s *Session) answer(item deck.Item, given string, resp grading.Response) Outcome {
	correct := grading.Check(item, resp)

	s.selection = given
	s.score.Total++
	if correct {
		s.feedback = FeedbackCorrect
		s.score.Correct++
		s.streak++
	} else {
		s.feedback = FeedbackWrong
		s.streak = 0
	}

	out := Outcome{Correct: correct}

	// With an empty queue the streak is left to grow, so the first correct
	// answer after facts arrive reveals one.
	if correct && s.streak >= TriviaStreak && len(s.trivia) > 0 {
		out.Trivia = s.trivia[0]
		out.Revealed = true
		s.trivia = s.trivia[1:]
		s.pending = out.Trivia
		s.hasPending = true
		s.streak = 0
	}

	s.log.Debug("answer graded",
		zap.String("run_id", s.runID),
		zap.String("item", item.ID),
		zap.Bool("correct", correct),
		zap.Int("streak", s.streak),
		zap.Bool("trivia", out.Revealed),
	)
	return out
}

// Next clears the current answer and advances the cursor, wrapping to the
// start past the end of the order.
func (s *Session) Next() {
	if len(s.order) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.order)
	s.resetAnswer()
}

// Skip moves the current item to the end of the order without moving the
// cursor, so the following item becomes current.
func (s *Session) Skip() {
	if len(s.order) == 0 {
		return
	}
	skipped := s.order[s.cursor]
	s.order = slices.Delete(s.order, s.cursor, s.cursor+1)
	s.order = append(s.order, skipped)
	s.resetAnswer()
}

// DismissTrivia clears the pending trivia reveal.
func (s *Session) DismissTrivia() {
	s.pending = ""
	s.hasPending = false
}

// resetAnswer clears selection and feedback and re-renders the options of
// the current item.
func (s *Session) resetAnswer() {
	s.selection = ""
	s.feedback = FeedbackNone
	s.visible = s.renderChoices()
}

// renderChoices shuffles the correct option together with up to three
// random distractors.
func (s *Session) renderChoices() []string {
	item, ok := s.Current()
	if !ok || item.Type == deck.TypeDefinition {
		return nil
	}
	distractors := shuffle.Shuffle(s.rng, item.Distractors())
	if len(distractors) > MaxVisibleChoices-1 {
		distractors = distractors[:MaxVisibleChoices-1]
	}
	options := append([]string{item.CorrectChoice()}, distractors...)
	return shuffle.Shuffle(s.rng, options)
}

// Current returns the item under the cursor.
func (s *Session) Current() (deck.Item, bool) {
	if len(s.order) == 0 {
		return deck.Item{}, false
	}
	return s.items[s.order[s.cursor]], true
}

// VisibleChoices returns the rendered options of the current item. It is
// empty for definition items.
func (s *Session) VisibleChoices() []string {
	return slices.Clone(s.visible)
}

// Progress returns round(100 * (cursor + answered) / len(order)).
func (s *Session) Progress() int {
	if len(s.order) == 0 {
		return 0
	}
	done := s.cursor
	if s.Answered() {
		done++
	}
	return int(math.Round(100 * float64(done) / float64(len(s.order))))
}

// Answered reports whether the current item has feedback.
func (s *Session) Answered() bool { return s.feedback != FeedbackNone }

// Feedback returns the grading state of the current item.
func (s *Session) Feedback() Feedback { return s.feedback }

// Selection returns the picked option or typed text for the current item.
func (s *Session) Selection() string { return s.selection }

// Score returns the running counter.
func (s *Session) Score() Score { return s.score }

// Streak returns the consecutive-correct count.
func (s *Session) Streak() int { return s.streak }

// PendingTrivia returns the revealed fact awaiting dismissal.
func (s *Session) PendingTrivia() (string, bool) { return s.pending, s.hasPending }

// TriviaRemaining returns the number of unused facts.
func (s *Session) TriviaRemaining() int { return len(s.trivia) }

// Len returns the number of loaded items.
func (s *Session) Len() int { return len(s.items) }

// Cursor returns the position of the current item in the order.
func (s *Session) Cursor() int { return s.cursor }

// Order returns item IDs in presentation order.
func (s *Session) Order() []string {
	ids := make([]string, len(s.order))
	for i, idx := range s.order {
		ids[i] = s.items[idx].ID
	}
	return ids
}

// RunID identifies the current deck load.
func (s *Session) RunID() string { return s.runID }

// Questions returns the question text of every loaded item in deck order.
func (s *Session) Questions() []string {
	out := make([]string, len(s.items))
	for i, it := range s.items {
		out[i] = it.Question
	}
	return out
}
