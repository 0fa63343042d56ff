package session

import (
	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/shuffle"

	"go.uber.org/zap"
)

// TriviaStreak is the run of consecutive correct answers that earns a
// trivia reveal.
const TriviaStreak = 2

// MaxVisibleChoices caps how many options a multiple-choice item shows.
const MaxVisibleChoices = 4

// Feedback is the grading state of the current item.
type Feedback int

const (
	FeedbackNone    Feedback = iota // Awaiting an answer
	FeedbackCorrect                 // Answered correctly
	FeedbackWrong                   // Answered incorrectly
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Score is the running correct/total counter.
type Score struct {
	Correct int
	Total   int
}

// Outcome reports the effect of an answer.
type Outcome struct {
	// Correct is the grading result.
	Correct bool

	// Trivia is the fact revealed by this answer, if Revealed.
	Trivia   string
	Revealed bool
}

// Session is the quiz state machine. It is not safe for concurrent use;
// the UI event loop owns it.
type Session struct {
	rng shuffle.Source
	log *zap.Logger

	// items is replaced wholesale on every successful load.
	items []deck.Item

	// order holds indices into items in presentation order.
	order []int

	// cursor is the position in order of the current item.
	cursor int

	// visible is the rendered option set of the current item.
	visible []string

	// selection is the picked option or typed text for the current item.
	selection string

	feedback Feedback
	score    Score

	// streak counts consecutive correct answers since the last reset.
	streak int

	// trivia holds unused facts; reveals pop from the front.
	trivia []string

	pending    string
	hasPending bool

	// runID identifies the current deck load in logs.
	runID string
}

// Option configures a Session.
type Option func(*Session)

// WithSource injects the random source used for ordering and choices.
func WithSource(src shuffle.Source) Option {
	return func(s *Session) { s.rng = src }
}

// WithLogger sets the logger used for session events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		rng: shuffle.Default(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
