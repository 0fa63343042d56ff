package session

import (
	"errors"
	"testing"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/shuffle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identitySource makes every shuffle a no-op.
type identitySource struct{}

func (identitySource) IntN(n int) int { return n - 1 }

const threeItems = `[
	{"question": "A?", "choices": ["a1", "a2", "a3"], "answer": "a1"},
	{"question": "B?", "choices": ["b1", "b2", "b3"], "answer": "b2"},
	{"question": "C?", "choices": ["c1", "c2", "c3"], "answer": "c3"}
]`

func newLoaded(t *testing.T, questions string) *Session {
	t.Helper()
	s := New(WithSource(identitySource{}))
	require.NoError(t, s.LoadQuestions([]byte(questions), deck.FormatJSON))
	return s
}

func answerRight(t *testing.T, s *Session) Outcome {
	t.Helper()
	item, ok := s.Current()
	require.True(t, ok)
	out, applied := s.SelectChoice(item.CorrectChoice())
	require.True(t, applied)
	require.True(t, out.Correct)
	return out
}

func answerWrong(t *testing.T, s *Session) {
	t.Helper()
	item, ok := s.Current()
	require.True(t, ok)
	out, applied := s.SelectChoice(item.Distractors()[0])
	require.True(t, applied)
	require.False(t, out.Correct)
}

func TestEmptySession(t *testing.T) {
	s := New()

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Progress())
	assert.Empty(t, s.VisibleChoices())

	_, applied := s.SelectChoice("x")
	assert.False(t, applied)
	s.Next()
	s.Skip()
	assert.Equal(t, 0, s.Cursor())
}

func TestLoadQuestionsResetsProgress(t *testing.T) {
	s := newLoaded(t, threeItems)
	answerRight(t, s)
	s.Next()
	answerWrong(t, s)
	require.Equal(t, Score{Correct: 1, Total: 2}, s.Score())

	require.NoError(t, s.LoadQuestions([]byte(threeItems), deck.FormatJSON))
	assert.Equal(t, Score{}, s.Score())
	assert.Equal(t, 0, s.Streak())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, FeedbackNone, s.Feedback())
	assert.Empty(t, s.Selection())
	assert.NotEmpty(t, s.RunID())
}

func TestFailedLoadPreservesState(t *testing.T) {
	s := newLoaded(t, threeItems)
	answerRight(t, s)
	s.Next()
	before := s.Order()

	err := s.LoadQuestions([]byte(`[{"question": "no answer"}]`), deck.FormatJSON)
	var noItems *deck.NoValidItemsError
	require.True(t, errors.As(err, &noItems))

	err = s.LoadQuestions([]byte(`{"question": "not an array"}`), deck.FormatJSON)
	var badInput *deck.InputFormatError
	require.True(t, errors.As(err, &badInput))

	err = s.LoadQuestions([]byte(`[{`), deck.FormatJSON)
	require.True(t, errors.As(err, &badInput))

	assert.Equal(t, before, s.Order())
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, Score{Correct: 1, Total: 1}, s.Score())
	assert.Equal(t, 1, s.Streak())
}

func TestFailedTriviaLoadKeepsQueue(t *testing.T) {
	s := newLoaded(t, threeItems)
	require.NoError(t, s.LoadTrivia([]byte(`["one", "two"]`), deck.FormatJSON))

	err := s.LoadTrivia([]byte(`[1, "", null]`), deck.FormatJSON)
	var noItems *deck.NoValidItemsError
	require.True(t, errors.As(err, &noItems))
	assert.Equal(t, 2, s.TriviaRemaining())
}

func TestSkipMovesCurrentToEnd(t *testing.T) {
	s := newLoaded(t, threeItems)
	require.Equal(t, []string{"q-0", "q-1", "q-2"}, s.Order())

	s.Next()
	s.Skip()

	assert.Equal(t, []string{"q-0", "q-2", "q-1"}, s.Order())
	assert.Equal(t, 1, s.Cursor())
	item, _ := s.Current()
	assert.Equal(t, "q-2", item.ID)
}

func TestSkipClearsAnswer(t *testing.T) {
	s := newLoaded(t, threeItems)
	answerWrong(t, s)
	s.Skip()

	assert.Equal(t, FeedbackNone, s.Feedback())
	assert.Empty(t, s.Selection())
	item, _ := s.Current()
	assert.Equal(t, "q-1", item.ID)
}

func TestSkipLastPosition(t *testing.T) {
	s := newLoaded(t, threeItems)
	s.Next()
	s.Next()
	s.Skip()

	assert.Equal(t, []string{"q-0", "q-1", "q-2"}, s.Order())
	assert.Equal(t, 2, s.Cursor())
}

func TestNextWraps(t *testing.T) {
	s := newLoaded(t, threeItems)
	s.Next()
	s.Next()
	s.Next()
	assert.Equal(t, 0, s.Cursor())
	item, _ := s.Current()
	assert.Equal(t, "q-0", item.ID)
}

func TestSelectChoiceOnlyOnce(t *testing.T) {
	s := newLoaded(t, threeItems)
	answerRight(t, s)

	_, applied := s.SelectChoice("a2")
	assert.False(t, applied)
	assert.Equal(t, Score{Correct: 1, Total: 1}, s.Score())
	assert.Equal(t, "a1", s.Selection())
	assert.Equal(t, FeedbackCorrect, s.Feedback())
}

func TestWrongAnswerResetsStreak(t *testing.T) {
	s := newLoaded(t, threeItems)
	answerRight(t, s)
	assert.Equal(t, 1, s.Streak())
	s.Next()
	answerWrong(t, s)
	assert.Equal(t, 0, s.Streak())
	assert.Equal(t, FeedbackWrong, s.Feedback())
	assert.Equal(t, Score{Correct: 1, Total: 2}, s.Score())
}

func TestStreakRevealsTrivia(t *testing.T) {
	s := newLoaded(t, threeItems)
	require.NoError(t, s.LoadTrivia([]byte(`["first", "second"]`), deck.FormatJSON))

	out := answerRight(t, s)
	assert.False(t, out.Revealed)
	s.Next()

	out = answerRight(t, s)
	require.True(t, out.Revealed)
	assert.Equal(t, "first", out.Trivia)
	assert.Equal(t, 0, s.Streak())
	assert.Equal(t, 1, s.TriviaRemaining())

	fact, ok := s.PendingTrivia()
	assert.True(t, ok)
	assert.Equal(t, "first", fact)
	s.DismissTrivia()
	_, ok = s.PendingTrivia()
	assert.False(t, ok)

	s.Next()
	out = answerRight(t, s)
	assert.False(t, out.Revealed)
	s.Next()
	out = answerRight(t, s)
	require.True(t, out.Revealed)
	assert.Equal(t, "second", out.Trivia)
	assert.Equal(t, 0, s.TriviaRemaining())
}

func TestStreakGrowsWithoutTrivia(t *testing.T) {
	s := newLoaded(t, threeItems)
	for range 3 {
		out := answerRight(t, s)
		assert.False(t, out.Revealed)
		s.Next()
	}
	assert.Equal(t, 3, s.Streak())

	require.NoError(t, s.LoadTrivia([]byte(`["late"]`), deck.FormatJSON))
	out := answerRight(t, s)
	require.True(t, out.Revealed)
	assert.Equal(t, "late", out.Trivia)
	assert.Equal(t, 0, s.Streak())
}

func TestQuestionLoadKeepsTrivia(t *testing.T) {
	s := newLoaded(t, threeItems)
	require.NoError(t, s.LoadTrivia([]byte(`["kept"]`), deck.FormatJSON))
	require.NoError(t, s.LoadQuestions([]byte(threeItems), deck.FormatJSON))
	assert.Equal(t, 1, s.TriviaRemaining())
}

func TestQuestionLoadClearsPendingReveal(t *testing.T) {
	s := newLoaded(t, threeItems)
	require.NoError(t, s.LoadTrivia([]byte(`["first", "second"]`), deck.FormatJSON))
	answerRight(t, s)
	s.Next()
	out := answerRight(t, s)
	require.True(t, out.Revealed)

	require.NoError(t, s.LoadQuestions([]byte(threeItems), deck.FormatJSON))
	_, ok := s.PendingTrivia()
	assert.False(t, ok)
	assert.Equal(t, 1, s.TriviaRemaining())
}

func TestProgress(t *testing.T) {
	s := newLoaded(t, threeItems)
	assert.Equal(t, 0, s.Progress())

	answerRight(t, s)
	assert.Equal(t, 33, s.Progress())

	s.Next()
	assert.Equal(t, 33, s.Progress())

	answerRight(t, s)
	assert.Equal(t, 67, s.Progress())

	s.Next()
	answerRight(t, s)
	assert.Equal(t, 100, s.Progress())
}

func TestVisibleChoices(t *testing.T) {
	s := newLoaded(t, `[
		{"question": "Q", "choices": ["w", "x", "right", "y", "z", "v"], "answer": "right"}
	]`)

	got := s.VisibleChoices()
	assert.Equal(t, []string{"right", "w", "x", "y"}, got)
}

func TestVisibleChoicesAlwaysIncludeAnswer(t *testing.T) {
	s := New(WithSource(shuffle.Seeded(7)))
	require.NoError(t, s.LoadQuestions([]byte(`[
		{"question": "Q", "choices": ["a", "b", "c", "d", "e", "f", "g", "h"], "answer": "h"}
	]`), deck.FormatJSON))

	for range 20 {
		got := s.VisibleChoices()
		assert.Len(t, got, MaxVisibleChoices)
		assert.Contains(t, got, "h")
		s.Next()
	}
}

func TestDefinitionItems(t *testing.T) {
	s := newLoaded(t, `[
		{"type": "definition", "question": "Define photosynthesis",
		 "answer": "process plants use to make food from light",
		 "synonyms": ["making food from sunlight"]}
	]`)

	assert.Empty(t, s.VisibleChoices())

	_, applied := s.SelectChoice("anything")
	assert.False(t, applied, "choices do not apply to definitions")

	_, applied = s.SubmitDefinition("   ")
	assert.False(t, applied, "blank text is ignored")

	out, applied := s.SubmitDefinition("Making food from sunlight")
	require.True(t, applied)
	assert.True(t, out.Correct)
	assert.Equal(t, "Making food from sunlight", s.Selection())
}

func TestSubmitDefinitionOnChoiceItem(t *testing.T) {
	s := newLoaded(t, threeItems)
	_, applied := s.SubmitDefinition("a1")
	assert.False(t, applied)
	assert.Equal(t, Score{}, s.Score())
}

func TestSeededOrderIsDeterministic(t *testing.T) {
	a := New(WithSource(shuffle.Seeded(42)))
	b := New(WithSource(shuffle.Seeded(42)))
	require.NoError(t, a.LoadQuestions(deck.SampleQuestions(), deck.FormatJSON))
	require.NoError(t, b.LoadQuestions(deck.SampleQuestions(), deck.FormatJSON))

	assert.Equal(t, a.Order(), b.Order())
	assert.Equal(t, a.VisibleChoices(), b.VisibleChoices())
}

func TestGenerations(t *testing.T) {
	var g Generations

	first := g.Next()
	assert.True(t, g.IsCurrent(first))

	second := g.Next()
	assert.False(t, g.IsCurrent(first), "a newer read supersedes an older one")
	assert.True(t, g.IsCurrent(second))
}

func TestQuestionsInDeckOrder(t *testing.T) {
	s := newLoaded(t, threeItems)
	s.Skip()
	assert.Equal(t, []string{"A?", "B?", "C?"}, s.Questions())
}
