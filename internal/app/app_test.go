package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/home"
	"github.com/abhisek/flashquiz/internal/screens/quiz"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/trivia"
)

// fakeGenerator returns canned facts and records its input.
type fakeGenerator struct {
	facts []string
	err   error
	input trivia.Input
}

func (f *fakeGenerator) Generate(_ context.Context, input trivia.Input) ([]string, error) {
	f.input = input
	return f.facts, f.err
}

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newModel(t *testing.T, opts Options) *AppModel {
	t.Helper()
	if opts.Session == nil {
		opts.Session = session.New()
	}
	m, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestApp_StartupDeckOpensQuiz(t *testing.T) {
	path := writeDeck(t, "deck.json", `[{"q": "A?", "a": "x", "distractors": ["y"]}]`)
	m := newModel(t, Options{QuestionsPath: path})

	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &quiz.QuizScreen{}, m.router.Active())

	msg := m.readDeck(screen.DeckQuestions, path)()
	m.Update(msg)
	assert.Equal(t, 1, m.sess.Len())
}

func TestApp_NoDeckStartsHome(t *testing.T) {
	m := newModel(t, Options{})
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestApp_StaleLoadDiscarded(t *testing.T) {
	slow := writeDeck(t, "slow.json", `[{"q": "Slow?", "a": "s", "distractors": ["t"]}]`)
	fast := writeDeck(t, "fast.json", `[
		{"q": "Fast 1?", "a": "f", "distractors": ["g"]},
		{"q": "Fast 2?", "a": "f", "distractors": ["g"]}
	]`)
	m := newModel(t, Options{})

	first := m.readDeck(screen.DeckQuestions, slow)
	second := m.readDeck(screen.DeckQuestions, fast)

	// The second read completes first; the first completes late.
	m.Update(second())
	m.Update(first())

	require.Equal(t, 2, m.sess.Len())
	assert.ElementsMatch(t, []string{"Fast 1?", "Fast 2?"}, m.sess.Questions())
}

func TestApp_KindsHaveIndependentTickets(t *testing.T) {
	q := writeDeck(t, "q.json", `[{"q": "A?", "a": "x", "distractors": ["y"]}]`)
	tr := writeDeck(t, "t.json", `["fact one", "fact two"]`)
	m := newModel(t, Options{})

	qCmd := m.readDeck(screen.DeckQuestions, q)
	tCmd := m.readDeck(screen.DeckTrivia, tr)
	m.Update(qCmd())
	m.Update(tCmd())

	assert.Equal(t, 1, m.sess.Len())
	assert.Equal(t, 2, m.sess.TriviaRemaining())
}

func TestApp_FailedLoadKeepsSession(t *testing.T) {
	good := writeDeck(t, "good.json", `[{"q": "A?", "a": "x", "distractors": ["y"]}]`)
	bad := writeDeck(t, "bad.json", `{"not": "an array"}`)
	m := newModel(t, Options{})

	m.Update(m.readDeck(screen.DeckQuestions, good)())
	order := m.sess.Order()

	m.Update(m.readDeck(screen.DeckQuestions, bad)())
	assert.Equal(t, order, m.sess.Order())

	m.Update(m.readDeck(screen.DeckQuestions, filepath.Join(t.TempDir(), "missing.json"))())
	assert.Equal(t, order, m.sess.Order())
}

func TestApp_ReadErrorIsInputFormatError(t *testing.T) {
	m := newModel(t, Options{})
	var got screen.DeckLoadedMsg

	msg := m.readDeck(screen.DeckQuestions, filepath.Join(t.TempDir(), "missing.json"))().(deckReadMsg)
	require.Error(t, msg.err)

	// Route the result through a recording screen.
	rec := &recordingScreen{}
	m.router.Push(rec)
	m.applyDeck(msg)
	got = rec.last.(screen.DeckLoadedMsg)

	var fe *deck.InputFormatError
	assert.True(t, errors.As(got.Err, &fe))
}

func TestApp_GenerateTrivia(t *testing.T) {
	gen := &fakeGenerator{facts: []string{"one", "two", "three"}}
	sess := session.New()
	require.NoError(t, sess.LoadQuestions(deck.SampleQuestions(), deck.FormatJSON))
	m := newModel(t, Options{Session: sess, Generator: gen, TriviaCount: 3})

	_, cmd := m.Update(screen.GenerateTriviaMsg{})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, 3, sess.TriviaRemaining())
	assert.Equal(t, 3, gen.input.Count)
	assert.Len(t, gen.input.Questions, sess.Len())
}

func TestApp_GenerateTriviaSupersededByFileLoad(t *testing.T) {
	gen := &fakeGenerator{facts: []string{"generated"}}
	tr := writeDeck(t, "t.json", `["from file", "also from file"]`)
	m := newModel(t, Options{Generator: gen})

	_, genCmd := m.Update(screen.GenerateTriviaMsg{})
	fileCmd := m.readDeck(screen.DeckTrivia, tr)

	m.Update(fileCmd())
	m.Update(genCmd())

	assert.Equal(t, 2, m.sess.TriviaRemaining())
}

func TestApp_GenerateWithoutGenerator(t *testing.T) {
	m := newModel(t, Options{})
	rec := &recordingScreen{}
	m.router.Push(rec)

	m.Update(screen.GenerateTriviaMsg{})
	got := rec.last.(screen.TriviaGeneratedMsg)
	assert.ErrorIs(t, got.Err, errNoGenerator)
}

func TestApp_GenerationErrorKeepsQueue(t *testing.T) {
	gen := &fakeGenerator{err: trivia.ErrNoFacts}
	sess := session.New()
	require.NoError(t, sess.ReplaceTrivia([]string{"kept"}))
	m := newModel(t, Options{Session: sess, Generator: gen})

	_, cmd := m.Update(screen.GenerateTriviaMsg{})
	m.Update(cmd())
	assert.Equal(t, 1, sess.TriviaRemaining())
}

func TestApp_EscPopsUnlessCaptured(t *testing.T) {
	m := newModel(t, Options{})
	q := quiz.New(m.sess, false).WithPrompt(screen.DeckQuestions)
	m.router.Push(q)

	// The prompt consumes Esc.
	_, cmd := m.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd)
	assert.False(t, q.CapturesEscape())
	assert.Equal(t, 2, m.router.Depth())

	// Now Esc navigates back.
	_, cmd = m.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_View(t *testing.T) {
	m := newModel(t, Options{})
	assert.True(t, m.View().AltScreen)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.width)
	assert.True(t, m.View().AltScreen)
}

func TestApp_WatchReloadsDeck(t *testing.T) {
	path := writeDeck(t, "deck.json", `[{"q": "A?", "a": "x", "distractors": ["y"]}]`)
	m := newModel(t, Options{QuestionsPath: path, Watch: true})
	require.NotNil(t, m.watcher)

	changed := make(chan tea.Msg, 1)
	go func() { changed <- m.waitForChange()() }()

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"q": "A?", "a": "x", "distractors": ["y"]},
		{"q": "B?", "a": "x", "distractors": ["y"]}
	]`), 0o644))

	var msg tea.Msg
	select {
	case msg = <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	dc, ok := msg.(deckChangedMsg)
	require.True(t, ok)
	assert.Equal(t, screen.DeckQuestions, dc.kind)

	m.Update(m.readDeck(dc.kind, dc.path)())
	assert.Equal(t, 2, m.sess.Len())
}

// recordingScreen keeps the last message it was sent.
type recordingScreen struct {
	last tea.Msg
}

func (r *recordingScreen) Init() tea.Cmd { return nil }
func (r *recordingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	r.last = msg
	return r, nil
}
func (r *recordingScreen) View(int, int) string { return "" }
func (r *recordingScreen) Title() string        { return "rec" }
