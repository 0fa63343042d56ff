package home

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/quiz"
	"github.com/abhisek/flashquiz/internal/session"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func selectItem(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	for h.menu.Items[h.menu.Selected].Label != label {
		before := h.menu.Selected
		h.Update(specialKey(tea.KeyDown))
		require.NotEqual(t, before, h.menu.Selected, "menu item %q not reachable", label)
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	return cmd
}

func TestHome_LLMLogDisabledWithoutRepo(t *testing.T) {
	h := New(session.New(), false, nil)
	for _, item := range h.menu.Items {
		if item.Label == "LLM LOG" {
			assert.True(t, item.Disabled)
		}
	}
}

func TestHome_StartQuizPushesQuiz(t *testing.T) {
	h := New(session.New(), false, nil)
	cmd := selectItem(t, h, "START QUIZ")
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quiz.QuizScreen{}, msg.Screen)
}

func TestHome_OpenQuestionsStartsWithPrompt(t *testing.T) {
	h := New(session.New(), false, nil)
	cmd := selectItem(t, h, "OPEN QUESTIONS")
	require.NotNil(t, cmd)

	msg := cmd().(router.PushScreenMsg)
	q := msg.Screen.(*quiz.QuizScreen)
	assert.True(t, q.CapturesEscape())
}

func TestHome_SampleDeckLoadsSession(t *testing.T) {
	sess := session.New()
	h := New(sess, false, nil)

	cmd := selectItem(t, h, "SAMPLE DECK")
	require.NotNil(t, cmd)
	assert.Greater(t, sess.Len(), 0)
	assert.Greater(t, sess.TriviaRemaining(), 0)
	assert.Contains(t, h.View(100, 30), "QUESTIONS")
}

func TestHome_ShowsLoadResults(t *testing.T) {
	h := New(session.New(), false, nil)

	h.Update(screen.DeckLoadedMsg{Kind: screen.DeckQuestions, Path: "/x/chem.json", Err: errors.New("boom")})
	assert.Contains(t, h.View(100, 30), "chem.json: boom")

	h.Update(screen.DeckLoadedMsg{Kind: screen.DeckTrivia, Path: "/x/facts.json", Count: 3})
	assert.Empty(t, h.errMsg)
	assert.Equal(t, "Loaded 3 trivia from facts.json", h.notice)
}
