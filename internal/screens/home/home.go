package home

import (
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/llmlog"
	"github.com/abhisek/flashquiz/internal/screens/quiz"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	sess   *session.Session
	menu   components.Menu
	notice string
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. A nil repo disables the LLM log entry.
func New(sess *session.Session, canGenerate bool, repo store.EventRepo) *HomeScreen {
	h := &HomeScreen{sess: sess}

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return push(quiz.New(sess, canGenerate))
		}},
		{Label: "OPEN QUESTIONS", Action: func() tea.Cmd {
			return push(quiz.New(sess, canGenerate).WithPrompt(screen.DeckQuestions))
		}},
		{Label: "OPEN TRIVIA", Action: func() tea.Cmd {
			return push(quiz.New(sess, canGenerate).WithPrompt(screen.DeckTrivia))
		}},
		{Label: "SAMPLE DECK", Action: func() tea.Cmd {
			if err := h.loadSamples(); err != nil {
				h.errMsg = err.Error()
				return nil
			}
			return push(quiz.New(sess, canGenerate))
		}},
		{Label: "LLM LOG", Disabled: repo == nil, Action: func() tea.Cmd {
			return push(llmlog.New(repo))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// loadSamples installs the embedded sample deck and trivia.
func (h *HomeScreen) loadSamples() error {
	items, err := deck.ParseQuestions(deck.SampleQuestions(), deck.FormatJSON)
	if err != nil {
		return fmt.Errorf("sample questions: %w", err)
	}
	facts, err := deck.ParseTrivia(deck.SampleTrivia(), deck.FormatJSON)
	if err != nil {
		return fmt.Errorf("sample trivia: %w", err)
	}
	if err := h.sess.ReplaceItems(items); err != nil {
		return err
	}
	return h.sess.ReplaceTrivia(facts)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.DeckLoadedMsg:
		if msg.Err != nil {
			h.errMsg = fmt.Sprintf("%s: %v", filepath.Base(msg.Path), msg.Err)
			h.notice = ""
		} else {
			h.errMsg = ""
			h.notice = fmt.Sprintf("Loaded %d %s from %s", msg.Count, msg.Kind, filepath.Base(msg.Path))
		}
		return h, nil

	case screen.TriviaGeneratedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
