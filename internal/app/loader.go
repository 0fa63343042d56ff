package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/trivia"
)

var (
	errNoGenerator = errors.New("trivia generation needs an LLM provider")
	errSuperseded  = errors.New("discarded: a newer trivia load replaced it")
)

// deckReadMsg carries raw file contents back to the update loop.
type deckReadMsg struct {
	kind   screen.DeckKind
	path   string
	ticket uint64
	data   []byte
	err    error
}

// deckChangedMsg is sent by the watcher when a startup deck changes.
type deckChangedMsg struct {
	kind screen.DeckKind
	path string
}

// triviaResultMsg carries generated facts back to the update loop.
type triviaResultMsg struct {
	ticket uint64
	facts  []string
	err    error
}

// readDeck takes a ticket for kind and reads path off the update loop.
func (m *AppModel) readDeck(kind screen.DeckKind, path string) tea.Cmd {
	ticket := m.loads[kind].Next()
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return deckReadMsg{kind: kind, path: path, ticket: ticket, data: data, err: err}
	}
}

// applyDeck commits a read if it is still the latest of its kind and
// tells the active screen how it went.
func (m *AppModel) applyDeck(msg deckReadMsg) tea.Cmd {
	log := m.log.With(zap.Stringer("kind", msg.kind), zap.String("path", msg.path))

	if !m.loads[msg.kind].IsCurrent(msg.ticket) {
		log.Info("stale load discarded", zap.Uint64("ticket", msg.ticket))
		return nil
	}

	result := screen.DeckLoadedMsg{Kind: msg.kind, Path: msg.path}
	switch {
	case msg.err != nil:
		result.Err = &deck.InputFormatError{Reason: "cannot read file", Err: msg.err}
	case msg.kind == screen.DeckQuestions:
		result.Err = m.sess.LoadQuestions(msg.data, deck.FormatFromPath(msg.path))
		result.Count = m.sess.Len()
	default:
		result.Err = m.sess.LoadTrivia(msg.data, deck.FormatFromPath(msg.path))
		result.Count = m.sess.TriviaRemaining()
	}

	if result.Err != nil {
		log.Warn("load rejected", zap.Error(result.Err))
	}
	return m.router.Update(result)
}

func (m *AppModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	watched := m.watched
	return func() tea.Msg {
		for c := range changes {
			if kind, ok := watched[filepath.Clean(c.Path)]; ok {
				return deckChangedMsg{kind: kind, path: c.Path}
			}
		}
		return nil
	}
}

// generateTrivia asks the generator for facts about the loaded questions.
// It shares the trivia ticket counter, so a file load issued later wins.
func (m *AppModel) generateTrivia() tea.Cmd {
	if m.generator == nil {
		return m.router.Update(screen.TriviaGeneratedMsg{Err: errNoGenerator})
	}

	ticket := m.loads[screen.DeckTrivia].Next()
	gen := m.generator
	timeout := m.genTimeout
	input := trivia.Input{Questions: m.sess.Questions(), Count: m.triviaCount}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		facts, err := gen.Generate(ctx, input)
		return triviaResultMsg{ticket: ticket, facts: facts, err: err}
	}
}

func (m *AppModel) applyTrivia(msg triviaResultMsg) tea.Cmd {
	if !m.loads[screen.DeckTrivia].IsCurrent(msg.ticket) {
		m.log.Info("stale trivia generation discarded", zap.Uint64("ticket", msg.ticket))
		return m.router.Update(screen.TriviaGeneratedMsg{Err: errSuperseded})
	}

	result := screen.TriviaGeneratedMsg{Err: msg.err}
	if msg.err == nil {
		result.Err = m.sess.ReplaceTrivia(msg.facts)
		result.Count = len(msg.facts)
	}
	return m.router.Update(result)
}
