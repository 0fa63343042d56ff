package quiz

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// QuizScreen drives a session from the keyboard. The session itself is
// shared with the app, which applies file loads to it.
type QuizScreen struct {
	sess        *session.Session
	canGenerate bool

	choices components.MultiChoice
	input   components.TextInput

	// prompt is non-nil while a file path is being typed.
	prompt     *components.TextInput
	promptKind screen.DeckKind

	notice string
	errMsg string
	busy   bool // trivia generation in flight
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeCapturer = (*QuizScreen)(nil)

// New creates a quiz screen over sess. canGenerate enables the trivia
// generation key.
func New(sess *session.Session, canGenerate bool) *QuizScreen {
	s := &QuizScreen{sess: sess, canGenerate: canGenerate}
	s.sync()
	return s
}

// WithPrompt opens the file prompt for kind as soon as the screen shows.
func (s *QuizScreen) WithPrompt(kind screen.DeckKind) *QuizScreen {
	s.openPrompt(kind)
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.prompt != nil {
		return s.prompt.Init()
	}
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the running score and streak in the header.
func (s *QuizScreen) Status() string {
	sc := s.sess.Score()
	return fmt.Sprintf("✓ %d/%d  ★ %d", sc.Correct, sc.Total, s.sess.Streak())
}

// CapturesEscape keeps Esc inside the screen while the prompt is open.
func (s *QuizScreen) CapturesEscape() bool {
	return s.prompt != nil
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.prompt != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if _, ok := s.sess.PendingTrivia(); ok {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}

	item, ok := s.sess.Current()
	switch {
	case !ok:
		return []layout.KeyHint{
			{Key: "o", Description: "Open questions"},
			{Key: "t", Description: "Open trivia"},
			{Key: "Esc", Description: "Back"},
		}
	case s.sess.Answered():
		return []layout.KeyHint{
			{Key: "n/Enter", Description: "Next"},
			{Key: "s", Description: "Skip"},
			{Key: "o/t", Description: "Open file"},
			{Key: "Esc", Description: "Back"},
		}
	case item.Type == deck.TypeDefinition:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Ctrl+O/T", Description: "Open file"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "s", Description: "Skip"},
			{Key: "o/t", Description: "Open file"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.DeckLoadedMsg:
		return s.handleDeckLoaded(msg)

	case screen.TriviaGeneratedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Trivia generation failed: %v", msg.Err)
		} else {
			s.notice = fmt.Sprintf("Generated %d trivia facts", msg.Count)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else (cursor blink etc.) to the focused input.
	var cmd tea.Cmd
	if s.prompt != nil {
		*s.prompt, cmd = s.prompt.Update(msg)
	} else if s.typing() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *QuizScreen) handleDeckLoaded(msg screen.DeckLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = loadErrorText(msg)
		return s, nil
	}

	s.errMsg = ""
	name := filepath.Base(msg.Path)
	switch msg.Kind {
	case screen.DeckQuestions:
		s.notice = fmt.Sprintf("Loaded %d questions from %s", msg.Count, name)
		s.sync()
		return s, s.input.Init()
	default:
		s.notice = fmt.Sprintf("Loaded %d trivia facts from %s", msg.Count, name)
		return s, nil
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.prompt != nil {
		return s.handlePromptKey(msg)
	}

	// A trivia reveal swallows the next key.
	if _, ok := s.sess.PendingTrivia(); ok {
		s.sess.DismissTrivia()
		return s, nil
	}

	s.notice = ""
	s.errMsg = ""

	switch key {
	case "ctrl+o":
		return s, s.openPrompt(screen.DeckQuestions)
	case "ctrl+t":
		return s, s.openPrompt(screen.DeckTrivia)
	case "ctrl+s":
		return s.skip()
	}

	if s.typing() {
		if key == "enter" {
			return s.submitDefinition()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "o":
		return s, s.openPrompt(screen.DeckQuestions)
	case "t":
		return s, s.openPrompt(screen.DeckTrivia)
	case "g":
		return s.requestTrivia()
	case "s":
		return s.skip()
	case "n":
		if s.sess.Answered() {
			return s.next()
		}
		return s, nil
	case "enter":
		if s.sess.Answered() {
			return s.next()
		}
	}

	if _, ok := s.sess.Current(); !ok || s.sess.Answered() {
		return s, nil
	}

	var (
		choice string
		picked bool
	)
	s.choices, choice, picked = s.choices.Update(msg)
	if picked {
		return s.selectChoice(choice)
	}
	return s, nil
}

func (s *QuizScreen) handlePromptKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.prompt = nil
		return s, nil
	case "enter":
		path := strings.TrimSpace(s.prompt.Value())
		if path == "" {
			return s, nil
		}
		kind := s.promptKind
		s.prompt = nil
		s.notice = fmt.Sprintf("Loading %s from %s...", kind, filepath.Base(path))
		return s, func() tea.Msg { return screen.LoadDeckMsg{Kind: kind, Path: path} }
	}

	var cmd tea.Cmd
	*s.prompt, cmd = s.prompt.Update(msg)
	return s, cmd
}

func (s *QuizScreen) openPrompt(kind screen.DeckKind) tea.Cmd {
	ti := components.NewTextInput("path/to/file.json", 0)
	s.prompt = &ti
	s.promptKind = kind
	return ti.Init()
}

func (s *QuizScreen) selectChoice(choice string) (screen.Screen, tea.Cmd) {
	item, _ := s.sess.Current()
	if _, applied := s.sess.SelectChoice(choice); applied {
		s.choices = s.choices.Reveal(choice, item.CorrectChoice())
	}
	return s, nil
}

func (s *QuizScreen) submitDefinition() (screen.Screen, tea.Cmd) {
	out, applied := s.sess.SubmitDefinition(s.input.Value())
	if applied {
		s.input.Submit(out.Correct)
	}
	return s, nil
}

func (s *QuizScreen) skip() (screen.Screen, tea.Cmd) {
	s.sess.Skip()
	s.sync()
	return s, s.input.Init()
}

func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	s.sess.Next()
	s.sync()
	return s, s.input.Init()
}

func (s *QuizScreen) requestTrivia() (screen.Screen, tea.Cmd) {
	switch {
	case !s.canGenerate:
		s.errMsg = "Trivia generation needs an LLM API key (see flashquiz --help)"
		return s, nil
	case s.sess.Len() == 0:
		s.errMsg = "Load questions before generating trivia"
		return s, nil
	case s.busy:
		return s, nil
	}
	s.busy = true
	s.notice = "Generating trivia..."
	return s, func() tea.Msg { return screen.GenerateTriviaMsg{} }
}

// typing reports whether keys go to the definition input.
func (s *QuizScreen) typing() bool {
	item, ok := s.sess.Current()
	return ok && item.Type == deck.TypeDefinition && !s.sess.Answered()
}

// sync rebuilds the widgets for the current item.
func (s *QuizScreen) sync() {
	s.choices = components.NewMultiChoice(s.sess.VisibleChoices())
	s.input = components.NewTextInput("Type your definition...", 200)

	item, ok := s.sess.Current()
	if !ok || !s.sess.Answered() {
		return
	}
	if item.Type == deck.TypeDefinition {
		s.input.Model.SetValue(s.sess.Selection())
		s.input.Submit(s.sess.Feedback() == session.FeedbackCorrect)
		return
	}
	s.choices = s.choices.Reveal(s.sess.Selection(), item.CorrectChoice())
}

// loadErrorText turns a rejected load into a message. The session keeps
// whatever it had before.
func loadErrorText(msg screen.DeckLoadedMsg) string {
	name := filepath.Base(msg.Path)

	var (
		noItems  *deck.NoValidItemsError
		badInput *deck.InputFormatError
	)
	switch {
	case errors.As(msg.Err, &noItems):
		return fmt.Sprintf("No valid %s found in %s", noItems.Kind, name)
	case errors.As(msg.Err, &badInput):
		return fmt.Sprintf("%s is not a valid %s file (%s)", name, msg.Kind, badInput.Reason)
	default:
		return fmt.Sprintf("Could not load %s from %s: %v", msg.Kind, name, msg.Err)
	}
}
