package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/home"
	"github.com/abhisek/flashquiz/internal/screens/quiz"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/trivia"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/watch"
)

// Options configures the TUI.
type Options struct {
	// Session is shared by every screen. Required.
	Session *session.Session

	// QuestionsPath and TriviaPath are loaded at startup when set.
	QuestionsPath string
	TriviaPath    string

	// Watch reloads the startup files when they change on disk.
	Watch bool

	// Generator enables in-app trivia generation when non-nil.
	Generator       trivia.Generator
	GenerateTimeout time.Duration
	TriviaCount     int

	// Repo backs the LLM log screen; nil hides it.
	Repo store.EventRepo

	Log *zap.Logger
}

// AppModel is the root Bubble Tea model. It owns file loading so that
// results are applied to the session inside the update loop.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	log    *zap.Logger

	// loads issues a ticket per read; only the latest ticket of each kind
	// may be applied.
	loads map[screen.DeckKind]*session.Generations

	watcher *watch.Watcher
	watched map[string]screen.DeckKind

	generator   trivia.Generator
	genTimeout  time.Duration
	triviaCount int

	startup []screen.LoadDeckMsg

	width  int
	height int
}

// New creates the root model. A deck passed on the command line opens the
// quiz directly on top of the home screen.
func New(opts Options) (*AppModel, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := &AppModel{
		sess: opts.Session,
		log:  log,
		loads: map[screen.DeckKind]*session.Generations{
			screen.DeckQuestions: {},
			screen.DeckTrivia:    {},
		},
		generator:   opts.Generator,
		genTimeout:  opts.GenerateTimeout,
		triviaCount: opts.TriviaCount,
	}
	if m.genTimeout <= 0 {
		m.genTimeout = 45 * time.Second
	}
	if m.triviaCount <= 0 {
		m.triviaCount = 10
	}

	canGenerate := opts.Generator != nil
	m.router = router.New(home.New(opts.Session, canGenerate, opts.Repo))
	if opts.QuestionsPath != "" {
		m.router.Push(quiz.New(opts.Session, canGenerate))
	}

	watchPaths := make(map[string]screen.DeckKind)
	if opts.QuestionsPath != "" {
		m.startup = append(m.startup, screen.LoadDeckMsg{Kind: screen.DeckQuestions, Path: opts.QuestionsPath})
		watchPaths[opts.QuestionsPath] = screen.DeckQuestions
	}
	if opts.TriviaPath != "" {
		m.startup = append(m.startup, screen.LoadDeckMsg{Kind: screen.DeckTrivia, Path: opts.TriviaPath})
		watchPaths[opts.TriviaPath] = screen.DeckTrivia
	}

	if opts.Watch && len(watchPaths) > 0 {
		if err := m.startWatcher(watchPaths); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *AppModel) startWatcher(paths map[string]screen.DeckKind) error {
	m.watched = make(map[string]screen.DeckKind, len(paths))
	list := make([]string, 0, len(paths))
	for p, kind := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		m.watched[abs] = kind
		list = append(list, abs)
	}

	w, err := watch.New(m.log, watch.DefaultDebounce, list...)
	if err != nil {
		return err
	}
	m.watcher = w
	return nil
}

// Close releases the deck watcher.
func (m *AppModel) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *AppModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.startup)+2)
	for _, req := range m.startup {
		cmds = append(cmds, m.readDeck(req.Kind, req.Path))
	}
	cmds = append(cmds, m.waitForChange())
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.LoadDeckMsg:
		return m, m.readDeck(msg.Kind, msg.Path)

	case deckReadMsg:
		return m, m.applyDeck(msg)

	case deckChangedMsg:
		return m, tea.Batch(m.readDeck(msg.kind, msg.path), m.waitForChange())

	case screen.GenerateTriviaMsg:
		return m, m.generateTrivia()

	case triviaResultMsg:
		return m, m.applyTrivia(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var (
		title  string
		status string
	)
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
