package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/flashquiz/internal/app"
	"github.com/abhisek/flashquiz/internal/llm"
	"github.com/abhisek/flashquiz/internal/logger"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/shuffle"
	"github.com/abhisek/flashquiz/internal/trivia"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("questions", "", "Questions file to load at startup (JSON or YAML)")
	cmd.Flags().String("trivia", "", "Trivia file to load at startup (JSON or YAML)")
	cmd.Flags().Bool("watch", false, "Reload the startup files when they change on disk")
	cmd.Flags().Uint64("seed", 0, "Shuffle seed for a reproducible order (0 = random)")
	cmd.Flags().Int("trivia-count", 10, "Number of facts to request when generating trivia")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	questions, _ := cmd.Flags().GetString("questions")
	if questions == "" {
		questions = cfg.Questions
	}
	triviaPath, _ := cmd.Flags().GetString("trivia")
	if triviaPath == "" {
		triviaPath = cfg.Trivia
	}
	watch, _ := cmd.Flags().GetBool("watch")
	seed, _ := cmd.Flags().GetUint64("seed")
	triviaCount, _ := cmd.Flags().GetInt("trivia-count")

	log, err := logger.New(cfg, logger.ToFile)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	src := shuffle.Default()
	if seed != 0 {
		src = shuffle.Seeded(seed)
	}

	repo := st.EventRepo()
	opts := app.Options{
		Session:         session.New(session.WithSource(src), session.WithLogger(log)),
		QuestionsPath:   questions,
		TriviaPath:      triviaPath,
		Watch:           watch,
		GenerateTimeout: cfg.LLM.Timeout,
		TriviaCount:     triviaCount,
		Repo:            repo,
		Log:             log,
	}

	// The quiz works without an LLM; only trivia generation needs one.
	if err := cfg.LLM.Validate(); err != nil {
		log.Info("trivia generation disabled", zap.Error(err))
	} else {
		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, repo, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Trivia generation will be unavailable.")
		} else {
			opts.Generator = trivia.New(provider, trivia.DefaultConfig(), log)
		}
	}

	return app.Run(opts)
}
