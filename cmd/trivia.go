package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/llm"
	"github.com/abhisek/flashquiz/internal/logger"
	"github.com/abhisek/flashquiz/internal/trivia"
	"github.com/spf13/cobra"
)

var triviaCmd = &cobra.Command{
	Use:   "trivia",
	Short: "Work with trivia decks",
}

var triviaGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate trivia facts with the configured LLM",
	Long: "Generate asks the LLM for facts about a topic or about the questions " +
		"in a deck, and writes them as a trivia file. Every request is recorded " +
		"in the LLM log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		from, _ := cmd.Flags().GetString("from")
		count, _ := cmd.Flags().GetInt("count")
		output, _ := cmd.Flags().GetString("output")
		appendFacts, _ := cmd.Flags().GetBool("append")

		if topic == "" && from == "" {
			return errors.New("one of --topic or --from is required")
		}

		input := trivia.Input{Topic: topic, Count: count}
		if from != "" {
			data, err := os.ReadFile(from)
			if err != nil {
				return fmt.Errorf("read deck: %w", err)
			}
			items, err := deck.ParseQuestions(data, deck.FormatFromPath(from))
			if err != nil {
				return err
			}
			for _, it := range items {
				input.Questions = append(input.Questions, it.Question)
			}
		}

		format := deck.FormatFromPath(output)
		var existing []string
		if appendFacts {
			data, err := os.ReadFile(output)
			switch {
			case errors.Is(err, fs.ErrNotExist):
			case err != nil:
				return fmt.Errorf("read %s: %w", output, err)
			default:
				existing, err = deck.ParseTrivia(data, format)
				if err != nil {
					return err
				}
			}
			input.Avoid = existing
		}

		if err := cfg.LLM.Validate(); err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		log, err := logger.New(cfg, logger.ToStderr)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		if cfg.LLM.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.LLM.Timeout)
			defer cancel()
		}

		gen := trivia.New(provider, trivia.DefaultConfig(), log)
		facts, err := gen.Generate(ctx, input)
		if err != nil {
			return err
		}

		b, err := deck.EncodeTrivia(append(existing, facts...), format)
		if err != nil {
			return fmt.Errorf("encode trivia: %w", err)
		}
		if err := os.WriteFile(output, b, 0o644); err != nil {
			return fmt.Errorf("write trivia: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d facts to %s\n", len(facts), output)
		return nil
	},
}

func init() {
	triviaGenerateCmd.Flags().String("topic", "", "Subject to write facts about")
	triviaGenerateCmd.Flags().String("from", "", "Questions file whose questions the facts should relate to")
	triviaGenerateCmd.Flags().IntP("count", "c", 10, "Number of facts to generate")
	triviaGenerateCmd.Flags().StringP("output", "o", "", "Trivia file to write (JSON or YAML by extension)")
	triviaGenerateCmd.Flags().Bool("append", false, "Keep facts already in the output file and avoid repeating them")
	triviaGenerateCmd.MarkFlagRequired("output")

	triviaCmd.AddCommand(triviaGenerateCmd)
}
