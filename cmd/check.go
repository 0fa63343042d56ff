package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a questions or trivia file",
	Long: "Check decodes a deck, normalizes every record the way the quiz does, " +
		"and reports which records would be dropped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		isTrivia, _ := cmd.Flags().GetBool("trivia")
		write, _ := cmd.Flags().GetBool("write")

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read deck: %w", err)
		}
		format := deck.FormatFromPath(path)
		out := cmd.OutOrStdout()

		if isTrivia {
			facts, err := deck.ParseTrivia(data, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d trivia facts\n", path, len(facts))
			if write {
				return writeDeck(cmd, path, func() ([]byte, error) { return deck.EncodeTrivia(facts, format) })
			}
			return nil
		}

		report, err := deck.Summarize(data, format)
		if err != nil {
			return err
		}

		var definitions int
		for _, it := range report.Items {
			if it.Type == deck.TypeDefinition {
				definitions++
			}
		}

		fmt.Fprintf(out, "%s: %d of %d records valid\n", path, len(report.Items), report.Total)
		fmt.Fprintf(out, "  multiple-choice: %d\n", len(report.Items)-definitions)
		fmt.Fprintf(out, "  definition:      %d\n", definitions)
		if len(report.Rejected) > 0 {
			fmt.Fprintf(out, "  rejected:        %s\n", joinInts(report.Rejected))
		}

		if len(report.Items) == 0 {
			return &deck.NoValidItemsError{Kind: "questions", Total: report.Total}
		}
		if write {
			return writeDeck(cmd, path, func() ([]byte, error) { return deck.EncodeQuestions(report.Items, format) })
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("trivia", false, "Treat the file as a trivia deck")
	checkCmd.Flags().BoolP("write", "w", false, "Rewrite the file in normalized form")
}

func writeDeck(cmd *cobra.Command, path string, encode func() ([]byte, error)) error {
	b, err := encode()
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote normalized deck to %s\n", path)
	return nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
