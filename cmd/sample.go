package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write sample questions and trivia files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		force, _ := cmd.Flags().GetBool("force")

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}

		files := []struct {
			name string
			data []byte
		}{
			{"questions.json", deck.SampleQuestions()},
			{"trivia.json", deck.SampleTrivia()},
		}
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", path, err)
				}
			}
			if err := os.WriteFile(path, f.data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		}
		return nil
	},
}

func init() {
	sampleCmd.Flags().String("dir", ".", "Directory to write the sample files into")
	sampleCmd.Flags().Bool("force", false, "Overwrite existing files")
}
