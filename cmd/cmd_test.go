package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in an isolated environment. Flag values
// persist on the package-level commands, so they are reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"FLASHQUIZ_LLM_PROVIDER", "FLASHQUIZ_DB",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "flashquiz (devel)\n", out)
}

func TestSample(t *testing.T) {
	dir := filepath.Join(isolate(t), "decks")

	_, err := execute(t, "sample", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "questions.json"))
	require.NoError(t, err)
	items, err := deck.ParseQuestions(data, deck.FormatJSON)
	require.NoError(t, err)
	assert.NotEmpty(t, items)

	data, err = os.ReadFile(filepath.Join(dir, "trivia.json"))
	require.NoError(t, err)
	facts, err := deck.ParseTrivia(data, deck.FormatJSON)
	require.NoError(t, err)
	assert.NotEmpty(t, facts)

	_, err = execute(t, "sample", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "sample", "--dir", dir, "--force")
	require.NoError(t, err)
}

func TestCheck_Questions(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "deck.json")
	writeFile(t, path, `[
		{"question": "Capital of France?", "choices": ["Paris", "Rome"], "answer": "Paris"},
		{"question": "no answer", "choices": ["a", "b"]},
		{"type": "definition", "q": "Define entropy", "answer": "disorder"}
	]`)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 3 records valid")
	assert.Contains(t, out, "multiple-choice: 1")
	assert.Contains(t, out, "definition:      1")
	assert.Contains(t, out, "rejected:        1")
}

func TestCheck_WriteNormalizes(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, `
- q: "  2 + 2?  "
  a: "4"
  distractors: ["3", "5", "4"]
- question: dropped
`)

	out, err := execute(t, "check", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote normalized deck")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report, err := deck.Summarize(data, deck.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Empty(t, report.Rejected)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "2 + 2?", report.Items[0].Question)
	assert.Equal(t, []string{"4", "3", "5"}, report.Items[0].Choices)
}

func TestCheck_NoValidItems(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "deck.json")
	writeFile(t, path, `[{"question": ""}, 42]`)

	_, err := execute(t, "check", path)
	var noItems *deck.NoValidItemsError
	require.True(t, errors.As(err, &noItems), "got %v", err)
	assert.Equal(t, 2, noItems.Total)
}

func TestCheck_NotAnArray(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "deck.json")
	writeFile(t, path, `{"question": "Q"}`)

	_, err := execute(t, "check", path)
	var badInput *deck.InputFormatError
	assert.True(t, errors.As(err, &badInput), "got %v", err)
}

func TestCheck_Trivia(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "trivia.json")
	writeFile(t, path, `["one", "", 3, "two"]`)

	out, err := execute(t, "check", "--trivia", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 trivia facts")
}

func TestTriviaGenerate_NeedsTopicOrDeck(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "trivia", "generate", "-o", filepath.Join(dir, "t.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--topic or --from")
}

func TestTriviaGenerate_WritesFactsAndLogs(t *testing.T) {
	dir := isolate(t)

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		content := `{"facts": ["Octopuses have three hearts.", "Honey never spoils."]}`
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 20, "total_tokens": 50},
		})
	}))
	defer server.Close()

	t.Setenv("FLASHQUIZ_LLM_PROVIDER", "openai")
	t.Setenv("FLASHQUIZ_LLM_OPENAI_API_KEY", "test-key")
	t.Setenv("FLASHQUIZ_LLM_OPENAI_BASE_URL", server.URL+"/v1")

	db := filepath.Join(dir, "events.db")
	output := filepath.Join(dir, "facts.yaml")

	out, err := execute(t, "--db", db, "trivia", "generate", "--topic", "animals", "-c", "2", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 facts")
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	facts, err := deck.ParseTrivia(data, deck.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"Octopuses have three hearts.", "Honey never spoils."}, facts)

	out, err = execute(t, "--db", db, "llm", "list", "-p", "trivia")
	require.NoError(t, err)
	assert.Contains(t, out, "trivia")
	assert.Contains(t, out, "gpt-4o-mini")

	out, err = execute(t, "--db", db, "llm", "list", "-p", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = execute(t, "--db", db, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Purpose:   trivia")
	assert.Contains(t, out, "Tokens:    30 in / 20 out")

	out, err = execute(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "trivia")
}

func TestLLMView(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "events.db")

	_, err := execute(t, "--db", db, "llm", "view", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 42 not found")

	_, err = execute(t, "--db", db, "llm", "view", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ID")
}
