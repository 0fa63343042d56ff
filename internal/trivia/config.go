package trivia

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Filters run in order over the returned facts.
	Filters []Filter

	// MaxCount caps how many facts one request may ask for.
	MaxCount int

	// MaxQuestions caps how many deck questions go into the prompt.
	MaxQuestions int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard filter chain and limits.
func DefaultConfig() Config {
	return Config{
		Filters: []Filter{
			CleanFilter{},
			LengthFilter{MaxRunes: 280},
			DedupFilter{},
		},
		MaxCount:     50,
		MaxQuestions: 25,
		MaxTokens:    2048,
		Temperature:  0.8,
	}
}
