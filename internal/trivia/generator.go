// Package trivia generates trivia facts with an LLM.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/flashquiz/internal/llm"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Purpose labels trivia requests in the LLM request log.
const Purpose = "trivia"

// ErrNoFacts is returned when the model produced nothing usable.
var ErrNoFacts = errors.New("no usable trivia facts generated")

// Input describes what to generate facts about.
type Input struct {
	// Topic is a free-form subject, e.g. "organic chemistry".
	Topic string

	// Questions are deck questions the facts should relate to.
	Questions []string

	// Count is the number of facts wanted; clamped to [1, Config.MaxCount].
	Count int

	// Avoid lists facts that must not be repeated.
	Avoid []string
}

// Generator produces trivia facts.
type Generator interface {
	Generate(ctx context.Context, input Input) ([]string, error)
}

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

type factsOutput struct {
	Facts []string `json:"facts"`
}

// Generate asks the model for facts and returns the ones that pass the
// configured filters, at most input.Count of them.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]string, error) {
	if input.Topic == "" && len(input.Questions) == 0 {
		return nil, fmt.Errorf("trivia generation needs a topic or deck questions")
	}
	input.Count = min(max(input.Count, 1), g.config.MaxCount)

	requestID := uuid.NewString()
	log := g.log.With(zap.String("request_id", requestID), zap.Int("count", input.Count))

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, g.config)),
		Schema:      FactsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, Purpose), req)
	if err != nil {
		log.Warn("trivia generation failed", zap.Error(err))
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out factsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	facts := out.Facts
	for _, f := range g.config.Filters {
		facts = f.Filter(facts, input)
	}
	if len(facts) > input.Count {
		facts = facts[:input.Count]
	}

	log.Info("trivia generated",
		zap.Int("returned", len(out.Facts)),
		zap.Int("kept", len(facts)),
	)

	if len(facts) == 0 {
		return nil, ErrNoFacts
	}
	return facts, nil
}
