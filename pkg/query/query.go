// Package query implements the agent surface of the engine: translating
// natural-language questions into read-only SQL executed against the
// graph store, and generating analyst insights from selected articles.
// The generative service is an external collaborator; its failures are
// reported as UpstreamError, never silently degraded.
package query

import (
	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

type queryOptions struct {
	Model            string
	Thinking         string
	MaxContextTokens int
}

// QueryOption is a functional option for configuring agent behavior.
type QueryOption func(*queryOptions)

// WithModel returns a QueryOption that overrides the adapter's default
// model for all agent calls.
func WithModel(model string) QueryOption {
	return func(o *queryOptions) {
		o.Model = model
	}
}

// WithThinking returns a QueryOption that enables extended thinking mode
// where the backend supports it.
func WithThinking(thinking string) QueryOption {
	return func(o *queryOptions) {
		o.Thinking = thinking
	}
}

// WithMaxContextTokens returns a QueryOption that bounds the token budget
// used when assembling insight context from article texts.
func WithMaxContextTokens(tokens int) QueryOption {
	return func(o *queryOptions) {
		o.MaxContextTokens = tokens
	}
}

// BaseQueryClient combines the generative client with the graph store:
// the AI translates and writes, the store executes and supplies context.
type BaseQueryClient struct {
	aiClient      ai.GraphAIClient
	storageClient store.GraphStorage
	options       queryOptions

	// truncate bounds text to a token budget. Defaults to the o200k_base
	// tokenizer; tests substitute a cheap implementation.
	truncate func(text string, budget int) (string, error)
}

// NewGraphQueryClient creates a new query client from an AI client and a
// storage client.
//
// Example:
//
//	client := query.NewGraphQueryClient(aiClient, storageClient, nil)
func NewGraphQueryClient(aiC ai.GraphAIClient, s store.GraphStorage, opts []QueryOption) *BaseQueryClient {
	c := BaseQueryClient{
		aiClient:      aiC,
		storageClient: s,
		options: queryOptions{
			MaxContextTokens: 8000,
		},
		truncate: tokenTruncate,
	}

	for _, o := range opts {
		o(&c.options)
	}

	return &c
}

func (c *BaseQueryClient) generateOpts() []ai.GenerateOption {
	opts := []ai.GenerateOption{}
	if c.options.Model != "" {
		opts = append(opts, ai.WithModel(c.options.Model))
	}
	if c.options.Thinking != "" {
		opts = append(opts, ai.WithThinking(c.options.Thinking))
	}
	return opts
}
