package graph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Analysis combines the two cross-entity views over one document
// selection: the sentiment table and the company connection rows.
type Analysis struct {
	Sentiment   []SentimentRow  `json:"sentiment"`
	Connections []ConnectionRow `json:"connections"`
}

// AnalyzeCompanies computes the sentiment roll-up and the connection
// analysis for a document selection. The two halves issue independent
// store reads and run concurrently; cancellation of the request context
// cancels both.
func (c *GraphClient) AnalyzeCompanies(ctx context.Context, titles []string) (Analysis, error) {
	var analysis Analysis

	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		rows, err := c.AggregateSentiment(gCtx, titles)
		if err != nil {
			return err
		}
		analysis.Sentiment = rows
		return nil
	})
	eg.Go(func() error {
		rows, err := c.FindConnections(gCtx, titles)
		if err != nil {
			return err
		}
		analysis.Connections = rows
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Analysis{}, err
	}

	return analysis, nil
}
