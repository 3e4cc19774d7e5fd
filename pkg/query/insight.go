package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// Analysis types accepted by GenerateInsight.
const (
	AnalysisSummary   = "Summary"
	AnalysisRisks     = "Risks"
	AnalysisDirection = "Direction"
)

func insightPrompt(analysisType string) (string, error) {
	switch analysisType {
	case AnalysisSummary:
		return ai.InsightSummaryPrompt, nil
	case AnalysisRisks:
		return ai.InsightRisksPrompt, nil
	case AnalysisDirection:
		return ai.InsightDirectionPrompt, nil
	}
	return "", fmt.Errorf("unknown analysis type %q", analysisType)
}

// GenerateInsight produces markdown analysis of the selected articles.
// Context is assembled from the articles' provenance, mentions and full
// text, bounded by the configured token budget; generation failures are
// UpstreamError.
func (c *BaseQueryClient) GenerateInsight(ctx context.Context, titles []string, analysisType string) (string, error) {
	prompt, err := insightPrompt(analysisType)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return "", fmt.Errorf("no articles selected")
	}

	contextText, err := c.buildInsightContext(ctx, titles)
	if err != nil {
		return "", err
	}

	response, err := c.aiClient.GenerateCompletion(
		ctx,
		fmt.Sprintf(prompt, contextText),
		c.generateOpts()...,
	)
	if err != nil {
		return "", &UpstreamError{Op: "insight generation", Err: err}
	}

	usage := c.aiClient.GetMetrics()
	logger.Debug("[Agent] Insight generated",
		"type", analysisType,
		"articles", len(titles),
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)
	return response, nil
}

// buildInsightContext renders one section per article: provenance line,
// mentioned entities with sentiment, then the article text truncated to
// fit the remaining token budget.
func (c *BaseQueryClient) buildInsightContext(ctx context.Context, titles []string) (string, error) {
	mentions, err := c.storageClient.MentionsForTitles(ctx, titles)
	if err != nil {
		return "", err
	}

	mentionsByTitle := make(map[string][]common.Mention)
	for _, m := range mentions {
		mentionsByTitle[m.DocumentTitle] = append(mentionsByTitle[m.DocumentTitle], m)
	}

	budget := c.options.MaxContextTokens

	var b strings.Builder
	for _, title := range titles {
		doc, err := c.storageClient.DocumentByTitle(ctx, title)
		if err != nil {
			return "", err
		}
		text, err := c.storageClient.DocumentText(ctx, title)
		if err != nil {
			return "", err
		}

		b.WriteString(fmt.Sprintf("## %s\n", doc.Title))
		b.WriteString(fmt.Sprintf("Date: %s | Publisher: %s | Tier: %s | Status: %s\n",
			doc.Date, doc.Publisher, doc.Tier, doc.Status))

		if ms := mentionsByTitle[title]; len(ms) > 0 {
			b.WriteString("Mentions:")
			for _, m := range ms {
				sentiment := m.Sentiment
				if sentiment == "" {
					sentiment = common.SentimentNeutral
				}
				b.WriteString(fmt.Sprintf(" %s (%s)", m.Entity.Identity(), sentiment))
			}
			b.WriteString("\n")
		}

		body, err := c.truncate(text, budget/len(titles))
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	return c.truncate(b.String(), budget)
}

// tokenTruncate cuts text to at most budget tokens of the o200k_base
// vocabulary, decoding back to text at the cut.
func tokenTruncate(text string, budget int) (string, error) {
	if budget <= 0 {
		return "", nil
	}
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", err
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text, nil
	}
	return enc.Decode(tokens[:budget]), nil
}
