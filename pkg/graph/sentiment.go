package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// SentimentRow is the per-entity roll-up of mention sentiments across a
// document selection. Total always equals Positive+Negative+Neutral.
type SentimentRow struct {
	Entity   string `json:"entity"`
	Type     string `json:"type"`
	Total    int    `json:"total"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

// aggregatedCategories are the primary categories included in sentiment
// roll-ups.
var aggregatedCategories = map[string]bool{
	common.CategoryCompany: true,
	common.CategoryProduct: true,
	common.CategorySector:  true,
}

// AggregateSentiment rolls per-mention sentiment up into per-entity
// totals for the selected documents. The grouping key is
// (identity, primary category): the same identity appearing under two
// categories produces two rows rather than silently overwriting one. An
// unlabeled mention counts as Neutral.
func (c *GraphClient) AggregateSentiment(ctx context.Context, titles []string) ([]SentimentRow, error) {
	mentions, err := c.store.MentionsForTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentions: %w", err)
	}

	return aggregateSentiment(mentions), nil
}

func aggregateSentiment(mentions []common.Mention) []SentimentRow {
	type key struct {
		identity string
		category string
	}

	groups := make(map[key]*SentimentRow)
	for _, m := range mentions {
		node := Canonicalize(m.Entity)
		if !aggregatedCategories[node.Category] {
			continue
		}

		k := key{identity: node.Label, category: node.Category}
		row, ok := groups[k]
		if !ok {
			row = &SentimentRow{Entity: node.Label, Type: node.Category}
			groups[k] = row
		}

		row.Total++
		switch m.Sentiment {
		case common.SentimentPositive:
			row.Positive++
		case common.SentimentNegative:
			row.Negative++
		default:
			row.Neutral++
		}
	}

	rows := make([]SentimentRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Entity != rows[j].Entity {
			return rows[i].Entity < rows[j].Entity
		}
		return rows[i].Type < rows[j].Type
	})

	return rows
}
