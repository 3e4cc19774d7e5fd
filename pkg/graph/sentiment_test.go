package graph

import (
	"context"
	"reflect"
	"testing"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// Scenario B: one labeled and one unlabeled mention of the same entity.
func TestAggregateSentimentMissingLabelCountsNeutral(t *testing.T) {
	c := newTestClient(newsStore())

	rows, err := c.AggregateSentiment(context.Background(), []string{"Acme expands", "Acme probed"})
	if err != nil {
		t.Fatalf("AggregateSentiment: %v", err)
	}

	var acme *SentimentRow
	for i := range rows {
		if rows[i].Entity == "Acme" {
			acme = &rows[i]
		}
	}
	if acme == nil {
		t.Fatalf("no row for Acme in %v", rows)
	}

	want := SentimentRow{Entity: "Acme", Type: common.CategoryCompany, Total: 2, Positive: 1, Negative: 0, Neutral: 1}
	if *acme != want {
		t.Fatalf("unexpected row: got %+v, want %+v", *acme, want)
	}
}

func TestAggregateSentimentTotalsInvariant(t *testing.T) {
	c := newTestClient(newsStore())

	titles := []string{"Acme expands", "Acme probed", "Carbon outlook"}
	rows, err := c.AggregateSentiment(context.Background(), titles)
	if err != nil {
		t.Fatalf("AggregateSentiment: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected aggregation rows")
	}

	mentions, err := newsStore().MentionsForTitles(context.Background(), titles)
	if err != nil {
		t.Fatalf("MentionsForTitles: %v", err)
	}

	for _, row := range rows {
		if row.Positive+row.Negative+row.Neutral != row.Total {
			t.Fatalf("sentiment counts do not sum to total: %+v", row)
		}

		mentionCount := 0
		for _, m := range mentions {
			if m.Entity.Identity() == row.Entity && aggregatedCategories[Canonicalize(m.Entity).Category] {
				mentionCount++
			}
		}
		if row.Total != mentionCount {
			t.Fatalf("row total %d does not match mention count %d for %q", row.Total, mentionCount, row.Entity)
		}
	}
}

func TestAggregateSentimentExcludesPeople(t *testing.T) {
	c := newTestClient(newsStore())

	rows, err := c.AggregateSentiment(context.Background(), []string{"Acme probed"})
	if err != nil {
		t.Fatalf("AggregateSentiment: %v", err)
	}
	for _, r := range rows {
		if r.Entity == "Jane Roe" {
			t.Fatalf("person leaked into sentiment table: %v", rows)
		}
	}
}

// The same identity under two categories yields two rows instead of a
// silent overwrite.
func TestAggregateSentimentCategoryIsPartOfGroupingKey(t *testing.T) {
	mentions := []common.Mention{
		{DocumentTitle: "d1", Entity: common.Entity{ID: "e1", Name: "Orion", Categories: []string{common.CategoryCompany}}, Sentiment: common.SentimentPositive},
		{DocumentTitle: "d2", Entity: common.Entity{ID: "e2", Name: "Orion", Categories: []string{common.CategoryProduct}}},
	}

	rows := aggregateSentiment(mentions)
	want := []SentimentRow{
		{Entity: "Orion", Type: common.CategoryCompany, Total: 1, Positive: 1},
		{Entity: "Orion", Type: common.CategoryProduct, Total: 1, Neutral: 1},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows:\ngot  %v\nwant %v", rows, want)
	}
}

func TestAnalyzeCompaniesCombinesBothViews(t *testing.T) {
	c := newTestClient(newsStore())

	analysis, err := c.AnalyzeCompanies(context.Background(), []string{"Acme expands"})
	if err != nil {
		t.Fatalf("AnalyzeCompanies: %v", err)
	}
	if len(analysis.Sentiment) == 0 {
		t.Fatal("expected sentiment rows")
	}
	if len(analysis.Connections) == 0 {
		t.Fatal("expected connection rows")
	}
}
