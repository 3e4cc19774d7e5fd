package graph

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

func titlesOf(articles []Article) []string {
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.Title)
	}
	return titles
}

func TestListArticlesNewestFirst(t *testing.T) {
	c := newTestClient(newsStore())

	articles, err := c.ListArticles(context.Background(), filter.Spec{}, 0)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}

	want := []string{"Acme expands", "Acme probed", "Carbon outlook"}
	if got := titlesOf(articles); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got %v, want %v", got, want)
	}
	if articles[0].Tier != common.TierA || articles[0].Status != common.StatusConfirmedNews {
		t.Fatalf("tier/status missing from listing row: %+v", articles[0])
	}
}

func TestListArticlesFilters(t *testing.T) {
	c := newTestClient(newsStore())

	tests := []struct {
		name string
		spec filter.Spec
		want []string
	}{
		{
			name: "tier filter",
			spec: filter.Spec{Tiers: []string{common.TierA}},
			want: []string{"Acme expands"},
		},
		{
			name: "status filter",
			spec: filter.Spec{Statuses: []string{common.StatusSpeculation, common.StatusAnalysisOutlook}},
			want: []string{"Acme probed", "Carbon outlook"},
		},
		{
			name: "date range",
			spec: filter.Spec{DateRange: filter.Range30d},
			want: []string{"Acme expands", "Acme probed"},
		},
		{
			name: "sector filter",
			spec: filter.Spec{Sectors: []string{"Energy"}},
			want: []string{"Carbon outlook"},
		},
		{
			name: "entity search",
			spec: filter.Spec{EntitySearch: "acme"},
			want: []string{"Acme expands", "Acme probed"},
		},
		{
			name: "combined filters intersect",
			spec: filter.Spec{DateRange: filter.Range30d, EntitySearch: "acme", Tiers: []string{common.TierB}},
			want: []string{"Acme probed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := c.ListArticles(context.Background(), tt.spec, 0)
			if err != nil {
				t.Fatalf("ListArticles: %v", err)
			}
			if got := titlesOf(articles); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected titles: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListArticlesLimit(t *testing.T) {
	c := newTestClient(newsStore())

	articles, err := c.ListArticles(context.Background(), filter.Spec{}, 2)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
}

func TestListArticlesDegradesOnStoreFailure(t *testing.T) {
	s := newsStore()
	s.FailQueries = true
	c := newTestClient(s)

	articles, err := c.ListArticles(context.Background(), filter.Spec{}, 0)
	if err != nil {
		t.Fatalf("store failure must not propagate, got %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected empty listing, got %v", articles)
	}
}

func TestListSectors(t *testing.T) {
	c := newTestClient(newsStore())

	sectors, err := c.ListSectors(context.Background())
	if err != nil {
		t.Fatalf("ListSectors: %v", err)
	}
	if !reflect.DeepEqual(sectors, []string{"Energy", "Technology"}) {
		t.Fatalf("unexpected sectors: %v", sectors)
	}
}

func TestArticleMentions(t *testing.T) {
	c := newTestClient(newsStore())

	ids, err := c.ArticleMentions(context.Background(), "Acme expands")
	if err != nil {
		t.Fatalf("ArticleMentions: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 mentioned entities, got %v", ids)
	}

	if _, err := c.ArticleMentions(context.Background(), "No such article"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleText(t *testing.T) {
	c := newTestClient(newsStore())

	text, err := c.ArticleText(context.Background(), "Acme probed")
	if err != nil {
		t.Fatalf("ArticleText: %v", err)
	}
	if text == "" {
		t.Fatal("expected stored article text")
	}

	if _, err := c.ArticleText(context.Background(), "No such article"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
