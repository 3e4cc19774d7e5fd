package graph

import (
	"context"
	"sort"
	"testing"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

func TestSearchEntitiesSubstring(t *testing.T) {
	c := newTestClient(newsStore())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "exact", query: "Acme", want: []string{"Acme"}},
		{name: "case insensitive", query: "aCmE", want: []string{"Acme"}},
		{name: "partial", query: "olt", want: []string{"Bolt"}},
		{name: "multiple hits", query: "o", want: []string{"Bolt", "Carbon", "Jane Roe", "Technology"}},
		{name: "no hits", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := c.SearchEntities(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("SearchEntities: %v", err)
			}
			got := make([]string, 0, len(nodes))
			for _, n := range nodes {
				got = append(got, n.Label)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected labels: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("unexpected labels: got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSearchEntitiesExcludesDocumentNodes(t *testing.T) {
	s := newsStore()
	s.MustSave(store.ArticleBundle{
		Document: common.Document{Title: "Press digest", Date: "2025-06-12", Tier: common.TierB, Status: common.StatusConfirmedNews},
		Entities: []common.Entity{
			{Name: "Acme press release", Categories: []string{common.CategoryDocument}},
		},
	})
	c := newTestClient(s)

	nodes, err := c.SearchEntities(context.Background(), "press release")
	if err != nil {
		t.Fatalf("SearchEntities: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("document-typed entities must not surface in search: %v", nodes)
	}
}

func TestSearchEntitiesSorted(t *testing.T) {
	c := newTestClient(newsStore())

	nodes, err := c.SearchEntities(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchEntities: %v", err)
	}
	if !sort.SliceIsSorted(nodes, func(i, j int) bool { return nodes[i].Label < nodes[j].Label }) {
		t.Fatalf("results not sorted by label: %v", nodes)
	}
}

func TestSearchEntitiesCap(t *testing.T) {
	c := newTestClient(newsStore())
	c.maxSearchResults = 2

	nodes, err := c.SearchEntities(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchEntities: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected capped result of 2, got %d", len(nodes))
	}
}

func TestSearchEntitiesDegradesOnStoreFailure(t *testing.T) {
	s := newsStore()
	s.FailQueries = true
	c := newTestClient(s)

	nodes, err := c.SearchEntities(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("store failure must not propagate, got %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected empty result, got %v", nodes)
	}
}
