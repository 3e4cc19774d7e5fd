package graph

import (
	"context"
	"testing"
	"time"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"
)

func labelsOf(nodes []CanonicalNode) map[string]string {
	byID := make(map[string]string, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n.Label
	}
	return byID
}

// Every returned edge must connect returned nodes and no node may appear
// twice.
func assertWellFormed(t *testing.T, net Network) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range net.Nodes {
		if seen[n.ID] {
			t.Fatalf("node %q (%s) appears twice", n.ID, n.Label)
		}
		seen[n.ID] = true
	}
	for _, e := range net.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			t.Fatalf("edge %v references a node outside the node list", e)
		}
	}
}

func TestBuildNetworkInducedSubgraph(t *testing.T) {
	c := newTestClient(newsStore())

	net, err := c.BuildNetwork(context.Background(), filter.Spec{}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	assertWellFormed(t, net)

	labels := labelsOf(net.Nodes)
	wantNodes := map[string]bool{"Acme": true, "Bolt": true, "Technology": true, "Jane Roe": true, "Carbon": true, "Energy": true}
	if len(labels) != len(wantNodes) {
		t.Fatalf("unexpected node count %d: %v", len(labels), labels)
	}
	for _, l := range labels {
		if !wantNodes[l] {
			t.Fatalf("unexpected node %q", l)
		}
	}

	// All three relationships connect mentioned entities, so the induced
	// subgraph keeps them all even though discovery went through
	// documents, not relationship edges.
	if len(net.Edges) != 3 {
		t.Fatalf("expected 3 induced edges, got %d: %v", len(net.Edges), net.Edges)
	}
}

func TestBuildNetworkSelectionInducesOnlySelectedMentions(t *testing.T) {
	c := newTestClient(newsStore())

	net, err := c.BuildNetwork(context.Background(), filter.Spec{ArticleTitles: []string{"Acme expands"}}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	assertWellFormed(t, net)

	labels := labelsOf(net.Nodes)
	if len(labels) != 3 {
		t.Fatalf("expected 3 nodes (Acme, Bolt, Technology), got %v", labels)
	}

	// Only Acme-PARTNERS_WITH->Bolt has both endpoints in the selection.
	if len(net.Edges) != 1 || net.Edges[0].Type != common.RelPartnersWith {
		t.Fatalf("unexpected induced edges: %v", net.Edges)
	}
}

// Scenario D: an explicit selection makes ambient filters irrelevant.
func TestBuildNetworkSelectionOverridesTiers(t *testing.T) {
	c := newTestClient(newsStore())

	withTiers, err := c.BuildNetwork(context.Background(), filter.Spec{
		ArticleTitles: []string{"Acme expands"},
		Tiers:         []string{common.TierC}, // would exclude the selected tier A doc
	}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	selectionOnly, err := c.BuildNetwork(context.Background(), filter.Spec{
		ArticleTitles: []string{"Acme expands"},
	}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}

	if len(withTiers.Nodes) != len(selectionOnly.Nodes) || len(withTiers.Edges) != len(selectionOnly.Edges) {
		t.Fatalf("tier filter leaked into an explicit selection: %v vs %v", withTiers, selectionOnly)
	}
}

func TestBuildNetworkSelectionOverridesEntityFilters(t *testing.T) {
	c := newTestClient(newsStore())

	selectionOnly, err := c.BuildNetwork(context.Background(), filter.Spec{
		ArticleTitles: []string{"Acme probed"},
	}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(selectionOnly.Nodes) != 2 {
		t.Fatalf("expected 2 nodes (Acme, Jane Roe) for the bare selection, got %v", selectionOnly.Nodes)
	}

	// Neither selected entity is in Energy and none matches "carbon";
	// both filters must still be ignored for an explicit selection.
	withSectors, err := c.BuildNetwork(context.Background(), filter.Spec{
		ArticleTitles: []string{"Acme probed"},
		Sectors:       []string{"Energy"},
	}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(withSectors.Nodes) != len(selectionOnly.Nodes) {
		t.Fatalf("sector filter leaked into an explicit selection: %d nodes with sectors vs %d without",
			len(withSectors.Nodes), len(selectionOnly.Nodes))
	}

	withSearch, err := c.BuildNetwork(context.Background(), filter.Spec{
		ArticleTitles: []string{"Acme probed"},
		EntitySearch:  "carbon",
	}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(withSearch.Nodes) != len(selectionOnly.Nodes) {
		t.Fatalf("entity search leaked into an explicit selection: %d nodes with search vs %d without",
			len(withSearch.Nodes), len(selectionOnly.Nodes))
	}
}

// Scenario A: a date range matching nothing yields an empty, well-typed
// network.
func TestBuildNetworkNoMatchingDocuments(t *testing.T) {
	c := newTestClient(newsStore())

	// Shift the clock far past every fixture date.
	c.now = func() time.Time { return testNow.AddDate(5, 0, 0) }

	net, err := c.BuildNetwork(context.Background(), filter.Spec{DateRange: filter.Range30d}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(net.Nodes) != 0 || len(net.Edges) != 0 {
		t.Fatalf("expected empty network, got %v", net)
	}
	if net.Nodes == nil || net.Edges == nil {
		t.Fatal("empty network must keep non-nil slices")
	}
}

func TestBuildNetworkAllowLists(t *testing.T) {
	c := newTestClient(newsStore())

	companiesOnly, err := c.BuildNetwork(context.Background(), filter.Spec{}, []string{common.CategoryCompany}, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	assertWellFormed(t, companiesOnly)
	for _, n := range companiesOnly.Nodes {
		if n.Category != common.CategoryCompany {
			t.Fatalf("node type allowlist leaked %q", n.Category)
		}
	}
	for _, e := range companiesOnly.Edges {
		if e.Type == common.RelWorksAt {
			t.Fatal("WORKS_AT edge survived although the Person endpoint was excluded")
		}
	}

	suppliesOnly, err := c.BuildNetwork(context.Background(), filter.Spec{}, nil, []string{common.RelSupplies})
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(suppliesOnly.Edges) != 1 || suppliesOnly.Edges[0].Type != common.RelSupplies {
		t.Fatalf("relationship type allowlist failed: %v", suppliesOnly.Edges)
	}
}

func TestBuildNetworkDeterministicEdgeCap(t *testing.T) {
	c := newTestClient(newsStore())
	c.maxEdgesDefault = 2

	first, err := c.BuildNetwork(context.Background(), filter.Spec{}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if len(first.Edges) != 2 {
		t.Fatalf("expected capped edge count 2, got %d", len(first.Edges))
	}

	second, err := c.BuildNetwork(context.Background(), filter.Spec{}, nil, nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	for i := range first.Edges {
		if first.Edges[i] != second.Edges[i] {
			t.Fatalf("truncation is not deterministic: %v vs %v", first.Edges, second.Edges)
		}
	}
}

func TestBuildNetworkDegradesOnStoreFailure(t *testing.T) {
	s := newsStore()
	s.FailQueries = true
	c := newTestClient(s)

	net, err := c.BuildNetwork(context.Background(), filter.Spec{}, nil, nil)
	if err != nil {
		t.Fatalf("store failure must not propagate, got %v", err)
	}
	if len(net.Nodes) != 0 || len(net.Edges) != 0 {
		t.Fatalf("expected empty network on store failure, got %v", net)
	}
}
