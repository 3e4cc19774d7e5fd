package graph

import (
	"context"
	"slices"
	"sort"

	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// Edge is a relationship edge shaped for visualization.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"label"`
}

// Network is a bounded, deduplicated induced subgraph.
type Network struct {
	Nodes []CanonicalNode `json:"nodes"`
	Edges []Edge          `json:"edges"`
}

// BuildNetwork produces the induced subgraph for a filter/selection
// request. Candidate documents come from the document predicate, candidate
// entities are those mentioned by a candidate document and passing the
// entity predicate and the node-type allowlist. Every relationship whose
// two endpoints qualify is included, regardless of how the endpoints were
// discovered. Edges are sorted by (source identity, target identity, type)
// and capped; nodes are deduplicated with first occurrence winning.
//
// Any store failure degrades to an empty network so the view stays usable
// with zero data.
func (c *GraphClient) BuildNetwork(
	ctx context.Context,
	spec filter.Spec,
	nodeTypes []string,
	relTypes []string,
) (Network, error) {
	empty := Network{Nodes: []CanonicalNode{}, Edges: []Edge{}}
	preds := spec.Compile(c.now())

	var titles []string
	if spec.Selection() {
		titles = spec.ArticleTitles
	} else {
		docs, err := c.store.ListDocuments(ctx, 0)
		if err != nil {
			logger.Warn("[Graph] Network build degraded to empty result", "err", err)
			return empty, nil
		}
		for _, d := range docs {
			if preds.DocumentMatches(d) {
				titles = append(titles, d.Title)
			}
		}
	}

	if len(titles) == 0 {
		return empty, nil
	}

	mentions, err := c.store.MentionsForTitles(ctx, titles)
	if err != nil {
		logger.Warn("[Graph] Network build degraded to empty result", "err", err)
		return empty, nil
	}

	// Candidate entity set, first occurrence wins.
	nodes := make([]CanonicalNode, 0, len(mentions))
	byID := make(map[string]CanonicalNode, len(mentions))
	for _, m := range mentions {
		if _, ok := byID[m.Entity.ID]; ok {
			continue
		}
		if !preds.EntityMatches(m.Entity) {
			continue
		}
		node := Canonicalize(m.Entity)
		if len(nodeTypes) > 0 && !slices.Contains(nodeTypes, node.Category) {
			continue
		}
		byID[m.Entity.ID] = node
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return empty, nil
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}

	rels, err := c.store.RelationshipsAmong(ctx, ids)
	if err != nil {
		logger.Warn("[Graph] Network build degraded to empty result", "err", err)
		return empty, nil
	}

	edges := make([]Edge, 0, len(rels))
	seenEdges := make(map[[3]string]bool, len(rels))
	for _, r := range rels {
		// Inclusion depends only on both endpoints qualifying.
		if _, ok := byID[r.SourceID]; !ok {
			continue
		}
		if _, ok := byID[r.TargetID]; !ok {
			continue
		}
		if len(relTypes) > 0 && !slices.Contains(relTypes, r.Type) {
			continue
		}
		key := [3]string{r.SourceID, r.TargetID, r.Type}
		if seenEdges[key] {
			continue
		}
		seenEdges[key] = true
		edges = append(edges, Edge{Source: r.SourceID, Target: r.TargetID, Type: r.Type})
	}

	// Deterministic truncation: order by the canonical identities of the
	// endpoints, then type.
	sort.Slice(edges, func(i, j int) bool {
		si, sj := byID[edges[i].Source].Label, byID[edges[j].Source].Label
		if si != sj {
			return si < sj
		}
		ti, tj := byID[edges[i].Target].Label, byID[edges[j].Target].Label
		if ti != tj {
			return ti < tj
		}
		return edges[i].Type < edges[j].Type
	})

	maxEdges := c.maxEdgesDefault
	if spec.Filtered() || len(nodeTypes) > 0 || len(relTypes) > 0 {
		maxEdges = c.maxEdgesFiltered
	}
	if len(edges) > maxEdges {
		edges = edges[:maxEdges]
	}

	return Network{Nodes: nodes, Edges: edges}, nil
}
