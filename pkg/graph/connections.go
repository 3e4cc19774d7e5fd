package graph

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// ConnectionRow reports one unordered company pair with the relationship
// chain of its best path. Company1 < Company2 under the canonical identity
// order, so each pair appears exactly once.
type ConnectionRow struct {
	Company1      string   `json:"company1"`
	Company2      string   `json:"company2"`
	Relationships []string `json:"relationships"`
	Distance      int      `json:"distance"`
}

// adjacency is an identity-indexed arena over the neighborhood returned by
// the store: nodes held by index, edges as index pairs. Traversal is
// undirected; the structure exists so path enumeration terminates safely
// on cyclic graphs without pointer cycles.
type adjacency struct {
	index     map[string]int
	neighbors [][]halfEdge
}

type halfEdge struct {
	to      int
	relType string
}

func buildAdjacency(rels []common.Relationship) *adjacency {
	adj := &adjacency{index: make(map[string]int)}

	node := func(id string) int {
		if i, ok := adj.index[id]; ok {
			return i
		}
		i := len(adj.neighbors)
		adj.index[id] = i
		adj.neighbors = append(adj.neighbors, nil)
		return i
	}

	for _, r := range rels {
		s, t := node(r.SourceID), node(r.TargetID)
		adj.neighbors[s] = append(adj.neighbors[s], halfEdge{to: t, relType: r.Type})
		adj.neighbors[t] = append(adj.neighbors[t], halfEdge{to: s, relType: r.Type})
	}

	return adj
}

// paths enumerates every simple path from src to dst of length 1..maxHops,
// returning the ordered relationship-type sequence of each. The visited
// set plus the hop bound guarantee termination on cycles.
func (a *adjacency) paths(srcID, dstID string, maxHops int) [][]string {
	src, ok := a.index[srcID]
	if !ok {
		return nil
	}
	dst, ok := a.index[dstID]
	if !ok {
		return nil
	}

	var found [][]string
	visited := make([]bool, len(a.neighbors))
	visited[src] = true

	var walk func(at int, chain []string)
	walk = func(at int, chain []string) {
		for _, e := range a.neighbors[at] {
			if e.to == dst {
				found = append(found, append(slices.Clone(chain), e.relType))
				continue
			}
			if len(chain)+1 >= maxHops || visited[e.to] {
				continue
			}
			visited[e.to] = true
			walk(e.to, append(chain, e.relType))
			visited[e.to] = false
		}
	}
	walk(src, nil)

	return found
}

// FindConnections enumerates connection paths between the Company entities
// mentioned by the selected documents. For every unordered pair, processed
// in canonical order, it keeps the best path (shortest, ties broken by the
// lexicographically smallest type sequence) so no pair is reported twice.
// Rows are sorted by (distance, company1, company2, relationship types)
// and capped at 200.
func (c *GraphClient) FindConnections(ctx context.Context, titles []string) ([]ConnectionRow, error) {
	mentions, err := c.store.MentionsForTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentions: %w", err)
	}

	// Company set, keyed by canonical identity.
	type company struct {
		id       string
		identity string
	}
	byIdentity := make(map[string]company)
	for _, m := range mentions {
		node := Canonicalize(m.Entity)
		if node.Category != common.CategoryCompany {
			continue
		}
		if _, ok := byIdentity[node.Label]; !ok {
			byIdentity[node.Label] = company{id: node.ID, identity: node.Label}
		}
	}

	companies := make([]company, 0, len(byIdentity))
	for _, comp := range byIdentity {
		companies = append(companies, comp)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].identity < companies[j].identity
	})

	if len(companies) < 2 {
		return []ConnectionRow{}, nil
	}

	seeds := make([]string, 0, len(companies))
	for _, comp := range companies {
		seeds = append(seeds, comp.id)
	}

	rels, err := c.store.RelationshipsWithinHops(ctx, seeds, c.maxPathHops)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationship neighborhood: %w", err)
	}
	adj := buildAdjacency(rels)

	rows := make([]ConnectionRow, 0)
	for i := 0; i < len(companies); i++ {
		for j := i + 1; j < len(companies); j++ {
			// companies is identity-sorted, so i < j is the canonical
			// pair order and each unordered pair is visited exactly once.
			c1, c2 := companies[i], companies[j]

			best := ConnectionRow{}
			for _, chain := range adj.paths(c1.id, c2.id, c.maxPathHops) {
				row := ConnectionRow{
					Company1:      c1.identity,
					Company2:      c2.identity,
					Relationships: chain,
					Distance:      len(chain),
				}
				if best.Distance == 0 || betterPath(row, best) {
					best = row
				}
			}
			if best.Distance > 0 {
				rows = append(rows, best)
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Distance != rows[j].Distance {
			return rows[i].Distance < rows[j].Distance
		}
		if rows[i].Company1 != rows[j].Company1 {
			return rows[i].Company1 < rows[j].Company1
		}
		if rows[i].Company2 != rows[j].Company2 {
			return rows[i].Company2 < rows[j].Company2
		}
		return strings.Join(rows[i].Relationships, ",") < strings.Join(rows[j].Relationships, ",")
	})

	if len(rows) > c.maxConnections {
		rows = rows[:c.maxConnections]
	}

	return rows, nil
}

func betterPath(a, b ConnectionRow) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return strings.Join(a.Relationships, ",") < strings.Join(b.Relationships, ",")
}
