package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// SearchEntities performs a free-text lookup over entity identities:
// case-insensitive substring containment against the canonical identity,
// Document nodes excluded. Results are sorted by identity for reproducible
// output and capped at 200. A store failure degrades to an empty list.
func (c *GraphClient) SearchEntities(ctx context.Context, query string) ([]CanonicalNode, error) {
	entities, err := c.store.ListEntities(ctx)
	if err != nil {
		logger.Warn("[Graph] Entity search degraded to empty result", "err", err)
		return []CanonicalNode{}, nil
	}

	needle := strings.ToLower(query)
	results := make([]CanonicalNode, 0)
	for _, e := range entities {
		node := Canonicalize(e)
		if node.Category == common.CategoryDocument {
			continue
		}
		if !strings.Contains(strings.ToLower(node.Label), needle) {
			continue
		}
		results = append(results, node)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Label != results[j].Label {
			return results[i].Label < results[j].Label
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > c.maxSearchResults {
		results = results[:c.maxSearchResults]
	}

	return results, nil
}
