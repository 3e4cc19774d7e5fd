package pgx

import (
	"context"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// relationshipSelect joins both endpoints and the provenance document.
// The document join is LEFT because relationship endpoints created as bare
// name references may predate their own provenance rows.
const relationshipSelect = `
	SELECT r.public_id, se.public_id, te.public_id, r.type,
	       COALESCE(d.title, ''), COALESCE(d.date, ''),
	       COALESCE(d.tier, ''), COALESCE(d.status, '')
	FROM relationships r
	JOIN entities se ON se.id = r.source_id
	JOIN entities te ON te.id = r.target_id
	LEFT JOIN documents d ON d.id = r.document_id`

func collectRelationships(rows pgxv5.Rows) ([]common.Relationship, error) {
	defer rows.Close()
	rels := make([]common.Relationship, 0)
	for rows.Next() {
		var r common.Relationship
		err := rows.Scan(&r.ID, &r.SourceID, &r.TargetID, &r.Type, &r.DocumentTitle, &r.Date, &r.Tier, &r.Status)
		if err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

// RelationshipsAmong returns edges with both endpoints inside the given id
// set.
func (s *GraphDBStorage) RelationshipsAmong(ctx context.Context, entityIDs []string) ([]common.Relationship, error) {
	if len(entityIDs) == 0 {
		return []common.Relationship{}, nil
	}
	rows, err := s.conn.Query(ctx,
		relationshipSelect+` WHERE se.public_id = ANY($1) AND te.public_id = ANY($1)`,
		entityIDs,
	)
	if err != nil {
		return nil, err
	}
	return collectRelationships(rows)
}

// RelationshipsWithinHops expands a frontier from the seed entities, one
// round trip per hop, collecting every edge touched along the way. Edges
// are traversed in both directions. Visited tracking keeps cyclic graphs
// from re-expanding and bounds the result.
func (s *GraphDBStorage) RelationshipsWithinHops(ctx context.Context, seedIDs []string, hops int) ([]common.Relationship, error) {
	if len(seedIDs) == 0 || hops <= 0 {
		return []common.Relationship{}, nil
	}

	visited := make(map[string]bool, len(seedIDs))
	frontier := make([]string, 0, len(seedIDs))
	for _, id := range seedIDs {
		if !visited[id] {
			visited[id] = true
			frontier = append(frontier, id)
		}
	}

	seen := make(map[string]bool)
	edges := make([]common.Relationship, 0)

	for hop := 0; hop < hops && len(frontier) > 0; hop++ {
		rows, err := s.conn.Query(ctx,
			relationshipSelect+` WHERE se.public_id = ANY($1) OR te.public_id = ANY($1)`,
			frontier,
		)
		if err != nil {
			return nil, err
		}
		batch, err := collectRelationships(rows)
		if err != nil {
			return nil, err
		}

		next := make([]string, 0)
		for _, r := range batch {
			if !seen[r.ID] {
				seen[r.ID] = true
				edges = append(edges, r)
			}
			for _, end := range []string{r.SourceID, r.TargetID} {
				if !visited[end] {
					visited[end] = true
					next = append(next, end)
				}
			}
		}
		frontier = next
	}

	return edges, nil
}
