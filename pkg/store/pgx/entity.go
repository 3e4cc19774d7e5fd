package pgx

import (
	"context"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

const entityColumns = `public_id, name, categories, sectors, extra`

// identityExpr is the SQL form of Entity.Identity: the name when present,
// otherwise the public id.
const identityExpr = `COALESCE(NULLIF(name, ''), public_id)`

func scanEntity(row pgxv5.Row) (common.Entity, error) {
	var e common.Entity
	err := row.Scan(&e.ID, &e.Name, &e.Categories, &e.Sectors, &e.Extra)
	return e, err
}

func collectEntities(rows pgxv5.Rows) ([]common.Entity, error) {
	defer rows.Close()
	entities := make([]common.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (s *GraphDBStorage) ListEntities(ctx context.Context) ([]common.Entity, error) {
	sql := fmt.Sprintf(`SELECT %s FROM entities ORDER BY %s`, entityColumns, identityExpr)
	rows, err := s.conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return collectEntities(rows)
}

func (s *GraphDBStorage) EntitiesByIDs(ctx context.Context, ids []string) ([]common.Entity, error) {
	if len(ids) == 0 {
		return []common.Entity{}, nil
	}
	sql := fmt.Sprintf(`SELECT %s FROM entities WHERE public_id = ANY($1)`, entityColumns)
	rows, err := s.conn.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	return collectEntities(rows)
}

func (s *GraphDBStorage) ListSectorNames(ctx context.Context) ([]string, error) {
	sql := fmt.Sprintf(
		`SELECT %s FROM entities WHERE $1 = ANY(categories) ORDER BY 1`,
		identityExpr,
	)
	rows, err := s.conn.Query(ctx, sql, common.CategorySector)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// MentionsForTitles returns the mention edges of the given documents with
// the document fields denormalized onto each edge. Stable order: document
// title, then entity identity.
func (s *GraphDBStorage) MentionsForTitles(ctx context.Context, titles []string) ([]common.Mention, error) {
	if len(titles) == 0 {
		return []common.Mention{}, nil
	}

	rows, err := s.conn.Query(ctx, `
		SELECT d.public_id, d.title, d.date, d.tier, d.status, m.sentiment,
		       e.public_id, e.name, e.categories, e.sectors, e.extra
		FROM mentions m
		JOIN documents d ON d.id = m.document_id
		JOIN entities e ON e.id = m.entity_id
		WHERE d.title = ANY($1)
		ORDER BY d.title, COALESCE(NULLIF(e.name, ''), e.public_id)`,
		titles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentions := make([]common.Mention, 0)
	for rows.Next() {
		var m common.Mention
		err := rows.Scan(
			&m.DocumentID, &m.DocumentTitle, &m.Date, &m.Tier, &m.Status, &m.Sentiment,
			&m.Entity.ID, &m.Entity.Name, &m.Entity.Categories, &m.Entity.Sectors, &m.Entity.Extra,
		)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}
