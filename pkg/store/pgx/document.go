package pgx

import (
	"context"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

const documentColumns = `public_id, title, date, publisher, tier, status, url, extra`

func scanDocument(row pgxv5.Row) (common.Document, error) {
	var d common.Document
	err := row.Scan(&d.ID, &d.Title, &d.Date, &d.Publisher, &d.Tier, &d.Status, &d.URL, &d.Extra)
	return d, err
}

// ListDocuments returns documents newest first, date descending with the
// title as tiebreaker. The full text column is never selected here.
func (s *GraphDBStorage) ListDocuments(ctx context.Context, limit int) ([]common.Document, error) {
	sql := fmt.Sprintf(`SELECT %s FROM documents ORDER BY date DESC, title ASC`, documentColumns)
	args := []any{}
	if limit > 0 {
		sql += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]common.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *GraphDBStorage) DocumentByTitle(ctx context.Context, title string) (common.Document, error) {
	sql := fmt.Sprintf(`SELECT %s FROM documents WHERE title = $1`, documentColumns)
	d, err := scanDocument(s.conn.QueryRow(ctx, sql, title))
	if errors.Is(err, pgxv5.ErrNoRows) {
		return common.Document{}, store.ErrNotFound
	}
	return d, err
}

func (s *GraphDBStorage) DocumentText(ctx context.Context, title string) (string, error) {
	var text string
	err := s.conn.QueryRow(ctx, `SELECT content FROM documents WHERE title = $1`, title).Scan(&text)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return "", store.ErrNotFound
	}
	return text, err
}

// UpdateClassification backfills tier and status on a document row; an
// empty value leaves the current one in place. Mention and relationship
// edges read these fields through a join, so no further rows need
// touching.
func (s *GraphDBStorage) UpdateClassification(ctx context.Context, title, tier, status string) error {
	tag, err := s.conn.Exec(ctx,
		`UPDATE documents
		 SET tier = COALESCE(NULLIF($2, ''), tier),
		     status = COALESCE(NULLIF($3, ''), status)
		 WHERE title = $1`,
		title, tier, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
