package pgx

import (
	"context"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/relatiq-ai/newsgraph/backend/internal/util"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

// upsertEntitySQL merges category and sector tags on name collision so
// repeated extractions of the same referent accumulate onto one node.
const upsertEntitySQL = `
	INSERT INTO entities (public_id, name, categories, sectors)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE SET
		categories = ARRAY(SELECT DISTINCT unnest(entities.categories || EXCLUDED.categories) ORDER BY 1),
		sectors    = ARRAY(SELECT DISTINCT unnest(entities.sectors || EXCLUDED.sectors) ORDER BY 1)
	RETURNING id`

// SaveArticle persists one extraction bundle in a single transaction:
// the document row, upserted entity nodes, mention edges carrying the
// per-entity sentiment, and relationship edges whose endpoints are
// resolved by name, creating bare nodes for names the bundle does not
// describe.
func (s *GraphDBStorage) SaveArticle(ctx context.Context, bundle store.ArticleBundle) error {
	doc := bundle.Document
	if doc.Title == "" {
		return fmt.Errorf("document title is empty")
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var docID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO documents (public_id, title, date, publisher, tier, status, url, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		gonanoid.Must(), doc.Title, doc.Date, doc.Publisher, doc.Tier, doc.Status, doc.URL,
		util.SanitizePostgresText(doc.Text),
	).Scan(&docID)
	if err != nil {
		return fmt.Errorf("insert document %q: %w", doc.Title, err)
	}

	entityIDByName := make(map[string]int64, len(bundle.Entities))
	for _, e := range bundle.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity name is empty")
		}
		var id int64
		err = tx.QueryRow(ctx, upsertEntitySQL,
			gonanoid.Must(), e.Name, normalizeTags(e.Categories), normalizeTags(e.Sectors),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert entity %q: %w", e.Name, err)
		}
		entityIDByName[e.Name] = id
	}

	for _, e := range bundle.Entities {
		_, err = tx.Exec(ctx, `
			INSERT INTO mentions (document_id, entity_id, sentiment)
			VALUES ($1, $2, $3)
			ON CONFLICT (document_id, entity_id) DO UPDATE SET sentiment = EXCLUDED.sentiment`,
			docID, entityIDByName[e.Name], bundle.Sentiments[e.Name],
		)
		if err != nil {
			return fmt.Errorf("insert mention %q: %w", e.Name, err)
		}
	}

	for _, rel := range bundle.Relationships {
		srcID, err := s.resolveEndpoint(ctx, tx, entityIDByName, rel.SourceName)
		if err != nil {
			return err
		}
		dstID, err := s.resolveEndpoint(ctx, tx, entityIDByName, rel.TargetName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO relationships (public_id, source_id, target_id, type, document_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (source_id, target_id, type, document_id) DO NOTHING`,
			gonanoid.Must(), srcID, dstID, rel.Type, docID,
		)
		if err != nil {
			return fmt.Errorf("insert relationship %s-%s->%s: %w", rel.SourceName, rel.Type, rel.TargetName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("[Store] Article saved",
		"title", doc.Title,
		"entities", len(bundle.Entities),
		"relationships", len(bundle.Relationships),
	)
	return nil
}

// resolveEndpoint maps a relationship endpoint name to an entity id,
// creating an untagged node when the name is new to the graph.
func (s *GraphDBStorage) resolveEndpoint(ctx context.Context, tx pgxv5.Tx, byName map[string]int64, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("relationship endpoint name is empty")
	}
	if id, ok := byName[name]; ok {
		return id, nil
	}

	var id int64
	err := tx.QueryRow(ctx, upsertEntitySQL, gonanoid.Must(), name, []string{}, []string{}).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve endpoint %q: %w", name, err)
	}
	byName[name] = id
	return id, nil
}

// normalizeTags keeps array columns NOT NULL friendly.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
