// Package store defines the port to the durable graph store. The engine
// never talks to a database directly; it receives a GraphStorage handle
// and issues read-mostly, parameterized pattern queries through it.
package store

import (
	"context"
	"errors"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// ErrNotFound is returned by single-row lookups when no row matches.
// Callers translate it into a user-visible 404; every other error from
// the store is a query failure and handled per the caller's degradation
// policy.
var ErrNotFound = errors.New("not found")

// ExtractedRelation is a relationship as emitted by the external
// extraction service: endpoints are referenced by entity name because the
// store has not assigned identities yet.
type ExtractedRelation struct {
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
	Type       string `json:"type"`
}

// ArticleBundle is the unit of ingestion: one document plus the entities,
// relationships and per-entity sentiments the extraction service produced
// for it. Persisting a bundle is atomic.
type ArticleBundle struct {
	Document      common.Document     `json:"document"`
	Entities      []common.Entity     `json:"entities"`
	Relationships []ExtractedRelation `json:"relationships"`
	Sentiments    map[string]string   `json:"sentiments,omitempty"` // entity name -> sentiment
}

// GraphStorage is the interface the engine queries the property graph
// through. Reads are independent operations with no isolation guarantees
// beyond what the backing store provides; all methods honor context
// cancellation.
type GraphStorage interface {
	// ListDocuments returns documents ordered newest first. A limit of
	// zero or less means no limit.
	ListDocuments(ctx context.Context, limit int) ([]common.Document, error)

	// DocumentByTitle looks up one document by its natural key. Returns
	// ErrNotFound when absent. The returned document does not carry the
	// full text.
	DocumentByTitle(ctx context.Context, title string) (common.Document, error)

	// DocumentText returns the full text of one document. Returns
	// ErrNotFound when the document is absent.
	DocumentText(ctx context.Context, title string) (string, error)

	// ListSectorNames returns the identities of all Sector entities,
	// sorted.
	ListSectorNames(ctx context.Context) ([]string, error)

	// ListEntities returns all entities with their category tags and
	// denormalized sector memberships.
	ListEntities(ctx context.Context) ([]common.Entity, error)

	// MentionsForTitles returns every Mentions edge from any of the given
	// documents, including the full entity on each edge. Order is stable
	// across calls: by document title, then entity identity.
	MentionsForTitles(ctx context.Context, titles []string) ([]common.Mention, error)

	// RelationshipsAmong returns every Relationship edge whose two
	// endpoints are both in the given entity ID set.
	RelationshipsAmong(ctx context.Context, entityIDs []string) ([]common.Relationship, error)

	// RelationshipsWithinHops returns the union of Relationship edges
	// reachable from the seed entities within the given number of hops,
	// traversing edges in either direction. Entities referenced by the
	// returned edges are resolved via EntitiesByIDs.
	RelationshipsWithinHops(ctx context.Context, seedIDs []string, hops int) ([]common.Relationship, error)

	// EntitiesByIDs resolves entities by store-assigned identity. Unknown
	// IDs are skipped, not errors.
	EntitiesByIDs(ctx context.Context, ids []string) ([]common.Entity, error)

	// RunReadOnlyQuery executes a caller-supplied read-only query against
	// the store and returns the rows as column-name keyed maps. Used by
	// the NL-query path; the store rejects anything that could write.
	RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error)

	// SaveArticle persists an extraction bundle atomically. Entities are
	// upserted by name so repeated extractions of the same real-world
	// referent resolve to one node.
	SaveArticle(ctx context.Context, bundle ArticleBundle) error

	// UpdateClassification backfills publisher tier and status on a
	// document and on the denormalized copies carried by its mention and
	// relationship edges. Returns ErrNotFound for an unknown title.
	UpdateClassification(ctx context.Context, title, tier, status string) error
}
