// Package memory provides an in-memory GraphStorage implementation. It
// backs package tests and local development; the production store lives
// in the pgx package.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

type mention struct {
	documentID string
	entityID   string
	sentiment  string
}

// Store is an in-memory property graph guarded by a single RWMutex. Reads
// return copies so callers never observe later mutations.
type Store struct {
	mu sync.RWMutex

	documents map[string]common.Document // by ID
	entities  map[string]common.Entity   // by ID
	mentions  []mention
	relations []common.Relationship

	// FailQueries forces every read to fail; tests use it to exercise
	// degradation paths.
	FailQueries bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents: make(map[string]common.Document),
		entities:  make(map[string]common.Entity),
	}
}

var _ store.GraphStorage = (*Store)(nil)

var errForcedFailure = errors.New("store query failure (forced)")

func (s *Store) failing() error {
	if s.FailQueries {
		return errForcedFailure
	}
	return nil
}

// ListDocuments returns documents newest first, limited when limit > 0.
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]common.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	docs := make([]common.Document, 0, len(s.documents))
	for _, d := range s.documents {
		d.Text = ""
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Date != docs[j].Date {
			return docs[i].Date > docs[j].Date
		}
		return docs[i].Title < docs[j].Title
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *Store) DocumentByTitle(ctx context.Context, title string) (common.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return common.Document{}, err
	}

	for _, d := range s.documents {
		if d.Title == title {
			d.Text = ""
			return d, nil
		}
	}
	return common.Document{}, store.ErrNotFound
}

func (s *Store) DocumentText(ctx context.Context, title string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return "", err
	}

	for _, d := range s.documents {
		if d.Title == title {
			return d.Text, nil
		}
	}
	return "", store.ErrNotFound
}

func (s *Store) ListSectorNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, e := range s.entities {
		if slices.Contains(e.Categories, common.CategorySector) {
			names = append(names, e.Identity())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) ListEntities(ctx context.Context) ([]common.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	entities := make([]common.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		entities = append(entities, cloneEntity(e))
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities, nil
}

// MentionsForTitles returns mention edges with denormalized document
// fields, ordered by document title then entity identity.
func (s *Store) MentionsForTitles(ctx context.Context, titles []string) ([]common.Mention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	out := make([]common.Mention, 0)
	for _, m := range s.mentions {
		doc, ok := s.documents[m.documentID]
		if !ok || !slices.Contains(titles, doc.Title) {
			continue
		}
		entity, ok := s.entities[m.entityID]
		if !ok {
			continue
		}
		out = append(out, common.Mention{
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			Date:          doc.Date,
			Tier:          doc.Tier,
			Status:        doc.Status,
			Sentiment:     m.sentiment,
			Entity:        cloneEntity(entity),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DocumentTitle != out[j].DocumentTitle {
			return out[i].DocumentTitle < out[j].DocumentTitle
		}
		return out[i].Entity.Identity() < out[j].Entity.Identity()
	})
	return out, nil
}

func (s *Store) RelationshipsAmong(ctx context.Context, entityIDs []string) ([]common.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	out := make([]common.Relationship, 0)
	for _, r := range s.relations {
		if slices.Contains(entityIDs, r.SourceID) && slices.Contains(entityIDs, r.TargetID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) RelationshipsWithinHops(ctx context.Context, seedIDs []string, hops int) ([]common.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	frontier := make(map[string]bool, len(seedIDs))
	for _, id := range seedIDs {
		frontier[id] = true
	}

	collected := make(map[string]common.Relationship)
	for hop := 0; hop < hops; hop++ {
		next := make(map[string]bool)
		for _, r := range s.relations {
			if !frontier[r.SourceID] && !frontier[r.TargetID] {
				continue
			}
			if _, ok := collected[r.ID]; !ok {
				collected[r.ID] = r
			}
			next[r.SourceID] = true
			next[r.TargetID] = true
		}
		for id := range next {
			frontier[id] = true
		}
	}

	out := make([]common.Relationship, 0, len(collected))
	for _, r := range collected {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) EntitiesByIDs(ctx context.Context, ids []string) ([]common.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}

	out := make([]common.Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities[id]; ok {
			out = append(out, cloneEntity(e))
		}
	}
	return out, nil
}

// RunReadOnlyQuery is unsupported in the in-memory store; the NL-query
// path requires the SQL backend.
func (s *Store) RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	return nil, errors.New("raw queries are not supported by the in-memory store")
}

// SaveArticle persists an extraction bundle. Entities are upserted by
// name; category tags and sector memberships are merged.
func (s *Store) SaveArticle(ctx context.Context, bundle store.ArticleBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}

	doc := bundle.Document
	if doc.Title == "" {
		return errors.New("document title is required")
	}
	for _, existing := range s.documents {
		if existing.Title == doc.Title {
			return fmt.Errorf("document %q already ingested", doc.Title)
		}
	}
	if doc.ID == "" {
		doc.ID = gonanoid.Must()
	}
	if doc.Status == "" {
		doc.Status = common.StatusUnknown
	}
	s.documents[doc.ID] = doc

	idsByName := make(map[string]string)
	for _, e := range bundle.Entities {
		id := s.upsertEntity(e)
		idsByName[e.Identity()] = id
		s.mentions = append(s.mentions, mention{
			documentID: doc.ID,
			entityID:   id,
			sentiment:  bundle.Sentiments[e.Identity()],
		})
	}

	for _, r := range bundle.Relationships {
		srcID, ok := idsByName[r.SourceName]
		if !ok {
			srcID = s.upsertEntity(common.Entity{Name: r.SourceName})
			idsByName[r.SourceName] = srcID
		}
		dstID, ok := idsByName[r.TargetName]
		if !ok {
			dstID = s.upsertEntity(common.Entity{Name: r.TargetName})
			idsByName[r.TargetName] = dstID
		}
		s.relations = append(s.relations, common.Relationship{
			ID:            gonanoid.Must(),
			SourceID:      srcID,
			TargetID:      dstID,
			Type:          r.Type,
			DocumentTitle: doc.Title,
			Date:          doc.Date,
			Tier:          doc.Tier,
			Status:        doc.Status,
		})
	}

	return nil
}

func (s *Store) upsertEntity(e common.Entity) string {
	for id, existing := range s.entities {
		if existing.Identity() == e.Identity() {
			for _, c := range e.Categories {
				if !slices.Contains(existing.Categories, c) {
					existing.Categories = append(existing.Categories, c)
				}
			}
			for _, sec := range e.Sectors {
				if !slices.Contains(existing.Sectors, sec) {
					existing.Sectors = append(existing.Sectors, sec)
				}
			}
			s.entities[id] = existing
			return id
		}
	}

	if e.ID == "" {
		e.ID = gonanoid.Must()
	}
	s.entities[e.ID] = e
	return e.ID
}

// UpdateClassification backfills tier and status on the document and on
// the provenance copies of its relationship edges. Mention copies are
// derived from the document at read time in this implementation, so they
// follow automatically.
func (s *Store) UpdateClassification(ctx context.Context, title, tier, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}

	var docID string
	for id, d := range s.documents {
		if d.Title == title {
			if tier != "" {
				d.Tier = tier
			}
			if status != "" {
				d.Status = status
			}
			s.documents[id] = d
			docID = id
			break
		}
	}
	if docID == "" {
		return store.ErrNotFound
	}

	for i, r := range s.relations {
		if r.DocumentTitle == title {
			if tier != "" {
				s.relations[i].Tier = tier
			}
			if status != "" {
				s.relations[i].Status = status
			}
		}
	}
	return nil
}

func cloneEntity(e common.Entity) common.Entity {
	e.Categories = slices.Clone(e.Categories)
	e.Sectors = slices.Clone(e.Sectors)
	if e.Extra != nil {
		extra := make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}
	return e
}

// MustSave is a test helper: it saves the bundle and panics on failure.
func (s *Store) MustSave(bundle store.ArticleBundle) {
	if err := s.SaveArticle(context.Background(), bundle); err != nil {
		panic(strings.Join([]string{"memory store: ", err.Error()}, ""))
	}
}
