package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// Article is a document row shaped for listings: metadata only, never the
// full text.
type Article struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Publisher string `json:"source,omitempty"`
	Tier      string `json:"tier,omitempty"`
	Status    string `json:"status,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ListArticles returns documents matching the filter spec, newest first.
// Sector and entity-search filters restrict the listing to documents that
// mention at least one matching entity. A store failure degrades to an
// empty list so the browsing view stays usable.
func (c *GraphClient) ListArticles(ctx context.Context, spec filter.Spec, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = c.articleLimit
	}
	preds := spec.Compile(c.now())

	docs, err := c.store.ListDocuments(ctx, 0)
	if err != nil {
		logger.Warn("[Graph] Article listing degraded to empty result", "err", err)
		return []Article{}, nil
	}

	matched := make([]common.Document, 0, len(docs))
	for _, d := range docs {
		if preds.DocumentMatches(d) {
			matched = append(matched, d)
		}
	}

	// The sector and entity-search filters are entity predicates; a
	// document survives them only through at least one matching mention.
	// An explicit selection suppresses them like every ambient filter.
	if !spec.Selection() && (len(spec.Sectors) > 0 || spec.EntitySearch != "") {
		titles := make([]string, 0, len(matched))
		for _, d := range matched {
			titles = append(titles, d.Title)
		}

		mentions, err := c.store.MentionsForTitles(ctx, titles)
		if err != nil {
			logger.Warn("[Graph] Article listing degraded to empty result", "err", err)
			return []Article{}, nil
		}

		matchingTitles := make(map[string]bool)
		for _, m := range mentions {
			if preds.EntityMatches(m.Entity) {
				matchingTitles[m.DocumentTitle] = true
			}
		}

		filtered := matched[:0]
		for _, d := range matched {
			if matchingTitles[d.Title] {
				filtered = append(filtered, d)
			}
		}
		matched = filtered
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].Title < matched[j].Title
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	articles := make([]Article, 0, len(matched))
	for _, d := range matched {
		articles = append(articles, Article{
			Title:     d.Title,
			Date:      d.Date,
			Publisher: d.Publisher,
			Tier:      d.Tier,
			Status:    d.Status,
			URL:       d.URL,
		})
	}

	return articles, nil
}

// ListSectors returns the identities of all Sector entities, sorted. A
// store failure degrades to an empty list.
func (c *GraphClient) ListSectors(ctx context.Context) ([]string, error) {
	sectors, err := c.store.ListSectorNames(ctx)
	if err != nil {
		logger.Warn("[Graph] Sector listing degraded to empty result", "err", err)
		return []string{}, nil
	}

	sort.Strings(sectors)
	return sectors, nil
}

// ArticleMentions returns the IDs of every entity mentioned by one
// document. Unlike the browsing operations this is a single-document
// lookup, so an unknown title surfaces store.ErrNotFound.
func (c *GraphClient) ArticleMentions(ctx context.Context, title string) ([]string, error) {
	if _, err := c.store.DocumentByTitle(ctx, title); err != nil {
		return nil, err
	}

	mentions, err := c.store.MentionsForTitles(ctx, []string{title})
	if err != nil {
		return nil, fmt.Errorf("failed to load mentions for %q: %w", title, err)
	}

	seen := make(map[string]bool, len(mentions))
	ids := make([]string, 0, len(mentions))
	for _, m := range mentions {
		if seen[m.Entity.ID] {
			continue
		}
		seen[m.Entity.ID] = true
		ids = append(ids, m.Entity.ID)
	}

	return ids, nil
}

// ArticleText returns one document's full text. Surfaces store.ErrNotFound
// for an unknown title.
func (c *GraphClient) ArticleText(ctx context.Context, title string) (string, error) {
	return c.store.DocumentText(ctx, title)
}
