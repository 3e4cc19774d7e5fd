package graph

import (
	"time"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store/memory"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestClient(s *memory.Store) *GraphClient {
	return NewGraphClient(NewGraphClientParams{
		Store: s,
		Now:   func() time.Time { return testNow },
	})
}

func company(name string, sectors ...string) common.Entity {
	return common.Entity{Name: name, Categories: []string{common.CategoryCompany}, Sectors: sectors}
}

func person(name string) common.Entity {
	return common.Entity{Name: name, Categories: []string{common.CategoryPerson}}
}

func sector(name string) common.Entity {
	return common.Entity{Name: name, Categories: []string{common.CategorySector}}
}

// newsStore builds a small but representative graph:
//
//	doc "Acme expands"   (2025-06-10, A, ConfirmedNews): Acme+, Bolt, Technology
//	doc "Acme probed"    (2025-05-20, B, Speculation):   Acme (unlabeled), Jane Roe
//	doc "Carbon outlook" (2024-11-20, C, AnalysisOutlook): Carbon-, Energy
//
// relationships: Acme -PARTNERS_WITH-> Bolt, Jane Roe -WORKS_AT-> Acme,
// Bolt -SUPPLIES-> Carbon.
func newsStore() *memory.Store {
	s := memory.NewStore()

	s.MustSave(store.ArticleBundle{
		Document: common.Document{
			Title:     "Acme expands",
			Date:      "2025-06-10",
			Publisher: "Reuters",
			Tier:      common.TierA,
			Status:    common.StatusConfirmedNews,
			URL:       "https://example.com/acme-expands",
			Text:      "Acme Corp announced a partnership with Bolt.",
		},
		Entities: []common.Entity{
			company("Acme", "Technology"),
			company("Bolt", "Technology"),
			sector("Technology"),
		},
		Relationships: []store.ExtractedRelation{
			{SourceName: "Acme", TargetName: "Bolt", Type: common.RelPartnersWith},
		},
		Sentiments: map[string]string{"Acme": common.SentimentPositive},
	})

	s.MustSave(store.ArticleBundle{
		Document: common.Document{
			Title:     "Acme probed",
			Date:      "2025-05-20",
			Publisher: "Blogwire",
			Tier:      common.TierB,
			Status:    common.StatusSpeculation,
			Text:      "Regulators may look into Acme, sources say.",
		},
		Entities: []common.Entity{
			company("Acme", "Technology"),
			person("Jane Roe"),
		},
		Relationships: []store.ExtractedRelation{
			{SourceName: "Jane Roe", TargetName: "Acme", Type: common.RelWorksAt},
		},
	})

	s.MustSave(store.ArticleBundle{
		Document: common.Document{
			Title:     "Carbon outlook",
			Date:      "2024-11-20",
			Publisher: "Energy Daily",
			Tier:      common.TierC,
			Status:    common.StatusAnalysisOutlook,
			Text:      "Carbon's supply chain remains under pressure.",
		},
		Entities: []common.Entity{
			company("Carbon", "Energy"),
			sector("Energy"),
		},
		Relationships: []store.ExtractedRelation{
			{SourceName: "Bolt", TargetName: "Carbon", Type: common.RelSupplies},
		},
		Sentiments: map[string]string{"Carbon": common.SentimentNegative},
	})

	return s
}
