// Package filter compiles declarative filter specifications into pure
// predicates over documents and entities. The compiled predicates are
// side-effect free and monotone: adding a filter never grows the matched
// set, and an absent filter excludes nothing.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// Date range keywords accepted in Spec.DateRange. Anything else (including
// the empty string) means no lower bound.
const (
	Range7d  = "7d"
	Range30d = "30d"
	Range3m  = "3m"
	RangeAll = "all"
)

// Spec is a declarative filter over documents and entities. List-valued
// fields use OR semantics within the field and AND semantics across
// fields.
//
// ArticleTitles is a selection override: when set, the document predicate
// becomes exactly "title is one of these" and every ambient filter (date
// range, tiers, statuses, sectors, entity search) is ignored for the
// request. Explicit selection and ambient filtering are never combined.
type Spec struct {
	DateRange     string
	Tiers         []string
	Statuses      []string
	Sectors       []string
	EntitySearch  string
	ArticleTitles []string
}

// Selection reports whether the spec carries an explicit article
// selection.
func (s Spec) Selection() bool {
	return len(s.ArticleTitles) > 0
}

// Filtered reports whether any filter or selection is present, i.e.
// whether the spec narrows the default view at all.
func (s Spec) Filtered() bool {
	return s.Selection() ||
		(s.DateRange != "" && s.DateRange != RangeAll) ||
		len(s.Tiers) > 0 ||
		len(s.Statuses) > 0 ||
		len(s.Sectors) > 0 ||
		s.EntitySearch != ""
}

// Predicates holds the compiled predicate pair. Values are immutable and
// safe for concurrent use; the date threshold is captured once at compile
// time so repeated evaluation within a request is consistent.
type Predicates struct {
	selection bool
	docMatch  func(title, date, tier, status string) bool
	entMatch  func(e common.Entity) bool
}

// Compile turns the spec into predicates. The current time is passed in by
// the caller so compilation itself stays pure and testable.
func (s Spec) Compile(now time.Time) Predicates {
	if s.Selection() {
		titles := slices.Clone(s.ArticleTitles)
		return Predicates{
			selection: true,
			docMatch: func(title, _, _, _ string) bool {
				return slices.Contains(titles, title)
			},
			// Sector and entity-search filters are ambient too; a
			// selection suppresses them along with the document filters.
			entMatch: func(common.Entity) bool { return true },
		}
	}

	threshold := dateThreshold(s.DateRange, now)
	tiers := slices.Clone(s.Tiers)
	statuses := slices.Clone(s.Statuses)

	return Predicates{
		docMatch: func(_, date, tier, status string) bool {
			if threshold != "" && date < threshold {
				return false
			}
			if len(tiers) > 0 && !slices.Contains(tiers, tier) {
				return false
			}
			if len(statuses) > 0 && !slices.Contains(statuses, status) {
				return false
			}
			return true
		},
		entMatch: s.compileEntity(),
	}
}

func (s Spec) compileEntity() func(common.Entity) bool {
	sectors := slices.Clone(s.Sectors)
	search := strings.ToLower(s.EntitySearch)

	return func(e common.Entity) bool {
		if len(sectors) > 0 && !matchesSector(e, sectors) {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Identity()), search) {
			return false
		}
		return true
	}
}

// matchesSector implements the two-hop OR: the entity is itself one of the
// requested sectors, or it has a BelongsTo link to one of them.
func matchesSector(e common.Entity, sectors []string) bool {
	if slices.Contains(e.Categories, common.CategorySector) &&
		slices.Contains(sectors, e.Identity()) {
		return true
	}
	for _, s := range e.Sectors {
		if slices.Contains(sectors, s) {
			return true
		}
	}
	return false
}

// dateThreshold converts a range keyword into an inclusive ISO date lower
// bound. The returned value compares lexically against document dates,
// which are ISO-8601 and therefore lexically sortable.
func dateThreshold(dateRange string, now time.Time) string {
	var days int
	switch dateRange {
	case Range7d:
		days = 7
	case Range30d:
		days = 30
	case Range3m:
		days = 90
	default:
		return ""
	}
	return now.UTC().AddDate(0, 0, -days).Format("2006-01-02")
}

// Selection reports whether the compiled predicates came from an explicit
// article selection rather than ambient filters.
func (p Predicates) Selection() bool {
	return p.selection
}

// DocumentMatches evaluates the document predicate.
func (p Predicates) DocumentMatches(d common.Document) bool {
	return p.docMatch(d.Title, d.Date, d.Tier, d.Status)
}

// MentionMatches evaluates the document predicate against the denormalized
// document fields carried on a mention edge.
func (p Predicates) MentionMatches(m common.Mention) bool {
	return p.docMatch(m.DocumentTitle, m.Date, m.Tier, m.Status)
}

// EntityMatches evaluates the entity predicate.
func (p Predicates) EntityMatches(e common.Entity) bool {
	return p.entMatch(e)
}
