package graph

import (
	"slices"

	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
)

// CanonicalNode is the display identity of an entity after resolution:
// one stable identity, one label, one primary category, one color.
type CanonicalNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"type"`
	Color    string `json:"color"`
}

// categoryUnknown is the primary category assigned to entities without a
// single category tag.
const categoryUnknown = "Unknown"

// categoryPrecedence orders the well-known categories for primary-category
// selection. An entity may carry multiple tags; display needs exactly one,
// chosen independently of tag order.
var categoryPrecedence = []string{
	common.CategoryCompany,
	common.CategoryPerson,
	common.CategorySector,
	common.CategoryProduct,
	common.CategoryDocument,
}

var categoryColors = map[string]string{
	common.CategoryCompany:  "#ff0000",
	common.CategoryPerson:   "#00ff00",
	common.CategorySector:   "#ffa500",
	common.CategoryProduct:  "#800080",
	common.CategoryDocument: "#0000ff",
}

// defaultColor is used for any category outside the fixed palette.
const defaultColor = "#808080"

// PrimaryCategory picks the single display category for an entity that may
// carry multiple tags. Well-known categories win by fixed precedence
// (Company > Person > Sector > Product > Document); remaining tags are
// ranked lexicographically so the result never depends on tag order.
func PrimaryCategory(categories []common.Category) string {
	if len(categories) == 0 {
		return categoryUnknown
	}

	best := ""
	bestRank := len(categoryPrecedence)
	for _, c := range categories {
		rank := slices.Index(categoryPrecedence, c)
		if rank == -1 {
			rank = len(categoryPrecedence)
		}
		if best == "" || rank < bestRank || (rank == bestRank && c < best) {
			best = c
			bestRank = rank
		}
	}
	return best
}

// CategoryColor maps a primary category into the fixed palette.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return defaultColor
}

// Canonicalize resolves an entity's display identity: name when present,
// store-assigned ID otherwise, plus primary category and palette color.
func Canonicalize(e common.Entity) CanonicalNode {
	category := PrimaryCategory(e.Categories)
	return CanonicalNode{
		ID:       e.ID,
		Label:    e.Identity(),
		Category: category,
		Color:    CategoryColor(category),
	}
}
