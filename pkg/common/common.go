package common

// Category tags an entity with its kind. The set is open: extraction may
// produce tags beyond the ones listed here, which is why Entity carries a
// slice of categories rather than a single enum value.
type Category = string

const (
	CategoryCompany  Category = "Company"
	CategoryPerson   Category = "Person"
	CategoryProduct  Category = "Product"
	CategorySector   Category = "Sector"
	CategoryDocument Category = "Document"
)

// Publisher tiers classify the credibility of a document's source
// publication. Assigned by an external lookup table, backfilled after
// ingestion.
const (
	TierA = "A"
	TierB = "B"
	TierC = "C"
)

// Document statuses describe how firm the reported information is.
const (
	StatusConfirmedNews   = "ConfirmedNews"
	StatusSpeculation     = "Speculation"
	StatusAnalysisOutlook = "AnalysisOutlook"
	StatusUnknown         = "Unknown"
)

// Sentiment values carried on a mention. An empty value means the external
// classifier has not labeled the mention yet.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Relationship types produced by the extraction pipeline. Like categories
// the set is open; these are the ones the pipeline is configured with.
const (
	RelWorksAt      = "WORKS_AT"
	RelDevelops     = "DEVELOPS"
	RelInvestsIn    = "INVESTS_IN"
	RelPartnersWith = "PARTNERS_WITH"
	RelSupplies     = "SUPPLIES"
	RelCompetesWith = "COMPETES_WITH"
	RelAffects      = "AFFECTS"
)

// Document is a news article node. The title acts as the natural key;
// ID is the store-assigned identity. Documents are immutable after
// ingestion except for tier/status backfill.
type Document struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Date      string            `json:"date"` // ISO-8601, lexically sortable
	Publisher string            `json:"publisher"`
	Tier      string            `json:"tier"`
	Status    string            `json:"status"`
	URL       string            `json:"url"`
	Text      string            `json:"text,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Entity is a node in the graph: a company, person, product, sector or any
// other concept the extraction pipeline emits. Name may be empty, in which
// case ID doubles as the display identity. Sectors holds the names of
// Sector entities this entity belongs to, denormalized from BelongsTo
// edges so filters can test membership without an extra traversal.
type Entity struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Categories []Category        `json:"categories"`
	Sectors    []string          `json:"sectors,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Identity returns the canonical display identity of the entity: the name
// when present, otherwise the store-assigned ID. Two extractions naming the
// same real-world referent resolve to one node, so this value is unique
// per referent.
func (e Entity) Identity() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Mention is a Document -> Entity edge. It carries denormalized copies of
// the document fields so mention-level filtering and aggregation never
// need to join back to the document, plus the optional sentiment label.
type Mention struct {
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	Date          string `json:"date"`
	Tier          string `json:"tier"`
	Status        string `json:"status"`
	Sentiment     string `json:"sentiment,omitempty"`
	Entity        Entity `json:"entity"`
}

// Relationship is an Entity -> Entity edge with provenance copied from the
// document it was extracted from.
type Relationship struct {
	ID            string            `json:"id"`
	SourceID      string            `json:"source_id"`
	TargetID      string            `json:"target_id"`
	Type          string            `json:"type"`
	DocumentTitle string            `json:"document_title"`
	Date          string            `json:"date"`
	Tier          string            `json:"tier"`
	Status        string            `json:"status"`
	Extra         map[string]string `json:"extra,omitempty"`
}
