// Package graph implements the filtered knowledge-graph query and
// aggregation engine: induced subgraphs, entity search, cross-entity
// connection analysis and mention-sentiment roll-ups over a backing
// graph store.
package graph

import (
	"time"

	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

// GraphClient executes filter/selection requests against a graph store.
// It is stateless and request-scoped: no mutable state is retained between
// calls beyond the store handle, so one client serves concurrent requests.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	store store.GraphStorage
	now   func() time.Time

	maxEdgesDefault  int
	maxEdgesFiltered int
	maxSearchResults int
	maxConnections   int
	maxPathHops      int
	articleLimit     int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// Store is the backing graph store handle and is required. Now supplies
// the clock used when compiling date-range filters; it defaults to
// time.Now and exists so tests can pin the threshold computation.
type NewGraphClientParams struct {
	Store store.GraphStorage
	Now   func() time.Time
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client := graph.NewGraphClient(graph.NewGraphClientParams{
//		Store: storeClient,
//	})
func NewGraphClient(params NewGraphClientParams) *GraphClient {
	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &GraphClient{
		store: params.Store,
		now:   now,

		maxEdgesDefault:  200,
		maxEdgesFiltered: 500,
		maxSearchResults: 200,
		maxConnections:   200,
		maxPathHops:      3,
		articleLimit:     500,
	}
}
