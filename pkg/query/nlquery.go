package query

import (
	"context"
	"fmt"

	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/graph"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// QueryResult is the answer to a natural-language question: the SQL the
// agent generated, the raw rows it produced, and a graph rendering of
// any rows that carry node or edge shape.
type QueryResult struct {
	Query string                `json:"query"`
	Rows  []map[string]any      `json:"rows"`
	Nodes []graph.CanonicalNode `json:"nodes"`
	Edges []graph.Edge          `json:"edges"`
}

type generatedQuery struct {
	Query string `json:"query" jsonschema_description:"A single read-only PostgreSQL SELECT statement"`
}

// AnswerQuery translates the question into one read-only SQL statement,
// executes it against the store and shapes the result. Generation
// failures are UpstreamError; execution failures surface as-is because
// they describe the generated statement, not the upstream service.
func (c *BaseQueryClient) AnswerQuery(ctx context.Context, question string) (QueryResult, error) {
	var generated generatedQuery

	opts := append(
		c.generateOpts(),
		ai.WithSystemPrompts(ai.QueryAgentPrompt),
	)
	err := c.aiClient.GenerateCompletionWithFormat(
		ctx,
		"sql_query",
		"A read-only SQL query answering the user's question about the news graph",
		question,
		&generated,
		opts...,
	)
	if err != nil {
		return QueryResult{}, &UpstreamError{Op: "query generation", Err: err}
	}
	if generated.Query == "" {
		return QueryResult{}, &UpstreamError{Op: "query generation", Err: fmt.Errorf("empty query")}
	}

	usage := c.aiClient.GetMetrics()
	logger.Debug("[Agent] Generated query",
		"sql", generated.Query,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)

	rows, err := c.storageClient.RunReadOnlyQuery(ctx, generated.Query)
	if err != nil {
		return QueryResult{}, fmt.Errorf("executing generated query: %w", err)
	}

	nodes, edges := shapeRows(rows)
	nodes = c.resolveNodeCategories(ctx, nodes)
	return QueryResult{
		Query: generated.Query,
		Rows:  rows,
		Nodes: nodes,
		Edges: edges,
	}, nil
}

// shapeRows projects query rows onto graph elements. A row with id and
// name columns becomes a node, a row with source_id, target_id and type
// columns becomes an edge; both are deduplicated. Rows matching neither
// shape stay tabular only.
func shapeRows(rows []map[string]any) ([]graph.CanonicalNode, []graph.Edge) {
	nodes := make([]graph.CanonicalNode, 0)
	edges := make([]graph.Edge, 0)
	seenNodes := make(map[string]bool)
	seenEdges := make(map[[3]string]bool)

	for _, row := range rows {
		id, hasID := stringColumn(row, "id")
		name, hasName := stringColumn(row, "name")
		if hasID && hasName {
			if !seenNodes[id] {
				seenNodes[id] = true
				category, _ := stringColumn(row, "category")
				nodes = append(nodes, graph.CanonicalNode{
					ID:       id,
					Label:    name,
					Category: category,
					Color:    graph.CategoryColor(category),
				})
			}
		}

		src, hasSrc := stringColumn(row, "source_id")
		dst, hasDst := stringColumn(row, "target_id")
		relType, hasType := stringColumn(row, "type")
		if hasSrc && hasDst && hasType {
			key := [3]string{src, dst, relType}
			if !seenEdges[key] {
				seenEdges[key] = true
				edges = append(edges, graph.Edge{Source: src, Target: dst, Type: relType})
			}
		}
	}

	return nodes, edges
}

// resolveNodeCategories fills category and color on nodes whose rows did
// not alias a category column, resolving the entities by store identity.
// Resolution failure leaves the nodes as shaped; the rows are still the
// answer.
func (c *BaseQueryClient) resolveNodeCategories(ctx context.Context, nodes []graph.CanonicalNode) []graph.CanonicalNode {
	ids := make([]string, 0)
	for _, n := range nodes {
		if n.Category == "" {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nodes
	}

	entities, err := c.storageClient.EntitiesByIDs(ctx, ids)
	if err != nil {
		logger.Warn("[Agent] Could not resolve node categories", "err", err)
		return nodes
	}

	byID := make(map[string]graph.CanonicalNode, len(entities))
	for _, e := range entities {
		byID[e.ID] = graph.Canonicalize(e)
	}
	for i, n := range nodes {
		if n.Category != "" {
			continue
		}
		if resolved, ok := byID[n.ID]; ok {
			nodes[i].Category = resolved.Category
			nodes[i].Color = resolved.Color
		}
	}
	return nodes
}

func stringColumn(row map[string]any, key string) (string, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "", false
	}
	return s, true
}
