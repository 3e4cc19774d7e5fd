package query

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/common"
	"github.com/relatiq-ai/newsgraph/backend/pkg/graph"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store/memory"
)

// fakeAI is a canned GraphAIClient. Format calls unmarshal formatJSON
// into out, completion calls return completionText.
type fakeAI struct {
	completionText string
	formatJSON     string
	err            error

	lastPrompt   string
	metricsReads int
}

func (f *fakeAI) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.completionText, nil
}

func (f *fakeAI) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	f.lastPrompt = prompt
	if f.err != nil {
		return f.err
	}
	return ai.UnmarshalFlexible(f.formatJSON, out)
}

func (f *fakeAI) ResetMetrics() {}

func (f *fakeAI) GetMetrics() ai.ModelMetrics {
	f.metricsReads++
	return ai.ModelMetrics{TotalTokens: 42}
}

// fakeStore backs the agent with canned query rows; everything else
// falls through to the in-memory store.
type fakeStore struct {
	*memory.Store
	rows     []map[string]any
	queryErr error

	lastQuery string
}

func (f *fakeStore) RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	f.lastQuery = query
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func TestAnswerQueryShapesRows(t *testing.T) {
	s := &fakeStore{
		Store: memory.NewStore(),
		rows: []map[string]any{
			{"id": "e1", "name": "Acme", "category": "Company"},
			{"id": "e2", "name": "Bolt", "category": "Company"},
			{"id": "e1", "name": "Acme", "category": "Company"}, // duplicate node
			{"source_id": "e1", "target_id": "e2", "type": "PARTNERS_WITH"},
			{"count": int64(3)}, // tabular-only row
		},
	}
	aiC := &fakeAI{formatJSON: `{"query":"SELECT public_id AS id, name FROM entities"}`}
	c := NewGraphQueryClient(aiC, s, nil)

	result, err := c.AnswerQuery(context.Background(), "which companies partner?")
	if err != nil {
		t.Fatalf("AnswerQuery: %v", err)
	}

	if result.Query != `SELECT public_id AS id, name FROM entities` {
		t.Fatalf("unexpected query: %q", result.Query)
	}
	if s.lastQuery != result.Query {
		t.Fatalf("generated query was not the one executed: %q vs %q", s.lastQuery, result.Query)
	}
	if len(result.Rows) != 5 {
		t.Fatalf("raw rows must pass through untouched, got %d", len(result.Rows))
	}
	if len(result.Nodes) != 2 {
		t.Fatalf("expected 2 deduplicated nodes, got %v", result.Nodes)
	}
	wantEdges := []graph.Edge{{Source: "e1", Target: "e2", Type: "PARTNERS_WITH"}}
	if !reflect.DeepEqual(result.Edges, wantEdges) {
		t.Fatalf("unexpected edges: %v", result.Edges)
	}
	if aiC.metricsReads == 0 {
		t.Fatal("model usage was not read after generation")
	}
}

func TestAnswerQueryResolvesNodeCategories(t *testing.T) {
	mem := memory.NewStore()
	mem.MustSave(store.ArticleBundle{
		Document: common.Document{Title: "Acme expands"},
		Entities: []common.Entity{
			{ID: "ent-acme", Name: "Acme", Categories: []string{common.CategoryCompany}},
		},
	})

	// The generated query aliased id and name but no category column.
	s := &fakeStore{
		Store: mem,
		rows: []map[string]any{
			{"id": "ent-acme", "name": "Acme"},
			{"id": "ent-ghost", "name": "Ghost"}, // unknown to the store
		},
	}
	aiC := &fakeAI{formatJSON: `{"query":"SELECT public_id AS id, name FROM entities"}`}
	c := NewGraphQueryClient(aiC, s, nil)

	result, err := c.AnswerQuery(context.Background(), "who is in the graph?")
	if err != nil {
		t.Fatalf("AnswerQuery: %v", err)
	}
	if len(result.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %v", result.Nodes)
	}
	if result.Nodes[0].Category != common.CategoryCompany {
		t.Fatalf("known entity's category was not resolved: %+v", result.Nodes[0])
	}
	if result.Nodes[0].Color != graph.CategoryColor(common.CategoryCompany) {
		t.Fatalf("resolved node did not pick up the palette color: %+v", result.Nodes[0])
	}
	if result.Nodes[1].Category != "" {
		t.Fatalf("unknown entity must stay unresolved: %+v", result.Nodes[1])
	}
}

func TestAnswerQueryUpstreamFailure(t *testing.T) {
	s := &fakeStore{Store: memory.NewStore()}
	aiC := &fakeAI{err: errors.New("model unavailable")}
	c := NewGraphQueryClient(aiC, s, nil)

	_, err := c.AnswerQuery(context.Background(), "anything")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestAnswerQueryEmptyGeneration(t *testing.T) {
	s := &fakeStore{Store: memory.NewStore()}
	aiC := &fakeAI{formatJSON: `{"query":""}`}
	c := NewGraphQueryClient(aiC, s, nil)

	_, err := c.AnswerQuery(context.Background(), "anything")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError for empty generation, got %v", err)
	}
}

func TestAnswerQueryExecutionFailureIsNotUpstream(t *testing.T) {
	s := &fakeStore{
		Store:    memory.NewStore(),
		queryErr: errors.New("relation does not exist"),
	}
	aiC := &fakeAI{formatJSON: `{"query":"SELECT 1"}`}
	c := NewGraphQueryClient(aiC, s, nil)

	_, err := c.AnswerQuery(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected execution error")
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		t.Fatalf("execution failures must not be classified upstream: %v", err)
	}
}

func TestShapeRowsSkipsPartialShapes(t *testing.T) {
	nodes, edges := shapeRows([]map[string]any{
		{"id": "e1"},                       // name missing
		{"name": "Acme"},                   // id missing
		{"source_id": "a", "type": "X"},    // target missing
		{"id": nil, "name": "Acme"},        // nil id
		{"source_id": "a", "target_id": "b", "type": "X"},
	})
	if len(nodes) != 0 {
		t.Fatalf("partial node shapes must be skipped, got %v", nodes)
	}
	if len(edges) != 1 {
		t.Fatalf("expected the one complete edge, got %v", edges)
	}
}

func TestGenerateInsightRejectsUnknownType(t *testing.T) {
	c := NewGraphQueryClient(&fakeAI{}, &fakeStore{Store: memory.NewStore()}, nil)

	if _, err := c.GenerateInsight(context.Background(), []string{"Some article"}, "Gossip"); err == nil {
		t.Fatal("expected rejection of unknown analysis type")
	}
	if _, err := c.GenerateInsight(context.Background(), nil, AnalysisSummary); err == nil {
		t.Fatal("expected rejection of empty selection")
	}
}
