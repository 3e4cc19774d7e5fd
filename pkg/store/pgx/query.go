package pgx

import (
	"context"
	"fmt"
	"strings"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
)

// maxAgentRows bounds the result of agent-generated queries so a
// runaway SELECT cannot flood the response path.
const maxAgentRows = 500

// RunReadOnlyQuery executes one caller-supplied statement inside a
// read-only transaction. Defense is layered: the statement must be a
// single SELECT or WITH, and the transaction access mode makes the
// database reject writes that slip past the textual check.
func (s *GraphDBStorage) RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	stmt, err := validateReadOnly(query)
	if err != nil {
		return nil, err
	}

	tx, err := s.conn.BeginTx(ctx, pgxv5.TxOptions{AccessMode: pgxv5.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	results := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		results = append(results, row)
		if len(results) >= maxAgentRows {
			logger.Warn("[Store] Read-only query truncated", "rows", maxAgentRows)
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, tx.Commit(ctx)
}

func validateReadOnly(query string) (string, error) {
	stmt := strings.TrimSpace(query)
	stmt = strings.TrimSuffix(stmt, ";")
	if strings.Contains(stmt, ";") {
		return "", fmt.Errorf("query must be a single statement")
	}

	head, _, _ := strings.Cut(strings.TrimSpace(stmt), " ")
	switch strings.ToUpper(head) {
	case "SELECT", "WITH":
		return stmt, nil
	}
	return "", fmt.Errorf("query must be a SELECT statement, got %q", head)
}
