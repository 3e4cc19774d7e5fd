// Package pgx implements the GraphStorage port on PostgreSQL. The
// property graph is stored relationally: documents and entities are node
// tables, mentions and relationships are edge tables joined on internal
// bigint keys. Only nanoid public ids leave this package, so the engine
// never sees serial keys. Denormalized fields on mention and relationship
// edges (date, tier, status) are produced by joining the document row at
// read time, which makes classification backfill a single-row update.
package pgx

import (
	"context"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
	BeginTx(ctx context.Context, txOptions pgxv5.TxOptions) (pgxv5.Tx, error)
}

// GraphDBStorage implements the GraphStorage interface using PostgreSQL.
// It is safe for concurrent use; every method issues independent
// statements except SaveArticle, which runs in a transaction.
type GraphDBStorage struct {
	conn pgxIConn
}

var _ store.GraphStorage = (*GraphDBStorage)(nil)

// NewGraphDBStorageWithConnection creates a new GraphDBStorage using an
// existing database connection or pool.
func NewGraphDBStorageWithConnection(conn pgxIConn) *GraphDBStorage {
	return &GraphDBStorage{conn: conn}
}
