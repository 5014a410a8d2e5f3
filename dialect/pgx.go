package dialect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syssam/pgqb"
)

// PgxConn is the subset of pgx v5 methods the adapter needs. *pgx.Conn,
// *pgxpool.Pool and pgx.Tx implement it.
type PgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgxQuerier runs statement nodes on a pgx v5 connection, rebinding
// placeholders to the $N form. It bypasses database/sql entirely.
type PgxQuerier struct {
	conn PgxConn
}

// NewPgxQuerier returns a PgxQuerier over conn.
func NewPgxQuerier(conn PgxConn) *PgxQuerier {
	return &PgxQuerier{conn: conn}
}

// Exec renders node and executes it, returning the command tag.
func (q *PgxQuerier) Exec(ctx context.Context, node pgqb.QueryBuilder) (pgconn.CommandTag, error) {
	query, args, err := node.Prepare()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("dialect: exec: %w", err)
	}
	tag, err := q.conn.Exec(ctx, Rebind(Postgres, query), args...)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("dialect: exec: %w", err)
	}
	return tag, nil
}

// Query renders node and executes it, returning the result rows.
func (q *PgxQuerier) Query(ctx context.Context, node pgqb.QueryBuilder) (pgx.Rows, error) {
	query, args, err := node.Prepare()
	if err != nil {
		return nil, fmt.Errorf("dialect: query: %w", err)
	}
	rows, err := q.conn.Query(ctx, Rebind(Postgres, query), args...)
	if err != nil {
		return nil, fmt.Errorf("dialect: query: %w", err)
	}
	return rows, nil
}

// CreateTable renders t's DDL and executes it.
func (q *PgxQuerier) CreateTable(ctx context.Context, t *pgqb.Table) error {
	ddl, err := t.CreateTable()
	if err != nil {
		return err
	}
	if _, err := q.conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("dialect: create table %s: %w", t.Name(), err)
	}
	return nil
}

// Ensure common pgx connection types satisfy PgxConn.
var (
	_ PgxConn = (*pgx.Conn)(nil)
	_ PgxConn = (*pgxpool.Pool)(nil)
)
