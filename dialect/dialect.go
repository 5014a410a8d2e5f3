package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/pgqb"
)

// Dialect names accepted by Open and Rebind.
const (
	// Postgres is the PostgreSQL dialect. Placeholders rebind to $1..$N.
	Postgres = "postgres"
	// MySQL is the MySQL dialect. Placeholders stay ?.
	MySQL = "mysql"
	// SQLite is the SQLite dialect. Placeholders stay ?.
	SQLite = "sqlite"
)

// Rebind rewrites the ? placeholders of a prepared statement into the
// bind form of the given dialect. Every ? in the input is treated as a
// placeholder; the builder never emits ? as part of a literal.
func Rebind(dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 10)
	for i := strings.IndexByte(query, '?'); i != -1; i = strings.IndexByte(query, '?') {
		n++
		b.WriteString(query[:i])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
		query = query[i+1:]
	}
	b.WriteString(query)
	return b.String()
}

// ExecQuerier wraps the standard Exec and Query methods shared by
// *sql.DB, *sql.Tx and *sql.Conn.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Querier is the statement-level execution surface shared by Driver, Tx
// and the stats and debug wrappers.
type Querier interface {
	Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error)
	Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error)
}

// Conn renders statement nodes, rebinds their placeholders and runs them
// on an ExecQuerier.
type Conn struct {
	db      ExecQuerier
	dialect string
}

// NewConn returns a Conn for the given dialect over db.
func NewConn(dialect string, db ExecQuerier) Conn {
	return Conn{db: db, dialect: dialect}
}

// Dialect returns the dialect name the connection rebinds for.
func (c Conn) Dialect() string {
	return c.dialect
}

// Exec renders node and executes it, returning the driver result.
func (c Conn) Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error) {
	query, args, err := node.Prepare()
	if err != nil {
		return nil, fmt.Errorf("dialect: exec: %w", err)
	}
	res, err := c.db.ExecContext(ctx, Rebind(c.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("dialect: exec: %w", err)
	}
	return res, nil
}

// Query renders node and executes it, returning the result rows.
func (c Conn) Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error) {
	query, args, err := node.Prepare()
	if err != nil {
		return nil, fmt.Errorf("dialect: query: %w", err)
	}
	rows, err := c.db.QueryContext(ctx, Rebind(c.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("dialect: query: %w", err)
	}
	return rows, nil
}

// CreateTable renders t's DDL and executes it. Rendering errors pass
// through unwrapped, since the descriptor already names the table.
func (c Conn) CreateTable(ctx context.Context, t *pgqb.Table) error {
	ddl, err := t.CreateTable()
	if err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("dialect: create table %s: %w", t.Name(), err)
	}
	return nil
}

// Driver is a Conn over *sql.DB with transaction and lifecycle support.
type Driver struct {
	Conn
	db *sql.DB
}

// NewDriver returns a Driver for the given dialect over db.
func NewDriver(dialect string, db *sql.DB) *Driver {
	return &Driver{Conn: NewConn(dialect, db), db: db}
}

// Open opens a database/sql connection using the dialect name as the
// registered driver name and wraps it in a Driver.
func Open(dialect, dsn string) (*Driver, error) {
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("dialect: open %s: %w", dialect, err)
	}
	return NewDriver(dialect, db), nil
}

// OpenDB wraps an existing *sql.DB in a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, db)
}

// DB returns the underlying *sql.DB.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// Close closes the underlying connection pool.
func (d *Driver) Close() error {
	return d.db.Close()
}

// Tx begins a transaction with default options.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx begins a transaction with the given options.
func (d *Driver) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("dialect: begin transaction: %w", err)
	}
	return &Tx{Conn: NewConn(d.dialect, tx), tx: tx}, nil
}

// Tx carries the Conn execution surface inside a transaction.
type Tx struct {
	Conn
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ ExecQuerier = (*sql.DB)(nil)
	_ ExecQuerier = (*sql.Tx)(nil)
	_ ExecQuerier = (*sql.Conn)(nil)
	_ Querier     = Conn{}
	_ Querier     = (*Driver)(nil)
	_ Querier     = (*Tx)(nil)
)
