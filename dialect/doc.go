// Package dialect bridges prepared pgqb statements to live database
// connections.
//
// The core builder renders portable SQL with ? placeholders and never
// touches a connection. This package owns the execution side: it rebinds
// placeholders into the form a driver expects and runs the statement.
//
// # Dialect Constants
//
// Each supported dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Postgres rebinds ? placeholders to $1..$N; MySQL and SQLite keep ?
// unchanged.
//
// # Drivers
//
// Driver wraps a *sql.DB and executes any prepared chain node:
//
//	drv, err := dialect.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	rows, err := drv.Query(ctx, pgqb.Select(user).From(user).Where(id.EQ(1)))
//
// Tx carries the same execution surface inside a transaction. StatsDriver
// and DebugDriver wrap a Driver with query statistics and statement
// logging.
//
// # pgx
//
// PgxQuerier adapts the same statement nodes to a pgx v5 connection or
// pool, which bypasses database/sql entirely.
package dialect
