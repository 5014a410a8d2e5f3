package dialect

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgqb"
	"github.com/syssam/pgqb/sqltype"
)

// fakePgxConn records the last statement it received and returns canned
// results.
type fakePgxConn struct {
	gotSQL   string
	gotArgs  []any
	execTag  string
	execErr  error
	queryErr error
}

func (f *fakePgxConn) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.gotSQL = sql
	f.gotArgs = arguments
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag(f.execTag), nil
}

func (f *fakePgxConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.gotSQL = sql
	f.gotArgs = args
	return nil, f.queryErr
}

func TestPgxQuerierExec(t *testing.T) {
	t.Run("rebinds_placeholders", func(t *testing.T) {
		conn := &fakePgxConn{execTag: "INSERT 0 1"}
		q := NewPgxQuerier(conn)

		tag, err := q.Exec(context.Background(), pgqb.InsertInto(noteTable).Values(
			pgqb.Assign(noteID, 1),
			pgqb.Assign(noteBody, "hello"),
		))
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "note" ("id", "body") VALUES ($1, $2)`, conn.gotSQL)
		assert.Equal(t, []any{1, "hello"}, conn.gotArgs)
		assert.Equal(t, int64(1), tag.RowsAffected())
	})

	t.Run("render_error", func(t *testing.T) {
		conn := &fakePgxConn{}
		q := NewPgxQuerier(conn)

		_, err := q.Exec(context.Background(), pgqb.Select(noteID).From(noteTable).Join(noteTable))
		require.Error(t, err)
		assert.True(t, pgqb.IsMissingJoinCondition(err))
		assert.Contains(t, err.Error(), "dialect: exec:")
		assert.Empty(t, conn.gotSQL)
	})

	t.Run("exec_error", func(t *testing.T) {
		connErr := errors.New("connection reset")
		conn := &fakePgxConn{execErr: connErr}
		q := NewPgxQuerier(conn)

		_, err := q.Exec(context.Background(), pgqb.DeleteFrom(noteTable))
		require.Error(t, err)
		assert.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), "dialect: exec:")
	})
}

func TestPgxQuerierQuery(t *testing.T) {
	t.Run("rebinds_placeholders", func(t *testing.T) {
		conn := &fakePgxConn{}
		q := NewPgxQuerier(conn)

		_, err := q.Query(context.Background(), pgqb.Select(noteID, noteBody).
			From(noteTable).
			Where(noteID.EQ(7)))
		require.NoError(t, err)
		assert.Equal(t, `SELECT "note".id, "note".body FROM "note" WHERE "note".id = $1`, conn.gotSQL)
		assert.Equal(t, []any{7}, conn.gotArgs)
	})

	t.Run("render_error", func(t *testing.T) {
		conn := &fakePgxConn{}
		q := NewPgxQuerier(conn)

		_, err := q.Query(context.Background(), pgqb.Select(noteID, 42).From(noteTable))
		require.Error(t, err)
		assert.True(t, pgqb.IsInvalidSelectTarget(err))
		assert.Contains(t, err.Error(), "dialect: query:")
		assert.Empty(t, conn.gotSQL)
	})

	t.Run("query_error", func(t *testing.T) {
		connErr := errors.New("broken pipe")
		conn := &fakePgxConn{queryErr: connErr}
		q := NewPgxQuerier(conn)

		_, err := q.Query(context.Background(), pgqb.Select(noteID).From(noteTable))
		require.Error(t, err)
		assert.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), "dialect: query:")
	})
}

func TestPgxQuerierCreateTable(t *testing.T) {
	t.Run("executes_ddl", func(t *testing.T) {
		conn := &fakePgxConn{execTag: "CREATE TABLE"}
		q := NewPgxQuerier(conn)

		metric := pgqb.NewTable("Metric",
			pgqb.NewColumn("id").Type(sqltype.BigSerial).Primary(),
			pgqb.NewColumn("label").Type(sqltype.Text),
		)
		require.NoError(t, q.CreateTable(context.Background(), metric))
		assert.Contains(t, conn.gotSQL, `CREATE TABLE IF NOT EXISTS "metric"`)
		assert.Empty(t, conn.gotArgs)
	})

	t.Run("render_error_passes_through", func(t *testing.T) {
		conn := &fakePgxConn{}
		q := NewPgxQuerier(conn)

		ghost := pgqb.NewTable("GhostMetric", pgqb.NewColumn("spooky"))
		err := q.CreateTable(context.Background(), ghost)
		require.Error(t, err)
		assert.True(t, sqltype.IsConfigurationError(err))
		assert.NotContains(t, err.Error(), "dialect:")
		assert.Empty(t, conn.gotSQL)
	})

	t.Run("exec_error", func(t *testing.T) {
		connErr := errors.New("permission denied")
		conn := &fakePgxConn{execErr: connErr}
		q := NewPgxQuerier(conn)

		metric := pgqb.NewTable("StalePgxMetric",
			pgqb.NewColumn("id").Type(sqltype.BigSerial).Primary(),
		)
		err := q.CreateTable(context.Background(), metric)
		require.Error(t, err)
		assert.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), `dialect: create table "stale_pgx_metric"`)
	})
}
