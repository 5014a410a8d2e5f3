package dialect

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/pgqb"
	"github.com/syssam/pgqb/sqltype"
)

// TestSQLiteIntegration drives a full statement lifecycle against an
// in-memory SQLite database.
func TestSQLiteIntegration(t *testing.T) {
	var (
		scratchID   = pgqb.NewColumn("id").Type(sqltype.Integer).Primary()
		scratchBody = pgqb.NewColumn("body").Type(sqltype.Text)
		scratchQty  = pgqb.NewColumn("qty").Type(sqltype.Integer).Default(0)
		scratch     = pgqb.NewTable("ScratchNote", scratchID, scratchBody, scratchQty)
	)

	drv, err := Open(SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	// Every pooled connection gets its own :memory: database, so the
	// whole test must run on a single connection.
	drv.DB().SetMaxOpenConns(1)

	ctx := context.Background()
	require.Equal(t, SQLite, drv.Dialect())
	require.NoError(t, drv.CreateTable(ctx, scratch))

	collectIDs := func(t *testing.T, rows *sql.Rows) []int {
		t.Helper()
		defer rows.Close()
		var ids []int
		for rows.Next() {
			var id int
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		return ids
	}

	t.Run("insert_rows", func(t *testing.T) {
		res, err := drv.Exec(ctx, pgqb.InsertInto(scratch).Values(
			pgqb.Assign(scratchID, 1),
			pgqb.Assign(scratchBody, "first"),
			pgqb.Assign(scratchQty, 3),
		))
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		// qty is left to its declared default.
		_, err = drv.Exec(ctx, pgqb.InsertInto(scratch).Values(
			pgqb.Assign(scratchID, 2),
			pgqb.Assign(scratchBody, "second"),
		))
		require.NoError(t, err)
	})

	t.Run("select_rows", func(t *testing.T) {
		rows, err := drv.Query(ctx, pgqb.Select(scratch).From(scratch).OrderBy(scratchID.Asc()))
		require.NoError(t, err)
		defer rows.Close()

		type note struct {
			id   int
			body string
			qty  int
		}
		var got []note
		for rows.Next() {
			var n note
			require.NoError(t, rows.Scan(&n.id, &n.body, &n.qty))
			got = append(got, n)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []note{{1, "first", 3}, {2, "second", 0}}, got)
	})

	t.Run("limit_offset", func(t *testing.T) {
		rows, err := drv.Query(ctx, pgqb.Select(scratchID).
			From(scratch).
			OrderBy(scratchID.Desc()).
			Limit(1).
			Offset(1))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, collectIDs(t, rows))
	})

	t.Run("update_row", func(t *testing.T) {
		res, err := drv.Exec(ctx, pgqb.Update(scratch).
			Set(pgqb.Assign(scratchQty, 10)).
			Where(scratchID.EQ(1)))
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		rows, err := drv.Query(ctx, pgqb.Select(scratchID).From(scratch).Where(scratchQty.GT(5)))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, collectIDs(t, rows))
	})

	t.Run("delete_row", func(t *testing.T) {
		res, err := drv.Exec(ctx, pgqb.DeleteFrom(scratch).Where(scratchID.EQ(2)))
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		rows, err := drv.Query(ctx, pgqb.Select(scratchID).From(scratch))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, collectIDs(t, rows))
	})

	t.Run("transaction_commit", func(t *testing.T) {
		tx, err := drv.Tx(ctx)
		require.NoError(t, err)
		_, err = tx.Exec(ctx, pgqb.InsertInto(scratch).Values(
			pgqb.Assign(scratchID, 3),
			pgqb.Assign(scratchBody, "third"),
		))
		require.NoError(t, err)

		// Visible inside the transaction before commit.
		rows, err := tx.Query(ctx, pgqb.Select(scratchID).From(scratch).OrderBy(scratchID.Asc()))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, collectIDs(t, rows))
		require.NoError(t, tx.Commit())

		rows, err = drv.Query(ctx, pgqb.Select(scratchID).From(scratch).OrderBy(scratchID.Asc()))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, collectIDs(t, rows))
	})

	t.Run("transaction_rollback", func(t *testing.T) {
		tx, err := drv.Tx(ctx)
		require.NoError(t, err)
		_, err = tx.Exec(ctx, pgqb.InsertInto(scratch).Values(
			pgqb.Assign(scratchID, 4),
			pgqb.Assign(scratchBody, "fourth"),
		))
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		rows, err := drv.Query(ctx, pgqb.Select(scratchID).From(scratch).OrderBy(scratchID.Asc()))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, collectIDs(t, rows))
	})
}
