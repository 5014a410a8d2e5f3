// Package pgqb builds SQL statements programmatically for a
// Postgres-flavored dialect.
//
// Statements are composed by chaining methods over typed column and table
// descriptors. Each call returns a new immutable node wrapping its
// predecessor, so chains can be branched and reused freely. A terminal
// Prepare renders the SQL text with positional ? placeholders and returns
// the bind parameters in placeholder order:
//
//	var (
//		UserID    = pgqb.NewColumn("id").Type(sqltype.UUID).Primary()
//		UserFirst = pgqb.NewColumn("first").Type(sqltype.Text)
//		UserLast  = pgqb.NewColumn("last").Type(sqltype.Text)
//		User      = pgqb.NewTable("User", UserID, UserFirst, UserLast)
//	)
//
//	query, args, err := pgqb.Select(User).
//		From(User).
//		Where(UserID.EQ(2)).
//		Prepare()
//	// query = `SELECT "user".id, "user".first, "user".last FROM "user" WHERE "user".id = ?`
//	// args  = []any{2}
//
// Each node type exposes only the clauses that may legally follow it, so
// invalid statement shapes fail to compile. Placeholder translation for
// drivers that use $N markers, and statement execution, live in the
// dialect package.
package pgqb

// QueryBuilder is implemented by every node of a statement chain. Prepare
// renders the node and everything before it, returning the SQL text and
// the bind parameters in placeholder order.
type QueryBuilder interface {
	Prepare() (string, []any, error)
}

// Predicate is a boolean-capable node: a comparison Expression or a
// LogicGate composition. WHERE and ON take exactly one Predicate; callers
// pre-compose complex conditions with And, Or, AndNot and OrNot.
type Predicate interface {
	QueryBuilder
	predicate()
}

// Select starts a SELECT chain. Targets may be bare columns, aliased
// columns or expressions, and whole tables, which expand to their columns
// in declaration order. Any other target records an invalid-select-target
// error that Prepare reports.
func Select(targets ...any) *Selector {
	s := &Selector{}
	for i, target := range targets {
		switch arg := target.(type) {
		case *Column:
			s.columns = append(s.columns, arg.String())
		case *As:
			sql, params, err := arg.Prepare()
			if err != nil {
				s.err = err
				return s
			}
			s.columns = append(s.columns, sql)
			s.params = append(s.params, params...)
		case *Table:
			for _, c := range arg.columns {
				s.columns = append(s.columns, c.String())
			}
		default:
			s.err = NewSelectTargetError(target, i)
			return s
		}
	}
	return s
}

// InsertInto starts an INSERT chain for the given table.
func InsertInto(t *Table) *InsertBuilder {
	return &InsertBuilder{table: t}
}

// Update starts an UPDATE chain for the given table.
func Update(t *Table) *UpdateBuilder {
	return &UpdateBuilder{table: t}
}

// DeleteFrom starts a DELETE chain for the given table.
func DeleteFrom(t *Table) *DeleteBuilder {
	return &DeleteBuilder{table: t}
}
