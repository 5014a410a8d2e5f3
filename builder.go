package pgqb

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Selector is the head of a SELECT chain. It renders the select list and
// carries the parameters contributed by aliased expressions, along with
// any target-validation error recorded at construction.
type Selector struct {
	columns []string
	params  []any
	err     error
}

// Prepare renders the SELECT clause.
func (s *Selector) Prepare() (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return "SELECT " + strings.Join(s.columns, ", "), append([]any(nil), s.params...), nil
}

// From names the table the selection reads from.
func (s *Selector) From(t *Table) *From {
	return &From{sel: s, table: t}
}

// From is a SELECT chain with its source table set.
type From struct {
	sel   *Selector
	table *Table
}

// Prepare renders the chain up to and including the FROM clause.
func (f *From) Prepare() (string, []any, error) {
	sql, params, err := f.sel.Prepare()
	if err != nil {
		return "", nil, err
	}
	return sql + " FROM " + f.table.name, params, nil
}

// Join starts an inner join against t. The returned Join renders only
// after On supplies its condition.
func (f *From) Join(t *Table) *Join {
	return &Join{pred: f, table: t, kw: "JOIN"}
}

// LeftJoin starts a left outer join against t.
func (f *From) LeftJoin(t *Table) *Join {
	return &Join{pred: f, table: t, kw: "LEFT JOIN"}
}

// RightJoin starts a right outer join against t.
func (f *From) RightJoin(t *Table) *Join {
	return &Join{pred: f, table: t, kw: "RIGHT JOIN"}
}

// Where filters the selection by p.
func (f *From) Where(p Predicate) *Where {
	return newWhere(f, p)
}

// OrderBy sorts the selection by the given columns.
func (f *From) OrderBy(columns ...*Column) *OrderBy {
	return &OrderBy{pred: f, columns: columns}
}

// Limit caps the number of returned rows.
func (f *From) Limit(n int) *Limit {
	return &Limit{pred: f, n: n}
}

// Offset skips the first n rows.
func (f *From) Offset(n int) *Offset {
	return &Offset{pred: f, n: n}
}

// Join is a join whose condition has not been supplied yet. It exposes
// only On; preparing it directly reports a missing join condition.
type Join struct {
	pred  QueryBuilder
	table *Table
	kw    string
}

// Prepare always fails, since a join without a condition is incomplete.
func (j *Join) Prepare() (string, []any, error) {
	return "", nil, NewJoinConditionError(j.table.Name(), j.kw)
}

// On supplies the join condition and returns the continued chain.
func (j *Join) On(p Predicate) *On {
	return &On{join: j, cond: p}
}

// On is a completed join clause.
type On struct {
	join *Join
	cond Predicate
}

// Prepare renders the chain up to and including this join.
func (o *On) Prepare() (string, []any, error) {
	sql, params, err := o.join.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	condSQL, condParams, err := o.cond.Prepare()
	if err != nil {
		return "", nil, err
	}
	sql += " " + o.join.kw + " " + o.join.table.name + " ON " + condSQL
	return sql, append(params, condParams...), nil
}

// Join starts a further inner join against t.
func (o *On) Join(t *Table) *Join {
	return &Join{pred: o, table: t, kw: "JOIN"}
}

// LeftJoin starts a further left outer join against t.
func (o *On) LeftJoin(t *Table) *Join {
	return &Join{pred: o, table: t, kw: "LEFT JOIN"}
}

// RightJoin starts a further right outer join against t.
func (o *On) RightJoin(t *Table) *Join {
	return &Join{pred: o, table: t, kw: "RIGHT JOIN"}
}

// Where filters the joined selection by p.
func (o *On) Where(p Predicate) *Where {
	return newWhere(o, p)
}

// OrderBy sorts the joined selection by the given columns.
func (o *On) OrderBy(columns ...*Column) *OrderBy {
	return &OrderBy{pred: o, columns: columns}
}

// Limit caps the number of returned rows.
func (o *On) Limit(n int) *Limit {
	return &Limit{pred: o, n: n}
}

// Offset skips the first n rows.
func (o *On) Offset(n int) *Offset {
	return &Offset{pred: o, n: n}
}

// Where is a rendered WHERE clause. And, Or, AndNot and OrNot derive a
// new Where composing the current condition with a further predicate;
// the receiver is never mutated.
type Where struct {
	pred QueryBuilder
	cond Predicate
}

// newWhere wraps an initial composite condition in parentheses so that
// later conjunctions cannot rebind its operators.
func newWhere(pred QueryBuilder, cond Predicate) *Where {
	if _, ok := cond.(*LogicGate); ok {
		cond = &paren{node: cond}
	}
	return &Where{pred: pred, cond: cond}
}

// Prepare renders the chain up to and including the WHERE clause.
func (w *Where) Prepare() (string, []any, error) {
	sql, params, err := w.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	condSQL, condParams, err := w.cond.Prepare()
	if err != nil {
		return "", nil, err
	}
	return sql + " WHERE " + condSQL, append(params, condParams...), nil
}

// And narrows the condition with p.
func (w *Where) And(p Predicate) *Where {
	return &Where{pred: w.pred, cond: &LogicGate{pred: w.cond, op: "AND", operand: p}}
}

// Or widens the condition with p.
func (w *Where) Or(p Predicate) *Where {
	return &Where{pred: w.pred, cond: &LogicGate{pred: w.cond, op: "OR", operand: p}}
}

// AndNot narrows the condition with the negation of p.
func (w *Where) AndNot(p Predicate) *Where {
	return &Where{pred: w.pred, cond: &LogicGate{pred: w.cond, op: "AND NOT", operand: p}}
}

// OrNot widens the condition with the negation of p.
func (w *Where) OrNot(p Predicate) *Where {
	return &Where{pred: w.pred, cond: &LogicGate{pred: w.cond, op: "OR NOT", operand: p}}
}

// OrderBy sorts the filtered rows by the given columns.
func (w *Where) OrderBy(columns ...*Column) *OrderBy {
	return &OrderBy{pred: w, columns: columns}
}

// Limit caps the number of returned rows.
func (w *Where) Limit(n int) *Limit {
	return &Limit{pred: w, n: n}
}

// Offset skips the first n rows.
func (w *Where) Offset(n int) *Offset {
	return &Offset{pred: w, n: n}
}

// OrderBy is a rendered ORDER BY clause. Every column carries an
// explicit direction, ASC unless the column was derived with Desc.
type OrderBy struct {
	pred    QueryBuilder
	columns []*Column
}

// Prepare renders the chain up to and including the ORDER BY clause.
func (ob *OrderBy) Prepare() (string, []any, error) {
	sql, params, err := ob.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	terms := make([]string, 0, len(ob.columns))
	for _, c := range ob.columns {
		dir := " ASC"
		if c.descending {
			dir = " DESC"
		}
		terms = append(terms, c.String()+dir)
	}
	return sql + " ORDER BY " + strings.Join(terms, ", "), params, nil
}

// Limit caps the number of returned rows.
func (ob *OrderBy) Limit(n int) *Limit {
	return &Limit{pred: ob, n: n}
}

// Offset skips the first n rows.
func (ob *OrderBy) Offset(n int) *Offset {
	return &Offset{pred: ob, n: n}
}

// Limit is a rendered LIMIT clause. The count is inlined, not bound as
// a parameter, and passes through unchecked.
type Limit struct {
	pred QueryBuilder
	n    int
}

// Prepare renders the chain up to and including the LIMIT clause.
func (l *Limit) Prepare() (string, []any, error) {
	sql, params, err := l.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	return sql + " LIMIT " + strconv.Itoa(l.n), params, nil
}

// Offset skips the first n rows.
func (l *Limit) Offset(n int) *Offset {
	return &Offset{pred: l, n: n}
}

// Offset is a rendered OFFSET clause. The count is inlined, not bound
// as a parameter, and passes through unchecked.
type Offset struct {
	pred QueryBuilder
	n    int
}

// Prepare renders the chain up to and including the OFFSET clause.
func (of *Offset) Prepare() (string, []any, error) {
	sql, params, err := of.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	return sql + " OFFSET " + strconv.Itoa(of.n), params, nil
}

// Limit caps the number of returned rows.
func (of *Offset) Limit(n int) *Limit {
	return &Limit{pred: of, n: n}
}

// Assignment pairs a column with the value written to it. Column is
// either a *Column of the statement's table or the bare string name of
// one; Value is a driver-bindable value or a QueryBuilder rendered as a
// parenthesized subquery.
type Assignment struct {
	Column any
	Value  any
}

// Assign builds an Assignment for InsertBuilder.Values and
// UpdateBuilder.Set.
func Assign(column, value any) Assignment {
	return Assignment{Column: column, Value: value}
}

// InsertBuilder is the head of an INSERT chain. Values completes the
// statement.
type InsertBuilder struct {
	table *Table
}

// Prepare renders the INSERT INTO head on its own.
func (i *InsertBuilder) Prepare() (string, []any, error) {
	return "INSERT INTO " + i.table.name, nil, nil
}

// Values supplies the inserted column values and returns the completed
// statement.
func (i *InsertBuilder) Values(assignments ...Assignment) *Values {
	return &Values{insert: i, assignments: assignments}
}

// Values is a completed INSERT statement.
type Values struct {
	insert      *InsertBuilder
	assignments []Assignment
}

// Prepare renders the INSERT statement. Columns appear in assignment
// order; QueryBuilder values render as parenthesized subqueries with
// their parameters spliced in place.
func (v *Values) Prepare() (string, []any, error) {
	sql, params, err := v.insert.Prepare()
	if err != nil {
		return "", nil, err
	}
	var (
		t       = v.insert.table
		cols    = make([]string, 0, len(v.assignments))
		holders = make([]string, 0, len(v.assignments))
	)
	for _, a := range v.assignments {
		name, err := t.columnName(a.Column)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, pq.QuoteIdentifier(name))
		if qb, ok := a.Value.(QueryBuilder); ok {
			sub, subParams, err := qb.Prepare()
			if err != nil {
				return "", nil, err
			}
			holders = append(holders, "("+sub+")")
			params = append(params, subParams...)
			continue
		}
		holders = append(holders, "?")
		params = append(params, a.Value)
	}
	sql += " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(holders, ", ") + ")"
	return sql, params, nil
}

// UpdateBuilder is the head of an UPDATE chain. Set completes the
// statement.
type UpdateBuilder struct {
	table *Table
}

// Prepare renders the UPDATE head on its own.
func (u *UpdateBuilder) Prepare() (string, []any, error) {
	return "UPDATE " + u.table.name, nil, nil
}

// Set supplies the updated column values and returns the continued
// chain.
func (u *UpdateBuilder) Set(assignments ...Assignment) *Set {
	return &Set{update: u, assignments: assignments}
}

// Set is a rendered UPDATE ... SET clause.
type Set struct {
	update      *UpdateBuilder
	assignments []Assignment
}

// Prepare renders the UPDATE statement. Assignments appear in the given
// order; QueryBuilder values render as parenthesized subqueries with
// their parameters spliced in place.
func (s *Set) Prepare() (string, []any, error) {
	sql, params, err := s.update.Prepare()
	if err != nil {
		return "", nil, err
	}
	t := s.update.table
	terms := make([]string, 0, len(s.assignments))
	for _, a := range s.assignments {
		name, err := t.columnName(a.Column)
		if err != nil {
			return "", nil, err
		}
		if qb, ok := a.Value.(QueryBuilder); ok {
			sub, subParams, err := qb.Prepare()
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, pq.QuoteIdentifier(name)+" = ("+sub+")")
			params = append(params, subParams...)
			continue
		}
		terms = append(terms, pq.QuoteIdentifier(name)+" = ?")
		params = append(params, a.Value)
	}
	return sql + " SET " + strings.Join(terms, ", "), params, nil
}

// Where filters the rows the update applies to.
func (s *Set) Where(p Predicate) *Where {
	return newWhere(s, p)
}

// DeleteBuilder is the head of a DELETE chain. Prepared bare it deletes
// every row of the table.
type DeleteBuilder struct {
	table *Table
}

// Prepare renders the DELETE statement.
func (d *DeleteBuilder) Prepare() (string, []any, error) {
	return "DELETE FROM " + d.table.name, nil, nil
}

// Where filters the rows the delete applies to.
func (d *DeleteBuilder) Where(p Predicate) *Where {
	return newWhere(d, p)
}

var (
	_ QueryBuilder = (*Selector)(nil)
	_ QueryBuilder = (*From)(nil)
	_ QueryBuilder = (*Join)(nil)
	_ QueryBuilder = (*On)(nil)
	_ QueryBuilder = (*Where)(nil)
	_ QueryBuilder = (*OrderBy)(nil)
	_ QueryBuilder = (*Limit)(nil)
	_ QueryBuilder = (*Offset)(nil)
	_ QueryBuilder = (*InsertBuilder)(nil)
	_ QueryBuilder = (*Values)(nil)
	_ QueryBuilder = (*UpdateBuilder)(nil)
	_ QueryBuilder = (*Set)(nil)
	_ QueryBuilder = (*DeleteBuilder)(nil)
)
