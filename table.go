package pgqb

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/syssam/pgqb/internal/words"
)

// Table is an ordered, named collection of columns. Its SQL identifier is
// derived from the declared name by snake-casing and quoting, so
// NewTable("UserProfile", ...) renders as "user_profile".
type Table struct {
	name    string
	columns []*Column // declaration order
	index   map[string]*Column
}

// NewTable binds the given columns to a new table descriptor. Binding is
// write-once and happens at declaration time; passing a column that
// already belongs to a table, or two columns sharing a name, panics.
func NewTable(declaredName string, columns ...*Column) *Table {
	t := &Table{
		name:    pq.QuoteIdentifier(words.Snake(declaredName)),
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]*Column, len(columns)),
	}
	for _, c := range columns {
		if c.table != "" {
			panic(fmt.Sprintf("pgqb: column %q already bound to table %s", c.name, c.table))
		}
		if _, ok := t.index[c.name]; ok {
			panic(fmt.Sprintf("pgqb: duplicate column %q in table %s", c.name, t.name))
		}
		c.table = t.name
		t.columns = append(t.columns, c)
		t.index[c.name] = c
	}
	return t
}

// Name returns the table's quoted SQL identifier.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the table's columns in declaration order.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// Column returns the column declared under the given name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// columnName resolves an assignment's column reference to its bare name.
func (t *Table) columnName(ref any) (string, error) {
	switch c := ref.(type) {
	case *Column:
		return c.name, nil
	case string:
		if col, ok := t.index[c]; ok {
			return col.name, nil
		}
		return "", fmt.Errorf("pgqb: table %s has no column %q", t.name, c)
	default:
		return "", fmt.Errorf("pgqb: invalid column reference of type %T", ref)
	}
}

// CreateTable renders the CREATE TABLE IF NOT EXISTS statement for the
// table, followed by one CREATE INDEX statement per indexed column.
// Column definitions, the composite PRIMARY KEY, FOREIGN KEY groups and
// index statements all follow declaration order, so the output is
// byte-identical across calls.
func (t *Table) CreateTable() (string, error) {
	var (
		defs      []string
		primaries []string
		indexes   []string
		fkTables  []string // referenced tables in order of first appearance
		fkPairs   = make(map[string][][2]string)
	)
	for _, c := range t.columns {
		def, err := c.ddl()
		if err != nil {
			return "", fmt.Errorf("pgqb: create table %s: %w", t.name, err)
		}
		defs = append(defs, def)
		if fk := c.foreignKey; fk != nil {
			if _, ok := fkPairs[fk.table]; !ok {
				fkTables = append(fkTables, fk.table)
			}
			fkPairs[fk.table] = append(fkPairs[fk.table], [2]string{c.name, fk.name})
		}
		if c.indexed {
			indexes = append(indexes, fmt.Sprintf("CREATE INDEX ON %s (%s);", t.name, c.name))
		}
		if c.primary {
			primaries = append(primaries, c.name)
		}
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + t.name + " (\n")
	if len(defs) > 0 {
		b.WriteString("  " + strings.Join(defs, ",\n  "))
	}
	if len(primaries) > 0 {
		b.WriteString(",\n  PRIMARY KEY (" + strings.Join(primaries, ", ") + ")")
	}
	for _, ref := range fkTables {
		own := make([]string, 0, len(fkPairs[ref]))
		theirs := make([]string, 0, len(fkPairs[ref]))
		for _, pair := range fkPairs[ref] {
			own = append(own, pair[0])
			theirs = append(theirs, pair[1])
		}
		b.WriteString(",\n  FOREIGN KEY (" + strings.Join(own, ", ") + ") REFERENCES " + ref + " (" + strings.Join(theirs, ", ") + ")")
	}
	b.WriteString("\n);")
	for _, idx := range indexes {
		b.WriteString("\n" + idx)
	}
	return b.String(), nil
}
