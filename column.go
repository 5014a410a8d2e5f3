package pgqb

import (
	"fmt"
	"strings"

	"github.com/syssam/pgqb/sqltype"
)

// Column is a typed handle to a single table column. It is declared with
// NewColumn, configured with the fluent constraint setters, and bound to
// its table exactly once by NewTable. Comparison and arithmetic methods
// build Expressions over it.
type Column struct {
	name       string
	table      string // quoted table name, bound by NewTable
	typ        sqltype.Type
	check      string
	defaultVal any
	hasDefault bool
	foreignKey *Column
	indexed    bool
	nullable   bool
	primary    bool
	unique     bool
	descending bool // sort direction carried by Asc/Desc copies
}

// NewColumn returns a column descriptor with the given name. The column
// stays detached until NewTable binds it.
func NewColumn(name string) *Column {
	return &Column{name: name}
}

// Type sets the column's SQL type.
func (c *Column) Type(t sqltype.Type) *Column {
	c.typ = t
	return c
}

// Nullable allows NULL values. Columns render NOT NULL by default.
func (c *Column) Nullable() *Column {
	c.nullable = true
	return c
}

// Unique adds a UNIQUE constraint.
func (c *Column) Unique() *Column {
	c.unique = true
	return c
}

// Primary includes the column in the table's composite PRIMARY KEY.
func (c *Column) Primary() *Column {
	c.primary = true
	return c
}

// Indexed emits a CREATE INDEX statement for the column after the table.
func (c *Column) Indexed() *Column {
	c.indexed = true
	return c
}

// Default sets the column's default literal, rendered verbatim. An empty
// string renders as DEFAULT ''.
func (c *Column) Default(v any) *Column {
	c.defaultVal = v
	c.hasDefault = true
	return c
}

// Check sets a CHECK constraint expression.
func (c *Column) Check(expr string) *Column {
	c.check = expr
	return c
}

// References declares a foreign key to another table's column. The
// referenced column's type takes precedence over the column's own type in
// DDL rendering.
func (c *Column) References(ref *Column) *Column {
	c.foreignKey = ref
	return c
}

// Name returns the bare column name.
func (c *Column) Name() string {
	return c.name
}

// Table returns the quoted name of the owning table, or an empty string
// before the column is bound.
func (c *Column) Table() string {
	return c.table
}

// String returns the qualified reference, "table".name.
func (c *Column) String() string {
	return c.table + "." + c.name
}

// Prepare renders the column as its qualified name with no parameters.
func (c *Column) Prepare() (string, []any, error) {
	return c.String(), nil, nil
}

// As aliases the column in a select list.
func (c *Column) As(alias string) *As {
	return &As{node: c, alias: alias}
}

// Asc returns a detached copy carrying only identity and ascending order,
// for use in OrderBy.
func (c *Column) Asc() *Column {
	return &Column{name: c.name, table: c.table}
}

// Desc returns a detached copy carrying only identity and descending
// order, for use in OrderBy.
func (c *Column) Desc() *Column {
	return &Column{name: c.name, table: c.table, descending: true}
}

// GT returns the comparison c > v.
func (c *Column) GT(v any) *Expression { return newExpression(c, ">", v) }

// GTE returns the comparison c >= v.
func (c *Column) GTE(v any) *Expression { return newExpression(c, ">=", v) }

// LT returns the comparison c < v.
func (c *Column) LT(v any) *Expression { return newExpression(c, "<", v) }

// LTE returns the comparison c <= v.
func (c *Column) LTE(v any) *Expression { return newExpression(c, "<=", v) }

// EQ returns the comparison c = v, coerced to IS when v is nil or a
// boolean.
func (c *Column) EQ(v any) *Expression { return equals(c, v) }

// NEQ returns the comparison c != v, coerced to IS NOT when v is nil or a
// boolean.
func (c *Column) NEQ(v any) *Expression { return notEquals(c, v) }

// Is is equivalent to EQ: IS against nil and booleans, = otherwise.
func (c *Column) Is(v any) *Expression { return equals(c, v) }

// IsNot is equivalent to NEQ: IS NOT against nil and booleans, !=
// otherwise.
func (c *Column) IsNot(v any) *Expression { return notEquals(c, v) }

// Add returns the arithmetic expression c + v.
func (c *Column) Add(v any) *Expression { return newExpression(c, "+", v) }

// Sub returns the arithmetic expression c - v.
func (c *Column) Sub(v any) *Expression { return newExpression(c, "-", v) }

// Mul returns the arithmetic expression c * v.
func (c *Column) Mul(v any) *Expression { return newExpression(c, "*", v) }

// Div returns the arithmetic expression c / v.
func (c *Column) Div(v any) *Expression { return newExpression(c, "/", v) }

// Mod returns the arithmetic expression c % v.
func (c *Column) Mod(v any) *Expression { return newExpression(c, "%", v) }

// ddl renders the column definition fragment for CREATE TABLE: quoted
// name, type, default, nullability, uniqueness and check, in that order.
func (c *Column) ddl() (string, error) {
	typ := c.typ
	if c.foreignKey != nil {
		typ = c.foreignKey.typ
	}
	if typ == nil {
		return "", sqltype.NewConfigurationError("", fmt.Sprintf("column %q has no SQL type", c.name))
	}
	rendered, err := typ.DDL()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(`"` + c.name + `" ` + rendered)
	if c.hasDefault {
		if s, ok := c.defaultVal.(string); ok && s == "" {
			b.WriteString(" DEFAULT ''")
		} else {
			fmt.Fprintf(&b, " DEFAULT %v", c.defaultVal)
		}
	}
	if !c.nullable && !c.primary {
		b.WriteString(" NOT NULL")
	}
	if c.unique {
		b.WriteString(" UNIQUE")
	}
	if c.check != "" {
		b.WriteString(" CHECK (" + c.check + ")")
	}
	return b.String(), nil
}
