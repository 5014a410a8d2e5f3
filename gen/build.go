package gen

import (
	"strings"

	"github.com/syssam/pgqb"
	"github.com/syssam/pgqb/sqltype"
)

// simpleType pairs the sqltype identifier emitted into generated code
// with the runtime value used by Build.
type simpleType struct {
	ident string
	value sqltype.Type
}

var simpleTypes = map[string]simpleType{
	"BIGINT":           {"BigInt", sqltype.BigInt},
	"BIGSERIAL":        {"BigSerial", sqltype.BigSerial},
	"BIT":              {"Bit", sqltype.Bit},
	"BOOLEAN":          {"Boolean", sqltype.Boolean},
	"BOX":              {"Box", sqltype.Box},
	"BYTEA":            {"Bytea", sqltype.Bytea},
	"CIDR":             {"CIDR", sqltype.CIDR},
	"CIRCLE":           {"Circle", sqltype.Circle},
	"DATE":             {"Date", sqltype.Date},
	"DOUBLE PRECISION": {"Double", sqltype.Double},
	"INET":             {"Inet", sqltype.Inet},
	"INTEGER":          {"Integer", sqltype.Integer},
	"JSON":             {"JSON", sqltype.JSON},
	"JSONB":            {"JSONB", sqltype.JSONB},
	"LINE":             {"Line", sqltype.Line},
	"LSEG":             {"LSeg", sqltype.LSeg},
	"MACADDR":          {"MacAddr", sqltype.MacAddr},
	"MACADDR8":         {"MacAddr8", sqltype.MacAddr8},
	"MONEY":            {"Money", sqltype.Money},
	"PATH":             {"Path", sqltype.Path},
	"PG_LSN":           {"PgLSN", sqltype.PgLSN},
	"PG_SNAPSHOT":      {"PgSnapshot", sqltype.PgSnapshot},
	"POINT":            {"Point", sqltype.Point},
	"POLYGON":          {"Polygon", sqltype.Polygon},
	"REAL":             {"Real", sqltype.Real},
	"SERIAL":           {"Serial", sqltype.Serial},
	"SMALLINT":         {"SmallInt", sqltype.SmallInt},
	"SMALLSERIAL":      {"SmallSerial", sqltype.SmallSerial},
	"TEXT":             {"Text", sqltype.Text},
	"TSQUERY":          {"TSQuery", sqltype.TSQuery},
	"TSVECTOR":         {"TSVector", sqltype.TSVector},
	"UUID":             {"UUID", sqltype.UUID},
	"VARBIT":           {"VarBit", sqltype.VarBit},
	"XML":              {"XML", sqltype.XML},
}

func parameterizedType(kw string) bool {
	switch kw {
	case "CHAR", "VARCHAR", "NUMERIC", "INTERVAL", "TIME", "TIMESTAMP":
		return true
	}
	return false
}

// Build constructs the runtime declarations the schema describes, in
// declaration order. It lets callers render DDL or issue statements
// against a schema file without compiling generated code first.
func (s *Schema) Build() ([]*pgqb.Table, []*sqltype.Enum, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	enums := make([]*sqltype.Enum, len(s.Enums))
	enumsByName := make(map[string]*sqltype.Enum, len(s.Enums))
	for i, e := range s.Enums {
		enums[i] = sqltype.NewEnum(e.Name, e.Values...)
		enumsByName[e.Name] = enums[i]
	}
	columns := make(map[string]*pgqb.Column)
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			col := pgqb.NewColumn(c.Name)
			if c.Enum != "" {
				col.Type(enumsByName[c.Enum])
			} else if c.Type != "" {
				col.Type(columnType(c))
			}
			if c.Primary {
				col.Primary()
			}
			if c.Unique {
				col.Unique()
			}
			if c.Nullable {
				col.Nullable()
			}
			if c.Indexed {
				col.Indexed()
			}
			if c.DefaultExpr != "" {
				col.Default(c.DefaultExpr)
			} else if c.Default != nil {
				col.Default(defaultLiteral(c.Default))
			}
			if c.Check != "" {
				col.Check(c.Check)
			}
			columns[t.Name+"."+c.Name] = col
		}
	}
	// Foreign keys bind after every column exists, so a reference may
	// point at a table declared later in the file.
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.References == "" {
				continue
			}
			columns[t.Name+"."+c.Name].References(columns[c.References])
		}
	}
	tables := make([]*pgqb.Table, len(s.Tables))
	for i, t := range s.Tables {
		cols := make([]*pgqb.Column, len(t.Columns))
		for j, c := range t.Columns {
			cols[j] = columns[t.Name+"."+c.Name]
		}
		tables[i] = pgqb.NewTable(t.Name, cols...)
	}
	return tables, enums, nil
}

// defaultLiteral turns a plain default value into the SQL literal the
// column renders. Strings are quoted; numbers and booleans pass through.
func defaultLiteral(v any) any {
	if s, ok := v.(string); ok {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return v
}

func columnType(c *Column) sqltype.Type {
	kw := strings.ToUpper(c.Type)
	if st, ok := simpleTypes[kw]; ok {
		return st.value
	}
	switch kw {
	case "CHAR":
		return sqltype.Char{Size: c.Size}
	case "VARCHAR":
		return sqltype.VarChar{Size: c.Size}
	case "NUMERIC":
		return sqltype.Numeric{Precision: c.Precision, Scale: c.Scale}
	case "INTERVAL":
		return sqltype.Interval{Fields: c.Fields, Precision: c.Precision}
	case "TIME":
		return sqltype.Time{Precision: c.Precision, WithTimeZone: c.WithTimeZone}
	case "TIMESTAMP":
		return sqltype.Timestamp{Precision: c.Precision, WithTimeZone: c.WithTimeZone}
	}
	return nil
}
