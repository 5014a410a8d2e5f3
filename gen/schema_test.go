package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeSchema = `package: store
enums:
  - name: order_status
    values: [pending, shipped, delivered]
tables:
  - name: customer
    columns:
      - name: id
        type: uuid
        primary: true
      - name: email
        type: text
        unique: true
  - name: order
    columns:
      - name: id
        type: bigserial
        primary: true
      - name: customer_id
        references: customer.id
      - name: status
        enum: order_status
        default: pending
      - name: total
        type: numeric
        precision: 10
        scale: 2
      - name: note
        type: text
        nullable: true
      - name: created_at
        type: timestamp
        with_time_zone: true
        default_expr: now()
`

func TestParse(t *testing.T) {
	t.Run("decodes a full schema", func(t *testing.T) {
		s, err := Parse([]byte(storeSchema))

		require.NoError(t, err)
		assert.Equal(t, "store", s.Package)
		require.Len(t, s.Enums, 1)
		assert.Equal(t, "order_status", s.Enums[0].Name)
		assert.Equal(t, []string{"pending", "shipped", "delivered"}, s.Enums[0].Values)
		require.Len(t, s.Tables, 2)
		assert.Equal(t, "customer", s.Tables[0].Name)
		require.Len(t, s.Tables[1].Columns, 6)
		assert.Equal(t, "customer.id", s.Tables[1].Columns[1].References)
		assert.Equal(t, "pending", s.Tables[1].Columns[2].Default)
		assert.Equal(t, 10, s.Tables[1].Columns[3].Precision)
		assert.True(t, s.Tables[1].Columns[4].Nullable)
		assert.Equal(t, "now()", s.Tables[1].Columns[5].DefaultExpr)
	})

	t.Run("package defaults to tables", func(t *testing.T) {
		s, err := Parse([]byte("tables:\n  - name: item\n    columns:\n      - name: id\n        type: integer\n"))

		require.NoError(t, err)
		assert.Equal(t, "tables", s.Package)
	})

	t.Run("checksum tracks content", func(t *testing.T) {
		a, err := Parse([]byte(storeSchema))
		require.NoError(t, err)
		b, err := Parse([]byte(storeSchema))
		require.NoError(t, err)
		c, err := Parse([]byte(storeSchema + "  - name: extra\n    columns:\n      - name: id\n        type: integer\n"))
		require.NoError(t, err)

		assert.Len(t, a.Checksum(), 64)
		assert.Equal(t, a.Checksum(), b.Checksum())
		assert.NotEqual(t, a.Checksum(), c.Checksum())
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := Parse([]byte("tables:\n  - name: [unclosed"))

		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("rejects invalid schema", func(t *testing.T) {
		_, err := Parse([]byte("tables:\n  - name: item\n    columns:\n      - name: id\n"))

		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads schema from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		require.NoError(t, os.WriteFile(path, []byte(storeSchema), 0o644))

		s, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "store", s.Package)
		assert.Len(t, s.Tables, 2)
	})

	t.Run("missing file returns schema error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Contains(t, err.Error(), "reading schema file")
	})
}

func TestValidate(t *testing.T) {
	id := func() *Column { return &Column{Name: "id", Type: "integer"} }
	tests := []struct {
		name   string
		schema *Schema
		want   string
	}{
		{
			name: "valid schema",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id()}},
			}},
		},
		{
			name:   "no tables",
			schema: &Schema{},
			want:   "no tables declared",
		},
		{
			name: "enum without name",
			schema: &Schema{
				Enums:  []*Enum{{Values: []string{"a"}}},
				Tables: []*Table{{Name: "item", Columns: []*Column{id()}}},
			},
			want: "enum without a name",
		},
		{
			name: "enum without values",
			schema: &Schema{
				Enums:  []*Enum{{Name: "state"}},
				Tables: []*Table{{Name: "item", Columns: []*Column{id()}}},
			},
			want: `enum "state" has no values`,
		},
		{
			name: "duplicate enum",
			schema: &Schema{
				Enums: []*Enum{
					{Name: "state", Values: []string{"a"}},
					{Name: "state", Values: []string{"b"}},
				},
				Tables: []*Table{{Name: "item", Columns: []*Column{id()}}},
			},
			want: `duplicate enum "state"`,
		},
		{
			name:   "table without name",
			schema: &Schema{Tables: []*Table{{Columns: []*Column{id()}}}},
			want:   "table without a name",
		},
		{
			name: "table name collides with package",
			schema: &Schema{
				Package: "tables",
				Tables:  []*Table{{Name: "tables", Columns: []*Column{id()}}},
			},
			want: "collides with the output package name",
		},
		{
			name: "duplicate table",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id()}},
				{Name: "item", Columns: []*Column{id()}},
			}},
			want: "duplicate table",
		},
		{
			name:   "table without columns",
			schema: &Schema{Tables: []*Table{{Name: "item"}}},
			want:   "no columns declared",
		},
		{
			name: "column without name",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{{Type: "integer"}}},
			}},
			want: "column without a name",
		},
		{
			name: "duplicate column",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id(), id()}},
			}},
			want: "duplicate column",
		},
		{
			name: "type and enum together",
			schema: &Schema{
				Enums: []*Enum{{Name: "state", Values: []string{"a"}}},
				Tables: []*Table{{Name: "item", Columns: []*Column{
					{Name: "kind", Type: "text", Enum: "state"},
				}}},
			},
			want: "both a type and an enum",
		},
		{
			name: "reference with type",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id()}},
				{Name: "line", Columns: []*Column{
					{Name: "item_id", Type: "integer", References: "item.id"},
				}},
			}},
			want: "inherit the referenced column's type",
		},
		{
			name: "column without type enum or reference",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{{Name: "spooky"}}},
			}},
			want: "needs a type, an enum, or a reference",
		},
		{
			name: "unknown enum",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{{Name: "kind", Enum: "color"}}},
			}},
			want: `unknown enum "color"`,
		},
		{
			name: "unknown type",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{{Name: "blob", Type: "blob"}}},
			}},
			want: `unknown SQL type "blob"`,
		},
		{
			name: "scale without precision",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{{Name: "total", Type: "numeric", Scale: 2}}},
			}},
			want: "scale requires a precision",
		},
		{
			name: "default must be scalar",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{
					{Name: "meta", Type: "jsonb", Default: map[string]any{"a": 1}},
				}},
			}},
			want: "must be a string, number, or boolean",
		},
		{
			name: "default value and expression together",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{
					{Name: "created_at", Type: "timestamp", Default: "now", DefaultExpr: "now()"},
				}},
			}},
			want: "both a default value and a default expression",
		},
		{
			name: "reference missing dot",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id()}},
				{Name: "line", Columns: []*Column{{Name: "item_id", References: "item"}}},
			}},
			want: "not in table.column form",
		},
		{
			name: "reference to unknown table",
			schema: &Schema{Tables: []*Table{
				{Name: "line", Columns: []*Column{{Name: "item_id", References: "item.id"}}},
			}},
			want: `reference to unknown table "item"`,
		},
		{
			name: "reference to unknown column",
			schema: &Schema{Tables: []*Table{
				{Name: "item", Columns: []*Column{id()}},
				{Name: "line", Columns: []*Column{{Name: "item_id", References: "item.sku"}}},
			}},
			want: `reference to unknown column "sku"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()

			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsSchemaError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGeneratedNames(t *testing.T) {
	tests := []struct {
		table   string
		column  string
		varName string
	}{
		{"customer", "id", "CustomerID"},
		{"order", "customer_id", "OrderCustomerID"},
		{"http_request_log", "source_ip", "HTTPRequestLogSourceIP"},
		{"api_key", "token_uuid", "APIKeyTokenUUID"},
		{"page", "url", "PageURL"},
		{"event", "payload_json", "EventPayloadJSON"},
	}

	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			table := &Table{Name: tt.table}
			col := &Column{Name: tt.column}
			assert.Equal(t, tt.varName, col.VarName(table))
		})
	}

	t.Run("table file name", func(t *testing.T) {
		assert.Equal(t, "order_item.go", (&Table{Name: "order_item"}).FileName())
	})

	t.Run("enum variable name", func(t *testing.T) {
		assert.Equal(t, "OrderStatusEnum", (&Enum{Name: "order_status"}).GoName())
	})
}

func TestSchemaBuild(t *testing.T) {
	s, err := Parse([]byte(storeSchema))
	require.NoError(t, err)

	tables, enums, err := s.Build()
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Len(t, enums, 1)

	t.Run("declaration order is preserved", func(t *testing.T) {
		assert.Equal(t, `"customer"`, tables[0].Name())
		assert.Equal(t, `"order"`, tables[1].Name())
	})

	t.Run("enum carries its values", func(t *testing.T) {
		assert.Equal(t, "ORDER_STATUS", enums[0].TypeName())
		assert.Equal(t, []string{"pending", "shipped", "delivered"}, enums[0].Values())
		assert.Contains(t, enums[0].CreateType(), "'shipped'")
	})

	t.Run("customer renders DDL", func(t *testing.T) {
		ddl, err := tables[0].CreateTable()
		require.NoError(t, err)
		assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "customer"`)
		assert.Contains(t, ddl, "UUID")
		assert.Contains(t, ddl, "UNIQUE")
	})

	t.Run("order renders foreign key enum and default", func(t *testing.T) {
		ddl, err := tables[1].CreateTable()
		require.NoError(t, err)
		assert.Contains(t, ddl, `REFERENCES "customer"`)
		assert.Contains(t, ddl, "ORDER_STATUS")
		assert.Contains(t, ddl, "DEFAULT 'pending'")
		assert.Contains(t, ddl, "NUMERIC")
		assert.Contains(t, ddl, "TIMESTAMP WITH TIME ZONE DEFAULT now()")
	})

	t.Run("invalid schema fails to build", func(t *testing.T) {
		bad := &Schema{Tables: []*Table{{Name: "item"}}}
		_, _, err := bad.Build()
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})
}
