package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Schema describes a set of enumerated types and tables loaded from a
// YAML file.
type Schema struct {
	Package string   `yaml:"package"`
	Enums   []*Enum  `yaml:"enums"`
	Tables  []*Table `yaml:"tables"`

	checksum string
}

// Enum describes a PostgreSQL enumerated type.
type Enum struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Table describes one table declaration.
type Table struct {
	Name    string    `yaml:"name"`
	Columns []*Column `yaml:"columns"`
}

// Column describes one column declaration. Type names the SQL type
// keyword; Size, Precision, Scale, Fields and WithTimeZone parameterize
// the kinds that take them. Enum and References replace Type for enum
// and foreign key columns. Default is a plain value quoted into a SQL
// literal; DefaultExpr is a raw SQL expression such as now().
type Column struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Size         int    `yaml:"size"`
	Precision    int    `yaml:"precision"`
	Scale        int    `yaml:"scale"`
	Fields       string `yaml:"fields"`
	WithTimeZone bool   `yaml:"with_time_zone"`
	Enum         string `yaml:"enum"`
	Primary      bool   `yaml:"primary"`
	Unique       bool   `yaml:"unique"`
	Nullable     bool   `yaml:"nullable"`
	Indexed      bool   `yaml:"indexed"`
	Default      any    `yaml:"default"`
	DefaultExpr  string `yaml:"default_expr"`
	Check        string `yaml:"check"`
	References   string `yaml:"references"`
}

// Load reads, decodes and validates a schema description from path.
func Load(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSchemaError("", "", "reading schema file", err)
	}
	return Parse(buf)
}

// Parse decodes and validates a schema description.
func Parse(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(buf, s); err != nil {
		return nil, NewSchemaError("", "", "decoding schema file", err)
	}
	if s.Package == "" {
		s.Package = "tables"
	}
	sum := sha256.Sum256(buf)
	s.checksum = hex.EncodeToString(sum[:])
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Checksum returns the hex SHA-256 of the schema file contents.
func (s *Schema) Checksum() string {
	return s.checksum
}

// Validate checks the schema for declaration errors. Parse and Load call
// it on every schema they return.
func (s *Schema) Validate() error {
	if len(s.Tables) == 0 {
		return NewSchemaError("", "", "no tables declared", nil)
	}
	enums := make(map[string]*Enum, len(s.Enums))
	for _, e := range s.Enums {
		if e.Name == "" {
			return NewSchemaError("", "", "enum without a name", nil)
		}
		if len(e.Values) == 0 {
			return NewSchemaError("", "", fmt.Sprintf("enum %q has no values", e.Name), nil)
		}
		if _, ok := enums[e.Name]; ok {
			return NewSchemaError("", "", fmt.Sprintf("duplicate enum %q", e.Name), nil)
		}
		enums[e.Name] = e
	}
	tables := make(map[string]*Table, len(s.Tables))
	for _, t := range s.Tables {
		if t.Name == "" {
			return NewSchemaError("", "", "table without a name", nil)
		}
		// The registry file is named after the package.
		if t.Name == s.Package {
			return NewSchemaError(t.Name, "", "table name collides with the output package name", nil)
		}
		if _, ok := tables[t.Name]; ok {
			return NewSchemaError(t.Name, "", "duplicate table", nil)
		}
		tables[t.Name] = t
		if len(t.Columns) == 0 {
			return NewSchemaError(t.Name, "", "no columns declared", nil)
		}
		cols := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if c.Name == "" {
				return NewSchemaError(t.Name, "", "column without a name", nil)
			}
			if cols[c.Name] {
				return NewSchemaError(t.Name, c.Name, "duplicate column", nil)
			}
			cols[c.Name] = true
			if err := validateColumn(t, c, enums); err != nil {
				return err
			}
		}
	}
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.References == "" {
				continue
			}
			refTable, refColumn, ok := strings.Cut(c.References, ".")
			if !ok {
				return NewSchemaError(t.Name, c.Name, fmt.Sprintf("reference %q is not in table.column form", c.References), nil)
			}
			target, ok := tables[refTable]
			if !ok {
				return NewSchemaError(t.Name, c.Name, fmt.Sprintf("reference to unknown table %q", refTable), nil)
			}
			if target.column(refColumn) == nil {
				return NewSchemaError(t.Name, c.Name, fmt.Sprintf("reference to unknown column %q of table %q", refColumn, refTable), nil)
			}
		}
	}
	return nil
}

func validateColumn(t *Table, c *Column, enums map[string]*Enum) error {
	if c.Enum != "" && c.Type != "" {
		return NewSchemaError(t.Name, c.Name, "column declares both a type and an enum", nil)
	}
	if c.References != "" && (c.Type != "" || c.Enum != "") {
		return NewSchemaError(t.Name, c.Name, "reference columns inherit the referenced column's type", nil)
	}
	if c.Type == "" && c.Enum == "" && c.References == "" {
		return NewSchemaError(t.Name, c.Name, "column needs a type, an enum, or a reference", nil)
	}
	if c.Enum != "" {
		if _, ok := enums[c.Enum]; !ok {
			return NewSchemaError(t.Name, c.Name, fmt.Sprintf("unknown enum %q", c.Enum), nil)
		}
	}
	if c.Type != "" {
		kw := strings.ToUpper(c.Type)
		if _, ok := simpleTypes[kw]; !ok && !parameterizedType(kw) {
			return NewSchemaError(t.Name, c.Name, fmt.Sprintf("unknown SQL type %q", c.Type), nil)
		}
		if c.Scale != 0 && c.Precision == 0 {
			return NewSchemaError(t.Name, c.Name, "scale requires a precision", nil)
		}
	}
	if c.Default != nil {
		if c.DefaultExpr != "" {
			return NewSchemaError(t.Name, c.Name, "column declares both a default value and a default expression", nil)
		}
		switch c.Default.(type) {
		case string, bool, int, int64, uint64, float64:
		default:
			return NewSchemaError(t.Name, c.Name, fmt.Sprintf("default value %v must be a string, number, or boolean", c.Default), nil)
		}
	}
	return nil
}

func (s *Schema) table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (s *Schema) enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (t *Table) column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var titleCaser = cases.Title(language.English)

// initialisms maps name fragments to their conventional Go form.
var initialisms = map[string]string{
	"api":  "API",
	"db":   "DB",
	"http": "HTTP",
	"id":   "ID",
	"ip":   "IP",
	"json": "JSON",
	"sql":  "SQL",
	"url":  "URL",
	"uuid": "UUID",
}

// goIdent derives an exported Go identifier from a snake_case name.
func goIdent(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if up, ok := initialisms[strings.ToLower(part)]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(titleCaser.String(part))
	}
	return b.String()
}

// GoName returns the exported identifier of the generated table variable.
func (t *Table) GoName() string {
	return goIdent(t.Name)
}

// FileName returns the name of the generated file for the table.
func (t *Table) FileName() string {
	return strings.ToLower(t.Name) + ".go"
}

// GoName returns the exported identifier of the generated enum variable.
func (e *Enum) GoName() string {
	return goIdent(e.Name) + "Enum"
}

// VarName returns the exported identifier of the generated column
// variable within table t.
func (c *Column) VarName(t *Table) string {
	return t.GoName() + goIdent(c.Name)
}
