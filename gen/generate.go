package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Import paths emitted into generated files.
const (
	pgqbPkg    = "github.com/syssam/pgqb"
	sqltypePkg = "github.com/syssam/pgqb/sqltype"
)

// Generator renders a schema into a package of table declarations. Each
// table gets its own file; a registry file named after the package
// collects the enumerated types and the Tables slice.
type Generator struct {
	schema *Schema
	config *Config
}

// NewGenerator returns a Generator for s. The schema's package name is
// the default; options override it.
func NewGenerator(s *Schema, opts ...Option) (*Generator, error) {
	if s == nil {
		return nil, NewConfigError("NewGenerator", nil, "schema cannot be nil")
	}
	c := MustNewConfig()
	if s.Package != "" {
		c.Package = s.Package
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return &Generator{schema: s, config: c}, nil
}

// Run renders the schema into the target directory. When the target
// already holds output generated from an identical schema, Run writes
// nothing and reports skipped, unless the Force option is set.
func (g *Generator) Run(ctx context.Context) (skipped bool, err error) {
	if g.config.Target == "" {
		return false, NewConfigError("WithTarget", "", "target directory must be set")
	}
	for _, t := range g.schema.Tables {
		if strings.ToLower(t.Name) == g.config.Package {
			return false, NewSchemaError(t.Name, "", "table name collides with the output package name", nil)
		}
	}
	if !g.config.Force && g.unchanged() {
		return true, nil
	}
	if err := os.MkdirAll(g.config.Target, 0o755); err != nil {
		return false, NewGenerationError("setup", g.config.Target, "creating target directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Workers)
	for _, t := range g.schema.Tables {
		t := t // per-iteration copy; required while go.mod declares a pre-1.22 language version
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return g.writeTable(t)
		})
	}
	eg.Go(func() error {
		return g.writeRegistry()
	})
	if err := eg.Wait(); err != nil {
		return false, err
	}
	if err := g.writeSnapshot(); err != nil {
		return false, err
	}
	return false, nil
}

func (g *Generator) writeTable(t *Table) error {
	f := jen.NewFile(g.config.Package)
	f.HeaderComment(g.config.Header)
	f.Commentf("Columns of the %q table.", t.Name)
	f.Var().DefsFunc(func(defs *jen.Group) {
		for _, c := range t.Columns {
			defs.Id(c.VarName(t)).Op("=").Add(g.columnExpr(c))
		}
	})
	f.Commentf("%s is the %q table declaration.", t.GoName(), t.Name)
	f.Var().Id(t.GoName()).Op("=").Qual(pgqbPkg, "NewTable").CallFunc(func(args *jen.Group) {
		args.Lit(t.Name)
		for _, c := range t.Columns {
			args.Id(c.VarName(t))
		}
	})
	return g.writeFile(f, t.FileName())
}

func (g *Generator) columnExpr(c *Column) jen.Code {
	stmt := jen.Qual(pgqbPkg, "NewColumn").Call(jen.Lit(c.Name))
	switch {
	case c.Enum != "":
		stmt.Dot("Type").Call(jen.Id(g.schema.enum(c.Enum).GoName()))
	case c.Type != "":
		stmt.Dot("Type").Call(typeExpr(c))
	}
	if c.Primary {
		stmt.Dot("Primary").Call()
	}
	if c.Unique {
		stmt.Dot("Unique").Call()
	}
	if c.Nullable {
		stmt.Dot("Nullable").Call()
	}
	if c.Indexed {
		stmt.Dot("Indexed").Call()
	}
	switch {
	case c.DefaultExpr != "":
		stmt.Dot("Default").Call(jen.Lit(c.DefaultExpr))
	case c.Default != nil:
		stmt.Dot("Default").Call(jen.Lit(defaultLiteral(c.Default)))
	}
	if c.Check != "" {
		stmt.Dot("Check").Call(jen.Lit(c.Check))
	}
	if c.References != "" {
		refTable, refColumn, _ := strings.Cut(c.References, ".")
		target := g.schema.table(refTable)
		stmt.Dot("References").Call(jen.Id(target.column(refColumn).VarName(target)))
	}
	return stmt
}

func typeExpr(c *Column) jen.Code {
	kw := strings.ToUpper(c.Type)
	if st, ok := simpleTypes[kw]; ok {
		return jen.Qual(sqltypePkg, st.ident)
	}
	var name string
	fields := jen.Dict{}
	switch kw {
	case "CHAR":
		name = "Char"
		if c.Size != 0 {
			fields[jen.Id("Size")] = jen.Lit(c.Size)
		}
	case "VARCHAR":
		name = "VarChar"
		if c.Size != 0 {
			fields[jen.Id("Size")] = jen.Lit(c.Size)
		}
	case "NUMERIC":
		name = "Numeric"
		if c.Precision != 0 {
			fields[jen.Id("Precision")] = jen.Lit(c.Precision)
		}
		if c.Scale != 0 {
			fields[jen.Id("Scale")] = jen.Lit(c.Scale)
		}
	case "INTERVAL":
		name = "Interval"
		if c.Fields != "" {
			fields[jen.Id("Fields")] = jen.Lit(c.Fields)
		}
		if c.Precision != 0 {
			fields[jen.Id("Precision")] = jen.Lit(c.Precision)
		}
	case "TIME":
		name = "Time"
		if c.Precision != 0 {
			fields[jen.Id("Precision")] = jen.Lit(c.Precision)
		}
		if c.WithTimeZone {
			fields[jen.Id("WithTimeZone")] = jen.True()
		}
	case "TIMESTAMP":
		name = "Timestamp"
		if c.Precision != 0 {
			fields[jen.Id("Precision")] = jen.Lit(c.Precision)
		}
		if c.WithTimeZone {
			fields[jen.Id("WithTimeZone")] = jen.True()
		}
	}
	return jen.Qual(sqltypePkg, name).Values(fields)
}

func (g *Generator) writeFile(f *jen.File, name string) error {
	out, err := os.Create(filepath.Join(g.config.Target, name))
	if err != nil {
		return NewGenerationError("table", name, "creating file", err)
	}
	defer out.Close()
	if err := f.Render(out); err != nil {
		return NewGenerationError("table", name, "rendering file", err)
	}
	return nil
}

const registryTemplate = `// {{ .Header }}

package {{ .Package }}

import (
	"github.com/syssam/pgqb"
	"github.com/syssam/pgqb/sqltype"
)
{{ range .Enums }}
// {{ .GoName }} is the {{ printf "%q" .Name }} enumerated type.
var {{ .GoName }} = sqltype.NewEnum({{ printf "%q" .Name }}{{ range .Values }}, {{ printf "%q" . }}{{ end }})
{{ end }}
// Tables lists every table in the schema, in declaration order.
var Tables = []*pgqb.Table{
{{- range .Tables }}
	{{ .GoName }},
{{- end }}
}
{{ if .Enums }}
// Enums lists every enumerated type in the schema, in declaration order.
var Enums = []*sqltype.Enum{
{{- range .Enums }}
	{{ .GoName }},
{{- end }}
}
{{ end }}`

var registryTmpl = template.Must(template.New("registry").Parse(registryTemplate))

func (g *Generator) writeRegistry() error {
	name := g.config.Package + ".go"
	var buf bytes.Buffer
	err := registryTmpl.Execute(&buf, struct {
		Header  string
		Package string
		Enums   []*Enum
		Tables  []*Table
	}{g.config.Header, g.config.Package, g.schema.Enums, g.schema.Tables})
	if err != nil {
		return NewGenerationError("registry", name, "executing template", err)
	}
	path := filepath.Join(g.config.Target, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output around to debug template changes.
		_ = os.WriteFile(path+".error", buf.Bytes(), 0o644)
		return NewGenerationError("registry", name, "formatting output", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("registry", name, "writing file", err)
	}
	return nil
}
