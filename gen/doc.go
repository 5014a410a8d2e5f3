// Package gen generates pgqb table declarations from a YAML schema
// description.
//
// A schema file names a package, optional enumerated types, and tables:
//
//	package: tables
//	enums:
//	  - name: order_status
//	    values: [pending, shipped, delivered]
//	tables:
//	  - name: customer
//	    columns:
//	      - name: id
//	        type: uuid
//	        primary: true
//	      - name: email
//	        type: text
//	        unique: true
//	  - name: order
//	    columns:
//	      - name: id
//	        type: bigserial
//	        primary: true
//	      - name: customer_id
//	        references: customer.id
//	      - name: status
//	        enum: order_status
//	        default: pending
//	      - name: created_at
//	        type: timestamp
//	        with_time_zone: true
//	        default_expr: now()
//
// Default values are plain scalars quoted into SQL literals on the way
// out; default_expr passes a raw expression such as now() through
// untouched.
//
// # Generated Code
//
// Each table becomes one file holding exported column variables and the
// table declaration:
//
//	var (
//	    CustomerID    = pgqb.NewColumn("id").Type(sqltype.UUID).Primary()
//	    CustomerEmail = pgqb.NewColumn("email").Type(sqltype.Text).Unique()
//	)
//
//	var Customer = pgqb.NewTable("customer", CustomerID, CustomerEmail)
//
// A registry file named after the package declares the enumerated types
// and collects every table into a Tables slice.
//
// # Usage
//
// Load a schema and run the generator:
//
//	schema, err := gen.Load("schema.yaml")
//	if err != nil {
//	    return err
//	}
//	g, err := gen.NewGenerator(schema, gen.WithTarget("./tables"))
//	if err != nil {
//	    return err
//	}
//	skipped, err := g.Run(ctx)
//
// Run records a snapshot of the schema checksum in the target directory
// and skips generation when nothing changed. WithForce overrides the
// snapshot; Watch regenerates on every save of the schema file.
//
// Schema.Build constructs the runtime declarations directly, which is
// how the pgqbgen ddl command prints CREATE statements without
// compiling generated code.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: schema declaration errors, matched by ErrInvalidSchema
//   - ConfigError: configuration errors, matched by ErrMissingConfig
//   - GenerationError: rendering and write errors, matched by ErrGenerationFailed
//
// Example:
//
//	if _, err := g.Run(ctx); err != nil {
//	    if gen.IsSchemaError(err) {
//	        // Report the declaration problem to the user.
//	    }
//	    return err
//	}
package gen
