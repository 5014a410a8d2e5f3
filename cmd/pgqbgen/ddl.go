package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/pgqb/gen"
)

var ddlSchema string

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print the CREATE statements a schema describes",
	Long: `Print the CREATE TYPE and CREATE TABLE statements for every
declaration in a YAML schema, in declaration order.`,
	Example: `  # Pipe the schema's DDL into psql
  pgqbgen ddl --schema schema.yaml | psql "$DATABASE_URL"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := gen.Load(ddlSchema)
		if err != nil {
			return err
		}
		tables, enums, err := schema.Build()
		if err != nil {
			return err
		}
		for _, e := range enums {
			fmt.Println(e.CreateType())
		}
		if len(enums) > 0 {
			fmt.Println()
		}
		for i, t := range tables {
			if i > 0 {
				fmt.Println()
			}
			ddl, err := t.CreateTable()
			if err != nil {
				return err
			}
			fmt.Println(ddl)
		}
		return nil
	},
}

func init() {
	ddlCmd.Flags().StringVar(&ddlSchema, "schema", "schema.yaml", "schema file to read")
}
