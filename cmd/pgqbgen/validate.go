package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/pgqb/gen"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a schema file for declaration errors",
	Long:  `Check that a YAML schema decodes and passes every declaration rule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := gen.Load(validateSchema)
		if err != nil {
			return err
		}
		if quiet {
			return nil
		}
		fmt.Printf("Schema is valid. Found %d tables:\n", len(schema.Tables))
		for _, t := range schema.Tables {
			fmt.Printf("  - %s (%d columns)\n", t.Name, len(t.Columns))
		}
		if len(schema.Enums) > 0 {
			fmt.Printf("And %d enumerated types:\n", len(schema.Enums))
			for _, e := range schema.Enums {
				fmt.Printf("  - %s (%d values)\n", e.Name, len(e.Values))
			}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "schema.yaml", "schema file to read")
}
