package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/pgqb/gen"
)

var (
	generateSchema  string
	generateTarget  string
	generatePackage string
	generateWorkers int
	generateForce   bool
	generateWatch   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the schema as Go table declarations",
	Long:  `Render a YAML schema as a Go package of pgqb table declarations.`,
	Example: `  # Generate into ./tables
  pgqbgen generate --schema schema.yaml --target ./tables

  # Force regeneration even if the schema is unchanged
  pgqbgen generate --schema schema.yaml --target ./tables --force

  # Regenerate on every save of the schema file
  pgqbgen generate --schema schema.yaml --target ./tables --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []gen.Option{gen.WithTarget(generateTarget)}
		if generatePackage != "" {
			opts = append(opts, gen.WithPackage(generatePackage))
		}
		if generateWorkers > 0 {
			opts = append(opts, gen.WithWorkers(generateWorkers))
		}
		if generateForce {
			opts = append(opts, gen.WithForce())
		}
		if generateWatch {
			return runWatch(cmd.Context(), opts)
		}
		return runGenerate(cmd.Context(), opts)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateSchema, "schema", "schema.yaml", "schema file to read")
	f.StringVar(&generateTarget, "target", "tables", "directory generated files are written to")
	f.StringVar(&generatePackage, "package", "", "generated package name (default: the schema's)")
	f.IntVar(&generateWorkers, "workers", 0, "concurrent file renders (default: GOMAXPROCS)")
	f.BoolVar(&generateForce, "force", false, "regenerate even if schema unchanged")
	f.BoolVar(&generateWatch, "watch", false, "regenerate whenever the schema file changes")
}

func runGenerate(ctx context.Context, opts []gen.Option) error {
	schema, err := gen.Load(generateSchema)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(schema, opts...)
	if err != nil {
		return err
	}
	skipped, err := g.Run(ctx)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}
	if skipped {
		fmt.Println("Schema unchanged, generation skipped.")
		fmt.Println("Use --force to regenerate.")
	} else {
		fmt.Printf("Generated %d tables into %s\n", len(schema.Tables), generateTarget)
	}
	return nil
}

func runWatch(ctx context.Context, opts []gen.Option) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if !quiet {
		fmt.Printf("Watching %s for changes...\n", generateSchema)
	}
	err := gen.Watch(ctx, generateSchema, opts...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
