// Package main provides the pgqbgen CLI for working with YAML table
// schemas.
//
// The CLI supports:
//   - generate: render pgqb table declarations as Go source
//   - validate: check a schema file for declaration errors
//   - ddl: print the CREATE statements a schema describes
//
// Usage:
//
//	pgqbgen <command> [flags]
//
// Commands operate on schema files only; none of them need database
// access.
package main

func main() {
	Execute()
}
