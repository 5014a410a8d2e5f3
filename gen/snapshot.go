package gen

import (
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotFile sits in the target directory and records what the last
// run generated.
const snapshotFile = ".pgqbgen"

type snapshot struct {
	Checksum string    `msgpack:"checksum"`
	Package  string    `msgpack:"package"`
	Tables   []string  `msgpack:"tables"`
	Written  time.Time `msgpack:"written"`
}

func (g *Generator) snapshotPath() string {
	return filepath.Join(g.config.Target, snapshotFile)
}

// unchanged reports whether the target already holds output generated
// from a schema with the same checksum and package name. A missing or
// unreadable snapshot counts as changed.
func (g *Generator) unchanged() bool {
	buf, err := os.ReadFile(g.snapshotPath())
	if err != nil {
		return false
	}
	var snap snapshot
	if err := msgpack.Unmarshal(buf, &snap); err != nil {
		return false
	}
	return snap.Checksum == g.schema.Checksum() && snap.Package == g.config.Package
}

func (g *Generator) writeSnapshot() error {
	names := make([]string, len(g.schema.Tables))
	for i, t := range g.schema.Tables {
		names[i] = t.Name
	}
	buf, err := msgpack.Marshal(snapshot{
		Checksum: g.schema.Checksum(),
		Package:  g.config.Package,
		Tables:   names,
		Written:  time.Now().UTC(),
	})
	if err != nil {
		return NewGenerationError("snapshot", snapshotFile, "encoding snapshot", err)
	}
	if err := os.WriteFile(g.snapshotPath(), buf, 0o644); err != nil {
		return NewGenerationError("snapshot", snapshotFile, "writing snapshot", err)
	}
	return nil
}
