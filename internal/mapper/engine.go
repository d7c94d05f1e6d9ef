package mapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"classbridge/internal/diagnostic"
	"classbridge/internal/source"
	"classbridge/internal/symtab"
	"classbridge/internal/target"
)

// Config holds engine configuration.
type Config struct {
	// Workers caps the number of concurrent type mappings.
	// 0 means one per CPU.
	Workers int
}

// Plan is the final output of the mapping phase, consumed by the
// emitter and the CLI report.
type Plan struct {
	// Declarations are the generated target declarations in symbol
	// table registration order (unmappable types are absent).
	Declarations []target.Declaration
	// Results holds one record per construct, grouped by type.
	Results []Result
	// Diagnostics contains all warnings and errors from mapping.
	Diagnostics diagnostic.Diagnostics
}

// Engine maps every type in a frozen symbol table.
type Engine struct {
	table *symtab.Table
	cfg   Config
}

// New creates an Engine over a frozen symbol table.
func New(table *symtab.Table, cfg Config) *Engine {
	return &Engine{table: table, cfg: cfg}
}

// Map runs the per-type mapping across workers. Types have no data
// dependencies on each other beyond read-only table lookups, so each
// worker takes one type at a time; results merge in registration order
// so output is deterministic regardless of scheduling.
func (e *Engine) Map(ctx context.Context) (*Plan, error) {
	decls := e.table.Types()
	reserved := reserveNames(decls)
	outcomes := make([]*typeOutcome, len(decls))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, decl := range decls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcomes[i] = mapTypeAs(e.table, decl, reserved)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("mapping phase: %w", err)
	}

	plan := &Plan{}

	for _, o := range outcomes {
		if o.Decl != nil {
			plan.Declarations = append(plan.Declarations, *o.Decl)
		}

		plan.Results = append(plan.Results, o.Results...)
		plan.Diagnostics.Merge(o.Diags)
	}

	return plan, nil
}

// reservation is the target class name assigned to a type before
// mapping starts, so member names and generated bodies agree with the
// final class name.
type reservation struct {
	simpleName string
	renameNote string
}

// reserveNames walks the table in registration order and assigns every
// type its Java class name. Collisions arise when distinct namespaces
// fold to the same Java package, e.g. "NS" and "ns"; the later
// registration takes a deterministic suffix derived from its source
// qualified name and maps best-effort.
func reserveNames(decls []*source.TypeDeclaration) map[string]reservation {
	taken := make(map[string]bool, len(decls))
	out := make(map[string]reservation, len(decls))

	for _, d := range decls {
		pkg := target.PackageName(d.Name.Namespace)
		res := reservation{simpleName: d.Name.Name}

		key := javaNameKey(pkg, res.simpleName)
		if taken[key] {
			suffix := fmt.Sprintf("%x", xxhash.Sum64String(d.Name.String()))[:8]
			res.simpleName = res.simpleName + "_" + suffix
			res.renameNote = fmt.Sprintf("target name %s collides with another declaration; renamed to %s", key, res.simpleName)
			key = javaNameKey(pkg, res.simpleName)
		}

		taken[key] = true
		out[d.Name.String()] = res
	}

	return out
}

// javaNameKey is the fully qualified Java name used for collision
// detection.
func javaNameKey(pkg, simple string) string {
	if pkg == "" {
		return simple
	}

	return pkg + "." + simple
}
