// Package main provides the CLI entrypoint for classbridge.
//
// classbridge converts C++ class declarations to structurally
// equivalent Java source:
//   - Parses C++ headers and sources into a declaration model
//   - Builds a symbol table and resolves inheritance
//   - Maps lifecycle, dispatch, and operator semantics to Java idioms
//   - Emits one .java file per type, plus a per-construct report
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"classbridge/internal/config"
	"classbridge/internal/diagnostic"
	"classbridge/internal/emit"
	"classbridge/internal/frontend"
	"classbridge/internal/mapper"
	"classbridge/internal/source"
	"classbridge/internal/symtab"
)

func main() {
	app := &cli.App{
		Name:  "classbridge",
		Usage: "Convert C++ class declarations to Java source",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   "classbridge.toml",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (appended to config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for generated Java files (overrides config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent type mappings, 0 = one per CPU (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat best-effort conversions as failures",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print per-construct mapping results",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert C++ sources under a directory and write Java files",
				ArgsUsage: "<input-dir>",
				Action: func(c *cli.Context) error {
					return run(c, true)
				},
			},
			{
				Name:      "check",
				Usage:     "Report conversion diagnostics without writing output",
				ArgsUsage: "<input-dir>",
				Action: func(c *cli.Context) error {
					return run(c, false)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "classbridge:", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies CLI flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}

	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}

	if output := c.String("output"); output != "" {
		cfg.OutputDir = output
	}

	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	if c.Bool("strict") {
		cfg.Mode = config.ModeStrict
	}

	return cfg, cfg.Validate()
}

// run executes the full pipeline. With write false it stops after
// reporting, leaving the filesystem untouched.
func run(c *cli.Context, write bool) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one input directory", 2)
	}

	root := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := frontend.DiscoverFiles(root, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return cli.Exit(fmt.Sprintf("no input files under %s", root), 2)
	}

	units, err := parseAll(files)
	if err != nil {
		return err
	}

	table, diags, err := symtab.Build(units)
	if err != nil {
		// An inheritance cycle poisons every resolution that crosses
		// it; nothing downstream can run.
		return err
	}

	engine := mapper.New(table, mapper.Config{Workers: cfg.Workers})

	plan, err := engine.Map(c.Context)
	if err != nil {
		return err
	}

	diags.Merge(plan.Diagnostics)

	report(&diags, c.Bool("verbose"), plan.Results)

	failed := diags.HasErrors() ||
		(cfg.Mode == config.ModeStrict && len(diags.Warnings) > 0)

	if failed {
		return cli.Exit(summaryLine(&diags, "conversion failed"), 1)
	}

	if write {
		emitted, err := emit.New().Emit(plan.Declarations)
		if err != nil {
			return err
		}

		if err := emit.WriteFiles(emitted, cfg.OutputDir); err != nil {
			return err
		}

		fmt.Printf("wrote %d files to %s\n", len(emitted), cfg.OutputDir)
	}

	fmt.Println(summaryLine(&diags, "conversion succeeded"))

	return nil
}

// parseAll parses every input file into a source unit.
func parseAll(files []string) ([]*source.SourceUnit, error) {
	parser, err := frontend.NewParser()
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	units := make([]*source.SourceUnit, 0, len(files))

	for _, file := range files {
		unit, err := parser.ParseFile(file)
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return units, nil
}

// report prints diagnostics to stderr and, when verbose, the
// per-construct results to stdout.
func report(diags *diagnostic.Diagnostics, verbose bool, results []mapper.Result) {
	for _, d := range diags.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}

	if !verbose {
		return
	}

	for _, r := range results {
		line := fmt.Sprintf("%-12s %-10s %s", r.ConstructKind, r.Outcome, r.Construct)
		if r.Note != "" {
			line += " (" + r.Note + ")"
		}

		fmt.Println(line)
	}
}

// summaryLine renders the closing counts line.
func summaryLine(diags *diagnostic.Diagnostics, verdict string) string {
	return fmt.Sprintf("%s: %d errors, %d warnings, %d notes",
		verdict, len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}
