// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/attrs"
	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/filters"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/meta"
	"github.com/tfctl/csvdiff/internal/output"
	"github.com/tfctl/csvdiff/internal/source"
	"github.com/tfctl/csvdiff/internal/table"
)

const emptySchemaWarning = "no common fields between OLD and NEW; rows were not compared"

// result is everything one comparison produces.
type result struct {
	schema []string
	fields []differ.Line
	rows   []differ.Line
	stats  differ.Stats
}

// diffCommandAction loads both datasets, compares them and writes the result
// to the root command's writer.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing diff for %v", cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd) {
		return nil
	}

	oldSpec, newSpec, err := resolveSpecs(m, cmd.Args().Slice())
	if err != nil {
		return err
	}
	if oldSpec == "" {
		log.Debug("no snapshots picked")
		return nil
	}

	opts := source.Options{
		Format:   table.Format(cmd.String("format")),
		JSONPath: cmd.String("json-path"),
		Region:   cmd.String("region"),
		Profile:  cmd.String("profile"),
		Endpoint: cmd.String("endpoint"),
		Stdin:    m.Stdin,
	}

	oldDS, err := source.Open(ctx, oldSpec, opts)
	if err != nil {
		return err
	}
	newDS, err := source.Open(ctx, newSpec, opts)
	if err != nil {
		return err
	}

	var cols attrs.AttrList
	if err := cols.Set(cmd.String("columns")); err != nil {
		return err
	}
	fs := filters.BuildFilters(cmd.String("filter"))

	if oldDS, err = prepare(oldDS, cols, fs); err != nil {
		return err
	}
	if newDS, err = prepare(newDS, cols, fs); err != nil {
		return err
	}

	res, err := compare(oldDS, newDS, cmd.Float("cutoff"), cmd.Bool("unchanged"))
	if err != nil {
		return err
	}

	stdout, stderr := writers(cmd)
	if len(res.schema) == 0 {
		log.Warnf(emptySchemaWarning)
		fmt.Fprintln(stderr, "warning: "+emptySchemaWarning)
	}

	return emit(cmd, stdout, oldDS.Name, newDS.Name, res)
}

// resolveSpecs returns the OLD and NEW dataset specs. A lone directory
// argument defers to the picker; an empty OLD means the user backed out.
func resolveSpecs(m meta.Meta, args []string) (string, string, error) {
	switch {
	case len(args) == 2:
		if err := source.Check(args...); err != nil {
			return "", "", err
		}
		return args[0], args[1], nil
	case len(args) == 1 && source.IsDir(args[0]):
		return pickSpecs(m, args[0])
	default:
		return "", "", fmt.Errorf("expected OLD and NEW datasets, got %d argument(s)", len(args))
	}
}

func pickSpecs(m meta.Meta, dir string) (string, string, error) {
	snaps, err := source.ListDir(dir)
	if err != nil {
		return "", "", err
	}
	if len(snaps) < 2 {
		return "", "", fmt.Errorf("need at least two dataset files in %s, found %d", dir, len(snaps))
	}

	pick := m.Pick
	if pick == nil {
		pick = differ.SelectSnapshots
	}
	chosen, err := pick(snaps)
	if err != nil {
		return "", "", err
	}
	if len(chosen) != 2 {
		return "", "", nil
	}
	return chosen[0].Path, chosen[1].Path, nil
}

// prepare narrows ds to the selected columns and then to the rows passing
// every filter. Filters therefore name columns as they are compared.
func prepare(ds *table.Dataset, cols attrs.AttrList, fs []filters.Filter) (*table.Dataset, error) {
	ds, err := cols.Apply(ds)
	if err != nil {
		return nil, err
	}
	return filters.FilterDataset(ds, fs)
}

// compare diffs the headers, projects both datasets onto the common schema
// and diffs the rows. An empty schema leaves the rows uncompared.
func compare(a, b *table.Dataset, cutoff float64, unchanged bool) (result, error) {
	res := result{
		schema: table.Schema(a.Fields, b.Fields),
		fields: differ.Fields(a.Fields, b.Fields, unchanged),
	}
	res.stats.Left, res.stats.Right = a.Len(), b.Len()
	log.Debugf("schema: %v", res.schema)

	if len(res.schema) == 0 {
		return res, nil
	}

	ra, err := table.Project(a, res.schema)
	if err != nil {
		return res, err
	}
	rb, err := table.Project(b, res.schema)
	if err != nil {
		return res, err
	}

	res.rows = differ.Rows(ra, rb,
		differ.OptionCutoff(cutoff),
		differ.OptionUnchanged(unchanged),
		differ.OptionSetStats(&res.stats))
	return res, nil
}

func emit(cmd *cli.Command, w io.Writer, oldName, newName string, res result) error {
	switch format := cmd.String("output"); format {
	case "json", "yaml":
		rep := output.Report{
			Old:    oldName,
			New:    newName,
			Schema: res.schema,
			Fields: output.Records(res.fields),
			Rows:   output.Records(res.rows),
		}
		if cmd.Bool("stats") {
			rep.Stats = &res.stats
		}
		return output.WriteReport(w, format, rep)
	default:
		r := output.NewRenderer(w, output.NewTheme(cmd.Bool("color")))
		if err := r.Section("Schema:", res.fields); err != nil {
			return err
		}
		if err := r.Text(""); err != nil {
			return err
		}
		if err := r.Section("Rows:", res.rows); err != nil {
			return err
		}
		if cmd.Bool("stats") {
			if err := r.Text(""); err != nil {
				return err
			}
			return r.Text(output.FormatStats(res.stats))
		}
		return nil
	}
}

// writers returns the root command's output and error writers.
func writers(cmd *cli.Command) (io.Writer, io.Writer) {
	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	if root := cmd.Root(); root != nil {
		if root.Writer != nil {
			stdout = root.Writer
		}
		if root.ErrWriter != nil {
			stderr = root.ErrWriter
		}
	}
	return stdout, stderr
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr csvdiff` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command) bool {
	if !cmd.Bool("tldr") {
		return false
	}
	if _, err := exec.LookPath("tldr"); err == nil {
		stdout, stderr := writers(cmd)
		c := exec.CommandContext(ctx, "tldr", "csvdiff")
		c.Stdout = stdout
		c.Stderr = stderr
		_ = c.Run()
	}
	return true
}
