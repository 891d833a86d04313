// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/table"
)

// ConfigNamespace is the config file section that flag defaults are read
// from before falling back to top level keys.
const ConfigNamespace = "diff"

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewDiffFlags returns the flags of the root command. When cfgPath names a
// config file, flag defaults are looked up in it under ConfigNamespace first
// and then at the top level.
func NewDiffFlags(cfgPath string) []cli.Flag {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format: text, json or yaml",
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "emphasize changed cells with color",
		Value:   term.IsTerminal(int(os.Stdout.Fd())),
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVDIFF_COLOR"),
		),
	}

	cutoff := &cli.FloatFlag{
		Name:  "cutoff",
		Usage: "fraction of equal cells needed to pair two rows as a modification",
		Value: differ.DefaultCutoff,
		Validator: func(value float64) error {
			return FlagValidators(value, CutoffValidator)
		},
	}

	unchanged := &cli.BoolFlag{
		Name:    "unchanged",
		Aliases: []string{"u"},
		Usage:   "also print equal fields and rows",
	}

	stats := &cli.BoolFlag{
		Name:  "stats",
		Usage: "append a summary line",
	}

	format := &cli.StringFlag{
		Name:  "format",
		Usage: "input format (" + strings.Join(table.Formats, ", ") + "), detected from the extension by default",
		Validator: func(value string) error {
			return FlagValidators(value, FormatValidator)
		},
	}

	jsonPath := &cli.StringFlag{
		Name:  "json-path",
		Usage: "gjson path of the row array in JSON input",
	}

	columns := &cli.StringFlag{
		Name:  "columns",
		Usage: "columns to compare as key[:rename], !key to drop, * for the rest",
		Validator: func(value string) error {
			return FlagValidators(value, ColumnsValidator)
		},
	}

	filter := &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "compare only rows matching these filters, e.g. region=eu,qty>5",
	}

	region := &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region for s3:// datasets",
	}

	profile := &cli.StringFlag{
		Name:  "profile",
		Usage: "AWS shared config profile for s3:// datasets",
	}

	endpoint := &cli.StringFlag{
		Name:  "endpoint",
		Usage: "S3 compatible endpoint URL for s3:// datasets",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVDIFF_S3_ENDPOINT"),
		),
	}

	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, output.Name, &output.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, color.Name, &color.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, cutoff.Name, &cutoff.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, unchanged.Name, &unchanged.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, stats.Name, &stats.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, format.Name, &format.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, jsonPath.Name, &jsonPath.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, columns.Name, &columns.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, filter.Name, &filter.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, region.Name, &region.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, profile.Name, &profile.Sources)
	NameSpacedValueChainFromConfigFile(ConfigNamespace, cfgPath, endpoint.Name, &endpoint.Sources)

	return []cli.Flag{
		color,
		columns,
		cutoff,
		endpoint,
		filter,
		format,
		jsonPath,
		output,
		profile,
		region,
		stats,
		newTLDRFlag(),
		unchanged,
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "csvdiff version info",
			HideDefault: true,
		},
	}
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources for name to chain. Explicit flags and env vars still win.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}

	src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)

	src = yaml.YAML(name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)
}

// IsBoolFlag reports whether name (without dashes) is a flag that takes no
// value argument.
func IsBoolFlag(name string) bool {
	if name == "help" || name == "h" {
		return true
	}
	for _, f := range NewDiffFlags("") {
		if _, ok := f.(*cli.BoolFlag); !ok {
			continue
		}
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
