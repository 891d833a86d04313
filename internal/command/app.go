// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/meta"
)

// InitApp loads the config file and builds the root command. A config file
// that exists but can't be read is an init failure; no config file at all is
// fine.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	config.Config.Namespace = ConfigNamespace
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrNoConfig) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debugf("running without config: %v", err)
	}

	return NewRootCommand(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// NewRootCommand builds the csvdiff command around m.
func NewRootCommand(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:      "csvdiff",
		Usage:     "compare two tabular datasets row by row",
		UsageText: "csvdiff [options] OLD NEW\ncsvdiff [options] DIR",
		Description: "OLD and NEW are file paths, - for stdin, s3://bucket/key[?versionId=id]\n" +
			"or postgres://...?table=name[&order=col,...]. With a single directory\n" +
			"argument two of its dataset files are picked interactively.",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewDiffFlags(m.Config.Source),
		Action: diffCommandAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Root().Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Run runs cmd with args after SeparatePositionals.
func Run(ctx context.Context, cmd *cli.Command, args []string) error {
	return cmd.Run(ctx, SeparatePositionals(args))
}

// SeparatePositionals moves positional arguments behind a "--" when one of
// them is "-". The cli parser stops at a lone "-" and drops whatever follows
// it, so "- new.csv" would otherwise lose NEW. Flags keep their order and
// their values.
func SeparatePositionals(args []string) []string {
	if len(args) < 2 {
		return args
	}

	var flags, positionals []string
	stdin := false
	for i := 1; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case a == "-" || !strings.HasPrefix(a, "-"):
			stdin = stdin || a == "-"
			positionals = append(positionals, a)
		default:
			flags = append(flags, a)
			if takesValue(a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}

	if !stdin {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0])
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positionals...)
}

// takesValue reports whether flag token a consumes the next argument.
func takesValue(a string) bool {
	if strings.Contains(a, "=") {
		return false
	}
	if strings.HasPrefix(a, "--") {
		return isValueFlag(a[2:])
	}

	// A short cluster like -uc is all bool flags.
	name := a[1:]
	if len(name) > 1 {
		for _, r := range name {
			if !IsBoolFlag(string(r)) {
				return isValueFlag(name)
			}
		}
		return false
	}
	return isValueFlag(name)
}

func isValueFlag(name string) bool {
	for _, f := range NewDiffFlags("") {
		for _, n := range f.Names() {
			if n == name {
				return !IsBoolFlag(name)
			}
		}
	}
	return false
}
