// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/csvdiff/internal/command"
	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args[1:] {
		if a == "--" {
			break
		}
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no arguments are provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// helpRequested reports whether --help or -h appears before any "--".
func helpRequested(args []string) bool {
	for _, a := range args[1:] {
		if a == "--" {
			return false
		}
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// processSetOnly expands the first @name argument into the flags listed
// under sets.name in the config file (diff.sets.name wins).
func processSetOnly(args []string) []string {
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "@") || len(a) == 1 {
			continue
		}

		entries, err := config.GetStringSlice("sets." + a[1:])
		if err != nil {
			log.Warnf("unknown flag set %s: %v", a, err)
		}
		return injectConfigSet(append(args[:i:i], args[i+1:]...), entries, i)
	}
	return args
}

// injectConfigSet splits entries on whitespace and inserts the resulting
// arguments at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag so that
// arguments typed after an expanded set override it. A flag's value travels
// with it. Positional arguments keep their place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string
		tokens []string
	}

	var units []unit
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			units = append(units, unit{tokens: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		u := unit{name: name, tokens: []string{a}}
		if !hasValue && !command.IsBoolFlag(name) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			u.tokens = append(u.tokens, args[i])
		}
		units = append(units, u)
	}

	last := make(map[string]int)
	for k, u := range units {
		if u.name != "" {
			last[u.name] = k
		}
	}

	out := []string{args[0]}
	for k, u := range units {
		if u.name != "" && last[u.name] != k {
			continue
		}
		out = append(out, u.tokens...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := command.Run(ctx, app, args); err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain(args []string, stdout, stderr io.Writer) int {
	log.InitLogger()
	log.Debugf("args captured: args=%v", args)

	if len(args) == 0 {
		args = []string{"csvdiff"}
	}

	if handleVersion(args, stdout) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip argument processing and let the CLI
	// handle it.
	if !helpRequested(args) {
		config.Config.Namespace = command.ConfigNamespace
		args = deduplicateFlags(processSetOnly(args))
		log.Debugf("args after set processing: args=%v", args)
	}

	return initAndRunApp(args, stdout, stderr)
}
