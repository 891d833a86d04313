// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders the markdown, man and tldr pages for csvdiff from
// the flags of the root command and the examples in examples.yaml.
package main

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/csvdiff/internal/command"
	"github.com/tfctl/csvdiff/internal/meta"
)

//go:embed examples.yaml templates/*.tmpl
var assets embed.FS

type Extras struct {
	Examples []Example `yaml:"examples"`
	Notes    []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Extras
	Name        string
	Short       string
	Usage       string
	Description string
	Flags       []Flag
	Date        string
	Version     string
}

type Outputs struct {
	Template string
	Folder   string
	Suffix   string
}

var outputs = []Outputs{
	{Template: "templates/csvdiff.md.tmpl", Folder: "commands", Suffix: ".md"},
	{Template: "templates/csvdiff.man.tmpl", Folder: "man/share/man1", Suffix: ".1"},
	{Template: "templates/csvdiff.tldr.tmpl", Folder: "tldr", Suffix: ".md"},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}

	data, err := assets.ReadFile("examples.yaml")
	if err != nil {
		panic(err)
	}
	var extras Extras
	if err := yaml.Unmarshal(data, &extras); err != nil {
		panic(err)
	}

	root := command.NewRootCommand(meta.Meta{})
	metadata := TemplateData{
		Extras:      extras,
		Name:        root.Name,
		Short:       root.Usage,
		Usage:       root.UsageText,
		Description: root.Description,
		Flags:       collectFlags(root.Flags),
		Date:        time.Now().Format("January 2, 2006"),
		Version:     getVersion(),
	}

	for _, o := range outputs {
		path := filepath.Join(os.Args[1], o.Folder, root.Name+o.Suffix)
		fmt.Println("Generating", path)
		if err := render(o.Template, path, metadata); err != nil {
			panic(err)
		}
	}
}

// render executes the embedded template tmpl into path.
func render(tmpl string, path string, data TemplateData) error {
	t, err := template.ParseFS(assets, tmpl)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644) //nolint:gosec
}

// collectFlags describes every visible flag, sorted by name.
func collectFlags(flags []cli.Flag) []Flag {
	//nolint:prealloc
	var result []Flag
	for _, f := range flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}

		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			if df.TakesValue() {
				flag.Syntax += " value"
				flag.Default = df.GetDefaultText()
				if flag.Default == "" && df.GetValue() != `""` {
					flag.Default = df.GetValue()
				}
			}
			flag.Env = strings.Join(df.GetEnvVars(), ", ")
		}
		result = append(result, flag)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
