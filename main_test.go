// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/version"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "only program",
			args:     []string{"csvdiff"},
			expected: []string{"csvdiff"},
		},
		{
			name:     "no duplicates",
			args:     []string{"csvdiff", "--output", "json", "--stats", "a.csv", "b.csv"},
			expected: []string{"csvdiff", "--output", "json", "--stats", "a.csv", "b.csv"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"csvdiff", "--output", "json", "--stats", "--output", "text", "a.csv", "b.csv"},
			expected: []string{"csvdiff", "--stats", "--output", "text", "a.csv", "b.csv"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"csvdiff", "--stats", "-u", "--stats", "a.csv", "b.csv"},
			expected: []string{"csvdiff", "-u", "--stats", "a.csv", "b.csv"},
		},
		{
			name:     "boolean flag does not swallow a positional",
			args:     []string{"csvdiff", "--stats", "a.csv", "--stats", "b.csv"},
			expected: []string{"csvdiff", "a.csv", "--stats", "b.csv"},
		},
		{
			name:     "equals syntax",
			args:     []string{"csvdiff", "--cutoff=0.5", "--cutoff", "0.9", "a.csv", "b.csv"},
			expected: []string{"csvdiff", "--cutoff", "0.9", "a.csv", "b.csv"},
		},
		{
			name:     "stdin is positional",
			args:     []string{"csvdiff", "-", "b.csv", "-o", "yaml", "-o", "json"},
			expected: []string{"csvdiff", "-", "b.csv", "-o", "json"},
		},
		{
			name:     "everything after -- is kept",
			args:     []string{"csvdiff", "-u", "--", "-u", "-u"},
			expected: []string{"csvdiff", "-u", "--", "-u", "-u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		entries   []string
		expected  []string
	}{
		{
			name:      "no entries",
			args:      []string{"csvdiff", "a.csv", "b.csv"},
			insertIdx: 1,
			expected:  []string{"csvdiff", "a.csv", "b.csv"},
		},
		{
			name:      "multi-word entries split",
			args:      []string{"csvdiff", "a.csv", "b.csv"},
			insertIdx: 1,
			entries:   []string{"--output yaml", "--stats"},
			expected:  []string{"csvdiff", "--output", "yaml", "--stats", "a.csv", "b.csv"},
		},
		{
			name:      "insert at end",
			args:      []string{"csvdiff", "a.csv", "b.csv"},
			insertIdx: 3,
			entries:   []string{"-u"},
			expected:  []string{"csvdiff", "a.csv", "b.csv", "-u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.entries, tt.insertIdx))
		})
	}
}

func useConfig(t *testing.T, body string) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "csvdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o600))
	t.Setenv("CSVDIFF_CFG_FILE", cfg)
	t.Setenv("CSVDIFF_COLOR", "")
	os.Unsetenv("CSVDIFF_COLOR")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestProcessSetOnly(t *testing.T) {
	useConfig(t, "diff:\n  sets:\n    review:\n      - --unchanged\n      - --output json\n")
	config.Config.Namespace = "diff"

	args := []string{"csvdiff", "@review", "a.csv", "b.csv"}
	got := processSetOnly(args)
	assert.Equal(t, []string{"csvdiff", "--unchanged", "--output", "json", "a.csv", "b.csv"}, got)
	assert.Equal(t, "@review", args[1], "input args are not modified")

	got = processSetOnly([]string{"csvdiff", "a.csv", "@missing", "b.csv"})
	assert.Equal(t, []string{"csvdiff", "a.csv", "b.csv"}, got)

	got = processSetOnly([]string{"csvdiff", "--", "@review"})
	assert.Equal(t, []string{"csvdiff", "--", "@review"}, got)
}

func TestRealMain(t *testing.T) {
	useConfig(t, "diff:\n  sets:\n    full:\n      - --unchanged\n")
	old, cur := filepath.Join("testdata", "old.csv"), filepath.Join("testdata", "new.csv")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "version",
			args:       []string{"csvdiff", "--version"},
			wantStdout: version.Version + "\n",
		},
		{
			name:       "diff",
			args:       []string{"csvdiff", "--color=false", old, cur},
			wantStdout: "Schema:\n\nRows:\n- 2,B\n+ 2,C\n",
		},
		{
			name:       "set expansion",
			args:       []string{"csvdiff", "@full", "--color=false", old, cur},
			wantStdout: "Schema:\n  id\n  name\n\nRows:\n  1,A\n- 2,B\n+ 2,C\n",
		},
		{
			name:       "run failure",
			args:       []string{"csvdiff", "--color=false", old, filepath.Join("testdata", "nope.csv")},
			wantCode:   2,
			wantStderr: "failed to open dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := realMain(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, stdout.String())
			}
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestRealMainInitFailure(t *testing.T) {
	useConfig(t, "diff: [unclosed\n")

	var stdout, stderr bytes.Buffer
	code := realMain([]string{"csvdiff", "a.csv", "b.csv"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to load config")
}
