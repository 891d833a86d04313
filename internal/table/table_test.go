// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string, opts Options) (*Dataset, error) {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	return Read(f, name, opts)
}

func TestRowEqualAndScore(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Row
		equal bool
		score int
	}{
		{name: "identical", a: Row{"1", "A"}, b: Row{"1", "A"}, equal: true, score: 2},
		{name: "one cell", a: Row{"1", "A"}, b: Row{"1", "B"}, equal: false, score: 1},
		{name: "disjoint", a: Row{"1", "A"}, b: Row{"2", "B"}, equal: false, score: 0},
		{name: "empty", a: Row{}, b: Row{}, equal: true, score: 0},
		{name: "length mismatch", a: Row{"1"}, b: Row{"1", "A"}, equal: false, score: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.score, tt.a.Score(tt.b))
		})
	}
}

func TestRowKeyIsUnambiguous(t *testing.T) {
	assert.NotEqual(t, Row{"a,b"}.Key(), Row{"a", "b"}.Key())
	assert.NotEqual(t, Row{"1:a"}.Key(), Row{"1", "a"}.Key())
	assert.NotEqual(t, Row{""}.Key(), Row{}.Key())
	assert.Equal(t, Row{"x", "y"}.Key(), Row{"x", "y"}.Key())
}

func TestSchema(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{name: "order from b", a: []string{"a", "b", "c"}, b: []string{"c", "a", "d"}, want: []string{"c", "a"}},
		{name: "no overlap", a: []string{"a"}, b: []string{"b"}, want: []string{}},
		{name: "duplicates in b", a: []string{"a"}, b: []string{"a", "a"}, want: []string{"a"}},
		{name: "empty", a: nil, b: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.a, tt.b))
		})
	}
}

func TestProject(t *testing.T) {
	ds := &Dataset{
		Name:    "old.csv",
		Fields:  []string{"id", "name", "color"},
		Records: [][]string{{"1", "A", "red"}, {"2", "B", "blue"}},
	}

	rows, err := Project(ds, []string{"color", "id"})
	require.NoError(t, err)
	assert.Equal(t, []Row{{"red", "1"}, {"blue", "2"}}, rows)

	rows, err = Project(ds, []string{})
	require.NoError(t, err)
	assert.Equal(t, []Row{{}, {}}, rows)

	_, err = Project(ds, []string{"missing"})
	assert.ErrorContains(t, err, "not in header")

	ds.Records = append(ds.Records, []string{"3"})
	_, err = Project(ds, []string{"id"})
	assert.ErrorIs(t, err, ErrArity)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("a.csv"))
	assert.Equal(t, FormatCSV, DetectFormat("a.txt"))
	assert.Equal(t, FormatTSV, DetectFormat("A.TSV"))
	assert.Equal(t, FormatJSON, DetectFormat("s3://bucket/x.json?versionId=1"))
}

func TestReadCSV(t *testing.T) {
	ds, err := readFixture(t, "simple.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "color"}, ds.Fields)
	assert.Equal(t, [][]string{{"1", "A", "red"}, {"2", "B", "blue, light"}}, ds.Records)
	assert.Equal(t, 2, ds.Len())
}

func TestReadTSV(t *testing.T) {
	ds, err := readFixture(t, "simple.tsv", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Fields)
	assert.Equal(t, [][]string{{"1", "A"}}, ds.Records)
}

func TestReadCSVShortRecord(t *testing.T) {
	_, err := readFixture(t, "short.csv", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArity)
	assert.Contains(t, err.Error(), "short.csv:3")
}

func TestReadCSVEmptyAndBOM(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(""), "empty.csv", ',')
	require.NoError(t, err)
	assert.Empty(t, ds.Fields)
	assert.Zero(t, ds.Len())

	ds, err = ReadCSV(strings.NewReader("\ufeffid,name\n1,A\n"), "bom.csv", ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Fields)
}

func TestReadJSON(t *testing.T) {
	ds, err := readFixture(t, "rows.json", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "active", "note", "tags"}, ds.Fields)
	assert.Equal(t, [][]string{
		{"1", "A", "true", "", `["x", "y"]`},
		{"2", "B", "false", "hi", "[]"},
	}, ds.Records)
}

func TestReadJSONPath(t *testing.T) {
	ds, err := readFixture(t, "nested.json", Options{JSONPath: "data.rows"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Fields)
	assert.Equal(t, [][]string{{"1", "A"}}, ds.Records)

	_, err = readFixture(t, "nested.json", Options{})
	assert.ErrorIs(t, err, ErrNotArray)

	ds, err = readFixture(t, "pages.json", Options{JSONPath: "pages[1].rows"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "B"}, {"3", "C"}}, ds.Records)
}

func TestReadJSONErrors(t *testing.T) {
	_, err := readFixture(t, "missing.json", Options{})
	assert.ErrorIs(t, err, ErrArity)

	_, err = ReadJSON([]byte(`[1, 2]`), "scalars.json", "")
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = ReadJSON([]byte(`{`), "broken.json", "")
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = Read(strings.NewReader("x"), "x.csv", Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown format")
}
