// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/csvdiff/internal/table"
)

// line builds an expected Line. A value prefixed with '*' is marked changed.
func line(tok Token, idx int, values ...string) Line {
	l := Line{Token: tok, Index: idx}
	for _, v := range values {
		c := Cell{Value: v}
		if len(v) > 0 && v[0] == '*' {
			c = Cell{Value: v[1:], Changed: true}
		}
		l.Cells = append(l.Cells, c)
	}
	return l
}

func TestRows(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []table.Row
		opts   []Option
		expect []Line
		stats  Stats
	}{
		{
			name:   "pure insertion",
			a:      []table.Row{{"1", "x"}},
			b:      []table.Row{{"1", "x"}, {"2", "y"}},
			expect: []Line{line(Inserted, 1, "*2", "*y")},
			stats:  Stats{Left: 1, Right: 2, Unchanged: 1, Added: 1},
		},
		{
			name:   "pure deletion",
			a:      []table.Row{{"1", "x"}, {"2", "y"}},
			b:      []table.Row{{"2", "y"}},
			expect: []Line{line(Deleted, 0, "*1", "*x")},
			stats:  Stats{Left: 2, Right: 1, Unchanged: 1, Removed: 1},
		},
		{
			name: "single cell edit below cutoff still pairs positionally",
			a:    []table.Row{{"1", "A", "red"}},
			b:    []table.Row{{"1", "A", "blue"}},
			expect: []Line{
				line(Deleted, 0, "1", "A", "*red"),
				line(Inserted, 0, "1", "A", "*blue"),
			},
			stats: Stats{Left: 1, Right: 1, Modified: 1},
		},
		{
			name: "cutoff boundary accepted at three of four",
			a:    []table.Row{{"1", "A", "B", "X"}, {"9", "Z", "Z", "Z"}},
			b:    []table.Row{{"1", "A", "B", "C"}},
			expect: []Line{
				line(Deleted, 0, "1", "A", "B", "*X"),
				line(Inserted, 0, "1", "A", "B", "*C"),
				line(Deleted, 1, "*9", "*Z", "*Z", "*Z"),
			},
			stats: Stats{Left: 2, Right: 1, Removed: 1, Modified: 1},
		},
		{
			name: "cutoff boundary rejected at two of four",
			a:    []table.Row{{"1", "A", "Y", "X"}, {"9", "Z", "Z", "Z"}},
			b:    []table.Row{{"1", "A", "B", "C"}},
			expect: []Line{
				line(Deleted, 0, "*1", "*A", "*Y", "*X"),
				line(Deleted, 1, "*9", "*Z", "*Z", "*Z"),
				line(Inserted, 0, "*1", "*A", "*B", "*C"),
			},
			stats: Stats{Left: 2, Right: 1, Removed: 1, Modified: 1},
		},
		{
			name: "lower cutoff accepts two of four",
			a:    []table.Row{{"1", "A", "Y", "X"}, {"9", "Z", "Z", "Z"}},
			b:    []table.Row{{"1", "A", "B", "C"}},
			opts: []Option{OptionCutoff(0.5)},
			expect: []Line{
				line(Deleted, 0, "1", "A", "*Y", "*X"),
				line(Inserted, 0, "1", "A", "*B", "*C"),
				line(Deleted, 1, "*9", "*Z", "*Z", "*Z"),
			},
			stats: Stats{Left: 2, Right: 1, Removed: 1, Modified: 1},
		},
		{
			name: "invalid cutoff falls back to default",
			a:    []table.Row{{"1", "A", "Y", "X"}, {"9", "Z", "Z", "Z"}},
			b:    []table.Row{{"1", "A", "B", "C"}},
			opts: []Option{OptionCutoff(0)},
			expect: []Line{
				line(Deleted, 0, "*1", "*A", "*Y", "*X"),
				line(Deleted, 1, "*9", "*Z", "*Z", "*Z"),
				line(Inserted, 0, "*1", "*A", "*B", "*C"),
			},
			stats: Stats{Left: 2, Right: 1, Removed: 1, Modified: 1},
		},
		{
			name: "swapped near matches anchor on lowest b first",
			a:    []table.Row{{"1", "A", "x", "p"}, {"2", "B", "y", "q"}},
			b:    []table.Row{{"2", "B", "y", "Q"}, {"1", "A", "x", "P"}},
			expect: []Line{
				line(Deleted, 0, "*1", "*A", "*x", "*p"),
				line(Deleted, 1, "2", "B", "y", "*q"),
				line(Inserted, 0, "2", "B", "y", "*Q"),
				line(Inserted, 1, "*1", "*A", "*x", "*P"),
			},
			stats: Stats{Left: 2, Right: 2, Removed: 1, Added: 1, Modified: 1},
		},
		{
			name: "unchanged rows emitted on request",
			a:    []table.Row{{"1", "x"}, {"2", "y"}},
			b:    []table.Row{{"1", "x"}, {"3", "z"}},
			opts: []Option{OptionUnchanged(true)},
			expect: []Line{
				line(Unchanged, 0, "1", "x"),
				line(Deleted, 1, "*2", "*y"),
				line(Inserted, 1, "*3", "*z"),
			},
			stats: Stats{Left: 2, Right: 2, Unchanged: 1, Modified: 1},
		},
		{
			name:  "empty inputs",
			stats: Stats{},
		},
		{
			name:   "against empty",
			b:      []table.Row{{"1"}, {"2"}},
			expect: []Line{line(Inserted, 0, "*1"), line(Inserted, 1, "*2")},
			stats:  Stats{Right: 2, Added: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Stats
			got := Rows(tt.a, tt.b, append(tt.opts, OptionSetStats(&st))...)
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.stats, st)
		})
	}
}

func TestAlignFullMatchesFollowScanOrder(t *testing.T) {
	x := table.Row{"1", "A", "x", "p"}
	y := table.Row{"2", "B", "y", "q"}

	// a[0] equals b[1] and a[1] equals b[0]; scanning b first anchors a[1]/b[0].
	al := &aligner{a: []table.Row{x, y}, b: []table.Row{y, x}, width: 4, cutoff: DefaultCutoff}
	al.align(0, 2, 0, 2)

	expect := []Line{
		line(Deleted, 0, "*1", "*A", "*x", "*p"),
		line(Deleted, 1, "2", "B", "y", "q"),
		line(Inserted, 0, "2", "B", "y", "q"),
		line(Inserted, 1, "*1", "*A", "*x", "*p"),
	}
	if diff := cmp.Diff(expect, al.lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceUnequalLengths(t *testing.T) {
	a := []table.Row{{"1"}, {"2"}, {"3"}}
	b := []table.Row{{"3"}}

	al := &aligner{a: a, b: b, width: 1, cutoff: DefaultCutoff}
	al.replace(0, 3, 0, 1)
	expect := []Line{
		line(Deleted, 0, "*1"),
		line(Deleted, 1, "*2"),
		line(Deleted, 2, "3"),
		line(Inserted, 0, "3"),
	}
	if diff := cmp.Diff(expect, al.lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	al = &aligner{a: b, b: a, width: 1, cutoff: DefaultCutoff}
	al.replace(0, 1, 0, 3)
	expect = []Line{
		line(Deleted, 0, "*3"),
		line(Inserted, 0, "*1"),
		line(Inserted, 1, "*2"),
		line(Inserted, 2, "*3"),
	}
	if diff := cmp.Diff(expect, al.lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

// Every row of a replace range is emitted exactly once, in order, on its own
// side.
func TestAlignConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 200; n++ {
		width := 1 + rng.Intn(5)
		a := randomRows(rng, rng.Intn(12), width)
		b := randomRows(rng, rng.Intn(12), width)

		al := &aligner{a: a, b: b, width: width, cutoff: DefaultCutoff}
		if len(a) > 0 || len(b) > 0 {
			al.align(0, len(a), 0, len(b))
		}

		var dels, ins []int
		for _, l := range al.lines {
			switch l.Token {
			case Deleted:
				dels = append(dels, l.Index)
				assert.Equal(t, a[l.Index], table.Row(l.Values()))
			case Inserted:
				ins = append(ins, l.Index)
				assert.Equal(t, b[l.Index], table.Row(l.Values()))
			default:
				t.Fatalf("unexpected token %q inside a replace range", l.Token)
			}
		}
		assert.Equal(t, seq(len(a)), dels)
		assert.Equal(t, seq(len(b)), ins)
	}
}

func TestRowsIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomRows(rng, 80, 3)
	b := randomRows(rng, 80, 3)

	first := Rows(a, b)
	for n := 0; n < 5; n++ {
		require.Empty(t, cmp.Diff(first, Rows(a, b)))
	}
}

func TestFields(t *testing.T) {
	a := []string{"id", "name", "color"}
	b := []string{"id", "colour", "name"}

	expect := []Line{
		line(Inserted, 1, "*colour"),
		line(Deleted, 2, "*color"),
	}
	if diff := cmp.Diff(expect, Fields(a, b, false)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	expect = []Line{
		line(Unchanged, 0, "id"),
		line(Inserted, 1, "*colour"),
		line(Unchanged, 1, "name"),
		line(Deleted, 2, "*color"),
	}
	if diff := cmp.Diff(expect, Fields(a, b, true)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	expect = []Line{
		line(Deleted, 0, "*a"),
		line(Deleted, 1, "*b"),
		line(Inserted, 0, "*c"),
	}
	if diff := cmp.Diff(expect, Fields([]string{"a", "b"}, []string{"c"}, false)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsChanged(t *testing.T) {
	assert.False(t, Stats{Left: 3, Right: 3, Unchanged: 3}.Changed())
	assert.True(t, Stats{Modified: 1}.Changed())
}

func TestValidateCutoff(t *testing.T) {
	assert.NoError(t, ValidateCutoff(0.75))
	assert.NoError(t, ValidateCutoff(1))
	assert.Error(t, ValidateCutoff(0))
	assert.Error(t, ValidateCutoff(1.5))
}

func randomRows(rng *rand.Rand, n, width int) []table.Row {
	rows := make([]table.Row, n)
	for i := range rows {
		row := make(table.Row, width)
		for k := range row {
			row[k] = strconv.Itoa(rng.Intn(3))
		}
		rows[i] = row
	}
	return rows
}

func seq(n int) []int {
	var s []int
	for i := 0; i < n; i++ {
		s = append(s, i)
	}
	return s
}
