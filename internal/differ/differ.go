// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// DefaultCutoff is the fraction of equal cells two rows need before they are
// paired as a modification rather than treated as unrelated.
const DefaultCutoff = 0.75

// Token prefixes an emitted line.
type Token byte

const (
	Unchanged Token = ' '
	Deleted   Token = '-'
	Inserted  Token = '+'
)

func (t Token) String() string { return string(rune(t)) }

// Cell is one emitted value. Changed is set on cells that differ from the
// paired row, and on every cell of a row that has no pair.
type Cell struct {
	Value   string
	Changed bool
}

// Line is one emitted row. Index is the position of the row in its own
// sequence: a for Deleted and Unchanged lines, b for Inserted lines.
type Line struct {
	Token Token
	Index int
	Cells []Cell
}

// Values returns the plain cell values of l.
func (l Line) Values() []string {
	vs := make([]string, len(l.Cells))
	for k, c := range l.Cells {
		vs[k] = c.Value
	}
	return vs
}

// Stats counts what a comparison emitted.
type Stats struct {
	Left  int `json:"left"`  // rows in the old dataset
	Right int `json:"right"` // rows in the new dataset

	Unchanged int `json:"unchanged"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"` // paired delete/insert lines
}

// Changed reports whether any row differs.
func (s Stats) Changed() bool {
	return s.Added+s.Removed+s.Modified > 0
}

// Config holds the tunables of a comparison.
type Config struct {
	Cutoff    float64
	Unchanged bool
	Stats     *Stats
}

// Option adjusts a Config.
type Option func(cfg *Config)

// OptionCutoff sets the pairing cutoff. Values outside (0,1] are replaced with
// DefaultCutoff.
func OptionCutoff(c float64) Option {
	return func(cfg *Config) {
		cfg.Cutoff = c
	}
}

// OptionUnchanged makes Rows emit equal rows with the Unchanged token.
func OptionUnchanged(on bool) Option {
	return func(cfg *Config) {
		cfg.Unchanged = on
	}
}

// OptionSetStats populates st when Rows returns.
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// ValidateCutoff rejects cutoffs outside (0,1].
func ValidateCutoff(c float64) error {
	if c <= 0 || c > 1 {
		return fmt.Errorf("cutoff must be in (0,1], got %v", c)
	}
	return nil
}

// Rows compares two row sequences of equal width and returns the emitted
// lines in order. Equal rows are omitted unless OptionUnchanged is set.
func Rows(a, b []table.Row, opts ...Option) []Line {
	cfg := &Config{Cutoff: DefaultCutoff}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := ValidateCutoff(cfg.Cutoff); err != nil {
		log.Warnf("%v, using %v", err, DefaultCutoff)
		cfg.Cutoff = DefaultCutoff
	}

	al := &aligner{a: a, b: b, cutoff: cfg.Cutoff}
	if len(a) > 0 {
		al.width = len(a[0])
	} else if len(b) > 0 {
		al.width = len(b[0])
	}
	al.stats.Left, al.stats.Right = len(a), len(b)

	ops := MatchRows(a, b)
	log.Debugf("rows: %d opcodes for %d/%d rows", len(ops), len(a), len(b))

	for _, op := range ops {
		log.Tracef("opcode %s", op)
		switch op.Tag {
		case Equal:
			al.stats.Unchanged += op.A2 - op.A1
			if cfg.Unchanged {
				for i := op.A1; i < op.A2; i++ {
					al.emit(Unchanged, i, a[i], nil)
				}
			}
		case Insert:
			for j := op.B1; j < op.B2; j++ {
				al.inserted(j)
			}
		case Delete:
			for i := op.A1; i < op.A2; i++ {
				al.deleted(i)
			}
		case Replace:
			al.align(op.A1, op.A2, op.B1, op.B2)
		}
	}

	if cfg.Stats != nil {
		*cfg.Stats = al.stats
	}
	return al.lines
}

// Fields compares two header lists. Only the sequence matcher is used: names
// of non-equal opcodes are emitted as deleted then inserted, equal names only
// when unchanged is set.
func Fields(a, b []string, unchanged bool) []Line {
	var lines []Line
	field := func(tok Token, idx int, name string) {
		lines = append(lines, Line{
			Token: tok,
			Index: idx,
			Cells: []Cell{{Value: name, Changed: tok != Unchanged}},
		})
	}

	for _, op := range Match(a, b) {
		if op.Tag == Equal {
			if unchanged {
				for i := op.A1; i < op.A2; i++ {
					field(Unchanged, i, a[i])
				}
			}
			continue
		}
		for i := op.A1; i < op.A2; i++ {
			field(Deleted, i, a[i])
		}
		for j := op.B1; j < op.B2; j++ {
			field(Inserted, j, b[j])
		}
	}
	return lines
}
