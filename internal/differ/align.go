// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// aligner accumulates the lines for one comparison.
type aligner struct {
	a, b   []table.Row
	width  int
	cutoff float64
	lines  []Line
	stats  Stats
}

// align handles a replace range. The most similar pair anchors the range
// when it reaches the cutoff and both sides of the anchor are aligned
// recursively. Candidates are scanned with b outermost and only a strictly
// better score displaces the incumbent, so the lowest j, then the lowest i,
// wins among equals.
func (al *aligner) align(alo, ahi, blo, bhi int) {
	if alo == ahi || blo == bhi {
		al.replace(alo, ahi, blo, bhi)
		return
	}

	best, bi, bj := -1, alo, blo
	for j := blo; j < bhi; j++ {
		for i := alo; i < ahi; i++ {
			if s := al.a[i].Score(al.b[j]); s > best {
				best, bi, bj = s, i, j
			}
		}
	}

	if float64(best) < al.cutoff*float64(al.width) {
		log.Tracef("no anchor in a[%d:%d] b[%d:%d]: best %d/%d", alo, ahi, blo, bhi, best, al.width)
		al.replace(alo, ahi, blo, bhi)
		return
	}

	log.Tracef("anchor a[%d] b[%d]: %d/%d", bi, bj, best, al.width)
	al.align(alo, bi, blo, bj)
	al.replace(bi, bi+1, bj, bj+1)
	al.align(bi+1, ahi, bj+1, bhi)
}

// replace pairs rows positionally. Surplus rows of a are deleted first, then
// each pair is emitted as a delete and an insert with only the differing
// cells marked, and finally surplus rows of b are inserted.
func (al *aligner) replace(alo, ahi, blo, bhi int) {
	alen, blen := ahi-alo, bhi-blo
	i, j := alo, blo

	for ; alen > blen; alen-- {
		al.deleted(i)
		i++
	}

	for ; alen > 0; alen, blen = alen-1, blen-1 {
		ra, rb := al.a[i], al.b[j]
		changed := make([]bool, len(ra))
		for k := range ra {
			changed[k] = k >= len(rb) || ra[k] != rb[k]
		}
		al.emit(Deleted, i, ra, changed)
		al.emit(Inserted, j, rb, changed)
		al.stats.Modified++
		i++
		j++
	}

	for ; blen > 0; blen-- {
		al.inserted(j)
		j++
	}
}

func (al *aligner) deleted(i int) {
	al.emit(Deleted, i, al.a[i], all(len(al.a[i])))
	al.stats.Removed++
}

func (al *aligner) inserted(j int) {
	al.emit(Inserted, j, al.b[j], all(len(al.b[j])))
	al.stats.Added++
}

func (al *aligner) emit(tok Token, idx int, row table.Row, changed []bool) {
	cells := make([]Cell, len(row))
	for k, v := range row {
		cells[k] = Cell{Value: v, Changed: k < len(changed) && changed[k]}
	}
	al.lines = append(al.lines, Line{Token: tok, Index: idx, Cells: cells})
}

func all(n int) []bool {
	marks := make([]bool, n)
	for k := range marks {
		marks[k] = true
	}
	return marks
}
