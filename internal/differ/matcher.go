// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/tfctl/csvdiff/internal/table"
)

// Tag classifies an Opcode.
type Tag int

const (
	Equal Tag = iota
	Insert
	Delete
	Replace
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Opcode relates a[A1:A2] to b[B1:B2].
type Opcode struct {
	Tag    Tag
	A1, A2 int
	B1, B2 int
}

func (op Opcode) String() string {
	return fmt.Sprintf("%s(%d,%d,%d,%d)", op.Tag, op.A1, op.A2, op.B1, op.B2)
}

// Match returns the opcodes turning a into b. The longest common run is
// matched first (earliest in a, then earliest in b, on ties) and the ranges on
// either side of it are matched recursively. The result partitions both
// sequences in order and never holds two adjacent Equal opcodes.
func Match[T comparable](a, b []T) []Opcode {
	m := &matcher[T]{a: a, b: b, b2j: make(map[T][]int)}
	for j, v := range b {
		m.b2j[v] = append(m.b2j[v], j)
	}
	return m.match(0, len(a), 0, len(b), nil)
}

// MatchRows matches rows by value.
func MatchRows(a, b []table.Row) []Opcode {
	return Match(rowKeys(a), rowKeys(b))
}

func rowKeys(rows []table.Row) []string {
	ks := make([]string, len(rows))
	for i, r := range rows {
		ks[i] = r.Key()
	}
	return ks
}

type matcher[T comparable] struct {
	a, b []T
	// b2j maps each value of b to the ascending positions it occurs at.
	b2j map[T][]int
}

func (m *matcher[T]) match(alo, ahi, blo, bhi int, ops []Opcode) []Opcode {
	if alo == ahi && blo == bhi {
		return ops
	}

	i, j, k := m.longest(alo, ahi, blo, bhi)
	if k == 0 {
		tag := Replace
		switch {
		case alo == ahi:
			tag = Insert
		case blo == bhi:
			tag = Delete
		}
		return append(ops, Opcode{Tag: tag, A1: alo, A2: ahi, B1: blo, B2: bhi})
	}

	ops = m.match(alo, i, blo, j, ops)
	ops = append(ops, Opcode{Tag: Equal, A1: i, A2: i + k, B1: j, B2: j + k})
	return m.match(i+k, ahi, j+k, bhi, ops)
}

// longest finds the longest run a[i:i+k] == b[j:j+k] inside the given ranges.
// runs[j] holds the length of the run ending at a[i-1], b[j]; only strictly
// longer runs replace the incumbent so the earliest one wins.
func (m *matcher[T]) longest(alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	runs := map[int]int{}
	next := map[int]int{}
	for i := alo; i < ahi; i++ {
		clear(next)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := runs[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		runs, next = next, runs
	}
	return
}
