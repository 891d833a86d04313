// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrArity is returned when a record does not have the expected number of
	// fields.
	ErrArity = errors.New("wrong number of fields")

	// ErrNotArray is returned when a JSON dataset is not an array of objects.
	ErrNotArray = errors.New("dataset is not an array of objects")
)

// Row is one record projected onto a common schema. All rows taking part in a
// comparison have the same length.
type Row []string

// Equal reports whether r and o hold the same values in the same positions.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for k := range r {
		if r[k] != o[k] {
			return false
		}
	}
	return true
}

// Score returns the number of positions where r and o hold the same value.
func (r Row) Score(o Row) int {
	n := 0
	for k := range r {
		if k < len(o) && r[k] == o[k] {
			n++
		}
	}
	return n
}

// Key returns an unambiguous encoding of r, suitable as a map key. Each value
// is length-prefixed so that rows whose concatenations coincide still differ.
func (r Row) Key() string {
	var sb strings.Builder
	for _, v := range r {
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteByte(':')
		sb.WriteString(v)
	}
	return sb.String()
}

// Dataset is a parsed tabular input. Records are aligned with Fields.
type Dataset struct {
	Name    string
	Fields  []string
	Records [][]string
}

// Len returns the number of data records.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}

// Schema returns the names present in both a and b, in b's order. Names
// repeated in b are kept once.
func Schema(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, f := range a {
		inA[f] = true
	}

	schema := []string{}
	seen := make(map[string]bool, len(b))
	for _, f := range b {
		if inA[f] && !seen[f] {
			schema = append(schema, f)
			seen[f] = true
		}
	}
	return schema
}

// Project reorders every record of ds onto schema. It fails if a schema field
// is missing from the dataset header or if a record is narrower than the
// header; it never pads or truncates.
func Project(ds *Dataset, schema []string) ([]Row, error) {
	pos := make(map[string]int, len(ds.Fields))
	for i, f := range ds.Fields {
		if _, ok := pos[f]; !ok {
			pos[f] = i
		}
	}

	idx := make([]int, len(schema))
	for k, f := range schema {
		i, ok := pos[f]
		if !ok {
			return nil, fmt.Errorf("%s: field %q not in header", ds.Name, f)
		}
		idx[k] = i
	}

	rows := make([]Row, 0, len(ds.Records))
	for n, rec := range ds.Records {
		if len(rec) != len(ds.Fields) {
			return nil, fmt.Errorf("%s: record %d has %d fields, header has %d: %w",
				ds.Name, n+1, len(rec), len(ds.Fields), ErrArity)
		}
		row := make(Row, len(idx))
		for k, i := range idx {
			row[k] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
