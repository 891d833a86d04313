// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// Attr selects one column of a dataset and optionally renames it.
type Attr struct {
	// The column as it appears in the dataset header.
	Key string `yaml:"key" json:"Key"`
	// Should this column take part in the comparison?
	Include bool `yaml:"include" json:"Include"`
	// The name the column is compared under. Renaming lets a column that
	// changed its name between snapshots still line up.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
}

// AttrList is a collection of Attr parsed from --columns.
type AttrList []Attr

// Set parses each spec from --columns and adds it to the AttrList. A spec is
// key[:outputKey], prefixed with ! to drop the column. * keeps every column
// not otherwise named.
func (a *AttrList) Set(value string) error {
	if value == "" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")
		if len(fields) > outputIdx+1 {
			return fmt.Errorf("invalid column spec %q: too many ':'", spec)
		}

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = strings.TrimSpace(attr.Key[1:])
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid column spec %q: empty column", spec)
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		log.Tracef("attr parsed: key=%s, outputKey=%s, include=%v", attr.Key, attr.OutputKey, attr.Include)

		// A repeated column overrides what was said about it earlier.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i] = attr
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// String returns a string representation of the AttrList. This matches the
// format of the --columns flag.
func (a AttrList) String() string {
	result := make([]string, 0, len(a))
	for _, attr := range a {
		s := attr.Key
		if !attr.Include {
			s = "!" + s
		}
		if attr.OutputKey != attr.Key {
			s += ":" + attr.OutputKey
		}
		result = append(result, s)
	}
	return strings.Join(result, ",")
}

// selective reports whether only the named columns are kept. That is the
// case when something other than * or an exclusion is listed and * isn't.
func (a AttrList) selective() bool {
	named := false
	for _, attr := range a {
		if attr.Key == "*" {
			return false
		}
		if attr.Include {
			named = true
		}
	}
	return named
}

func (a AttrList) find(key string) (Attr, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr, true
		}
	}
	return Attr{}, false
}

// ErrDuplicateColumn reports a rename that collides with another column.
var ErrDuplicateColumn = errors.New("duplicate column")

// Apply returns a copy of ds narrowed and renamed per the list. Columns keep
// their dataset order. Listed columns ds lacks are ignored so one list can
// serve both sides of a comparison.
func (a AttrList) Apply(ds *table.Dataset) (*table.Dataset, error) {
	if len(a) == 0 {
		return ds, nil
	}

	selective := a.selective()
	out := &table.Dataset{Name: ds.Name}
	var keep []int
	seen := map[string]bool{}

	for k, field := range ds.Fields {
		name := field
		attr, listed := a.find(field)
		switch {
		case listed && !attr.Include:
			continue
		case listed:
			name = attr.OutputKey
		case selective:
			continue
		}

		if seen[name] {
			return nil, fmt.Errorf("%s: column %q: %w", ds.Name, name, ErrDuplicateColumn)
		}
		seen[name] = true
		out.Fields = append(out.Fields, name)
		keep = append(keep, k)
	}

	for _, rec := range ds.Records {
		row := make([]string, len(keep))
		for i, k := range keep {
			row[i] = rec[k]
		}
		out.Records = append(out.Records, row)
	}

	log.Debugf("%s: columns %v", ds.Name, out.Fields)
	return out, nil
}
