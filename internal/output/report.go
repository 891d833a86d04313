// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/tfctl/csvdiff/internal/differ"
)

// Report is the machine readable form of a comparison.
type Report struct {
	Old    string        `json:"old" yaml:"old"`
	New    string        `json:"new" yaml:"new"`
	Schema []string      `json:"schema" yaml:"schema"`
	Fields []LineRecord  `json:"fields" yaml:"fields"`
	Rows   []LineRecord  `json:"rows" yaml:"rows"`
	Stats  *differ.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// LineRecord is one emitted line. Changed holds the indexes of the emphasized
// cells.
type LineRecord struct {
	Op      string   `json:"op" yaml:"op"`
	Index   int      `json:"index" yaml:"index"`
	Values  []string `json:"values" yaml:"values,flow"`
	Changed []int    `json:"changed,omitempty" yaml:"changed,omitempty,flow"`
}

// Records converts lines for a Report. Never nil so empty sections encode as
// [] rather than null.
func Records(lines []differ.Line) []LineRecord {
	recs := make([]LineRecord, 0, len(lines))
	for _, l := range lines {
		rec := LineRecord{Op: l.Token.String(), Index: l.Index, Values: l.Values()}
		for k, c := range l.Cells {
			if c.Changed {
				rec.Changed = append(rec.Changed, k)
			}
		}
		recs = append(recs, rec)
	}
	return recs
}

// WriteReport encodes r to w as json or yaml.
func WriteReport(w io.Writer, format string, r Report) error {
	if r.Schema == nil {
		r.Schema = []string{}
	}

	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(r, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s report: %w", format, err)
	}

	_, err = w.Write(out)
	return err
}
