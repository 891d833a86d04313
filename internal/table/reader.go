// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/csvdiff/internal/driller"
	"github.com/tfctl/csvdiff/internal/log"
)

// Format names an input encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// Formats lists the accepted values for the --format flag.
var Formats = []string{string(FormatCSV), string(FormatTSV), string(FormatJSON)}

// Options tune how a dataset is read.
type Options struct {
	// Format overrides extension based detection when set.
	Format Format
	// JSONPath selects the array of rows inside a JSON document, see
	// driller.Driller. Empty means the document itself.
	JSONPath string
}

// DetectFormat derives the format from the extension of name. Anything that
// isn't recognized is read as CSV.
func DetectFormat(name string) Format {
	// S3 keys and URLs may carry a query string.
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Read parses r according to opts, falling back to DetectFormat(name).
func Read(r io.Reader, name string, opts Options) (*Dataset, error) {
	format := opts.Format
	if format == "" {
		format = DetectFormat(name)
	}
	log.Debugf("reading %s as %s", name, format)

	switch format {
	case FormatCSV:
		return ReadCSV(r, name, ',')
	case FormatTSV:
		return ReadCSV(r, name, '\t')
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return ReadJSON(data, name, opts.JSONPath)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ReadCSV reads a delimited dataset whose first record is the header. Every
// data record must be exactly as wide as the header.
func ReadCSV(r io.Reader, name string, comma rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	ds := &Dataset{Name: name}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		log.Warnf("%s is empty", name)
		return ds, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	ds.Fields = header

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: record has %d fields, header has %d: %w",
				name, line, len(rec), len(header), ErrArity)
		}
		ds.Records = append(ds.Records, rec)
	}

	log.Debugf("%s: %d fields, %d records", name, len(ds.Fields), len(ds.Records))
	return ds, nil
}

// ReadJSON reads an array of objects. The header is the key order of the first
// object and every other object must carry exactly the same keys.
func ReadJSON(data []byte, name string, path string) (*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", name)
	}

	doc := driller.Driller(gjson.ParseBytes(data), path)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotArray)
	}

	ds := &Dataset{Name: name}
	for n, obj := range doc.Array() {
		if !obj.IsObject() {
			return nil, fmt.Errorf("%s: element %d: %w", name, n, ErrNotArray)
		}

		values := map[string]gjson.Result{}
		var keys []string
		obj.ForEach(func(k, v gjson.Result) bool {
			if _, dup := values[k.String()]; !dup {
				keys = append(keys, k.String())
			}
			values[k.String()] = v
			return true
		})

		if n == 0 {
			ds.Fields = keys
		}

		if len(values) != len(ds.Fields) {
			return nil, fmt.Errorf("%s: element %d has %d fields, header has %d: %w",
				name, n, len(values), len(ds.Fields), ErrArity)
		}

		rec := make([]string, len(ds.Fields))
		for k, f := range ds.Fields {
			v, ok := values[f]
			if !ok {
				return nil, fmt.Errorf("%s: element %d lacks field %q: %w", name, n, f, ErrArity)
			}
			rec[k] = jsonValueString(v)
		}
		ds.Records = append(ds.Records, rec)
	}

	log.Debugf("%s: %d fields, %d records", name, len(ds.Fields), len(ds.Records))
	return ds, nil
}

// jsonValueString renders a JSON value as a cell. Strings lose their quotes,
// null becomes empty and nested values keep their raw JSON text.
func jsonValueString(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	case gjson.JSON:
		return v.Raw
	default:
		return v.String()
	}
}
