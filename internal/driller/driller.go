// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)?\])?$`)

// Driller walks doc along a dot path whose segments may carry an array index,
// as in "pages[1].rows". A single element array met midway is stepped into
// without an index. The last segment is returned as is. Paths that aren't in
// this form are handed to gjson unchanged, so its own syntax still works.
func Driller(doc gjson.Result, path string) gjson.Result {
	if path == "" {
		return doc
	}

	parts := strings.Split(path, ".")
	current := doc

	for n, p := range parts {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return doc.Get(path)
		}

		val := current.Get(matches[1])

		switch {
		case matches[3] != "":
			i, err := strconv.Atoi(matches[3])
			if err != nil || !val.IsArray() {
				return gjson.Result{}
			}
			arr := val.Array()
			if i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		case n < len(parts)-1 && val.IsArray():
			if arr := val.Array(); len(arr) == 1 {
				val = arr[0]
			}
		}

		current = val
	}

	return current
}
