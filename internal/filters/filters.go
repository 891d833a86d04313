// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// filterRegex splits an expression into column, operator (with optional
// negation) and target. "note" is column only, "qty>5" has all three.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

func (f Filter) String() string {
	op := f.Operand
	if f.Negate {
		op = "!" + op
	}
	return f.Key + op + f.Value
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Expressions with an empty column are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Values that contain commas need another delimiter.
	delim := ","
	if d, ok := os.LookupEnv("CSVDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty column in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset returns a copy of ds holding only the records that pass every
// filter. Naming a column ds does not have is an error.
func FilterDataset(ds *table.Dataset, filters []Filter) (*table.Dataset, error) {
	if len(filters) == 0 {
		return ds, nil
	}

	cols := make([]int, len(filters))
	for i, f := range filters {
		cols[i] = -1
		for k, name := range ds.Fields {
			if name == f.Key {
				cols[i] = k
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("filter %q: column %q not found in %s", f, f.Key, ds.Name)
		}
	}

	out := &table.Dataset{Name: ds.Name, Fields: ds.Fields}
	for _, rec := range ds.Records {
		if applyFilters(rec, cols, filters) {
			out.Records = append(out.Records, rec)
		}
	}

	log.Debugf("%s: %d of %d records kept by filters", ds.Name, len(out.Records), len(ds.Records))
	return out, nil
}

// applyFilters returns true if rec passes all filters. cols[i] is the column
// filters[i] reads.
func applyFilters(rec []string, cols []int, filters []Filter) bool {
	for i, filter := range filters {
		if !checkValue(rec[cols[i]], filter) {
			return false
		}
	}
	return true
}

// checkValue compares numerically when both the cell and the target parse as
// numbers and the operand is =, < or >. Otherwise the comparison is textual.
func checkValue(value string, filter Filter) bool {
	if filter.Operand == "" {
		return (value != "") == !filter.Negate
	}

	if num, ok := toFloat64(value); ok && strings.ContainsAny(filter.Operand, "=<>") {
		if _, ok := toFloat64(filter.Value); ok {
			return checkNumericOperand(num, filter)
		}
	}
	return checkStringOperand(value, filter)
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 parses a cell as a number. Empty and non-numeric cells report
// false.
func toFloat64(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}
