// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows the rows of a dataset before it is compared.
//
// Filters are specified as column-operator-target expressions and combined
// with a configurable delimiter (default: comma, override with
// CSVDIFF_FILTER_DELIM). A row is kept only when it passes every filter.
//
// Operators, each of which can be negated with a leading !:
//
//   - = : exact match, numeric when both sides are numbers
//   - ~ : case insensitive match
//   - ^ : prefix match
//   - < : less than, numeric when both sides are numbers
//   - > : greater than, numeric when both sides are numbers
//   - @ : contains substring
//   - / : regular expression match
//
// A column with no operator keeps rows where that column is not empty.
//
// Examples:
//
//   - "region=eu" : rows whose region is exactly "eu"
//   - "qty>5" : rows whose qty is greater than 5
//   - "name!@test" : rows whose name does not contain "test"
//   - "note" : rows with a note
package filters
