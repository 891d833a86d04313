// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package table reads delimited and JSON datasets, derives the schema two
// datasets have in common and projects records onto it as Rows.
package table
