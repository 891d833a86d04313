// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output presents comparison results: CSV-quoted text lines with
// optional color emphasis, and JSON or YAML reports.
package output
