// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the csvdiff CLI. It wires flags, validators and the
// diff action that loads two datasets, compares them and prints the result.
package command
