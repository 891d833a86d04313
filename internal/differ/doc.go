// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes row level differences between two versions of a
// tabular dataset.
//
// Match partitions two sequences into Equal, Insert, Delete and Replace
// opcodes using longest matching blocks. Rows then walks those opcodes and,
// inside every Replace range, pairs the most similar rows so that only the
// cells that changed are marked. Fields applies Match alone to two header
// lists.
package differ
