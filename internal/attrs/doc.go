// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package attrs implements --columns, which picks and renames the columns of
// both datasets before they are compared.
//
// The flag value is a comma separated list of key[:outputKey] specs:
//
//   - "id,name" : compare only id and name
//   - "!note" : compare everything but note
//   - "*,qty:quantity" : compare everything, with qty renamed to quantity so
//     that an OLD qty column lines up with a NEW quantity column
package attrs
