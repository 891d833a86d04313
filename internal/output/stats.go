// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/csvdiff/internal/differ"
)

// FormatStats summarizes st on one line.
func FormatStats(st differ.Stats) string {
	c := func(n int) string { return humanize.Comma(int64(n)) }
	return fmt.Sprintf("%s old rows, %s new rows: %s unchanged, %s modified, %s removed, %s added",
		c(st.Left), c(st.Right), c(st.Unchanged), c(st.Modified), c(st.Removed), c(st.Added))
}
