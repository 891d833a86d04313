// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/differ"
)

// Theme is the immutable look of rendered output.
type Theme struct {
	Unchanged differ.Token
	Deleted   differ.Token
	Inserted  differ.Token

	// Comma separates cells on a line.
	Comma rune

	// Color enables styling. The colors are ignored without it.
	Color  bool
	Delete color.Color
	Insert color.Color
	Title  color.Color
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	return Theme{
		Unchanged: differ.Unchanged,
		Deleted:   differ.Deleted,
		Inserted:  differ.Inserted,
		Comma:     ',',
	}
}

// NewTheme returns the plain theme, with colors from config when colorOn is
// set.
func NewTheme(colorOn bool) Theme {
	t := PlainTheme()
	if colorOn {
		t.Color = true
		t.Delete, t.Insert, t.Title = getColors("colors")
	}
	return t
}

// getColors returns configured colors for diff rendering. Defaults depend on
// the terminal background so output stays readable on light and dark themes.
func getColors(key string) (del, ins, title color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// An explicit color from config wins and the user owns its contrast.
	resolveColor := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	del = resolveColor(key+".delete", "#c0392b", "#ff6b6b")
	ins = resolveColor(key+".insert", "#1e8449", "#69db7c")
	title = resolveColor(key+".title", "#b08800", "#f6be00")
	return
}
