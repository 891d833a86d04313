// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/csvdiff/internal/differ"
)

// Renderer writes diff lines as "<token> <cell>,<cell>...".
type Renderer struct {
	w     io.Writer
	theme Theme

	title, del, ins lipgloss.Style
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer, theme Theme) *Renderer {
	r := &Renderer{w: w, theme: theme}
	if theme.Color {
		r.title = lipgloss.NewStyle().Bold(true).Foreground(theme.Title)
		r.del = lipgloss.NewStyle().Foreground(theme.Delete)
		r.ins = lipgloss.NewStyle().Foreground(theme.Insert)
	}
	return r
}

// Section writes a title line followed by lines.
func (r *Renderer) Section(title string, lines []differ.Line) error {
	if err := r.Title(title); err != nil {
		return err
	}
	for _, l := range lines {
		if err := r.Line(l); err != nil {
			return err
		}
	}
	return nil
}

// Title writes a section title, bold when color is on.
func (r *Renderer) Title(s string) error {
	if r.theme.Color {
		s = r.title.Render(s)
	}
	_, err := fmt.Fprintln(r.w, s)
	return err
}

// Text writes a free-form line.
func (r *Renderer) Text(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

// Line writes one diff line.
func (r *Renderer) Line(l differ.Line) error {
	var sb strings.Builder

	tok := r.token(l.Token)
	style, styled := r.style(l.Token)
	if styled {
		tok = style.Render(tok)
	}
	sb.WriteString(tok)
	sb.WriteByte(' ')

	for k, c := range l.Cells {
		if k > 0 {
			sb.WriteRune(r.theme.Comma)
		}
		v := EncodeCell(c.Value, r.theme.Comma)
		if styled && c.Changed {
			v = style.Render(v)
		}
		sb.WriteString(v)
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *Renderer) token(t differ.Token) string {
	switch t {
	case differ.Deleted:
		return r.theme.Deleted.String()
	case differ.Inserted:
		return r.theme.Inserted.String()
	default:
		return r.theme.Unchanged.String()
	}
}

func (r *Renderer) style(t differ.Token) (lipgloss.Style, bool) {
	if !r.theme.Color {
		return lipgloss.Style{}, false
	}
	switch t {
	case differ.Deleted:
		return r.del, true
	case differ.Inserted:
		return r.ins, true
	}
	return lipgloss.Style{}, false
}

// EncodeCell quotes a single value the way encoding/csv writes a field:
// values holding the separator, a quote, CR or LF, or starting with a space
// are quoted and inner quotes doubled.
func EncodeCell(v string, comma rune) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = comma
	if err := w.Write([]string{v}); err != nil {
		return v
	}
	w.Flush()
	return strings.TrimSuffix(sb.String(), "\n")
}
