// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/csvdiff/internal/source"
)

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type keyMap struct {
	Up, Down, Toggle, Go, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Go, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Go:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "quit")),
}

// SelectSnapshots lets the user pick two snapshots. The result is ordered
// oldest first, or empty if the user quit.
func SelectSnapshots(items []source.Snapshot) ([]source.Snapshot, error) {
	p := tea.NewProgram(model{items: items, help: help.New()})
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("snapshot picker failed: %w", err)
	}
	return m.(model).result(), nil
}

type model struct {
	items    []source.Snapshot
	cursor   int
	selected []source.Snapshot
	help     help.Model
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Toggle):
		if len(m.items) == 0 {
			break
		}
		cur := m.items[m.cursor]
		if i := indexOf(m.selected, cur); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, cur)
		}
	case key.Matches(k, keys.Go):
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString("Select two snapshots:\n\n")
	for i, s := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		if indexOf(m.selected, s) >= 0 {
			mark = selectedStyle.Render("x")
		}
		fmt.Fprintf(&sb, "%s [%s] %-40s %8s %s\n", cursor, mark, s.Name,
			humanize.Bytes(uint64(s.Size)), mutedStyle.Render(humanize.Time(s.ModTime)))
	}
	return sb.String() + "\n" + m.help.View(keys) + "\n"
}

// result returns the selection ordered by modification time.
func (m model) result() []source.Snapshot {
	if len(m.selected) != 2 {
		return nil
	}
	out := append([]source.Snapshot(nil), m.selected...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ModTime.Before(out[j].ModTime)
	})
	return out
}

func indexOf(snaps []source.Snapshot, s source.Snapshot) int {
	for i, v := range snaps {
		if v.Path == s.Path {
			return i
		}
	}
	return -1
}
