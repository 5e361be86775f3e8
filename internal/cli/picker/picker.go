// Package picker implements the interactive terminal city picker the
// `--geo` flag launches: a filterable list of the embedded city
// database that returns the chosen coordinates to the caller. It is
// the concrete implementation of the "opaque external collaborator"
// the state/solar engines never import directly.
package picker

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/sunsetr-dev/sunsetr/internal/geo"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type model struct {
	input    textinput.Model
	matches  []geo.City
	cursor   int
	chosen   *geo.City
	quitting bool
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "type to filter cities"
	ti.Focus()
	ti.CharLimit = 64
	return model{input: ti, matches: geo.Cities}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor >= 0 && m.cursor < len(m.matches) {
				c := m.matches[m.cursor]
				m.chosen = &c
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.matches = filter(m.input.Value())
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
	return m, cmd
}

func filter(query string) []geo.City {
	if query == "" {
		return geo.Cities
	}
	q := strings.ToLower(query)
	var out []geo.City
	for _, c := range geo.Cities {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Country), q) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.HasPrefix(strings.ToLower(out[i].Name), q) && !strings.HasPrefix(strings.ToLower(out[j].Name), q)
	})
	return out
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Select a city for sunsetr"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	max := len(m.matches)
	if max > 12 {
		max = 12
	}
	if max == 0 {
		b.WriteString(dimStyle.Render("no matches"))
	}
	for i := 0; i < max; i++ {
		c := m.matches[i]
		line := fmt.Sprintf("%-24s %s", c.Name, c.Country)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: select  esc: cancel"))
	return b.String()
}

// Run launches the interactive picker and returns the chosen city's
// coordinates. ok is false if the user cancelled without selecting.
func Run() (lat, lon float64, ok bool, err error) {
	p := tea.NewProgram(newModel())
	final, err := p.Run()
	if err != nil {
		return 0, 0, false, fmt.Errorf("running picker: %w", err)
	}
	m := final.(model)
	if m.chosen == nil {
		return 0, 0, false, nil
	}
	return m.chosen.Latitude, m.chosen.Longitude, true, nil
}
