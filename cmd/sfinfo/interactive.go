package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	rep    report
	table  table.Model
	detail string
}

func newInteractiveModel(rep report) *interactiveModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Mode", Width: 18},
		{Title: "Fullscreen", Width: 10},
		{Title: "Desktop", Width: 8},
	}

	rows := make([]table.Row, 0, len(rep.fullscreen))
	for i, m := range rep.fullscreen {
		desktop := ""
		if m == rep.desktop {
			desktop = "yes"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			m.String(),
			yesNo(rep.valid[i]),
			desktop,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), 15)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedStyle
	t.SetStyles(styles)

	return &interactiveModel{rep: rep, table: t}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.rep.fullscreen) {
				mode := m.rep.fullscreen[i]
				m.detail = fmt.Sprintf("%d x %d pixels, %d bits per pixel", mode.Width, mode.Height, mode.BitsPerPixel)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("Fullscreen modes") + "\n\n"
	shaders := errorStyle.Render("shaders unavailable")
	if m.rep.shaders {
		shaders = okStyle.Render("shaders available")
	}
	s += shaders + "   " + labelStyle.Render("desktop: ") + m.rep.desktop.String() + "\n\n"

	if len(m.rep.fullscreen) == 0 {
		s += dimStyle.Render("No fullscreen modes reported.") + "\n"
	} else {
		s += m.table.View() + "\n"
	}
	if m.detail != "" {
		s += "\n" + okStyle.Render(m.detail) + "\n"
	}
	s += "\n" + helpStyle.Render("↑/↓ move • enter details • q quit")
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runInteractive(rep report) error {
	_, err := tea.NewProgram(newInteractiveModel(rep)).Run()
	return err
}
