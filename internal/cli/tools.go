package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/pkg/workflow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newToolsCmd creates the tools command.
// It lists the tools of a workflow, either as a plain table or as an
// interactive browser where selecting a tool prints its configuration.
func newToolsCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "tools <workflow.yxmd>",
		Short: "Browse the tools of a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			wf, err := workflow.Parse(args[0])
			if err != nil {
				return err
			}
			if plain {
				printToolTable(wf)
				return nil
			}
			return browseTools(wf)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")

	return cmd
}

// printToolTable prints one line per tool: ID, short name, engine kind.
func printToolTable(wf *workflow.Workflow) {
	for _, t := range wf.Tools {
		fmt.Printf("%-6s %-30s %s\n", t.ID, workflow.ShortName(t.Plugin), t.Engine.Kind)
	}
}

// browseTools runs the interactive tool browser. When the user selects a
// tool, its configuration is printed as JSON after the browser exits.
func browseTools(wf *workflow.Workflow) error {
	model := newToolListModel(wf.Tools)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m, ok := final.(toolListModel)
	if !ok || m.selected == nil {
		return nil
	}

	data, err := json.MarshalIndent(m.selected.Configuration, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n%s\n", workflow.ShortName(m.selected.Plugin), m.selected.ID, data)
	return nil
}

// toolListModel is the bubbletea model for interactive tool browsing.
type toolListModel struct {
	tools    []workflow.Tool
	cursor   int
	offset   int
	height   int
	selected *workflow.Tool
}

func newToolListModel(tools []workflow.Tool) toolListModel {
	return toolListModel{tools: tools, height: 15}
}

func (m toolListModel) Init() tea.Cmd {
	return nil
}

func (m toolListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.tools)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			tool := m.tools[m.cursor]
			m.selected = &tool
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m toolListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Workflow Tools"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show configuration  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.tools) {
		end = len(m.tools)
	}

	for i := m.offset; i < end; i++ {
		t := m.tools[i]
		line := fmt.Sprintf("%-6s %-30s %s", t.ID, workflow.ShortName(t.Plugin), t.Engine.Kind)

		if i == m.cursor {
			b.WriteString("▸ " + listSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.tools) > m.height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d tools", m.cursor+1, len(m.tools))))
	}

	return b.String()
}
