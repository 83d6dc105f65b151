package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/render/layout"
	"github.com/matzehuels/timeline/pkg/render/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listWarnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

// inspectCommand creates the inspect command, which shows where each
// label ended up and how many attempts it took.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "inspect <events-file>",
		Short: "Browse the resolved label placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			seq, err := c.loadSequence(ctx, args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			scene, err := runner.Layout(ctx, seq, cfg)
			if err != nil {
				return err
			}

			if plain {
				printPlacements(cmd.OutOrStdout(), scene)
				return nil
			}
			_, err = tea.NewProgram(NewPlacementModel(scene), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the placement table instead of the interactive view")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (.json, .toml, .yaml)")
	return cmd
}

// PlacementModel is the bubbletea model for browsing label placements.
type PlacementModel struct {
	Events     timeline.Sequence
	Placements []layout.Placement
	Cursor     int
	Height     int
	Offset     int
}

// NewPlacementModel creates a placement browser for scene.
func NewPlacementModel(scene *sink.Scene) PlacementModel {
	return PlacementModel{
		Events:     scene.Events,
		Placements: scene.Result.Placements,
		Height:     15,
	}
}

func (m PlacementModel) Init() tea.Cmd {
	return nil
}

func (m PlacementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Placements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Placements); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m PlacementModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Label Placements"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Placements) == 0 {
		b.WriteString(listDimStyle.Render("  no events"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Placements))
	b.WriteString(placementTable(m.Events, m.Placements, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Placements))))

	return b.String()
}

// detail describes the selected placement below the table.
func (m PlacementModel) detail() string {
	p := m.Placements[m.Cursor]
	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", StyleHighlight.Render(p.Text), listDimStyle.Render(timeline.FormatDate(m.Events[m.Cursor].Date))))
	lines = append(lines, listDimStyle.Render(fmt.Sprintf("natural offset %+.2f → %+.2f after %d attempt(s)", p.NaturalOffset, p.Offset, p.Attempts)))
	lines = append(lines, listDimStyle.Render(fmt.Sprintf("rect x %.2f..%.2f  y %.2f..%.2f", p.Rect.Left, p.Rect.Right, p.Rect.Bottom, p.Rect.Top)))
	switch {
	case p.Seed:
		lines = append(lines, StyleSuccess.Render("seed label, placed first"))
	case !p.Resolved:
		lines = append(lines, listWarnStyle.Render("overlaps a neighbour (attempt budget exhausted)"))
	case p.Swapped:
		lines = append(lines, StyleWarning.Render(fmt.Sprintf("moved from %s to %s", p.Lane, p.FinalLane)))
	}
	return strings.Join(lines, "\n")
}

// placementTable renders rows [from, to) and highlights the cursor row.
// A cursor of -1 highlights nothing.
func placementTable(events timeline.Sequence, placements []layout.Placement, from, to, cursor int) string {
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		p := placements[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.Text,
			timeline.FormatDate(events[i].Date),
			laneLabel(p),
			fmt.Sprintf("%+.2f", p.Offset),
			fmt.Sprintf("%d", p.Attempts),
			placementFlags(p),
		})
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Event", "Date", "Lane", "Offset", "Tries", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle.Padding(0, 1)
			}
			idx := from + row
			if idx >= to {
				return cellStyle
			}
			style := cellStyle
			if placements[idx].FinalLane == timeline.Below {
				style = style.Foreground(colorRed)
			} else {
				style = style.Foreground(colorBlue)
			}
			if col != 1 && col != 3 {
				style = style.Foreground(colorGray)
			}
			if idx == cursor {
				style = style.Bold(true).Foreground(colorCyan)
			}
			return style
		})
	return t.Render()
}

func laneLabel(p layout.Placement) string {
	if p.Swapped {
		return fmt.Sprintf("%s→%s", p.Lane, p.FinalLane)
	}
	return p.FinalLane.String()
}

func placementFlags(p layout.Placement) string {
	switch {
	case p.Seed:
		return "seed"
	case !p.Resolved:
		return iconWarning + " overlap"
	case p.Swapped:
		return "swapped"
	}
	return ""
}

// printPlacements writes the full placement table and a summary line.
func printPlacements(w io.Writer, scene *sink.Scene) {
	placements := scene.Result.Placements
	if len(placements) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}
	fmt.Fprintln(w, placementTable(scene.Events, placements, 0, len(placements), -1))
	fmt.Fprintf(w, "%d events · %d swapped · %d unresolved · %d measurements · extent %.2f\n",
		len(placements), scene.Result.Swapped(), scene.Result.Unresolved(),
		scene.Result.Measurements, scene.Result.MaxExtent)
}
