package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/axis"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// bandsCommand creates the bands command, which lists the calendar
// months an events file spans.
func (c *CLI) bandsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "bands <events-file>",
		Short: "List the month bands covered by an events file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := c.loadSequence(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, span := axis.Map(seq)
			bands := axis.MonthBands(span)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(bands)
			}
			if len(bands) == 0 {
				newPrinter(cmd).info("No events")
				return nil
			}
			printBands(out, bands)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print bands as JSON")
	return cmd
}

// loadSequence reads and validates an events file through the cached
// loader.
func (c *CLI) loadSequence(ctx context.Context, input string) (timeline.Sequence, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(false)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	records, err := runner.Load(ctx, pipeline.Options{
		Source: input,
		Input:  data,
		Logger: loggerFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	return timeline.Build(records)
}

// printBands writes bands as a table.
func printBands(w io.Writer, bands []axis.MonthBand) {
	rows := make([][]string, len(bands))
	for i, b := range bands {
		rows[i] = []string{
			b.Month.Format("Jan 2006"),
			timeline.FormatDate(axis.Date(b.StartCoord)),
			timeline.FormatDate(axis.Date(b.EndCoord)),
			check(b.IsYearStart),
			check(b.StartVisible),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Month", "Start", "End", "Year", "Tick").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(bands) && bands[row].IsYearStart && col == 0 {
				return cellStyle.Foreground(colorCyan).Bold(true)
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

func check(b bool) string {
	if b {
		return iconSuccess
	}
	return ""
}
