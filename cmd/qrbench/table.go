package main

import (
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("2"))
)

var summaryHeaders = []string{
	"Library", "Generations", "Avg render", "Min render", "Max render", "Avg memory", "File size",
}

// summaryRows returns one row per library. The library with the lowest
// average render time comes first.
func summaryRows(state qrstate.State, libraries []string) [][]string {
	libs := slices.Clone(libraries)
	slices.SortStableFunc(libs, func(a, b string) int {
		ma, mb := state.Stacks[a].Metrics, state.Stacks[b].Metrics
		switch {
		case ma.AverageRenderTime < mb.AverageRenderTime:
			return -1
		case ma.AverageRenderTime > mb.AverageRenderTime:
			return 1
		}
		return 0
	})

	rows := make([][]string, 0, len(libs))
	for _, lib := range libs {
		m := state.Stacks[lib].Metrics
		size := "-"
		if m.LastGeneration != nil {
			size = report.FormatBytes(m.LastGeneration.FileSize)
		}
		rows = append(rows, []string{
			lib,
			report.FormatNumber(float64(m.TotalGenerations)),
			report.FormatTime(m.AverageRenderTime),
			report.FormatTime(m.MinRenderTime),
			report.FormatTime(m.MaxRenderTime),
			report.FormatBytes(m.AverageMemoryUsage),
			size,
		})
	}
	return rows
}

// writeSummary renders the comparison table to w.
func writeSummary(w io.Writer, state qrstate.State, libraries []string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(summaryHeaders...).
		Rows(summaryRows(state, libraries)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case 0:
				return bestStyle
			}
			return cellStyle
		})
	_, err := io.WriteString(w, t.String()+"\n")
	return err
}
