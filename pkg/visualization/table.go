package visualization

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/tajo2025/perfsweep/pkg/experiment/sweep"
)

// Table is a model for data.
type Table struct {
	caption string
	headers []string
	data    [][]string
}

// NewTable creates new model of data representation.
func NewTable(caption string, headers []string, data [][]string) *Table {
	return &Table{
		caption,
		headers,
		data,
	}
}

// DrawTable draws a struct with headers and data rows.
func DrawTable(w io.Writer, table *Table) {
	output := tablewriter.NewWriter(w)
	output.SetHeader(table.headers)
	if table.caption != "" {
		output.SetCaption(true, table.caption)
	}
	for _, v := range table.data {
		output.Append(v)
	}
	output.Render()
}

// SummaryTable turns sweep result into a table with one row per point.
func SummaryTable(result sweep.Result) *Table {
	data := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		data = append(data, []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			fmt.Sprintf("%.3f", p.MeanTimeMs),
			fmt.Sprintf("%.1f", p.MeanMemoryKB),
		})
	}
	return NewTable(
		title(result),
		[]string{xLabel(result), "Mean time [ms]", "Mean peak memory [KB]"},
		data,
	)
}

// PrintSummary prints sweep result as a table.
func PrintSummary(w io.Writer, result sweep.Result) {
	DrawTable(w, SummaryTable(result))
}
