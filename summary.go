package tsbind

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary prints the timing stats of a run as a table.
func (r *Result) WriteSummary(w io.Writer) {
	var timeTotal time.Duration
	for _, t := range r.Timings {
		timeTotal += t.Duration
	}
	timePercent := func(t time.Duration) string {
		if timeTotal == 0 {
			return "0.00"
		}
		return strconv.FormatFloat(
			float64(t)/float64(timeTotal)*100,
			'f', 2, 64,
		)
	}

	fmt.Fprintf(w, "==Timing stats==\n")
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Task", "Time", "Time %"})
	for _, t := range r.Timings {
		tbl.Append([]string{t.Step, t.Duration.String(), timePercent(t.Duration)})
	}
	tbl.Append([]string{"==TOTAL==", timeTotal.String(), "100"})
	tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})
	tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tbl.SetCenterSeparator("|")
	tbl.Render()

	fmt.Fprintln(w)
	if r.IndexFile != "" {
		fmt.Fprintf(w, "Wrote %v exports to %v\n", r.Exported, r.IndexFile)
	} else {
		fmt.Fprintf(w, "Wrote bindings to %v\n", r.OutputDirectory)
	}
}
