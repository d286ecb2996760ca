package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/godilite/bonus-report/internal/service"
	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 48

var textColumns = []string{"Name", "Site", "Tenure", "Goal", "Received", "Lost", "%", "Status", "Missed indicators", "Notes"}

// rightAligned marks numeric columns.
var rightAligned = map[int]bool{3: true, 4: true, 5: true, 6: true}

// WriteText writes the KPI block followed by an aligned table of the first
// top rows (all rows when top <= 0).
func WriteText(w io.Writer, rep service.Report, top int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Bonus report: %s (%s)\n\n", rep.Period, strings.Join(rep.Months, ", "))
	fmt.Fprintf(&b, "Total possible:   %s\n", Money(rep.Summary.TotalGoal))
	fmt.Fprintf(&b, "Received:         %s\n", Money(rep.Summary.Received))
	fmt.Fprintf(&b, "Missed out:       %s\n", Money(rep.Summary.Lost))
	fmt.Fprintf(&b, "Fulfilment:       %s\n", Percent(rep.Summary.Fulfilment))
	fmt.Fprintf(&b, "Analysts:         %d\n\n", rep.Summary.Analysts)

	rows := rep.Top(top)
	if len(rows) == 0 {
		b.WriteString("No analysts match the selected filters.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, textColumns)
	for _, r := range rows {
		cells = append(cells, []string{
			r.Name,
			r.Site,
			r.Tenure,
			Money(r.Goal),
			Money(r.Received),
			Money(r.Lost),
			Percent(r.Percentage),
			r.Status,
			r.MissedText(),
			joinNonEmpty(" / ", r.Badges, r.Notes),
		})
	}

	widths := make([]int, len(textColumns))
	for _, line := range cells {
		for i, c := range line {
			widths[i] = max(widths[i], min(runewidth.StringWidth(c), maxCellWidth))
		}
	}

	for n, line := range cells {
		parts := make([]string, len(line))
		for i, c := range line {
			c = runewidth.Truncate(c, widths[i], "…")
			if rightAligned[i] {
				parts[i] = runewidth.FillLeft(c, widths[i])
			} else {
				parts[i] = runewidth.FillRight(c, widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteByte('\n')
		if n == 0 {
			seps := make([]string, len(widths))
			for i, wd := range widths {
				seps[i] = strings.Repeat("-", wd)
			}
			b.WriteString(strings.Join(seps, "  "))
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
