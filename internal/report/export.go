package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/godilite/bonus-report/internal/service"
)

type jsonRow struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Site       string   `json:"site,omitempty"`
	Tenure     string   `json:"tenure,omitempty"`
	HireDate   string   `json:"hire_date,omitempty"`
	Months     []string `json:"months"`
	Goal       float64  `json:"goal"`
	Received   float64  `json:"received"`
	Lost       float64  `json:"lost"`
	Percentage float64  `json:"percentage"`
	Status     string   `json:"status"`
	Badges     string   `json:"badges,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Missed     []string `json:"missed"`
}

type jsonSummary struct {
	TotalGoal  float64 `json:"total_goal"`
	Received   float64 `json:"received"`
	Lost       float64 `json:"lost"`
	Fulfilment float64 `json:"fulfilment"`
	Analysts   int     `json:"analysts"`
}

type jsonReport struct {
	Period  string      `json:"period"`
	Quarter bool        `json:"quarter"`
	Months  []string    `json:"months"`
	Summary jsonSummary `json:"summary"`
	Rows    []jsonRow   `json:"rows"`
}

// WriteJSON writes the report as an indented JSON document.
func WriteJSON(w io.Writer, rep service.Report, top int) error {
	out := jsonReport{
		Period:  rep.Period,
		Quarter: rep.Quarter,
		Months:  rep.Months,
		Summary: jsonSummary(rep.Summary),
		Rows:    []jsonRow{},
	}
	for _, r := range rep.Top(top) {
		missed := r.Missed
		if missed == nil {
			missed = []string{}
		}
		out.Rows = append(out.Rows, jsonRow{
			Name:       r.Name,
			Role:       r.Role,
			Site:       r.Site,
			Tenure:     r.Tenure,
			HireDate:   r.HireDate,
			Months:     r.Months,
			Goal:       r.Goal,
			Received:   r.Received,
			Lost:       r.Lost,
			Percentage: r.Percentage,
			Status:     r.Status,
			Badges:     r.Badges,
			Notes:      r.Notes,
			Missed:     missed,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"name", "role", "site", "tenure", "hire_date", "months",
	"goal", "received", "lost", "percentage", "status", "badges", "notes", "missed",
}

// WriteCSV writes one line per row. Amounts use a dot decimal separator.
func WriteCSV(w io.Writer, rep service.Report, top int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rep.Top(top) {
		line := []string{
			r.Name, r.Role, r.Site, r.Tenure, r.HireDate, joinMonths(r.Months),
			formatFloat(r.Goal), formatFloat(r.Received), formatFloat(r.Lost), formatFloat(r.Percentage),
			r.Status, r.Badges, r.Notes, r.MissedText(),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func joinMonths(months []string) string {
	return strings.Join(months, "|")
}
