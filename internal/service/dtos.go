package service

import "github.com/godilite/bonus-report/internal/engine"

const (
	StatusExcellent = "Excellent"
	StatusOk        = "Ok"
	StatusAttention = "Attention"
)

// Query selects a period and narrows the resulting rows.
type Query struct {
	Period string
	Filter Filter
	// OnMonthLoaded, when set, is called once per month after it is loaded.
	// Calls may come from several goroutines.
	OnMonthLoaded func(month string)
}

// Filter narrows report rows. Empty fields match everything.
type Filter struct {
	Name   string
	Site   string
	Tenure string
}

type Row struct {
	engine.AggregatedResult
	Status string
}

type Summary struct {
	TotalGoal  float64
	Received   float64
	Lost       float64
	Fulfilment float64
	Analysts   int
}

// FilterOptions are the distinct values offered for the site and tenure filters.
type FilterOptions struct {
	Sites   []string
	Tenures []string
}

type Report struct {
	Period  string
	Quarter bool
	Months  []string
	Rows    []Row
	Summary Summary
	Options FilterOptions
}

// Top returns the first n rows. Rows are sorted by percentage descending.
func (r Report) Top(n int) []Row {
	if n <= 0 || n >= len(r.Rows) {
		return r.Rows
	}
	return r.Rows[:n]
}

// StatusFor tags a fulfilment percentage.
func StatusFor(pct float64) string {
	switch {
	case pct >= 95:
		return StatusExcellent
	case pct < 80:
		return StatusAttention
	default:
		return StatusOk
	}
}
