// Package engine computes analyst bonus payouts from monthly indicator
// records and a weighted-indicator table. Everything in it is pure and does
// no I/O.
package engine

// Identity holds the attributes an analyst is known by in the source data.
type Identity struct {
	Name     string
	Role     string
	Site     string
	Tenure   string
	HireDate string
}

// AnalystRecord is one analyst-month row. Goal is NaN when the cell was
// absent or unreadable. Flags holds the raw "met" cell per tracked kind.
type AnalystRecord struct {
	Identity
	Month string
	Goal  float64
	Note  string
	Flags map[Kind]string
}

// EvaluationResult is the bonus outcome of one AnalystRecord.
type EvaluationResult struct {
	Identity
	Month      string
	Goal       float64
	Received   float64
	Lost       float64
	Percentage float64
	Badge      string
	Note       string
	Missed     []string
}

// Eligible reports whether the record passed the eligibility gate.
func (r EvaluationResult) Eligible() bool { return r.Badge == "" }

// AggregatedResult is the outcome of one analyst over a period. Only the
// identity fields used for grouping are populated.
type AggregatedResult struct {
	Identity
	Months     []string
	Goal       float64
	Received   float64
	Lost       float64
	Percentage float64
	Notes      string
	Badges     string
	Missed     []string
}

// Weight is one weight-table entry.
type Weight struct {
	Name     string
	Fraction float64
	kind     Kind
}

// Kind is the indicator kind the entry name resolved to.
func (w Weight) Kind() Kind { return w.kind }

// WeightTable is the ordered, read-only indicator weighting for one role.
type WeightTable struct {
	entries []Weight
}

// NewWeightTable builds a table from entries in the order given, resolving
// each entry name to its indicator kind.
func NewWeightTable(entries ...Weight) WeightTable {
	out := make([]Weight, len(entries))
	for i, e := range entries {
		e.kind = ResolveKind(e.Name)
		out[i] = e
	}
	return WeightTable{entries: out}
}

// Entries returns a copy of the table entries.
func (t WeightTable) Entries() []Weight {
	out := make([]Weight, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t WeightTable) Len() int { return len(t.entries) }

// Sum is the total of all weight fractions.
func (t WeightTable) Sum() float64 {
	var sum float64
	for _, e := range t.entries {
		sum += e.Fraction
	}
	return sum
}
