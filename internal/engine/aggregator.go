package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/godilite/bonus-report/pkg/textnorm"
)

// Field is an identity attribute usable as part of a grouping key.
type Field int

const (
	FieldSite Field = iota
	FieldName
	FieldRole
	FieldHireDate
	FieldTenure
)

func (f Field) value(id Identity) string {
	switch f {
	case FieldSite:
		return id.Site
	case FieldName:
		return id.Name
	case FieldRole:
		return id.Role
	case FieldHireDate:
		return id.HireDate
	case FieldTenure:
		return id.Tenure
	}
	return ""
}

func (f Field) set(id *Identity, v string) {
	switch f {
	case FieldSite:
		id.Site = v
	case FieldName:
		id.Name = v
	case FieldRole:
		id.Role = v
	case FieldHireDate:
		id.HireDate = v
	case FieldTenure:
		id.Tenure = v
	}
}

// IdentityKey lists the identity fields records are grouped by.
type IdentityKey []Field

// DefaultKey groups by name and role.
func DefaultKey() IdentityKey { return IdentityKey{FieldName, FieldRole} }

// tuple is the normalized grouping value, so "Analista" and "ANALISTA" group together.
func (k IdentityKey) tuple(id Identity) []string {
	out := make([]string, len(k))
	for i, f := range k {
		out[i] = textnorm.Normalize(f.value(id))
	}
	return out
}

func (k IdentityKey) project(id Identity) Identity {
	var out Identity
	for _, f := range k {
		f.set(&out, f.value(id))
	}
	return out
}

type group struct {
	tuple  []string
	result AggregatedResult
	notes  map[string]struct{}
	badges map[string]struct{}
	missed map[string]struct{}
}

// Aggregate groups per-month results by identity and sums them into one
// result per analyst. Percentage is recomputed from the sums. An empty key
// falls back to DefaultKey. Groups are returned in key order and carry the
// identity values of their first record.
func Aggregate(results []EvaluationResult, key IdentityKey) []AggregatedResult {
	if len(key) == 0 {
		key = DefaultKey()
	}

	index := make(map[string]*group)
	groups := make([]*group, 0)

	for _, r := range results {
		tuple := key.tuple(r.Identity)
		id := strings.Join(tuple, "\x1f")

		g, ok := index[id]
		if !ok {
			g = &group{
				tuple:  tuple,
				result: AggregatedResult{Identity: key.project(r.Identity)},
				notes:  make(map[string]struct{}),
				badges: make(map[string]struct{}),
				missed: make(map[string]struct{}),
			}
			index[id] = g
			groups = append(groups, g)
		}

		g.result.Goal += r.Goal
		g.result.Received += r.Received
		g.result.Lost += r.Lost
		if r.Month != "" && !slices.Contains(g.result.Months, r.Month) {
			g.result.Months = append(g.result.Months, r.Month)
		}
		if r.Note != "" {
			g.notes[r.Note] = struct{}{}
		}
		if r.Badge != "" {
			g.badges[r.Badge] = struct{}{}
		}
		for _, m := range r.Missed {
			g.missed[fmt.Sprintf("%s (%s)", m, r.Month)] = struct{}{}
		}
	}

	slices.SortFunc(groups, func(a, b *group) int {
		return slices.Compare(a.tuple, b.tuple)
	})

	out := make([]AggregatedResult, 0, len(groups))
	for _, g := range groups {
		res := g.result
		res.Percentage = Percentage(res.Received, res.Goal)
		res.Notes = strings.Join(sortedSet(g.notes), ", ")
		res.Badges = strings.Join(sortedSet(g.badges), " / ")
		res.Missed = sortedSet(g.missed)
		out = append(out, res)
	}
	return out
}

// FromEvaluation lifts a single-month result into the aggregated shape,
// keeping the full identity and the missed labels in evaluation order.
func FromEvaluation(r EvaluationResult) AggregatedResult {
	out := AggregatedResult{
		Identity:   r.Identity,
		Goal:       r.Goal,
		Received:   r.Received,
		Lost:       r.Lost,
		Percentage: r.Percentage,
		Notes:      r.Note,
		Badges:     r.Badge,
		Missed:     slices.Clone(r.Missed),
	}
	if r.Month != "" {
		out.Months = []string{r.Month}
	}
	return out
}

// MissedText joins the missed indicators for display.
func (a AggregatedResult) MissedText() string {
	return strings.Join(a.Missed, ", ")
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
