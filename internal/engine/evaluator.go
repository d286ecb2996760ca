package engine

import (
	"math"

	"github.com/godilite/bonus-report/pkg/textnorm"
)

const (
	BadgeNotEligible = "not eligible this month"
	BadgeLeave       = "leave of absence this month"
)

// leaveTokens mark a leave of absence when found in a normalized note.
var leaveTokens = []string{"LEAVE", "LICEN"}

// Eligibility applies the gate in fixed order: goal first, then note.
// It returns the badge of the first failing check.
func Eligibility(goal float64, note string) (bool, string) {
	if math.IsNaN(goal) || math.IsInf(goal, 0) || goal <= 0 {
		return false, BadgeNotEligible
	}
	for _, token := range leaveTokens {
		if textnorm.Contains(note, token) {
			return false, BadgeLeave
		}
	}
	return true, ""
}

// Percentage is received over goal in percent, 0 when goal is 0.
func Percentage(received, goal float64) float64 {
	if goal == 0 {
		return 0
	}
	return received / goal * 100
}

// Evaluate computes the bonus split of one record. Ineligible records come
// back zeroed with the reason in Badge.
func Evaluate(r AnalystRecord, weights WeightTable) EvaluationResult {
	res := EvaluationResult{
		Identity: r.Identity,
		Month:    r.Month,
		Note:     CleanNote(r.Note),
	}

	ok, badge := Eligibility(r.Goal, r.Note)
	if !ok {
		res.Badge = badge
		return res
	}

	res.Goal = r.Goal
	for _, w := range weights.entries {
		share := r.Goal * w.Fraction
		if r.met(w.kind) {
			res.Received += share
			continue
		}
		res.Lost += share
		res.Missed = append(res.Missed, w.kind.Label())
	}
	res.Percentage = Percentage(res.Received, res.Goal)
	return res
}

// EvaluateAll maps Evaluate over records, preserving order.
func EvaluateAll(records []AnalystRecord, weights WeightTable) []EvaluationResult {
	out := make([]EvaluationResult, 0, len(records))
	for _, r := range records {
		out = append(out, Evaluate(r, weights))
	}
	return out
}

func (r AnalystRecord) met(k Kind) bool {
	if k == PassThrough {
		return true
	}
	cell, ok := r.Flags[k]
	if !ok {
		return true
	}
	return ParseFlag(cell, true)
}
