// Package filter narrows an in-memory sales dataset by user-selected
// criteria and derives the distinct-value facets that populate filter choice
// lists. Everything here is pure and synchronous; callers re-run it on every
// dataset or filter change.
package filter

import (
	"salesdash/internal/core"
)

// Spec is the complete set of user-chosen constraints. The zero value is the
// identity filter: an empty slice and an unset bound both mean "no
// constraint", never "match nothing".
type Spec struct {
	PaymentCategories []string  `json:"paymentCategory,omitempty"`
	PaymentStatuses   []string  `json:"paymentStatus,omitempty"`
	PaymentMethods    []string  `json:"paymentMethod,omitempty"`
	SoldBy            []string  `json:"soldBy,omitempty"`
	Locations         []string  `json:"location,omitempty"`
	Products          []string  `json:"product,omitempty"`
	Categories        []string  `json:"category,omitempty"`
	MembershipTypes   []string  `json:"membershipType,omitempty"`
	DateFrom          core.Date `json:"dateFrom,omitempty"`
	DateTo            core.Date `json:"dateTo,omitempty"`
	MinValue          *float64  `json:"minValue,omitempty"`
	MaxValue          *float64  `json:"maxValue,omitempty"`
}

// IsZero reports whether no constraint is active.
func (s Spec) IsZero() bool {
	return len(s.predicates()) == 0
}

type predicate func(core.SaleRecord) bool

// categorical dimensions as data: adding a filter dimension is a new row
// here plus a Spec field, not new control flow.
var dimensions = []struct {
	allowed func(Spec) []string
	value   func(core.SaleRecord) string
}{
	{func(s Spec) []string { return s.PaymentCategories }, func(r core.SaleRecord) string { return r.PaymentCategory }},
	{func(s Spec) []string { return s.PaymentStatuses }, func(r core.SaleRecord) string { return r.PaymentStatus }},
	{func(s Spec) []string { return s.PaymentMethods }, func(r core.SaleRecord) string { return r.PaymentMethod }},
	{func(s Spec) []string { return s.SoldBy }, func(r core.SaleRecord) string { return r.SoldBy }},
	{func(s Spec) []string { return s.Locations }, func(r core.SaleRecord) string { return r.Location }},
	{func(s Spec) []string { return s.Products }, func(r core.SaleRecord) string { return r.Product }},
	{func(s Spec) []string { return s.Categories }, func(r core.SaleRecord) string { return r.Category }},
	{func(s Spec) []string { return s.MembershipTypes }, func(r core.SaleRecord) string { return r.MembershipType }},
}

// predicates builds the active predicate list: one membership check per
// constrained categorical dimension, plus optional date and value ranges.
func (s Spec) predicates() []predicate {
	var preds []predicate

	for _, dim := range dimensions {
		allowed := dim.allowed(s)
		if len(allowed) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(allowed))
		for _, v := range allowed {
			set[v] = struct{}{}
		}
		value := dim.value
		preds = append(preds, func(r core.SaleRecord) bool {
			v := value(r)
			if v == "" {
				// An absent value never matches an active constraint.
				return false
			}
			_, ok := set[v]
			return ok
		})
	}

	if !s.DateFrom.IsZero() || !s.DateTo.IsZero() {
		from, to := s.DateFrom, s.DateTo
		preds = append(preds, func(r core.SaleRecord) bool {
			d := r.PaymentDate
			if d.IsZero() {
				return false
			}
			// Inclusive bounds, compared as dates, not strings.
			if !from.IsZero() && d.Before(from.Time) {
				return false
			}
			if !to.IsZero() && d.After(to.Time) {
				return false
			}
			return true
		})
	}

	if s.MinValue != nil || s.MaxValue != nil {
		min, max := s.MinValue, s.MaxValue
		preds = append(preds, func(r core.SaleRecord) bool {
			if min != nil && r.PaymentValue < *min {
				return false
			}
			if max != nil && r.PaymentValue > *max {
				return false
			}
			return true
		})
	}

	return preds
}

// Apply returns the records satisfying every active predicate, in their
// original order. The input slice is never mutated.
func Apply(records []core.SaleRecord, spec Spec) []core.SaleRecord {
	preds := spec.predicates()
	if len(preds) == 0 {
		out := make([]core.SaleRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]core.SaleRecord, 0, len(records))
	for _, r := range records {
		pass := true
		for _, p := range preds {
			if !p(r) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}
