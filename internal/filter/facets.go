package filter

import "salesdash/internal/core"

// FacetSet holds, per filterable dimension, the distinct non-empty values
// observed in the current dataset. Recomputed wholesale on every dataset
// change; never persisted.
type FacetSet struct {
	PaymentCategories []string `json:"paymentCategories"`
	PaymentStatuses   []string `json:"paymentStatuses"`
	PaymentMethods    []string `json:"paymentMethods"`
	SoldBy            []string `json:"soldBy"`
	Locations         []string `json:"locations"`
	Products          []string `json:"products"`
	Categories        []string `json:"categories"`
	MembershipTypes   []string `json:"membershipTypes"`
}

type facetColumn struct {
	value func(core.SaleRecord) string
	dst   *[]string
}

// ExtractFacets collects distinct values for every dimension in one pass over
// the dataset. Empty values are excluded; first-seen order is preserved.
func ExtractFacets(records []core.SaleRecord) FacetSet {
	fs := FacetSet{
		PaymentCategories: []string{},
		PaymentStatuses:   []string{},
		PaymentMethods:    []string{},
		SoldBy:            []string{},
		Locations:         []string{},
		Products:          []string{},
		Categories:        []string{},
		MembershipTypes:   []string{},
	}
	columns := []facetColumn{
		{func(r core.SaleRecord) string { return r.PaymentCategory }, &fs.PaymentCategories},
		{func(r core.SaleRecord) string { return r.PaymentStatus }, &fs.PaymentStatuses},
		{func(r core.SaleRecord) string { return r.PaymentMethod }, &fs.PaymentMethods},
		{func(r core.SaleRecord) string { return r.SoldBy }, &fs.SoldBy},
		{func(r core.SaleRecord) string { return r.Location }, &fs.Locations},
		{func(r core.SaleRecord) string { return r.Product }, &fs.Products},
		{func(r core.SaleRecord) string { return r.Category }, &fs.Categories},
		{func(r core.SaleRecord) string { return r.MembershipType }, &fs.MembershipTypes},
	}

	seen := make([]map[string]struct{}, len(columns))
	for i := range seen {
		seen[i] = map[string]struct{}{}
	}
	for _, r := range records {
		for i, c := range columns {
			v := c.value(r)
			if v == "" {
				continue
			}
			if _, dup := seen[i][v]; dup {
				continue
			}
			seen[i][v] = struct{}{}
			*c.dst = append(*c.dst, v)
		}
	}
	return fs
}
