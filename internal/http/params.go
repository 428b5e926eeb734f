package http

import (
	"fmt"
	"net/url"
	"strconv"

	"salesdash/internal/core"
	"salesdash/internal/filter"
)

// Query parameter names. Categorical parameters repeat: ?soldBy=A&soldBy=B
// means "A or B".
const (
	paramPaymentCategory = "paymentCategory"
	paramPaymentStatus   = "paymentStatus"
	paramPaymentMethod   = "paymentMethod"
	paramSoldBy          = "soldBy"
	paramLocation        = "location"
	paramProduct         = "product"
	paramCategory        = "category"
	paramMembershipType  = "membershipType"
	paramFrom            = "from"
	paramTo              = "to"
	paramMinValue        = "minValue"
	paramMaxValue        = "maxValue"
)

// filterFromQuery builds a filter spec from request query parameters.
// Absent parameters leave the corresponding constraint inactive.
func filterFromQuery(q url.Values) (filter.Spec, error) {
	spec := filter.Spec{
		PaymentCategories: q[paramPaymentCategory],
		PaymentStatuses:   q[paramPaymentStatus],
		PaymentMethods:    q[paramPaymentMethod],
		SoldBy:            q[paramSoldBy],
		Locations:         q[paramLocation],
		Products:          q[paramProduct],
		Categories:        q[paramCategory],
		MembershipTypes:   q[paramMembershipType],
	}

	var err error
	if spec.DateFrom, err = parseDateParam(q, paramFrom); err != nil {
		return filter.Spec{}, err
	}
	if spec.DateTo, err = parseDateParam(q, paramTo); err != nil {
		return filter.Spec{}, err
	}
	if spec.MinValue, err = parseFloatParam(q, paramMinValue); err != nil {
		return filter.Spec{}, err
	}
	if spec.MaxValue, err = parseFloatParam(q, paramMaxValue); err != nil {
		return filter.Spec{}, err
	}
	return spec, nil
}

func parseDateParam(q url.Values, name string) (core.Date, error) {
	raw := q.Get(name)
	if raw == "" {
		return core.Date{}, nil
	}
	d := core.ParseDate(raw)
	if d.IsZero() {
		return core.Date{}, fmt.Errorf("invalid %s date %q", name, raw)
	}
	return d, nil
}

func parseFloatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s number %q", name, raw)
	}
	return &v, nil
}
