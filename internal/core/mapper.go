package core

import (
	"strconv"
	"strings"
)

// Column positions in the Sales sheet. Positional, 0-indexed; the sheet has
// no header-name binding at runtime, so these must not be reordered.
const (
	colMemberID = iota
	colCustomerName
	colCustomerEmail
	colSaleItemID
	colPaymentCategory
	colPaymentDate
	colPaymentValue
	colPaidInCredits
	colPaymentVAT
	colPaymentItem
	colPaymentMethod
	colPaymentStatus
	colTransactionID
	colToken
	colSoldBy
	colSaleReference
	colLocation
	colProduct
	colCategory
	colHostID
	colMRPPreTax
	colMRPPostTax
	colDiscountAmount
	colDiscountPercent
	colMembershipType
)

// MapRow converts one raw row into a SaleRecord. Mapping is total: short
// rows, blank cells and non-numeric monetary cells all map to defaults, never
// to an error. A record whose payment date could not be parsed has a zero
// PaymentDate; callers decide whether to keep it (MapRows drops them).
func MapRow(row []string) SaleRecord {
	paymentValue := coerceFloat(cell(row, colPaymentValue))
	paymentVAT := coerceFloat(cell(row, colPaymentVAT))

	return SaleRecord{
		MemberID:        cell(row, colMemberID),
		CustomerName:    cell(row, colCustomerName),
		CustomerEmail:   cell(row, colCustomerEmail),
		SaleItemID:      cell(row, colSaleItemID),
		PaymentCategory: cell(row, colPaymentCategory),
		PaymentDate:     ParseDate(cell(row, colPaymentDate)),

		PaymentValue:  paymentValue,
		PaidInCredits: coerceFloat(cell(row, colPaidInCredits)),
		PaymentVAT:    paymentVAT,

		PaymentItem:   cell(row, colPaymentItem),
		PaymentMethod: cell(row, colPaymentMethod),
		PaymentStatus: cell(row, colPaymentStatus),
		TransactionID: cell(row, colTransactionID),
		Token:         cell(row, colToken),
		SoldBy:        cellOr(row, colSoldBy, "Unknown"),
		SaleReference: cell(row, colSaleReference),
		Location:      cell(row, colLocation),
		Product:       cell(row, colProduct),
		Category:      cell(row, colCategory),
		HostID:        cell(row, colHostID),

		MRPPreTax:       coerceFloat(cell(row, colMRPPreTax)),
		MRPPostTax:      coerceFloat(cell(row, colMRPPostTax)),
		DiscountAmount:  coerceFloat(cell(row, colDiscountAmount)),
		DiscountPercent: coerceFloat(cell(row, colDiscountPercent)),
		MembershipType:  cell(row, colMembershipType),

		GrossRevenue: paymentValue,
		NetRevenue:   paymentValue - paymentVAT,
	}
}

// MapRows maps a full values matrix: the first row is the header and is
// skipped, and rows whose payment date does not parse are dropped. Fewer than
// two rows is a valid empty dataset.
func MapRows(rows [][]string) []SaleRecord {
	if len(rows) < 2 {
		return []SaleRecord{}
	}
	out := make([]SaleRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := MapRow(row)
		if rec.PaymentDate.IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// cell reads a column by index; missing trailing cells are absent, not an
// error.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellOr(row []string, idx int, fallback string) string {
	if v := cell(row, idx); v != "" {
		return v
	}
	return fallback
}

// coerceFloat parses a monetary cell, defaulting to 0 on anything
// non-numeric. Decimal commas are normalized to dots.
func coerceFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
