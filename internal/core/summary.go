package core

// Summary aggregates the headline metrics for a set of records. The dashboard
// metric cards consume this directly.
type Summary struct {
	Records        int     `json:"records"`
	GrossRevenue   float64 `json:"grossRevenue"`
	NetRevenue     float64 `json:"netRevenue"`
	VAT            float64 `json:"vat"`
	DiscountAmount float64 `json:"discountAmount"`
	PaidInCredits  float64 `json:"paidInMoneyCredits"`
}

// Summarize computes totals over records in a single pass.
func Summarize(records []SaleRecord) Summary {
	s := Summary{Records: len(records)}
	for _, r := range records {
		s.GrossRevenue += r.GrossRevenue
		s.NetRevenue += r.NetRevenue
		s.VAT += r.PaymentVAT
		s.DiscountAmount += r.DiscountAmount
		s.PaidInCredits += r.PaidInCredits
	}
	return s
}
