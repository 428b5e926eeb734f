// Package core holds the sales domain model: the typed record produced from
// one spreadsheet row, calendar-date normalization, and dataset summaries.
package core

// SaleRecord is one fully typed sales transaction mapped from a raw
// spreadsheet row. Records are immutable once mapped; a refresh replaces the
// whole dataset rather than mutating records in place.
type SaleRecord struct {
	MemberID        string `json:"memberId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	SaleItemID      string `json:"saleItemId"`
	PaymentCategory string `json:"paymentCategory"`
	PaymentDate     Date   `json:"paymentDate"`

	PaymentValue  float64 `json:"paymentValue"`
	PaidInCredits float64 `json:"paidInMoneyCredits"`
	PaymentVAT    float64 `json:"paymentVAT"`

	PaymentItem   string `json:"paymentItem"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
	TransactionID string `json:"paymentTransactionId"`
	Token         string `json:"token"`
	SoldBy        string `json:"soldBy"`
	SaleReference string `json:"saleReference"`
	Location      string `json:"calculatedLocation"`
	Product       string `json:"cleanedProduct"`
	Category      string `json:"cleanedCategory"`
	HostID        string `json:"hostId"`

	MRPPreTax       float64 `json:"mrpPreTax"`
	MRPPostTax      float64 `json:"mrpPostTax"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercentage"`
	MembershipType  string  `json:"membershipType"`

	// Derived at mapping time from the coerced values above.
	GrossRevenue float64 `json:"grossRevenue"`
	NetRevenue   float64 `json:"netRevenue"`
}
