package core

import "testing"

func fullRow() []string {
	return []string{
		"M-1",                // member id
		"Ada Lovelace",       // customer name
		"ada@example.com",    // customer email
		"SI-9",               // sale item id
		"Membership",         // payment category
		"05/03/2024",         // payment date
		"120.50",             // payment value
		"10",                 // paid-in credits
		"20.50",              // payment VAT
		"Gold plan",          // payment item
		"card",               // payment method
		"paid",               // payment status
		"TX-77",              // transaction id
		"tok_abc",            // token
		"Grace",              // sold by
		"REF-1",              // sale reference
		"Downtown",           // location
		"Gold",               // product
		"Memberships",        // category
		"H-3",                // host id
		"150",                // MRP pre-tax
		"180",                // MRP post-tax
		"29.50",              // discount amount
		"16.4",               // discount percentage
		"Annual",             // membership type
	}
}

func TestMapRowFull(t *testing.T) {
	r := MapRow(fullRow())

	if r.MemberID != "M-1" || r.CustomerName != "Ada Lovelace" {
		t.Fatalf("identity fields: %+v", r)
	}
	if r.PaymentDate.ISO() != "2024-03-05" {
		t.Fatalf("payment date: %q", r.PaymentDate.ISO())
	}
	if r.PaymentValue != 120.50 || r.PaymentVAT != 20.50 {
		t.Fatalf("monetary fields: value=%v vat=%v", r.PaymentValue, r.PaymentVAT)
	}
	if r.GrossRevenue != r.PaymentValue {
		t.Fatalf("gross revenue %v != payment value %v", r.GrossRevenue, r.PaymentValue)
	}
	if r.NetRevenue != r.PaymentValue-r.PaymentVAT {
		t.Fatalf("net revenue %v, want %v", r.NetRevenue, r.PaymentValue-r.PaymentVAT)
	}
	if r.SoldBy != "Grace" || r.MembershipType != "Annual" {
		t.Fatalf("trailing fields: %+v", r)
	}
}

func TestMapRowShortRow(t *testing.T) {
	// Only the first three cells present; everything else defaults.
	r := MapRow([]string{"M-2", "Bob", "bob@example.com"})

	if r.MemberID != "M-2" {
		t.Fatalf("member id: %q", r.MemberID)
	}
	if !r.PaymentDate.IsZero() {
		t.Fatalf("expected zero date, got %q", r.PaymentDate.ISO())
	}
	if r.PaymentValue != 0 || r.PaymentVAT != 0 || r.NetRevenue != 0 || r.DiscountPercent != 0 {
		t.Fatalf("numeric defaults: %+v", r)
	}
	if r.SoldBy != "Unknown" {
		t.Fatalf("sold-by default: %q", r.SoldBy)
	}
	if r.Location != "" || r.Product != "" {
		t.Fatalf("string defaults: %+v", r)
	}
}

func TestMapRowNonNumericCells(t *testing.T) {
	row := fullRow()
	row[colPaymentValue] = "n/a"
	row[colPaymentVAT] = "-"
	r := MapRow(row)
	if r.PaymentValue != 0 || r.PaymentVAT != 0 {
		t.Fatalf("non-numeric cells must coerce to 0: %+v", r)
	}
	if r.NetRevenue != 0 || r.GrossRevenue != 0 {
		t.Fatalf("derived fields must use coerced values: %+v", r)
	}
}

func TestMapRowDecimalComma(t *testing.T) {
	row := fullRow()
	row[colPaymentValue] = "99,90"
	r := MapRow(row)
	if r.PaymentValue != 99.90 {
		t.Fatalf("decimal comma: got %v", r.PaymentValue)
	}
}

func TestMapRowsSkipsHeaderAndBadDates(t *testing.T) {
	header := []string{"Member ID", "Name", "Email"}
	good := fullRow()
	bad := fullRow()
	bad[colPaymentDate] = "13/45/2024"

	recs := MapRows([][]string{header, good, bad, good})
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.PaymentDate.IsZero() {
			t.Fatalf("zero-date record leaked: %+v", r)
		}
	}
}

func TestMapRowsFewerThanTwoRows(t *testing.T) {
	if got := MapRows(nil); len(got) != 0 {
		t.Fatalf("nil rows: got %d records", len(got))
	}
	if got := MapRows([][]string{{"header only"}}); len(got) != 0 {
		t.Fatalf("header-only: got %d records", len(got))
	}
}

func TestSummarize(t *testing.T) {
	a := MapRow(fullRow())
	b := MapRow(fullRow())
	s := Summarize([]SaleRecord{a, b})
	if s.Records != 2 {
		t.Fatalf("records: %d", s.Records)
	}
	if s.GrossRevenue != a.GrossRevenue*2 || s.NetRevenue != a.NetRevenue*2 {
		t.Fatalf("totals: %+v", s)
	}
	if s.VAT != 41.0 {
		t.Fatalf("vat total: %v", s.VAT)
	}

	empty := Summarize(nil)
	if empty.Records != 0 || empty.GrossRevenue != 0 {
		t.Fatalf("empty summary: %+v", empty)
	}
}
