// Package exporter writes a filtered dataset as an XLSX workbook for
// download from the dashboard.
package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/core"
)

const sheetName = "Sales"

var headers = []string{
	"Member ID", "Customer Name", "Customer Email", "Sale Item ID",
	"Payment Category", "Payment Date", "Payment Value", "Paid In Credits",
	"Payment VAT", "Payment Item", "Payment Method", "Payment Status",
	"Transaction ID", "Sold By", "Sale Reference", "Location", "Product",
	"Category", "Membership Type", "Gross Revenue", "Net Revenue",
}

// WriteXLSX streams records as a single-sheet workbook.
func WriteXLSX(w io.Writer, records []core.SaleRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		row := []any{
			r.MemberID, r.CustomerName, r.CustomerEmail, r.SaleItemID,
			r.PaymentCategory, r.PaymentDate.ISO(), r.PaymentValue, r.PaidInCredits,
			r.PaymentVAT, r.PaymentItem, r.PaymentMethod, r.PaymentStatus,
			r.TransactionID, r.SoldBy, r.SaleReference, r.Location, r.Product,
			r.Category, r.MembershipType, r.GrossRevenue, r.NetRevenue,
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
