// Package source defines the outbound port for fetching raw sales rows and
// the error kinds a fetch can surface.
package source

import (
	"context"
	"fmt"
	"strings"
)

// RowSource fetches the raw values matrix for the sales range. The first row
// is the sheet header; callers map and drop rows downstream.
type RowSource interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

// RowsToStrings flattens a Sheets-style values matrix into trimmed strings.
// Cells can arrive as strings or numbers depending on the sheet formatting.
func RowsToStrings(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows[i] = cells
	}
	return rows
}
