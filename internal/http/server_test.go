package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salesdash/internal/core"
	"salesdash/internal/dataset"
	"salesdash/internal/filter"
	"salesdash/internal/source/memory"
)

// sheetRow builds a 25-column sheet row with the cells the tests care about.
func sheetRow(id, date, value, vat, soldBy, location, product string) []string {
	row := make([]string, 25)
	row[0] = id
	row[1] = "Customer " + id
	row[4] = "Membership"
	row[5] = date
	row[6] = value
	row[8] = vat
	row[10] = "Card"
	row[11] = "Paid"
	row[14] = soldBy
	row[16] = location
	row[17] = product
	row[18] = "Fitness"
	row[24] = "Monthly"
	return row
}

func testRows() [][]string {
	return [][]string{
		{"Member ID", "Customer Name"},
		sheetRow("M-1", "2024-03-05", "100", "20", "Alice", "Downtown", "Day Pass"),
		sheetRow("M-2", "2024-03-10", "250", "50", "Bob", "Downtown", "Monthly Plan"),
		sheetRow("M-3", "2024-04-01", "80", "16", "Alice", "Harbor", "Day Pass"),
	}
}

func newTestServer(t *testing.T, rows [][]string) (*Server, *memory.Store) {
	t.Helper()
	src := memory.New(rows)
	store := dataset.New(src)
	require.NoError(t, store.Refresh(context.Background()))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", store, logger), src
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRecordsUnfiltered(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/records")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp recordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 3, resp.Matched)
	assert.Len(t, resp.Records, 3)
	assert.Equal(t, uint64(1), resp.Version)
	assert.Equal(t, "M-1", resp.Records[0].MemberID)
	assert.Equal(t, 80.0, resp.Records[0].NetRevenue)
}

func TestRecordsFiltered(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/records?soldBy=Alice&location=Downtown")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp recordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Matched)
	assert.Equal(t, "M-1", resp.Records[0].MemberID)
}

func TestRecordsInvalidFilter(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/records?from=not-a-date")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "from")
}

func TestFacets(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/facets")
	require.Equal(t, http.StatusOK, rec.Code)

	var fs filter.FacetSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fs))
	assert.Equal(t, []string{"Alice", "Bob"}, fs.SoldBy)
	assert.Equal(t, []string{"Downtown", "Harbor"}, fs.Locations)
	assert.Equal(t, []string{"Day Pass", "Monthly Plan"}, fs.Products)
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/summary?soldBy=Alice")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum core.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Records)
	assert.Equal(t, 180.0, sum.GrossRevenue)
	assert.Equal(t, 144.0, sum.NetRevenue)

	// Same query again exercises the cache path and must agree.
	rec = do(t, s, http.MethodGet, "/api/summary?soldBy=Alice")
	var again core.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, sum, again)
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var st dataset.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Loading)
	assert.Equal(t, 3, st.Records)
	assert.Empty(t, st.Error)
}

func TestRefresh(t *testing.T) {
	s, src := newTestServer(t, testRows())

	src.SetRows([][]string{
		{"Member ID"},
		sheetRow("M-9", "2024-05-01", "40", "8", "Cara", "Harbor", "Day Pass"),
	})
	rec := do(t, s, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var st dataset.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Records)
	assert.Equal(t, uint64(2), st.Version)
}

func TestRefreshFailure(t *testing.T) {
	s, src := newTestServer(t, testRows())

	src.FailWith(assert.AnError)
	rec := do(t, s, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The previous dataset must survive a failed refresh.
	rec = do(t, s, http.MethodGet, "/api/records")
	var resp recordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
}

func TestExport(t *testing.T) {
	s, _ := newTestServer(t, testRows())
	rec := do(t, s, http.MethodGet, "/api/export?soldBy=Bob")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "M-2", got)
}
