package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/core"
)

func TestExtractFacetsExcludesEmptyValues(t *testing.T) {
	ds := []core.SaleRecord{
		rec("1", "Instagram", "Downtown", "01/01/2024", 100),
		rec("2", "Referral", "", "02/01/2024", 100),
		rec("3", "", "Uptown", "03/01/2024", 100),
		rec("4", "", "Downtown", "04/01/2024", 100),
	}
	fs := ExtractFacets(ds)
	assert.Equal(t, []string{"Instagram", "Referral"}, fs.PaymentCategories)
	assert.Equal(t, []string{"Downtown", "Uptown"}, fs.Locations)
}

func TestExtractFacetsDeduplicates(t *testing.T) {
	ds := []core.SaleRecord{
		rec("1", "Instagram", "Downtown", "01/01/2024", 100),
		rec("2", "Instagram", "Downtown", "02/01/2024", 100),
		rec("3", "Instagram", "Uptown", "03/01/2024", 100),
	}
	fs := ExtractFacets(ds)
	assert.Equal(t, []string{"Instagram"}, fs.PaymentCategories)
	assert.Equal(t, []string{"Downtown", "Uptown"}, fs.Locations)
	assert.Equal(t, []string{"paid"}, fs.PaymentStatuses)
}

func TestExtractFacetsEmptyDataset(t *testing.T) {
	fs := ExtractFacets(nil)
	require.NotNil(t, fs.PaymentCategories)
	assert.Empty(t, fs.PaymentCategories)
	assert.Empty(t, fs.SoldBy)
	assert.Empty(t, fs.MembershipTypes)
}
