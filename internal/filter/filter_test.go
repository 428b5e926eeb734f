package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/core"
)

func rec(id, source, location, date string, value float64) core.SaleRecord {
	return core.SaleRecord{
		MemberID:        id,
		PaymentCategory: source,
		Location:        location,
		PaymentDate:     core.ParseDate(date),
		PaymentValue:    value,
		PaymentStatus:   "paid",
	}
}

func testDataset() []core.SaleRecord {
	return []core.SaleRecord{
		rec("1", "Instagram", "Downtown", "01/01/2024", 100),
		rec("2", "Referral", "Uptown", "15/01/2024", 250),
		rec("3", "Facebook", "Downtown", "31/01/2024", 50),
		rec("4", "Instagram", "Uptown", "10/02/2024", 400),
		rec("5", "", "Downtown", "20/02/2024", 75),
	}
}

func TestApplyIdentity(t *testing.T) {
	ds := testDataset()
	got := Apply(ds, Spec{})
	require.Len(t, got, len(ds))
	assert.Equal(t, ds, got)
	assert.True(t, Spec{}.IsZero())
}

func TestApplyMultiValueOR(t *testing.T) {
	got := Apply(testDataset(), Spec{PaymentCategories: []string{"Instagram", "Referral"}})
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Contains(t, []string{"Instagram", "Referral"}, r.PaymentCategory)
	}
}

func TestApplyANDAcrossDimensions(t *testing.T) {
	spec := Spec{
		PaymentCategories: []string{"Instagram"},
		Locations:         []string{"Uptown"},
	}
	got := Apply(testDataset(), spec)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].MemberID)

	// Sequential application of the same constraints is equivalent.
	step1 := Apply(testDataset(), Spec{PaymentCategories: []string{"Instagram"}})
	step2 := Apply(step1, Spec{Locations: []string{"Uptown"}})
	assert.Equal(t, got, step2)
}

func TestApplyAbsentValueFailsActiveConstraint(t *testing.T) {
	// Record 5 has an empty payment category; an active constraint on that
	// dimension must exclude it even though "" is not in the allowed set.
	got := Apply(testDataset(), Spec{PaymentCategories: []string{"Instagram", "Facebook", ""}})
	for _, r := range got {
		assert.NotEqual(t, "5", r.MemberID)
	}
}

func TestApplyDateRangeInclusiveBounds(t *testing.T) {
	spec := Spec{
		DateFrom: core.NewDate(2024, 1, 1),
		DateTo:   core.NewDate(2024, 1, 31),
	}
	got := Apply(testDataset(), spec)
	require.Len(t, got, 3)
	// Boundary dates (1st and 31st) are both included.
	assert.Equal(t, "1", got[0].MemberID)
	assert.Equal(t, "3", got[2].MemberID)
}

func TestApplyDateRangeOpenEnded(t *testing.T) {
	onlyFrom := Apply(testDataset(), Spec{DateFrom: core.NewDate(2024, 2, 1)})
	require.Len(t, onlyFrom, 2)

	onlyTo := Apply(testDataset(), Spec{DateTo: core.NewDate(2024, 1, 15)})
	require.Len(t, onlyTo, 2)
}

func TestApplyValueRange(t *testing.T) {
	min, max := 75.0, 250.0
	got := Apply(testDataset(), Spec{MinValue: &min, MaxValue: &max})
	require.Len(t, got, 3)
	for _, r := range got {
		assert.GreaterOrEqual(t, r.PaymentValue, min)
		assert.LessOrEqual(t, r.PaymentValue, max)
	}

	// Inclusive on both ends: a record exactly at the bound passes.
	exact := 100.0
	bounded := Apply(testDataset(), Spec{MinValue: &exact, MaxValue: &exact})
	require.Len(t, bounded, 1)
	assert.Equal(t, "1", bounded[0].MemberID)
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply(testDataset(), Spec{Locations: []string{"Downtown"}})
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].MemberID)
	assert.Equal(t, "3", got[1].MemberID)
	assert.Equal(t, "5", got[2].MemberID)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	ds := testDataset()
	_ = Apply(ds, Spec{PaymentCategories: []string{"Instagram"}})
	assert.Equal(t, testDataset(), ds)
}
