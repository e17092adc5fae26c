package feeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCompute_SubtractiveBranch(t *testing.T) {
	line, err := Compute(d("50000"), EntryRegular, 1, CodeTuition, d("5000"))
	require.NoError(t, err)
	assert.True(t, line.ActualFee.Equal(d("45000")), "actual=%s", line.ActualFee)
	assert.True(t, line.CourseFee.Equal(d("50000")))
	assert.False(t, line.Locked)
}

func TestCompute_SubtractiveFloorsAtZero(t *testing.T) {
	cases := []struct {
		name       string
		courseFee  string
		adjustment string
		want       string
	}{
		{"discount below fee", "10000", "2500", "7500"},
		{"discount equals fee", "10000", "10000", "0"},
		{"discount exceeds fee", "10000", "15000", "0"},
		{"zero fee", "0", "500", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := Compute(d(tc.courseFee), EntryRegular, 2, CodeAdmission, d(tc.adjustment))
			require.NoError(t, err)
			assert.True(t, line.ActualFee.Equal(d(tc.want)), "got %s", line.ActualFee)
		})
	}
}

func TestCompute_AdditiveBranch(t *testing.T) {
	line, err := Compute(d("10000"), EntryRegular, 1, CodeSecurity, d("2000"))
	require.NoError(t, err)
	assert.True(t, line.ActualFee.Equal(d("12000")), "actual=%s", line.ActualFee)

	other, err := Compute(d("300"), EntryLateral, 1, CodeOther, d("700"))
	require.NoError(t, err)
	assert.True(t, other.ActualFee.Equal(d("1000")))
	assert.False(t, other.Locked, "security/other are never waived")
}

func TestCompute_LateralWaiverDominates(t *testing.T) {
	line, err := Compute(d("20000"), EntryLateral, 1, CodeAdmission, d("500"))
	require.NoError(t, err)
	assert.True(t, line.CourseFee.IsZero())
	assert.True(t, line.ActualFee.IsZero())
	assert.True(t, line.Locked)

	// Year 2 of a lateral entrant is charged normally.
	year2, err := Compute(d("20000"), EntryLateral, 2, CodeTuition, d("500"))
	require.NoError(t, err)
	assert.True(t, year2.ActualFee.Equal(d("19500")))
	assert.False(t, year2.Locked)
}

func TestCompute_RejectsNegativeAdjustment(t *testing.T) {
	_, err := Compute(d("1000"), EntryRegular, 1, CodeTuition, d("-1"))
	assert.ErrorIs(t, err, ErrNegativeAdjustment)
}

func TestRecomputeDraft_EntryTypeToggle(t *testing.T) {
	draft := []Line{
		mustCompute(t, "50000", EntryRegular, 1, CodeTuition, "5000"),
		mustCompute(t, "20000", EntryRegular, 1, CodeAdmission, "0"),
		mustCompute(t, "10000", EntryRegular, 1, CodeSecurity, "2000"),
		mustCompute(t, "50000", EntryRegular, 2, CodeTuition, "0"),
	}

	lateral, err := RecomputeDraft(draft, EntryLateral)
	require.NoError(t, err)
	assert.True(t, lateral[0].ActualFee.IsZero())
	assert.True(t, lateral[0].Locked)
	assert.True(t, lateral[1].ActualFee.IsZero())
	assert.True(t, lateral[1].Locked)
	// Security and year-2 lines are untouched by the waiver.
	assert.True(t, lateral[2].ActualFee.Equal(d("12000")))
	assert.True(t, lateral[3].ActualFee.Equal(d("50000")))

	// Toggling back recharges year 1 from the catalog amount; adjustments on
	// waived lines were dropped while the input was disabled.
	regular, err := RecomputeDraft(lateral, EntryRegular)
	require.NoError(t, err)
	assert.True(t, regular[0].ActualFee.Equal(d("50000")), "got %s", regular[0].ActualFee)
	assert.False(t, regular[0].Locked)
	assert.True(t, regular[2].ActualFee.Equal(d("12000")))
}

func TestSortForDisplay(t *testing.T) {
	lines := []Line{
		{ComponentCode: CodeSecurity, YearNumber: 1},
		{ComponentCode: CodeOther, YearNumber: 1},
		{ComponentCode: CodeTuition, YearNumber: 2},
		{ComponentCode: CodeTuition, YearNumber: 1},
		{ComponentCode: CodeAdmission, YearNumber: 1},
	}
	SortForDisplay(lines)

	got := make([]string, 0, len(lines))
	for _, l := range lines {
		got = append(got, l.ComponentCode)
	}
	assert.Equal(t, []string{CodeAdmission, CodeTuition, CodeTuition, CodeOther, CodeSecurity}, got)
	assert.Equal(t, 1, lines[1].YearNumber)
	assert.Equal(t, 2, lines[2].YearNumber)
}

func mustCompute(t *testing.T, courseFee string, entryType EntryType, year int, code, adjustment string) Line {
	t.Helper()
	line, err := Compute(d(courseFee), entryType, year, code, d(adjustment))
	require.NoError(t, err)
	return line
}
