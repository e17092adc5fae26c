// Package feeline derives the actual fee charged for a single
// (student, year, component) line from the catalog amount, the entry type,
// and the ad-hoc discount/addition entered during admission.
//
// Every function here is pure; persistence happens only when the admission
// is issued.
package feeline

import (
	"errors"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes regular admissions from lateral entrants.
type EntryType string

const (
	EntryRegular EntryType = "regular"
	EntryLateral EntryType = "lateral"
)

// Component codes with special computation rules.
const (
	CodeTuition   = "TUITION"
	CodeAdmission = "ADMISSION"
	CodeSecurity  = "SECURITY"
	CodeOther     = "OTHER"
)

var ErrNegativeAdjustment = errors.New("negative_adjustment")

// Line is the computed charge for one fee component in one year.
// PlanAmount is the untouched catalog amount; CourseFee is what the line
// displays, which the lateral waiver forces to zero.
type Line struct {
	ComponentCode string          `json:"component_code"`
	YearNumber    int             `json:"year_number"`
	PlanAmount    decimal.Decimal `json:"plan_amount"`
	CourseFee     decimal.Decimal `json:"course_fee"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	ActualFee     decimal.Decimal `json:"actual_fee"`
	Locked        bool            `json:"locked"`
}

// IsAdditive reports whether the component's adjustment adds to the charge
// instead of discounting it. SECURITY and OTHER collect extra amounts
// (caution money, miscellaneous charges); everything else is discountable.
func IsAdditive(componentCode string) bool {
	return componentCode == CodeSecurity || componentCode == CodeOther
}

// IsWaived reports whether year-1 charges for the component are waived
// outright. Lateral entrants join in year 2; their first-year tuition and
// admission fees are never charged and never adjustable.
func IsWaived(entryType EntryType, yearNumber int, componentCode string) bool {
	if entryType != EntryLateral || yearNumber != 1 {
		return false
	}
	return componentCode == CodeTuition || componentCode == CodeAdmission
}

// Compute derives a fee line from the catalog amount and the user-entered
// adjustment. The adjustment must be >= 0; the subtractive branch floors the
// result at zero, the additive branch has no upper bound, and the lateral
// waiver dominates both.
func Compute(courseFee decimal.Decimal, entryType EntryType, yearNumber int, componentCode string, adjustment decimal.Decimal) (Line, error) {
	if adjustment.IsNegative() {
		return Line{}, ErrNegativeAdjustment
	}

	line := Line{
		ComponentCode: componentCode,
		YearNumber:    yearNumber,
		PlanAmount:    courseFee,
		CourseFee:     courseFee,
		Adjustment:    adjustment,
	}

	if IsWaived(entryType, yearNumber, componentCode) {
		line.CourseFee = decimal.Zero
		line.ActualFee = decimal.Zero
		line.Adjustment = decimal.Zero
		line.Locked = true
		return line, nil
	}

	if IsAdditive(componentCode) {
		line.ActualFee = courseFee.Add(adjustment)
		return line, nil
	}

	actual := courseFee.Sub(adjustment)
	if actual.IsNegative() {
		actual = decimal.Zero
	}
	line.ActualFee = actual
	return line, nil
}

// RecomputeDraft re-derives every line of an unsaved admission draft after
// the entry type toggles. Adjustments previously entered on lines that
// become waived are dropped; all other lines keep their adjustment input.
func RecomputeDraft(lines []Line, entryType EntryType) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		adjustment := l.Adjustment
		if l.Locked {
			// A previously-waived line carries no adjustment to restore;
			// the input was disabled and its value cleared.
			adjustment = decimal.Zero
		}
		recomputed, err := Compute(l.PlanAmount, entryType, l.YearNumber, l.ComponentCode, adjustment)
		if err != nil {
			return nil, err
		}
		out = append(out, recomputed)
	}
	return out, nil
}
