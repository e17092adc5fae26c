package feeline

import "sort"

// Primary components (tuition, admission) are listed before the additional
// group (security, other); within a group lines sort ascending by code.
func isPrimary(componentCode string) bool {
	return !IsAdditive(componentCode)
}

// SortForDisplay orders lines the way the admission wizard and the student
// profile render them.
func SortForDisplay(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		pi, pj := isPrimary(lines[i].ComponentCode), isPrimary(lines[j].ComponentCode)
		if pi != pj {
			return pi
		}
		if lines[i].ComponentCode != lines[j].ComponentCode {
			return lines[i].ComponentCode < lines[j].ComponentCode
		}
		return lines[i].YearNumber < lines[j].YearNumber
	})
}
