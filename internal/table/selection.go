package table

import (
	"fmt"
	"sort"
)

// SelectionPlan lists the row clicks needed to reach a wanted selection
type SelectionPlan struct {
	Check   []int
	Uncheck []int
}

// PlanSelection compares the currently selected rows with the wanted ones.
// Indices are zero-based; rowCount bounds them.
func PlanSelection(current, want []int, rowCount int) (SelectionPlan, error) {
	wanted := make(map[int]bool, len(want))
	for _, i := range want {
		if i < 0 || i >= rowCount {
			return SelectionPlan{}, fmt.Errorf("row index %d out of range [0,%d)", i, rowCount)
		}
		if wanted[i] {
			return SelectionPlan{}, fmt.Errorf("row index %d listed twice", i)
		}
		wanted[i] = true
	}

	selected := make(map[int]bool, len(current))
	for _, i := range current {
		selected[i] = true
	}

	var plan SelectionPlan
	for i := range wanted {
		if !selected[i] {
			plan.Check = append(plan.Check, i)
		}
	}
	for i := range selected {
		if !wanted[i] {
			plan.Uncheck = append(plan.Uncheck, i)
		}
	}
	sort.Ints(plan.Check)
	sort.Ints(plan.Uncheck)
	return plan, nil
}
