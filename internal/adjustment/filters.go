package adjustment

import (
	"fmt"
	"strings"
)

// FilterField is an input id in the product option modal
type FilterField string

const (
	FilterProductCode FilterField = "product_code"
	FilterProductName FilterField = "product_name"
	FilterSize        FilterField = "size"
	FilterColor       FilterField = "color"
)

// FilterFields lists the option filters in modal order
var FilterFields = []FilterField{FilterProductCode, FilterProductName, FilterSize, FilterColor}

// Column returns the option table cell index holding the field;
// cell 0 is the selection checkbox.
func (f FilterField) Column() int {
	for i, ff := range FilterFields {
		if ff == f {
			return i + 1
		}
	}
	return -1
}

// dependsOnCode lists filters that need a product code first
func (f FilterField) dependsOnCode() bool {
	return f == FilterSize || f == FilterColor
}

// Filters is the expected state of the product option filters
type Filters struct {
	values map[FilterField]string
}

// NewFilters returns empty filters
func NewFilters() *Filters {
	return &Filters{values: make(map[FilterField]string)}
}

// Enabled reports whether a filter accepts a selection
func (f *Filters) Enabled(field FilterField) bool {
	if field.dependsOnCode() {
		return f.values[FilterProductCode] != ""
	}
	return true
}

// Select chooses a value for a filter
func (f *Filters) Select(field FilterField, value string) error {
	if field.Column() < 0 {
		return fmt.Errorf("unknown filter %q", field)
	}
	if !f.Enabled(field) {
		return fmt.Errorf("filter %s is disabled until a product code is chosen", field)
	}
	f.values[field] = value
	return nil
}

// Clear empties a filter; clearing the product code also clears its dependants
func (f *Filters) Clear(field FilterField) {
	delete(f.values, field)
	if field == FilterProductCode {
		for _, ff := range FilterFields {
			if ff.dependsOnCode() {
				delete(f.values, ff)
			}
		}
	}
}

// Value returns the chosen value, empty if none
func (f *Filters) Value(field FilterField) string {
	return f.values[field]
}

// CheckRows verifies every option row shows value in the field's column.
// rows holds the cell texts of each visible row.
func CheckRows(field FilterField, value string, rows [][]string) error {
	col := field.Column()
	if col < 0 {
		return fmt.Errorf("unknown filter %q", field)
	}
	want := strings.TrimSpace(value)
	for i, cells := range rows {
		if col >= len(cells) {
			return fmt.Errorf("row %d has %d cells, no %s column", i, len(cells), field)
		}
		if got := strings.TrimSpace(cells[col]); got != want {
			return fmt.Errorf("row %d %s = %q, want %q", i, field, got, want)
		}
	}
	return nil
}
