package adjustment

import (
	"net/url"
	"strings"
)

// Routes and headings of the adjustment pages
const (
	ListRoute   = "/inventory-control/arrival-purchase-process/inventory-adjustment-list/"
	DetailRoute = "/inventory-control/arrival-purchase-process/inventory-adjustment"

	ListTitle   = "Inventory Adjustment List"
	DetailTitle = "Inventory Adjustment"
	SubmitLabel = "Register"
)

// Column labels the header-action scenarios toggle, in display order
var (
	ListToggleColumns = []string{
		"Inventory Adjustment No",
		"Register PIC",
		"Register Date",
		"Warehouse Code",
	}
	ProductToggleColumns = []string{
		"External Link Loss Detail ID",
		"Product Name",
		"Product Code",
		"Size",
		"Color",
	}
)

// IsListURL reports whether rawURL is the adjustment list
func IsListURL(rawURL string) bool {
	return strings.Contains(path(rawURL), ListRoute)
}

// IsDetailURL reports whether rawURL is the registration or detail page.
// The detail route is a prefix of the list route, so the list is excluded.
func IsDetailURL(rawURL string) bool {
	p := path(rawURL)
	return strings.Contains(p, DetailRoute) && !strings.Contains(p, ListRoute)
}

func path(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
