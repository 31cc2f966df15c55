// Package dataset names the backend dataset routes the UI calls, and matches
// browser request URLs against them.
package dataset

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Endpoint is a dataset route keyed by resource and action
type Endpoint struct {
	Resource string
	Action   string
}

// Routes exercised by the inventory adjustment pages
var (
	Warehouses        = Endpoint{Resource: "stock.warehouse", Action: "search_read"}
	VirtualWarehouses = Endpoint{Resource: "stock.location", Action: "search_read"}
	ProductOptions    = Endpoint{Resource: "stock.quant", Action: "search_read"}
	CreateAdjustment  = Endpoint{Resource: "inventory.adjustment", Action: "create"}
	WriteAdjustment   = Endpoint{Resource: "inventory.adjustment", Action: "write"}
	ConfirmAdjustment = Endpoint{Resource: "inventory.adjustment", Action: "action_confirm_adjustment"}
)

// Path returns the route path, e.g. /dataset/stock.warehouse/search_read/
func (e Endpoint) Path() string {
	return fmt.Sprintf("/dataset/%s/%s/", e.Resource, e.Action)
}

// Regexp matches any absolute URL whose path ends with the route path
func (e Endpoint) Regexp() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(e.Path()) + `(\?.*)?$`)
}

// Matches reports whether rawURL targets the route
func (e Endpoint) Matches(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Path, e.Path())
}

func (e Endpoint) String() string {
	return e.Resource + "/" + e.Action
}

// Parse extracts the dataset route from a request URL
func Parse(rawURL string) (Endpoint, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(parts) - 3; i >= 0; i-- {
		if parts[i] == "dataset" && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return Endpoint{Resource: parts[i+1], Action: parts[i+2]}, nil
		}
	}
	return Endpoint{}, fmt.Errorf("%q is not a dataset route", rawURL)
}
