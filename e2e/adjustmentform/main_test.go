//go:build e2e

package adjustmentform

import (
	"os"
	"testing"

	"github.com/stockops/adjustment-e2e/internal/browser"
	"github.com/stockops/adjustment-e2e/internal/cascade"
	"github.com/stockops/adjustment-e2e/internal/dataset"
)

var suite *browser.Suite

// TestMain launches one browser for the form scenarios and logs in once
func TestMain(m *testing.M) {
	var err error
	suite, err = browser.NewSuite("adjustmentform")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	suite.Close()
	os.Exit(code)
}

func openList(t *testing.T) *browser.Page {
	t.Helper()

	page := suite.NewPage(t)
	if err := page.OpenList(); err != nil {
		t.Fatalf("Failed to open adjustment list: %v", err)
	}
	return page
}

// openForm goes from the list to an empty registration form whose warehouse
// options have loaded.
func openForm(t *testing.T) *browser.Page {
	t.Helper()

	page := openList(t)
	warehouses := page.Intercept(dataset.Warehouses)
	if err := page.OpenRegistration(); err != nil {
		t.Fatal(err)
	}
	if _, err := warehouses.Wait(); err != nil {
		t.Fatalf("Warehouse options never loaded: %v", err)
	}
	return page
}

// openDetail goes from the list to the first existing adjustment
func openDetail(t *testing.T) *browser.Page {
	t.Helper()

	page := openList(t)
	warehouses := page.Intercept(dataset.Warehouses)
	if err := page.OpenFirstDetail(); err != nil {
		t.Fatal(err)
	}
	if _, err := warehouses.Wait(); err != nil {
		t.Fatalf("Warehouse options never loaded: %v", err)
	}
	return page
}

// chooseWarehouse fills the warehouse chain with the configured code
func chooseWarehouse(t *testing.T, page *browser.Page, virtual bool) *cascade.Warehouse {
	t.Helper()

	w, err := page.ChooseWarehouse(suite.Config.WarehouseCode, virtual)
	if err != nil {
		t.Fatalf("Failed to choose warehouse %s: %v", suite.Config.WarehouseCode, err)
	}
	return w
}
