//go:build e2e

package adjustmentlist

import (
	"os"
	"testing"

	"github.com/stockops/adjustment-e2e/internal/browser"
	"github.com/stockops/adjustment-e2e/internal/table"
)

var suite *browser.Suite

// TestMain launches one browser for the list scenarios and logs in once
func TestMain(m *testing.M) {
	var err error
	suite, err = browser.NewSuite("adjustmentlist")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	suite.Close()
	os.Exit(code)
}

// openList restores the session and lands on a loaded adjustment list
func openList(t *testing.T) *browser.Page {
	t.Helper()

	page := suite.NewPage(t)
	if err := page.OpenList(); err != nil {
		t.Fatalf("Failed to open adjustment list: %v", err)
	}
	return page
}

// currentColumns builds a column model from the headers on screen
func currentColumns(t *testing.T, page *browser.Page) *table.Columns {
	t.Helper()

	labels, err := page.HeaderLabels(browser.ListTable)
	if err != nil {
		t.Fatalf("Failed to read headers: %v", err)
	}
	return table.NewColumns(labels...)
}
