//go:build e2e

package adjustmentlist

import (
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/adjustment"
	"github.com/stockops/adjustment-e2e/internal/browser"
	"github.com/stockops/adjustment-e2e/internal/export"
)

// TestListRenders checks the list page itself
// Feature: Inventory Adjustment List
//
//	Scenario: Open the list
//	  Given I am logged in
//	  When I visit the inventory adjustment list
//	  Then I should see the title "Inventory Adjustment List"
//	  And the URL should contain the list route
func TestListRenders(t *testing.T) {
	page := openList(t)

	if err := page.ShouldHaveTitle(adjustment.ListTitle); err != nil {
		t.Fatal(err)
	}
	if !adjustment.IsListURL(page.URL()) {
		t.Errorf("Expected URL to contain %s, got %s", adjustment.ListRoute, page.URL())
	}
}

// TestListPagination moves to the second page
// Feature: Inventory Adjustment List
//
//	Scenario: Use pagination
//	  Given the list shows more than one page
//	  When I click page 2
//	  Then the pagination buttons should reflect page 2
//	  And no row should repeat at the same position
func TestListPagination(t *testing.T) {
	page := openList(t)

	snap, err := page.CheckPaginationButtons(browser.ListPagination)
	if err != nil {
		t.Fatalf("Invalid pagination on load: %v", err)
	}
	if len(snap.Pages) < 2 {
		t.Skip("only one page of adjustments")
	}

	before, err := page.RowTexts(browser.ListRows)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	if err := page.GoToPage(browser.ListPagination, 2); err != nil {
		t.Fatal(err)
	}
	if err := page.WaitTableLoading(browser.ListTable); err != nil {
		t.Fatal(err)
	}

	snap, err = page.CheckPaginationButtons(browser.ListPagination)
	if err != nil {
		t.Fatalf("Invalid pagination on page 2: %v", err)
	}
	if current, _ := snap.Current(); current != 2 {
		t.Errorf("Expected page 2 to be active, got %d", current)
	}

	if err := page.WaitRowsReplaced(browser.ListRows, before); err != nil {
		t.Errorf("Expected every row to change after paging: %v", err)
	}
}

// TestListPageSize walks the page-size options
// Feature: Inventory Adjustment List
//
//	Scenario: Change page size
//	  When I choose each of the first three page sizes
//	  Then the pagination buttons should stay consistent
//	  And the number of rows should match the page size and total
func TestListPageSize(t *testing.T) {
	page := openList(t)

	if _, err := page.CheckPaginationButtons(browser.ListPagination); err != nil {
		t.Fatalf("Invalid pagination on load: %v", err)
	}

	options, err := page.PageSizeOptions(browser.ListPagination)
	if err != nil {
		t.Fatal(err)
	}
	if len(options) > 3 {
		options = options[:3]
	}

	for _, label := range options {
		if err := page.ChoosePageSize(browser.ListPagination, label); err != nil {
			t.Fatal(err)
		}
		if err := page.WaitTableLoading(browser.ListTable); err != nil {
			t.Fatal(err)
		}
		if _, err := page.CheckPaginationButtons(browser.ListPagination); err != nil {
			t.Errorf("Invalid pagination with page size %s: %v", label, err)
		}
		if err := page.CheckTableTotalRow(browser.ListRows, browser.ListPagination); err != nil {
			t.Errorf("Row count wrong with page size %s: %v", label, err)
		}
	}
}

// TestListAddNew opens the registration form
// Feature: Inventory Adjustment List
//
//	Scenario: Go to registration
//	  When I click "Add New"
//	  Then I should be on the adjustment form
//	  And I should see the title "Inventory Adjustment"
//	  And the submit button should read "Register"
func TestListAddNew(t *testing.T) {
	page := openList(t)

	if err := page.OpenRegistration(); err != nil {
		t.Fatal(err)
	}
	if err := page.ExpectDetailPage(); err != nil {
		t.Fatal(err)
	}
}

// TestListOpenDetail follows the first row's link
// Feature: Inventory Adjustment List
//
//	Scenario: Go to detail
//	  When I click the document number of the first row
//	  Then I should be on the adjustment form
//	  And I should see the title "Inventory Adjustment"
func TestListOpenDetail(t *testing.T) {
	page := openList(t)

	if err := page.OpenFirstDetail(); err != nil {
		t.Fatal(err)
	}
	if err := page.ExpectDetailPage(); err != nil {
		t.Fatal(err)
	}
}

var downloadSelected = regexp.MustCompile(`^\s*Download\s*$`)

func expectExport(t *testing.T, path string, from, to time.Time) *export.Workbook {
	t.Helper()

	if err := export.MatchFilename(path, export.ListPrefix, from, to); err != nil {
		t.Errorf("Unexpected export name: %v", err)
	}
	wb, err := export.Inspect(path)
	if err != nil {
		t.Fatalf("Export is not a readable workbook: %v", err)
	}
	return wb
}

// TestListDownloadAll exports the whole list
// Feature: Inventory Adjustment List
//
//	Scenario: Download all data
//	  When I click "Download All"
//	  Then the button should show it is loading
//	  And a workbook named "Inventory Adjustment List_<timestamp>.xlsx" should download
//	  And the button should stop loading
func TestListDownloadAll(t *testing.T) {
	page := openList(t)

	trigger := page.Locator(browser.DownloadButton).Filter(playwright.LocatorFilterOptions{HasText: "Download All"})
	from := time.Now()
	path, err := page.Download(trigger, true)
	if err != nil {
		t.Fatal(err)
	}

	wb := expectExport(t, path, from, time.Now())
	t.Logf("exported %d rows from sheet %v", wb.Rows, wb.Sheets)
}

// TestListDownloadSelected exports chosen rows
// Feature: Inventory Adjustment List
//
//	Scenario: Download selected data
//	  Given I select rows 1, 3 and 4
//	  When I click "Download"
//	  Then the button should show it is loading
//	  And a workbook named "Inventory Adjustment List_<timestamp>.xlsx" should download
func TestListDownloadSelected(t *testing.T) {
	page := openList(t)

	if err := page.SelectRows([]int{0, 2, 3}, browser.ListBody); err != nil {
		t.Fatal(err)
	}

	trigger := page.Locator(browser.DownloadButton).Filter(playwright.LocatorFilterOptions{HasText: downloadSelected})
	from := time.Now()
	path, err := page.Download(trigger, true)
	if err != nil {
		t.Fatal(err)
	}

	wb := expectExport(t, path, from, time.Now())
	t.Logf("exported %d rows", wb.Rows)
}

// TestListHideColumns uses the header minus icons
// Feature: Inventory Adjustment List columns
//
//	Scenario: Hide columns
//	  When I click the minus icon of four columns
//	  Then none of them should be in the header
//	  And the remaining columns should keep their order
func TestListHideColumns(t *testing.T) {
	page := openList(t)
	cols := currentColumns(t, page)

	for _, label := range adjustment.ListToggleColumns {
		if err := page.HideColumn(browser.ListTable, label); err != nil {
			t.Fatal(err)
		}
		if err := cols.Hide(label); err != nil {
			t.Fatal(err)
		}
	}

	if err := page.ExpectColumns(browser.ListTable, cols); err != nil {
		t.Error(err)
	}

	labels, err := page.HeaderLabels(browser.ListTable)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(labels, cols.VisibleLabels()) {
		t.Errorf("Expected headers %v, got %v", cols.VisibleLabels(), labels)
	}
}

// TestListColumnVisibility restores hidden columns from the dialog
// Feature: Inventory Adjustment List columns
//
//	Scenario: Show columns again
//	  Given I hid four columns with the minus icon
//	  When I switch them back on in "Column Visibility"
//	  Then every column should be back in its original position
func TestListColumnVisibility(t *testing.T) {
	page := openList(t)
	cols := currentColumns(t, page)
	original := cols.VisibleLabels()

	for _, label := range adjustment.ListToggleColumns {
		if err := page.HideColumn(browser.ListTable, label); err != nil {
			t.Fatal(err)
		}
	}
	for _, label := range adjustment.ListToggleColumns {
		if err := page.ExpectColumnShown(browser.ListTable, label, false); err != nil {
			t.Fatal(err)
		}
	}

	if err := page.OpenColumnVisibility(browser.ListTable); err != nil {
		t.Fatal(err)
	}
	visible := make(map[string]bool, len(adjustment.ListToggleColumns))
	for _, label := range adjustment.ListToggleColumns {
		if err := page.SetColumnVisibility(label, true); err != nil {
			t.Fatal(err)
		}
		visible[label] = true
	}
	if err := page.ConfirmColumnVisibility(); err != nil {
		t.Fatal(err)
	}
	if err := cols.ApplyVisibility(visible); err != nil {
		t.Fatal(err)
	}

	for _, label := range adjustment.ListToggleColumns {
		if err := page.ExpectColumnShown(browser.ListTable, label, true); err != nil {
			t.Error(err)
		}
	}
	labels, err := page.HeaderLabels(browser.ListTable)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(labels, original) {
		t.Errorf("Expected headers %v, got %v", original, labels)
	}
}

// TestListPinColumns freezes the leading columns
// Feature: Inventory Adjustment List columns
//
//	Scenario: Pin columns
//	  Given no column is frozen
//	  When I click the pin icon of "Warehouse Code"
//	  Then every column up to "Warehouse Code" should be sticky
func TestListPinColumns(t *testing.T) {
	page := openList(t)
	cols := currentColumns(t, page)

	for _, label := range adjustment.ListToggleColumns {
		if err := page.ExpectColumnSticky(browser.ListTable, label, false); err != nil {
			t.Fatal(err)
		}
	}

	trigger := adjustment.ListToggleColumns[len(adjustment.ListToggleColumns)-1]
	if err := page.PinColumn(browser.ListTable, trigger); err != nil {
		t.Fatal(err)
	}
	if err := cols.Pin(trigger); err != nil {
		t.Fatal(err)
	}

	pinned := cols.PinnedLabels()
	for _, label := range adjustment.ListToggleColumns {
		if !slices.Contains(pinned, label) {
			t.Errorf("Expected %q to be in the pinned span %v", label, pinned)
		}
	}
	if err := page.ExpectColumns(browser.ListTable, cols); err != nil {
		t.Error(err)
	}
}
