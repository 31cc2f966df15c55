package browser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/table"
)

const (
	visibilityModal = `[data-cy="modalVisibility"]`
	visibilityRows  = visibilityModal + ` [data-cy="tableVisibility"] tbody tr.ant-table-row`
)

var stickyCell = regexp.MustCompile(`ant-table-cell-fix-sticky`)

func headerCells(tableSel string) string {
	return tableSel + " thead tr th"
}

func (p *Page) headerCell(tableSel, label string) playwright.Locator {
	return p.Locator(headerCells(tableSel)).Filter(playwright.LocatorFilterOptions{HasText: label}).First()
}

// HeaderLabels returns the non-empty header texts in display order
func (p *Page) HeaderLabels(tableSel string) ([]string, error) {
	texts, err := p.Locator(headerCells(tableSel)).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to read headers of %s: %w", tableSel, err)
	}
	labels := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			labels = append(labels, t)
		}
	}
	return labels, nil
}

// HideColumn clicks the minus icon in the header of label
func (p *Page) HideColumn(tableSel, label string) error {
	if err := p.headerCell(tableSel, label).Locator(".anticon-minus-circle").Click(); err != nil {
		return fmt.Errorf("failed to hide column %q: %w", label, err)
	}
	return nil
}

// PinColumn clicks the pin icon in the header of label
func (p *Page) PinColumn(tableSel, label string) error {
	if err := p.headerCell(tableSel, label).Locator(".anticon-pushpin").Click(); err != nil {
		return fmt.Errorf("failed to pin column %q: %w", label, err)
	}
	return nil
}

// ExpectColumnShown waits until the header of label is present, or gone
func (p *Page) ExpectColumnShown(tableSel, label string, shown bool) error {
	cells := p.Locator(headerCells(tableSel)).Filter(playwright.LocatorFilterOptions{HasText: label})
	var err error
	if shown {
		err = p.expect.Locator(cells.First()).ToBeVisible()
	} else {
		err = p.expect.Locator(cells).ToHaveCount(0)
	}
	if err != nil {
		return fmt.Errorf("column %q shown=%t: %w", label, shown, err)
	}
	return nil
}

// ExpectColumnSticky waits until the header of label is frozen, or not
func (p *Page) ExpectColumnSticky(tableSel, label string, sticky bool) error {
	assertion := p.expect.Locator(p.headerCell(tableSel, label))
	if !sticky {
		assertion = assertion.Not()
	}
	if err := assertion.ToHaveClass(stickyCell); err != nil {
		return fmt.Errorf("column %q sticky=%t: %w", label, sticky, err)
	}
	return nil
}

// OpenColumnVisibility opens the bulk visibility dialog from the selection header
func (p *Page) OpenColumnVisibility(tableSel string) error {
	extra := p.Locator(headerCells(tableSel)).First().Locator(".ant-table-selection-extra")
	if err := extra.Click(); err != nil {
		return fmt.Errorf("failed to open selection menu of %s: %w", tableSel, err)
	}
	if err := p.GetByText("Column Visibility").First().Click(); err != nil {
		return fmt.Errorf("failed to choose column visibility: %w", err)
	}
	if err := p.Locator(visibilityModal).WaitFor(); err != nil {
		return fmt.Errorf("column visibility dialog did not open: %w", err)
	}
	return nil
}

// SetColumnVisibility flips the dialog switch of label when it differs from visible
func (p *Page) SetColumnVisibility(label string, visible bool) error {
	toggle := p.Locator(visibilityRows).
		Filter(playwright.LocatorFilterOptions{HasText: label}).
		First().
		Locator("button.ant-switch")

	class, err := toggle.GetAttribute("class")
	if err != nil {
		return fmt.Errorf("failed to read visibility switch of %q: %w", label, err)
	}
	if hasClass(class, "ant-switch-checked") == visible {
		return nil
	}
	if err := toggle.Click(); err != nil {
		return fmt.Errorf("failed to toggle visibility of %q: %w", label, err)
	}
	return nil
}

// ConfirmColumnVisibility applies the dialog and waits for it to close
func (p *Page) ConfirmColumnVisibility() error {
	if err := p.Locator(visibilityModal).Locator("button.ant-btn-primary").Click(); err != nil {
		return fmt.Errorf("failed to confirm column visibility: %w", err)
	}
	if err := p.Locator(visibilityModal).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateHidden,
	}); err != nil {
		return fmt.Errorf("column visibility dialog did not close: %w", err)
	}
	return nil
}

// ExpectColumns checks the header against the column model: hidden columns
// are gone, visible ones present, and pinned ones sticky.
func (p *Page) ExpectColumns(tableSel string, cols *table.Columns) error {
	for _, col := range cols.Snapshot() {
		if err := p.ExpectColumnShown(tableSel, col.Label, col.Visible); err != nil {
			return err
		}
		if col.Visible && col.Pinned {
			if err := p.ExpectColumnSticky(tableSel, col.Label, true); err != nil {
				return err
			}
		}
	}
	return nil
}
