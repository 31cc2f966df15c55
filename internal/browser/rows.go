package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/table"
)

// RowCount counts the rows matching rowsSel
func (p *Page) RowCount(rowsSel string) (int, error) {
	n, err := p.Locator(rowsSel).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", rowsSel, err)
	}
	return n, nil
}

// RowCellTexts returns the text of column col in every row
func (p *Page) RowCellTexts(rowsSel string, col int) ([]string, error) {
	rows := p.Locator(rowsSel)
	n, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", rowsSel, err)
	}
	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, err := rows.Nth(i).Locator("td").Nth(col).TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d column %d: %w", i, col, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

// RowCells returns the cell texts of every row
func (p *Page) RowCells(rowsSel string) ([][]string, error) {
	rows := p.Locator(rowsSel)
	n, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", rowsSel, err)
	}
	cells := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		texts, err := rows.Nth(i).Locator("td").AllTextContents()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", i, err)
		}
		cells = append(cells, texts)
	}
	return cells, nil
}

// RowTexts returns each row's concatenated cell text
func (p *Page) RowTexts(rowsSel string) ([]string, error) {
	cells, err := p.RowCells(rowsSel)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(cells))
	for i, row := range cells {
		texts[i] = strings.Join(row, "")
	}
	return texts, nil
}

// Cell locates column col of row row
func (p *Page) Cell(rowsSel string, row, col int) playwright.Locator {
	return p.Locator(rowsSel).Nth(row).Locator("td").Nth(col)
}

// SelectRows leaves exactly the rows at indices selected in the table body
func (p *Page) SelectRows(indices []int, tbody string) error {
	rows := p.Locator(tbody + " tr.ant-table-row")
	n, err := rows.Count()
	if err != nil {
		return fmt.Errorf("failed to count rows of %s: %w", tbody, err)
	}

	var current []int
	for i := 0; i < n; i++ {
		checked, err := rowCheckbox(rows.Nth(i)).IsChecked()
		if err != nil {
			return fmt.Errorf("failed to read selection of row %d: %w", i, err)
		}
		if checked {
			current = append(current, i)
		}
	}

	plan, err := table.PlanSelection(current, indices, n)
	if err != nil {
		return err
	}

	force := playwright.Bool(true)
	for _, i := range plan.Check {
		if err := rowCheckbox(rows.Nth(i)).Check(playwright.LocatorCheckOptions{Force: force}); err != nil {
			return fmt.Errorf("failed to select row %d: %w", i, err)
		}
	}
	for _, i := range plan.Uncheck {
		if err := rowCheckbox(rows.Nth(i)).Uncheck(playwright.LocatorUncheckOptions{Force: force}); err != nil {
			return fmt.Errorf("failed to deselect row %d: %w", i, err)
		}
	}
	p.log.Debug().Ints("rows", indices).Str("table", tbody).Msg("rows selected")
	return nil
}

func rowCheckbox(row playwright.Locator) playwright.Locator {
	return row.Locator("input.ant-checkbox-input, input[type=checkbox]").First()
}
