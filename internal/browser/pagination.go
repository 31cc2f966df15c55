package browser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/pagination"
	"github.com/stockops/adjustment-e2e/internal/poll"
)

var activePage = regexp.MustCompile(`ant-pagination-item-active`)

const openDropdownOptions = `.ant-select-dropdown:not(.ant-select-dropdown-hidden) .rc-virtual-list .ant-select-item-option`

func paginationRoot(id string) string {
	return fmt.Sprintf(`[data-cy="%s"]`, id)
}

// Pagination reads the current state of the pagination widget id.
// DOM nodes are re-queried on every call.
func (p *Page) Pagination(id string) (pagination.Snapshot, error) {
	root := p.Locator(paginationRoot(id))
	snap := pagination.Snapshot{Total: pagination.UnknownTotal}

	items := root.Locator("li.ant-pagination-item")
	n, err := items.Count()
	if err != nil {
		return snap, fmt.Errorf("failed to count page buttons of %s: %w", id, err)
	}
	for i := 0; i < n; i++ {
		b, err := readButton(items.Nth(i))
		if err != nil {
			return snap, err
		}
		snap.Pages = append(snap.Pages, b)
	}

	if snap.Prev, err = readButton(root.Locator("li.ant-pagination-prev")); err != nil {
		return snap, err
	}
	if snap.Next, err = readButton(root.Locator("li.ant-pagination-next")); err != nil {
		return snap, err
	}

	sizeLabel := root.Locator(".ant-pagination-options .ant-select-selection-item")
	if c, _ := sizeLabel.Count(); c > 0 {
		text, err := sizeLabel.First().TextContent()
		if err != nil {
			return snap, fmt.Errorf("failed to read page size of %s: %w", id, err)
		}
		if snap.PageSize, err = pagination.ParsePageSize(text); err != nil {
			return snap, err
		}
	}

	totalText := root.Locator(".ant-pagination-total-text")
	if c, _ := totalText.Count(); c > 0 {
		text, err := totalText.First().TextContent()
		if err != nil {
			return snap, fmt.Errorf("failed to read total of %s: %w", id, err)
		}
		if snap.Total, err = pagination.ParseTotal(text); err != nil {
			return snap, err
		}
	}

	return snap, nil
}

func readButton(l playwright.Locator) (pagination.Button, error) {
	class, err := l.First().GetAttribute("class")
	if err != nil {
		return pagination.Button{}, fmt.Errorf("failed to read pagination button: %w", err)
	}
	label, err := l.First().TextContent()
	if err != nil {
		return pagination.Button{}, fmt.Errorf("failed to read pagination button: %w", err)
	}
	return pagination.Button{
		Label:    strings.TrimSpace(label),
		Active:   hasClass(class, "ant-pagination-item-active"),
		Disabled: hasClass(class, "ant-pagination-disabled"),
	}, nil
}

// CheckPaginationButtons validates the enabled state of every page control
func (p *Page) CheckPaginationButtons(id string) (pagination.Snapshot, error) {
	snap, err := p.Pagination(id)
	if err != nil {
		return snap, err
	}
	return snap, snap.Validate()
}

// CheckTableTotalRow polls until the rows matching rowsSel agree with the
// page size and total shown by pagination id.
func (p *Page) CheckTableTotalRow(rowsSel, id string) error {
	return poll.Until(context.Background(), pollInterval, p.cfg.NetworkTimeout, func(context.Context) (bool, error) {
		snap, err := p.Pagination(id)
		if err != nil {
			return false, err
		}
		n, err := p.RowCount(rowsSel)
		if err != nil {
			return false, err
		}
		if err := snap.CheckRows(n); err != nil {
			return false, err
		}
		return true, nil
	})
}

// GoToPage clicks page button n (1-based)
func (p *Page) GoToPage(id string, n int) error {
	btn := p.Locator(paginationRoot(id)).Locator(fmt.Sprintf("li.ant-pagination-item-%d", n))
	if err := btn.Click(); err != nil {
		return fmt.Errorf("failed to open page %d of %s: %w", n, id, err)
	}
	return p.expect.Locator(btn).ToHaveClass(activePage)
}

// PageSizeOptions lists the page-size choices of pagination id
func (p *Page) PageSizeOptions(id string) ([]string, error) {
	if err := p.openPageSize(id); err != nil {
		return nil, err
	}
	texts, err := p.Locator(openDropdownOptions).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to read page sizes of %s: %w", id, err)
	}
	if err := p.Keyboard().Press("Escape"); err != nil {
		return nil, fmt.Errorf("failed to close page size list: %w", err)
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

// ChoosePageSize selects the page-size option labelled label
func (p *Page) ChoosePageSize(id, label string) error {
	if err := p.openPageSize(id); err != nil {
		return err
	}
	option := p.Locator(openDropdownOptions).Filter(playwright.LocatorFilterOptions{HasText: label}).First()
	if err := option.Click(); err != nil {
		return fmt.Errorf("failed to choose page size %q: %w", label, err)
	}
	return nil
}

func (p *Page) openPageSize(id string) error {
	selector := p.Locator(paginationRoot(id)).Locator(".ant-pagination-options .ant-select-selector")
	if err := selector.Click(); err != nil {
		return fmt.Errorf("failed to open page size list of %s: %w", id, err)
	}
	if err := p.Locator(openDropdownOptions).First().WaitFor(); err != nil {
		return fmt.Errorf("page size list of %s did not open: %w", id, err)
	}
	return nil
}

// WaitRowsReplaced polls until the rows matching rowsSel no longer repeat any
// of before at the same index.
func (p *Page) WaitRowsReplaced(rowsSel string, before []string) error {
	var last error
	err := poll.Until(context.Background(), pollInterval, p.cfg.NetworkTimeout, func(context.Context) (bool, error) {
		after, err := p.RowTexts(rowsSel)
		if err != nil {
			return false, err
		}
		last = pagination.CheckReplaced(before, after)
		return last == nil, nil
	})
	return withCause(err, last)
}
