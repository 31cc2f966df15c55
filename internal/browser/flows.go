package browser

import (
	"context"
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/adjustment"
	"github.com/stockops/adjustment-e2e/internal/cascade"
	"github.com/stockops/adjustment-e2e/internal/dataset"
	"github.com/stockops/adjustment-e2e/internal/poll"
)

// Selectors of the adjustment list and form
const (
	ListTable = `[data-cy="inventoryAdjustmentListTable"]`
	ListBody  = ListTable + " tbody"
	ListRows  = ListBody + " tr.ant-table-row"

	ProductTable = `[data-cy="productTable"]`
	ProductRows  = ProductTable + " tbody tr.ant-table-row"

	OptionModal = `[data-cy="productOptionModal"]`
	OptionTable = `[data-cy="productOptionTable"]`
	OptionBody  = OptionTable + " tbody"
	OptionRows  = OptionBody + " tr.ant-table-row"

	AddNewButton     = `[data-cy=buttonAddNew]`
	SubmitButton     = `[data-cy=submit-button]`
	ConfirmButton    = `[data-cy="confirm-button"]`
	AddProductButton = `[data-cy="buttonAddProduct"]`
	ModalOKButton    = `[data-cy="modalButtonOk"]`
	DownloadButton   = `[data-cy="downloadButton"]`

	ListPagination   = "myPagination"
	OptionPagination = "productOptionPagination"
)

// Product table columns
const (
	currentQtyColumn = 6
	newQtyColumn     = 7
)

var detailURL = regexp.MustCompile(regexp.QuoteMeta(adjustment.DetailRoute) + `([/?#]|$)`)

// OpenList visits the adjustment list and waits for its table to load
func (p *Page) OpenList() error {
	if err := p.Visit(adjustment.ListRoute); err != nil {
		return err
	}
	if err := p.WaitVerify(); err != nil {
		return err
	}
	if err := p.ShouldExist(ListTable); err != nil {
		return err
	}
	return p.WaitTableLoading(ListTable)
}

// OpenRegistration clicks Add New and waits for the empty form
func (p *Page) OpenRegistration() error {
	if err := p.Locator(AddNewButton).Click(); err != nil {
		return fmt.Errorf("failed to click Add New: %w", err)
	}
	return p.waitDetail()
}

// OpenFirstDetail follows the document link of the first list row
func (p *Page) OpenFirstDetail() error {
	if err := p.Cell(ListRows, 0, 1).Locator("a").Click(); err != nil {
		return fmt.Errorf("failed to open first adjustment: %w", err)
	}
	return p.waitDetail()
}

func (p *Page) waitDetail() error {
	if err := p.WaitForURL(detailURL, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(millis(p.cfg.NavigationTimeout)),
	}); err != nil {
		return fmt.Errorf("did not reach %s: %w", adjustment.DetailRoute, err)
	}
	return p.WaitVerify()
}

// ExpectDetailPage checks the heading and submit button of the form page
func (p *Page) ExpectDetailPage() error {
	if !adjustment.IsDetailURL(p.URL()) {
		return fmt.Errorf("url %s is not the adjustment form", p.URL())
	}
	if err := p.ShouldHaveTitle(adjustment.DetailTitle); err != nil {
		return err
	}
	return p.ShouldHaveText(SubmitButton, adjustment.SubmitLabel)
}

// ExpectBackOnList waits until the app returns to the adjustment list
func (p *Page) ExpectBackOnList() error {
	return p.WaitURLContains(adjustment.ListRoute, p.cfg.NavigationTimeout)
}

// ExpectStillOnForm asserts no navigation away from the form happened
func (p *Page) ExpectStillOnForm() error {
	if !adjustment.IsDetailURL(p.URL()) {
		return fmt.Errorf("left the adjustment form for %s", p.URL())
	}
	return nil
}

// ChooseWarehouse searches code, picks the first match and waits for the
// linked name to resolve. With virtual it also picks the first virtual
// warehouse. The returned model holds the values the selects rendered.
func (p *Page) ChooseWarehouse(code string, virtual bool) (*cascade.Warehouse, error) {
	virtuals := p.Intercept(dataset.VirtualWarehouses)

	if err := p.SearchSelect(string(cascade.FieldCode), code); err != nil {
		return nil, err
	}
	if _, err := p.PickOption(string(cascade.FieldCode), 0); err != nil {
		return nil, err
	}
	if _, err := virtuals.Wait(); err != nil {
		return nil, err
	}

	picked, err := p.WaitSelection(string(cascade.FieldCode))
	if err != nil {
		return nil, err
	}
	name, err := p.WaitSelection(string(cascade.FieldName))
	if err != nil {
		return nil, fmt.Errorf("warehouse name never resolved for %q: %w", picked, err)
	}

	w := &cascade.Warehouse{}
	w.SelectCode(picked)
	if err := w.Resolve(name); err != nil {
		return nil, err
	}

	if !virtual {
		return w, nil
	}
	if err := p.OpenSelect(string(cascade.FieldVirtual)); err != nil {
		return nil, err
	}
	if _, err := p.PickOption(string(cascade.FieldVirtual), 0); err != nil {
		return nil, err
	}
	id, err := p.WaitSelection(string(cascade.FieldVirtual))
	if err != nil {
		return nil, err
	}
	if err := w.SelectVirtual(id); err != nil {
		return nil, err
	}
	p.log.Debug().Str("code", picked).Str("name", name).Str("virtual", id).Msg("warehouse chosen")
	return w, nil
}

func (p *Page) warehouseView() (cascade.View, error) {
	v := cascade.View{
		Selected: make(map[cascade.Field]string, len(cascade.Fields)),
		Shown:    make(map[cascade.Field]string, len(cascade.Fields)),
		Disabled: make(map[cascade.Field]bool, len(cascade.Fields)),
	}
	for _, f := range cascade.Fields {
		id := string(f)
		var err error
		if v.Selected[f], err = p.SelectionItemText(id); err != nil {
			return v, err
		}
		if v.Shown[f], err = p.SelectorText(id); err != nil {
			return v, err
		}
		if v.Disabled[f], err = p.IsDisabled(id); err != nil {
			return v, err
		}
	}
	return v, nil
}

// ExpectWarehouse polls until every warehouse select renders what the model
// holds: the same value, or the placeholder when empty, and the same
// disabled state.
func (p *Page) ExpectWarehouse(w *cascade.Warehouse) error {
	var mismatch error
	err := poll.Until(context.Background(), pollInterval, p.cfg.DefaultTimeout, func(context.Context) (bool, error) {
		v, err := p.warehouseView()
		if err != nil {
			return false, err
		}
		mismatch = w.Check(v)
		return mismatch == nil, nil
	})
	return withCause(err, mismatch)
}

// ExpectFieldErrors checks the required marker of every warehouse field
// against the model's errors.
func (p *Page) ExpectFieldErrors(w *cascade.Warehouse) error {
	for _, f := range cascade.Fields {
		if err := p.ExpectFieldError(string(f), w.HasError(f)); err != nil {
			return err
		}
	}
	return nil
}

// OpenProductOptions opens the product picker and waits for its options
func (p *Page) OpenProductOptions() error {
	if _, err := p.ExpectDataset(dataset.ProductOptions, func() error {
		return p.Locator(AddProductButton).Click()
	}); err != nil {
		return fmt.Errorf("product options did not load: %w", err)
	}
	if err := p.Locator(OptionModal).WaitFor(); err != nil {
		return fmt.Errorf("product option dialog did not open: %w", err)
	}
	return p.WaitTableLoading(OptionModal)
}

// AddProducts picks the option rows at indices into the product table
func (p *Page) AddProducts(indices ...int) error {
	if err := p.OpenProductOptions(); err != nil {
		return err
	}
	if err := p.SelectRows(indices, OptionBody); err != nil {
		return err
	}
	if err := p.Locator(ModalOKButton).Click(); err != nil {
		return fmt.Errorf("failed to confirm product options: %w", err)
	}
	return p.Locator(ProductRows).First().WaitFor()
}

// AdjustQuantity types the current quantity of product row row plus delta
// into its new-quantity input and returns the typed value.
func (p *Page) AdjustQuantity(row int, delta int64) (string, error) {
	current, err := p.Cell(ProductRows, row, currentQtyColumn).TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read quantity of product row %d: %w", row, err)
	}
	next := adjustment.NextQuantity(current, delta)
	if err := p.Cell(ProductRows, row, newQtyColumn).Locator("input").Fill(next); err != nil {
		return "", fmt.Errorf("failed to enter quantity of product row %d: %w", row, err)
	}
	return next, nil
}

// ProductLines reads the product table back into the line model
func (p *Page) ProductLines() ([]adjustment.ProductLine, error) {
	header, err := p.Locator(ProductTable + " thead tr th").AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to read product table header: %w", err)
	}
	rows, err := p.RowCells(ProductRows)
	if err != nil {
		return nil, err
	}
	lines := make([]adjustment.ProductLine, 0, len(rows))
	for i, cells := range rows {
		qty, err := p.Cell(ProductRows, i, newQtyColumn).Locator("input").InputValue()
		if err != nil {
			return nil, fmt.Errorf("failed to read quantity input of product row %d: %w", i, err)
		}
		lines = append(lines, adjustment.LineFromRow(header, cells, qty))
	}
	return lines, nil
}

// Submit clicks the form's submit button
func (p *Page) Submit() error {
	if err := p.Locator(SubmitButton).Click(); err != nil {
		return fmt.Errorf("failed to submit: %w", err)
	}
	return nil
}
