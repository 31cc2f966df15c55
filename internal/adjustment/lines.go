// Package adjustment holds the client-side rules of the inventory adjustment
// form: product lines, their validation, and the product option filters.
package adjustment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoProducts carries the exact notification text shown for an empty product table
	ErrNoProducts = errors.New("Please enter at least one product to table below")
	// ErrIncompleteLine is returned for a product line with an empty field
	ErrIncompleteLine = errors.New("product line is incomplete")
)

// ProductLine is one row of the product table
type ProductLine struct {
	ProductCode string
	ProductName string
	Size        string
	Color       string
	Quantity    *decimal.Decimal
}

// Complete reports whether every field of the line is filled
func (l ProductLine) Complete() bool {
	return l.ProductCode != "" && l.ProductName != "" && l.Size != "" && l.Color != "" && l.Quantity != nil
}

// Validate applies the submit rules for product lines
func Validate(lines []ProductLine) error {
	if len(lines) == 0 {
		return ErrNoProducts
	}
	for i, l := range lines {
		if !l.Complete() {
			return fmt.Errorf("%w: row %d (%s)", ErrIncompleteLine, i, l.ProductCode)
		}
	}
	return nil
}

// LineFromRow builds a product line from one rendered product-table row.
// header and cells are aligned by column. quantity is the raw value of the
// new-quantity input; blank or non-numeric input leaves Quantity nil.
func LineFromRow(header, cells []string, quantity string) ProductLine {
	var l ProductLine
	for i, label := range header {
		if i >= len(cells) {
			break
		}
		v := strings.TrimSpace(cells[i])
		switch strings.TrimSpace(label) {
		case "Product Code":
			l.ProductCode = v
		case "Product Name":
			l.ProductName = v
		case "Size":
			l.Size = v
		case "Color":
			l.Color = v
		}
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(quantity), ",", "")
	if d, err := decimal.NewFromString(cleaned); err == nil {
		l.Quantity = &d
	}
	return l
}

// ParseQuantity reads a quantity cell. Blank or non-numeric text counts as zero.
func ParseQuantity(text string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NextQuantity returns the displayed quantity plus delta, formatted for typing
func NextQuantity(text string, delta int64) string {
	return ParseQuantity(text).Add(decimal.NewFromInt(delta)).String()
}
