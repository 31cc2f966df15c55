// Package table models the state of a configurable data table: which columns
// are shown, which are frozen, and which rows are selected.
package table

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned when a label does not name a column
var ErrUnknownColumn = errors.New("unknown column")

// Column describes one table column
type Column struct {
	Label   string
	Visible bool
	Pinned  bool
}

// Columns is an ordered column set. Operations never reorder it.
type Columns struct {
	cols []Column
}

// NewColumns returns a column set with every label visible and unpinned
func NewColumns(labels ...string) *Columns {
	cols := make([]Column, len(labels))
	for i, l := range labels {
		cols[i] = Column{Label: l, Visible: true}
	}
	return &Columns{cols: cols}
}

// Index returns the position of label, or -1
func (c *Columns) Index(label string) int {
	for i, col := range c.cols {
		if col.Label == label {
			return i
		}
	}
	return -1
}

func (c *Columns) find(label string) (int, error) {
	i := c.Index(label)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, label)
	}
	return i, nil
}

// Hide removes a column from view, like its header minus icon
func (c *Columns) Hide(label string) error {
	i, err := c.find(label)
	if err != nil {
		return err
	}
	c.cols[i].Visible = false
	return nil
}

// Show puts a hidden column back in its original position
func (c *Columns) Show(label string) error {
	i, err := c.find(label)
	if err != nil {
		return err
	}
	c.cols[i].Visible = true
	return nil
}

// Pin toggles the frozen state of the span from the first column through label.
// The span takes the trigger column's new state.
func (c *Columns) Pin(label string) error {
	i, err := c.find(label)
	if err != nil {
		return err
	}
	pinned := !c.cols[i].Pinned
	for j := 0; j <= i; j++ {
		c.cols[j].Pinned = pinned
	}
	return nil
}

// ApplyVisibility sets visibility in one batch, as the Column Visibility dialog does.
// Nothing changes if any label is unknown.
func (c *Columns) ApplyVisibility(visible map[string]bool) error {
	for label := range visible {
		if _, err := c.find(label); err != nil {
			return err
		}
	}
	for i := range c.cols {
		if v, ok := visible[c.cols[i].Label]; ok {
			c.cols[i].Visible = v
		}
	}
	return nil
}

// VisibleLabels returns the shown column labels in table order
func (c *Columns) VisibleLabels() []string {
	var out []string
	for _, col := range c.cols {
		if col.Visible {
			out = append(out, col.Label)
		}
	}
	return out
}

// PinnedLabels returns the frozen column labels in table order
func (c *Columns) PinnedLabels() []string {
	var out []string
	for _, col := range c.cols {
		if col.Pinned {
			out = append(out, col.Label)
		}
	}
	return out
}

// Snapshot returns a copy of the column descriptors
func (c *Columns) Snapshot() []Column {
	out := make([]Column, len(c.cols))
	copy(out, c.cols)
	return out
}
