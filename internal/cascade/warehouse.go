// Package cascade models the warehouse code / name / virtual warehouse select
// chain of the adjustment form.
package cascade

import (
	"errors"
	"fmt"
	"strings"
)

// Field is a form field id as rendered in the DOM
type Field string

const (
	FieldCode    Field = "warehouse_code"
	FieldName    Field = "warehouse_name"
	FieldVirtual Field = "warehouse_virtual_id"
)

// Fields lists the chain in form order
var Fields = []Field{FieldCode, FieldName, FieldVirtual}

// Placeholder returns the text an empty select shows
func Placeholder(f Field) string {
	switch f {
	case FieldCode:
		return "Warehouse Code"
	case FieldName:
		return "Warehouse Name"
	case FieldVirtual:
		return "Virtual Warehouse"
	}
	return ""
}

// State is a position in the selection chain
type State int

const (
	Empty State = iota
	CodeSelected
	Resolved
	FullySelected
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case CodeSelected:
		return "code-selected"
	case Resolved:
		return "code+name-resolved"
	case FullySelected:
		return "fully-selected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrFieldDisabled is returned when selecting into a disabled field
	ErrFieldDisabled = errors.New("field is disabled")
	// ErrNothingToResolve is returned when no paired lookup is pending
	ErrNothingToResolve = errors.New("no pending warehouse lookup")
)

// Warehouse is the expected state of the three linked selects
type Warehouse struct {
	code      string
	name      string
	virtual   string
	submitted bool
}

// State derives the chain position from the field values
func (w *Warehouse) State() State {
	switch {
	case w.code != "" && w.name != "" && w.virtual != "":
		return FullySelected
	case w.code != "" && w.name != "":
		return Resolved
	case w.code != "" || w.name != "":
		return CodeSelected
	}
	return Empty
}

// SelectCode picks a warehouse code; the name lookup is then pending
func (w *Warehouse) SelectCode(code string) {
	w.code, w.name, w.virtual = code, "", ""
}

// SelectName picks a warehouse name; the code lookup is then pending
func (w *Warehouse) SelectName(name string) {
	w.code, w.name, w.virtual = "", name, ""
}

// Resolve fills the missing half of the code/name pair
func (w *Warehouse) Resolve(other string) error {
	if w.State() != CodeSelected || other == "" {
		return ErrNothingToResolve
	}
	if w.code == "" {
		w.code = other
	} else {
		w.name = other
	}
	return nil
}

// SelectVirtual picks a virtual warehouse
func (w *Warehouse) SelectVirtual(id string) error {
	if w.Disabled(FieldVirtual) {
		return fmt.Errorf("%s: %w", FieldVirtual, ErrFieldDisabled)
	}
	w.virtual = id
	return nil
}

// ClearCode empties the whole chain
func (w *Warehouse) ClearCode() { w.code, w.name, w.virtual = "", "", "" }

// ClearName empties the whole chain
func (w *Warehouse) ClearName() { w.ClearCode() }

// ClearVirtual empties only the virtual warehouse
func (w *Warehouse) ClearVirtual() { w.virtual = "" }

// Value returns a field's selected value, empty if none
func (w *Warehouse) Value(f Field) string {
	switch f {
	case FieldCode:
		return w.code
	case FieldName:
		return w.name
	case FieldVirtual:
		return w.virtual
	}
	return ""
}

// Disabled reports whether a field rejects input. Only the virtual warehouse
// depends on another selection.
func (w *Warehouse) Disabled(f Field) bool {
	return f == FieldVirtual && w.State() < Resolved
}

// Submit records a submit attempt; from then on errors track Missing live
func (w *Warehouse) Submit() { w.submitted = true }

// Missing returns the empty fields in form order
func (w *Warehouse) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if w.Value(f) == "" {
			out = append(out, f)
		}
	}
	return out
}

// Errors returns the fields that show a required marker
func (w *Warehouse) Errors() []Field {
	if !w.submitted {
		return nil
	}
	return w.Missing()
}

// HasError reports whether f shows a required marker
func (w *Warehouse) HasError(f Field) bool {
	for _, e := range w.Errors() {
		if e == f {
			return true
		}
	}
	return false
}

// ErrViewMismatch is returned when the rendered selects disagree with the model
var ErrViewMismatch = errors.New("warehouse selects do not match")

// View is what the three selects render
type View struct {
	Selected map[Field]string // chosen item text, empty when none
	Shown    map[Field]string // full selector text, the placeholder when empty
	Disabled map[Field]bool
}

// Check compares a rendered view with the model field by field
func (w *Warehouse) Check(v View) error {
	for _, f := range Fields {
		want := w.Value(f)
		if got := strings.TrimSpace(v.Selected[f]); got != want {
			return fmt.Errorf("%w: %s shows %q, want %q", ErrViewMismatch, f, got, want)
		}
		if shown := strings.TrimSpace(v.Shown[f]); want == "" && shown != Placeholder(f) {
			return fmt.Errorf("%w: %s shows %q, want placeholder %q", ErrViewMismatch, f, shown, Placeholder(f))
		}
		if got := v.Disabled[f]; got != w.Disabled(f) {
			return fmt.Errorf("%w: %s disabled=%t, want %t", ErrViewMismatch, f, got, w.Disabled(f))
		}
	}
	return nil
}
