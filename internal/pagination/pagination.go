// Package pagination checks the consistency of a paginated table: which page
// buttons are enabled, which page size is chosen, and how many rows show.
package pagination

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInconsistent is wrapped by every consistency failure
var ErrInconsistent = errors.New("pagination inconsistent")

// UnknownTotal marks a snapshot whose widget does not print a total
const UnknownTotal = -1

// State is the logical position of a paginated table
type State struct {
	Current  int
	PageSize int
	Total    int
}

// Pages returns the number of pages, at least 1
func (s State) Pages() int {
	if s.PageSize <= 0 || s.Total <= 0 {
		return 1
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// ExpectedRows returns how many rows the current page should display
func (s State) ExpectedRows() int {
	if s.PageSize <= 0 || s.Current < 1 {
		return 0
	}
	remaining := s.Total - (s.Current-1)*s.PageSize
	if remaining <= 0 {
		return 0
	}
	return min(s.PageSize, remaining)
}

// CheckRows compares displayed rows with ExpectedRows
func (s State) CheckRows(displayed int) error {
	if want := s.ExpectedRows(); displayed != want {
		return fmt.Errorf("%w: page %d with size %d of %d rows shows %d rows, want %d",
			ErrInconsistent, s.Current, s.PageSize, s.Total, displayed, want)
	}
	return nil
}

// Button is one pagination control as rendered
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// Snapshot is the rendered state of a pagination widget at one instant.
// Take a new one after every page or page-size change.
type Snapshot struct {
	Pages    []Button
	Prev     Button
	Next     Button
	PageSize int
	Total    int
}

// Current returns the 1-based active page number
func (s Snapshot) Current() (int, error) {
	for _, b := range s.Pages {
		if b.Active {
			n, err := strconv.Atoi(strings.TrimSpace(b.Label))
			if err != nil {
				return 0, fmt.Errorf("%w: active page label %q is not a number", ErrInconsistent, b.Label)
			}
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: no active page button", ErrInconsistent)
}

// Validate checks the enabled/disabled state of every button
func (s Snapshot) Validate() error {
	if len(s.Pages) == 0 {
		return fmt.Errorf("%w: no page buttons", ErrInconsistent)
	}

	active := 0
	for _, b := range s.Pages {
		if b.Active {
			active++
		}
	}
	if active != 1 {
		return fmt.Errorf("%w: %d active page buttons, want 1", ErrInconsistent, active)
	}

	first := s.Pages[0].Active
	last := s.Pages[len(s.Pages)-1].Active
	if s.Prev.Disabled != first {
		return fmt.Errorf("%w: previous button disabled=%t on first page=%t", ErrInconsistent, s.Prev.Disabled, first)
	}
	if s.Next.Disabled != last {
		return fmt.Errorf("%w: next button disabled=%t on last page=%t", ErrInconsistent, s.Next.Disabled, last)
	}
	return nil
}

// CheckRows verifies the displayed row count against the selected page size
func (s Snapshot) CheckRows(displayed int) error {
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: page size unknown", ErrInconsistent)
	}

	if s.Total != UnknownTotal {
		current, err := s.Current()
		if err != nil {
			return err
		}
		return State{Current: current, PageSize: s.PageSize, Total: s.Total}.CheckRows(displayed)
	}

	if displayed > s.PageSize {
		return fmt.Errorf("%w: %d rows exceed page size %d", ErrInconsistent, displayed, s.PageSize)
	}
	if !s.Next.Disabled && displayed != s.PageSize {
		return fmt.Errorf("%w: %d rows on a non-final page of size %d", ErrInconsistent, displayed, s.PageSize)
	}
	return nil
}

var (
	pageSizeRe = regexp.MustCompile(`^\s*(\d+)\s*/\s*page\s*$`)
	rangeRe    = regexp.MustCompile(`\d+\s*-\s*\d+\s+of\s+([\d,]+)`)
	totalRe    = regexp.MustCompile(`(?i)total\s+([\d,]+)`)
)

// ParsePageSize reads a size-changer label such as "10 / page"
func ParsePageSize(label string) (int, error) {
	m := pageSizeRe.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("unrecognised page size label %q", label)
	}
	return strconv.Atoi(m[1])
}

// ParseTotal reads "1-10 of 52" or "Total 52 items". Empty text yields UnknownTotal.
func ParseTotal(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return UnknownTotal, nil
	}
	for _, re := range []*regexp.Regexp{rangeRe, totalRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		}
	}
	return 0, fmt.Errorf("unrecognised total text %q", text)
}

// Overlap returns the indices at which two captured row lists hold identical text
func Overlap(before, after []string) []int {
	var same []int
	for i := 0; i < len(before) && i < len(after); i++ {
		if before[i] == after[i] {
			same = append(same, i)
		}
	}
	return same
}

// CheckReplaced verifies a page change swapped every row: after must hold
// rows, and no row may repeat at the same index.
func CheckReplaced(before, after []string) error {
	if len(after) == 0 {
		return fmt.Errorf("%w: no rows after paging", ErrInconsistent)
	}
	if same := Overlap(before, after); len(same) > 0 {
		return fmt.Errorf("%w: rows %v unchanged after paging", ErrInconsistent, same)
	}
	return nil
}
