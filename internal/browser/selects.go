package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/poll"
)

func (p *Page) selectInput(id string) playwright.Locator {
	return p.Locator("input#" + id)
}

func (p *Page) selectOptions(id string) playwright.Locator {
	return p.Locator("#" + id + "_list").Locator("xpath=..").Locator("div.rc-virtual-list .ant-select-item-option")
}

// OpenSelect focuses the select input id so its option list renders
func (p *Page) OpenSelect(id string) error {
	if err := p.selectInput(id).Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}); err != nil {
		return fmt.Errorf("failed to open select %s: %w", id, err)
	}
	return nil
}

// SearchSelect opens select id and types text into its search box
func (p *Page) SearchSelect(id, text string) error {
	if err := p.OpenSelect(id); err != nil {
		return err
	}
	if err := p.selectInput(id).PressSequentially(text); err != nil {
		return fmt.Errorf("failed to type into select %s: %w", id, err)
	}
	return nil
}

// PickOption clicks option index of the open select id and returns its text
func (p *Page) PickOption(id string, index int) (string, error) {
	option := p.selectOptions(id).Nth(index)
	if err := option.WaitFor(); err != nil {
		return "", fmt.Errorf("select %s has no option %d: %w", id, index, err)
	}
	text, err := option.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read option %d of %s: %w", index, id, err)
	}
	if err := option.Click(); err != nil {
		return "", fmt.Errorf("failed to pick option %d of %s: %w", index, id, err)
	}
	return strings.TrimSpace(text), nil
}

// ClearSelect clicks the clear icon of select id
func (p *Page) ClearSelect(id string) error {
	icon := p.selectInput(id).Locator(ancestor("ant-select")).Locator(".ant-select-clear")
	if err := icon.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}); err != nil {
		return fmt.Errorf("failed to clear select %s: %w", id, err)
	}
	return nil
}

// SelectorText returns the visible text of select id: its value, or the placeholder when empty
func (p *Page) SelectorText(id string) (string, error) {
	text, err := p.selectInput(id).Locator(ancestor("ant-select-selector")).TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read select %s: %w", id, err)
	}
	return strings.TrimSpace(text), nil
}

// SelectionItemText returns the chosen value of select id, empty when none
func (p *Page) SelectionItemText(id string) (string, error) {
	item := p.selectInput(id).Locator(ancestor("ant-select-selector")).Locator(".ant-select-selection-item")
	if n, err := item.Count(); err != nil || n == 0 {
		return "", err
	}
	text, err := item.First().TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read selection of %s: %w", id, err)
	}
	return strings.TrimSpace(text), nil
}

// WaitSelection polls until select id shows a chosen value and returns it
func (p *Page) WaitSelection(id string) (string, error) {
	var value string
	err := poll.Until(context.Background(), pollInterval, p.cfg.NetworkTimeout, func(context.Context) (bool, error) {
		var err error
		value, err = p.SelectionItemText(id)
		return value != "", err
	})
	if err != nil {
		return "", fmt.Errorf("select %s never showed a value: %w", id, err)
	}
	return value, nil
}

// IsDisabled reports whether select id refuses input
func (p *Page) IsDisabled(id string) (bool, error) {
	disabled, err := p.selectInput(id).IsDisabled()
	if err != nil {
		return false, fmt.Errorf("failed to read disabled state of %s: %w", id, err)
	}
	return disabled, nil
}

// ExpectFieldError waits until the required-error marker of field is present, or gone
func (p *Page) ExpectFieldError(field string, present bool) error {
	marker := p.expect.Locator(p.Locator("#error_" + field))
	if !present {
		marker = marker.Not()
	}
	if err := marker.ToBeAttached(); err != nil {
		return fmt.Errorf("field error %s present=%t: %w", field, present, err)
	}
	return nil
}
