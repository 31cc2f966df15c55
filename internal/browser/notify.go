package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Severity is the kind of toast notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// ExpectNotification waits for a toast of severity to appear, or to be absent
// when present is false. A non-empty text must also appear in the toast.
func (p *Page) ExpectNotification(severity Severity, present bool, text string) error {
	if severity != SeveritySuccess && severity != SeverityError {
		return fmt.Errorf("unknown notification severity %q", severity)
	}

	notice := p.Locator(".ant-notification-notice-" + string(severity))
	if text != "" {
		notice = notice.Filter(playwright.LocatorFilterOptions{HasText: text})
	}

	timeout := playwright.Float(millis(p.cfg.NetworkTimeout))
	var err error
	if present {
		err = p.expect.Locator(notice.First()).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{Timeout: timeout})
	} else {
		err = p.expect.Locator(notice).ToHaveCount(0, playwright.LocatorAssertionsToHaveCountOptions{Timeout: timeout})
	}
	if err != nil {
		return fmt.Errorf("%s notification %q present=%t: %w", severity, text, present, err)
	}
	return nil
}
