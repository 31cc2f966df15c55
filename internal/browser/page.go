package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/dataset"
	"github.com/stockops/adjustment-e2e/internal/logger"
	"github.com/stockops/adjustment-e2e/internal/poll"
)

// PageTitleSelector locates the heading every inventory page renders
const PageTitleSelector = `[data-cy="pageTitle"]`

const pollInterval = 200 * time.Millisecond

// Page wraps a playwright page with the suite's bounded waits
type Page struct {
	playwright.Page

	cfg     *config.E2EConfig
	log     *logger.Logger
	expect  playwright.PlaywrightAssertions
	traffic *traffic
}

func newPage(pg playwright.Page, cfg *config.E2EConfig, log *logger.Logger) *Page {
	p := &Page{
		Page:    pg,
		cfg:     cfg,
		log:     log,
		expect:  playwright.NewPlaywrightAssertions(millis(cfg.DefaultTimeout)),
		traffic: &traffic{},
	}
	pg.OnResponse(func(r playwright.Response) {
		p.traffic.observe(r.URL(), r.Status())
		logResponse(log, r.URL(), r.Status())
	})
	return p
}

// logResponse records dataset traffic; failed calls are raised to warnings
func logResponse(log *logger.Logger, rawURL string, status int) {
	ep, err := dataset.Parse(rawURL)
	if err != nil {
		return
	}
	event := log.Debug()
	if status >= 400 {
		event = log.Warn()
	}
	event.Str("endpoint", ep.String()).Int("status", status).Msg("dataset response")
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

// Visit navigates to a path under the base URL
func (p *Page) Visit(path string) error {
	if _, err := p.Goto(p.cfg.URL(path)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	return nil
}

// WaitVerify blocks until the network settles and the page's ready marker shows
func (p *Page) WaitVerify() error {
	if err := p.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(millis(p.cfg.NavigationTimeout)),
	}); err != nil {
		return fmt.Errorf("page did not settle: %w", err)
	}

	if err := p.Locator(p.cfg.ReadySelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(p.cfg.NavigationTimeout)),
	}); err != nil {
		return fmt.Errorf("ready marker %s not shown: %w", p.cfg.ReadySelector, err)
	}
	return nil
}

// WaitURLContains waits until the current URL contains path
func (p *Page) WaitURLContains(path string, timeout time.Duration) error {
	pattern := regexp.MustCompile(regexp.QuoteMeta(path))
	if err := p.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(millis(timeout)),
	}); err != nil {
		return fmt.Errorf("url %s never contained %s: %w", p.URL(), path, err)
	}
	return nil
}

// ShouldHaveTitle asserts the page heading text
func (p *Page) ShouldHaveTitle(title string) error {
	if err := p.expect.Locator(p.Locator(PageTitleSelector).First()).ToHaveText(title); err != nil {
		return fmt.Errorf("page title is not %q: %w", title, err)
	}
	return nil
}

// ShouldExist asserts at least one element matches selector
func (p *Page) ShouldExist(selector string) error {
	if err := p.expect.Locator(p.Locator(selector).First()).ToBeAttached(); err != nil {
		return fmt.Errorf("%s does not exist: %w", selector, err)
	}
	return nil
}

// ShouldHaveText asserts the trimmed text of the first match
func (p *Page) ShouldHaveText(selector, text string) error {
	if err := p.expect.Locator(p.Locator(selector).First()).ToHaveText(text); err != nil {
		return fmt.Errorf("%s text is not %q: %w", selector, text, err)
	}
	return nil
}

// WaitTableLoading blocks until no loading spinner is left under root
func (p *Page) WaitTableLoading(root string) error {
	spinners := p.Locator(root + " .ant-spin-spinning")
	err := poll.Until(context.Background(), pollInterval, p.cfg.NetworkTimeout, func(context.Context) (bool, error) {
		n, err := spinners.Count()
		if err != nil {
			return false, err
		}
		return n == 0, nil
	})
	if err != nil {
		return fmt.Errorf("table %s kept loading: %w", root, err)
	}
	return nil
}

// ExpectDataset runs action and waits for the dataset response it triggers
func (p *Page) ExpectDataset(ep dataset.Endpoint, action func() error) (int, error) {
	resp, err := p.ExpectResponse(ep.Regexp(), action, playwright.PageExpectResponseOptions{
		Timeout: playwright.Float(millis(p.cfg.NetworkTimeout)),
	})
	if err != nil {
		return 0, fmt.Errorf("no %s response: %w", ep, err)
	}
	p.log.Debug().Str("endpoint", ep.String()).Int("status", resp.Status()).Msg("dataset response")
	return resp.Status(), nil
}

// Interception waits for dataset responses that arrive after it was registered
type Interception struct {
	page     *Page
	endpoint dataset.Endpoint
	from     int
}

// Intercept starts watching for responses to ep. Register before the action
// that triggers the request.
func (p *Page) Intercept(ep dataset.Endpoint) *Interception {
	return &Interception{page: p, endpoint: ep, from: p.traffic.mark()}
}

// Wait blocks until the next matching response and returns its status.
// Each call consumes one response.
func (i *Interception) Wait() (int, error) {
	var got exchange
	err := poll.Until(context.Background(), pollInterval, i.page.cfg.NetworkTimeout, func(context.Context) (bool, error) {
		ex, at, ok := i.page.traffic.next(i.endpoint, i.from)
		if ok {
			got = ex
			i.from = at + 1
		}
		return ok, nil
	})
	if err != nil {
		return 0, fmt.Errorf("no %s response: %w", i.endpoint, err)
	}
	i.page.log.Debug().Str("endpoint", i.endpoint.String()).Int("status", got.status).Msg("intercepted")
	return got.status, nil
}

func (p *Page) screenshot(testName string) string {
	path := filepath.Join(p.cfg.ArtifactDir, "screenshots", artifactName(testName, "png", time.Now()))
	if _, err := p.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		p.log.Warn().Err(err).Msg("failed to take screenshot")
		return ""
	}
	return "screenshot: " + path
}

// withCause attaches the last failed check to a poll timeout
func withCause(err, cause error) error {
	if err == nil || cause == nil {
		return err
	}
	return fmt.Errorf("%w: %w", err, cause)
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}

// ancestor selects the nearest enclosing element carrying class
func ancestor(class string) string {
	return fmt.Sprintf(`xpath=ancestor::*[contains(concat(" ", normalize-space(@class), " "), " %s ")][1]`, class)
}
