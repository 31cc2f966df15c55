package browser

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

var loadingButton = regexp.MustCompile(`ant-btn-loading`)

// Download clicks trigger, saves the resulting file under the artifact
// directory and returns its path. With expectLoading the enclosing button
// must show its loading state during generation and drop it afterwards.
func (p *Page) Download(trigger playwright.Locator, expectLoading bool) (string, error) {
	button := trigger.Locator("xpath=ancestor-or-self::button[1]")

	dl, err := p.ExpectDownload(func() error {
		if err := trigger.Click(); err != nil {
			return err
		}
		if expectLoading {
			return p.expect.Locator(button).ToHaveClass(loadingButton)
		}
		return nil
	}, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(millis(p.cfg.NetworkTimeout)),
	})
	if err != nil {
		return "", fmt.Errorf("download did not start: %w", err)
	}

	path := filepath.Join(p.cfg.ArtifactDir, "downloads", dl.SuggestedFilename())
	if err := dl.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save download: %w", err)
	}
	p.log.Info().Str("path", path).Msg("download saved")

	if expectLoading {
		if err := p.expect.Locator(button).Not().ToHaveClass(loadingButton); err != nil {
			return path, fmt.Errorf("download button kept loading: %w", err)
		}
	}
	return path, nil
}
