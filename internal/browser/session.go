package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/config"
)

// ErrSessionBootstrap wraps the cached failure handed to every test after a failed login
var ErrSessionBootstrap = errors.New("session bootstrap failed")

// BootstrapFunc acquires a session and returns the storage-state file restoring it
type BootstrapFunc func(ctx context.Context) (string, error)

// Session acquires authentication once per suite and hands the same storage
// state, or the same error, to every caller.
type Session struct {
	once      sync.Once
	bootstrap BootstrapFunc
	statePath string
	err       error
}

// NewSession creates a session that runs fn on first use
func NewSession(fn BootstrapFunc) *Session {
	return &Session{bootstrap: fn}
}

// StatePath returns the storage-state file, bootstrapping on the first call
func (s *Session) StatePath(ctx context.Context) (string, error) {
	s.once.Do(func() {
		path, err := s.bootstrap(ctx)
		if err != nil {
			s.err = fmt.Errorf("%w: %w", ErrSessionBootstrap, err)
			return
		}
		s.statePath = path
	})
	return s.statePath, s.err
}

// WriteStorageState stores token in localStorage for the application origin
// and saves the resulting browser storage state to path.
func WriteStorageState(b playwright.Browser, cfg *config.E2EConfig, token, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage state directory: %w", err)
	}

	bctx, err := b.NewContext()
	if err != nil {
		return fmt.Errorf("failed to create bootstrap context: %w", err)
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create bootstrap page: %w", err)
	}

	if _, err := page.Goto(cfg.BaseURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(cfg.NavigationTimeout)),
	}); err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg.BaseURL, err)
	}

	if _, err := page.Evaluate(
		`([key, value]) => window.localStorage.setItem(key, value)`,
		[]string{cfg.TokenStorageKey, token},
	); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	if _, err := bctx.StorageState(path); err != nil {
		return fmt.Errorf("failed to save storage state: %w", err)
	}
	return nil
}
