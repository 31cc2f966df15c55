// Package browser is the shared helper library of the browser suites: one
// playwright instance per test package, a cached authenticated session, and
// page helpers for the Ant Design widgets the inventory pages are built from.
package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/logger"
	"github.com/stockops/adjustment-e2e/internal/models"
	"github.com/stockops/adjustment-e2e/internal/services"
)

// Suite owns the browser shared by every test in one package.
// Tests inside a package run sequentially against it.
type Suite struct {
	Name   string
	Config *config.E2EConfig
	Log    *logger.Logger

	pw       *playwright.Playwright
	browser  playwright.Browser
	session  *Session
	recorder *Recorder
}

// LoadEnv reads the nearest .env walking up from the test package directory
func LoadEnv() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

// NewSuite loads configuration and launches chromium. Call from TestMain.
func NewSuite(name string) (*Suite, error) {
	LoadEnv()

	cfg, err := config.LoadE2EConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load e2e config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid e2e config: %w", err)
	}

	log := logger.FromEnv().With("suite", name)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(millis(cfg.SlowMo)),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	s := &Suite{
		Name:    name,
		Config:  cfg,
		Log:     log,
		pw:      pw,
		browser: b,
	}
	s.session = NewSession(s.bootstrap)

	rec, err := OpenRecorder(name, log)
	if err != nil {
		log.Warn().Err(err).Msg("run history disabled")
	}
	s.recorder = rec

	log.Info().
		Str("base_url", cfg.BaseURL).
		Bool("headless", cfg.Headless).
		Str("run_id", rec.RunID()).
		Msg("browser launched")
	return s, nil
}

// Close finishes the run history and stops the browser
func (s *Suite) Close() {
	s.recorder.Finish()
	if err := s.browser.Close(); err != nil {
		s.Log.Warn().Err(err).Msg("failed to close browser")
	}
	if err := s.pw.Stop(); err != nil {
		s.Log.Warn().Err(err).Msg("failed to stop playwright")
	}
}

// StorageStatePath is where the suite keeps its authenticated storage state
func (s *Suite) StorageStatePath() string {
	return filepath.Join(s.Config.ArtifactDir, s.Name+"-storage-state.json")
}

func (s *Suite) bootstrap(ctx context.Context) (string, error) {
	sessions := services.NewSessionService(services.NewAuthClient(s.Config), s.Config, s.Log)
	token, err := sessions.AcquireToken(ctx)
	if err != nil {
		return "", err
	}

	path := s.StorageStatePath()
	if err := WriteStorageState(s.browser, s.Config, token, path); err != nil {
		return "", err
	}
	s.Log.Info().Str("path", path).Msg("session storage state saved")
	return path, nil
}

// NewPage opens a fresh context restored from the suite session.
// The context closes when the test ends; a failing test leaves a screenshot.
func (s *Suite) NewPage(t *testing.T) *Page {
	t.Helper()

	statePath, err := s.session.StatePath(context.Background())
	if err != nil {
		t.Fatalf("Failed to restore session: %v", err)
	}

	bctx, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
		StorageStatePath: playwright.String(statePath),
		AcceptDownloads:  playwright.Bool(true),
		BaseURL:          playwright.String(s.Config.BaseURL),
		Viewport: &playwright.Size{
			Width:  1600,
			Height: 900,
		},
	})
	if err != nil {
		t.Fatalf("Failed to create browser context: %v", err)
	}
	bctx.SetDefaultTimeout(millis(s.Config.DefaultTimeout))
	bctx.SetDefaultNavigationTimeout(millis(s.Config.NavigationTimeout))

	pg, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		t.Fatalf("Failed to create page: %v", err)
	}

	p := newPage(pg, s.Config, s.Log.With("test", t.Name()))
	started := time.Now()

	t.Cleanup(func() {
		message := ""
		if t.Failed() && s.Config.Screenshots {
			message = p.screenshot(t.Name())
		}
		if err := bctx.Close(); err != nil {
			s.Log.Warn().Err(err).Msg("failed to close browser context")
		}
		s.recorder.Record(t.Name(), scenarioStatus(t), time.Since(started), message)
	})

	return p
}

func scenarioStatus(t testing.TB) models.ScenarioStatus {
	switch {
	case t.Failed():
		return models.ScenarioFailed
	case t.Skipped():
		return models.ScenarioSkipped
	default:
		return models.ScenarioPassed
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// artifactName turns a test name into a file name unique to the second
func artifactName(testName, ext string, at time.Time) string {
	return unsafeChars.ReplaceAllString(testName, "_") + "_" + strconv.FormatInt(at.Unix(), 10) + "." + ext
}
