// Package snapshot renders dashboard pages to PNG files with headless Chrome.
// Charts are drawn client-side by Plotly, so a real browser is the only way to
// rasterize them.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"playstore-dashboard/utils"
)

// Target is one dashboard page to capture.
type Target struct {
	Name         string
	Path         string
	WaitSelector string
}

// DefaultTargets covers every HTML route of the dashboard.
var DefaultTargets = []Target{
	{Name: "home", Path: "/", WaitSelector: ".plot-container"},
	{Name: "stats", Path: "/stats", WaitSelector: "#content"},
	{Name: "data", Path: "/data", WaitSelector: "#content"},
	{Name: "graphs", Path: "/graphs", WaitSelector: ".plot-container"},
}

// Config controls where and how pages are captured.
type Config struct {
	OutputDir      string
	ChromeBin      string
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	Width          int64
	Height         int64
	PageTimeout    time.Duration
}

// pngSignature opens every PNG file.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// screenshotQuality makes chromedp emit PNG; any other value yields JPEG.
const screenshotQuality = 100

// renderFunc returns the encoded screenshot of one page.
type renderFunc func(ctx context.Context, pageURL, waitSelector string) ([]byte, error)

// Snapshotter captures pages concurrently, one browser tab per page.
type Snapshotter struct {
	cfg    Config
	logger *utils.Logger
	retry  *utils.RetryConfig
	render renderFunc // nil selects headless Chrome
}

// New creates a ready-to-use Snapshotter.
func New(cfg Config, logger *utils.Logger) *Snapshotter {
	if cfg.Width == 0 {
		cfg.Width = 1440
	}
	if cfg.Height == 0 {
		cfg.Height = 900
	}
	if cfg.PageTimeout == 0 {
		cfg.PageTimeout = 60 * time.Second
	}
	return &Snapshotter{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
	}
}

type job struct {
	target  Target
	pageURL string
	out     string
}

// Capture renders every target under baseURL and returns the written files.
// Targets sharing a path are captured once.
func (s *Snapshotter) Capture(ctx context.Context, baseURL string, targets []Target) ([]string, error) {
	seen := utils.NewSet[string]()
	var jobs []job
	for _, t := range targets {
		if !seen.Add(t.Path) {
			s.logger.Debug("[snapshot] Skipping duplicate path %s", t.Path)
			continue
		}
		pageURL, err := url.JoinPath(baseURL, t.Path)
		if err != nil {
			return nil, fmt.Errorf("snapshot: build url for %s: %w", t.Name, err)
		}
		jobs = append(jobs, job{target: t, pageURL: pageURL, out: OutputPath(s.cfg.OutputDir, t)})
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	render := s.render
	if render == nil {
		browserCtx, closeBrowser, err := s.startBrowser(ctx)
		if err != nil {
			return nil, err
		}
		defer closeBrowser()
		render = func(_ context.Context, pageURL, waitSelector string) ([]byte, error) {
			return s.screenshot(browserCtx, pageURL, waitSelector)
		}
	}

	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)

	var mu sync.Mutex
	var written []string

	for _, j := range jobs {
		pool.Submit(func() error {
			err := s.retry.Do(ctx, "snapshot "+j.target.Name, func(ctx context.Context) error {
				return writePNG(ctx, render, j)
			})
			if err != nil {
				s.logger.Error("[snapshot] %s failed: %v", j.target.Name, err)
				return err
			}

			s.logger.Info("[snapshot] %s → %s", j.pageURL, j.out)
			mu.Lock()
			written = append(written, j.out)
			mu.Unlock()
			return nil
		})
	}

	err := pool.Wait()
	return written, err
}

func writePNG(ctx context.Context, render renderFunc, j job) error {
	buf, err := render(ctx, j.pageURL, j.target.WaitSelector)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(buf, pngSignature) {
		return fmt.Errorf("render %s: screenshot is not a PNG image", j.pageURL)
	}
	if err := os.WriteFile(j.out, buf, 0644); err != nil {
		return fmt.Errorf("write %s: %w", j.out, err)
	}
	return nil
}

func (s *Snapshotter) startBrowser(ctx context.Context) (context.Context, func(), error) {
	chromeBin := FindChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[snapshot] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(int(s.cfg.Width), int(s.cfg.Height)),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	closeBrowser := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Start the browser before tabs are opened from several goroutines.
	if err := chromedp.Run(browserCtx); err != nil {
		closeBrowser()
		return nil, nil, fmt.Errorf("snapshot: start browser: %w", err)
	}
	return browserCtx, closeBrowser, nil
}

func (s *Snapshotter) screenshot(browserCtx context.Context, pageURL, waitSelector string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.cfg.PageTimeout)
	defer cancelTimeout()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(s.cfg.Width, s.cfg.Height),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, screenshotQuality),
	); err != nil {
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}
	return buf, nil
}

// OutputPath is the PNG file a target is written to.
func OutputPath(dir string, t Target) string {
	return filepath.Join(dir, t.Name+".png")
}

// FindChromeBinary returns override when set, otherwise the first Chrome or
// Chromium found on PATH or in a well-known location. An empty result lets
// chromedp use its own lookup.
func FindChromeBinary(override string) string {
	if override != "" {
		return override
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
