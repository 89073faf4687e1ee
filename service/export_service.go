package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ExportService drives a headless browser against the deterministic render
// URLs to produce shareable artifacts. Because every render URL carries the
// full quote state, the capture matches what staff saw interactively.
type ExportService struct {
	baseURL string
}

// NewExportService creates a new ExportService. baseURL is where this
// server's own render endpoints are reachable from the browser process.
func NewExportService(baseURL string) *ExportService {
	return &ExportService{baseURL: baseURL}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func (s *ExportService) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, browserCancel, allocCancel
}

// waitForAssets blocks until fonts and every image on the page settled, so a
// capture never races a loading hero image.
var waitForAssets = chromedp.Evaluate(`
	(function() {
		return Promise.all([
			document.fonts.ready,
			Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				return new Promise((resolve) => {
					if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
						resolve();
						return;
					}
					const timeout = setTimeout(() => resolve(), 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}))
		]);
	})();
`, nil)

// CapturePNG renders surfacePath (a render endpoint path plus its quote
// state query) and screenshots it at the requested viewport width.
func (s *ExportService) CapturePNG(ctx context.Context, surfacePath string, width, quality int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if width <= 0 {
		width = 850
	}
	if quality <= 0 || quality > 100 {
		quality = 90
	}

	browserCtx, browserCancel, allocCancel := s.newBrowserContext(ctx)
	defer allocCancel()
	defer browserCancel()

	renderURL := s.baseURL + surfacePath

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), 10),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		waitForAssets,
		chromedp.Sleep(500*time.Millisecond),
		chromedp.FullScreenshot(&buf, quality),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot of %s: %w", surfacePath, err)
	}
	return buf, nil
}

// CapturePDF renders surfacePath and prints it to a letter-sized PDF.
func (s *ExportService) CapturePDF(ctx context.Context, surfacePath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	browserCtx, browserCancel, allocCancel := s.newBrowserContext(ctx)
	defer allocCancel()
	defer browserCancel()

	renderURL := s.baseURL + surfacePath

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(850, 1100),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		waitForAssets,
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.25).
				WithMarginBottom(0.25).
				WithMarginLeft(0.25).
				WithMarginRight(0.25).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF of %s: %w", surfacePath, err)
	}
	return pdfBuf, nil
}
