package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single print-to-PDF run.
const DefaultPDFTimeout = 30 * time.Second

// HTMLToPDF prints an HTML document to PDF through a headless browser.
// Requires Chrome/Chromium to be installed on the system.
func HTMLToPDF(ctx context.Context, html string, timeout time.Duration, verbose bool) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	// chromedp navigates URLs, not raw markup, so stage the document in a
	// temp file first.
	dir, err := os.MkdirTemp("", "matching-report-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to stage report HTML: %w", err)
	}

	if verbose {
		log.Printf("[PDF] Starting headless browser for: %s", htmlPath)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 inches
				WithPaperHeight(11.69).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[PDF] Rendered PDF: %d bytes", len(pdf))
	}

	return pdf, nil
}
