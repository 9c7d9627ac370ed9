package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/infrastructure/config"
)

// A4 paper size in inches
const (
	a4WidthInch  = 8.27
	a4HeightInch = 11.69
)

// ChromeConverter renders HTML to PDF over the Chrome DevTools Protocol.
// One allocator is shared; each conversion runs in a fresh browser context.
type ChromeConverter struct {
	cfg         *config.PrintingConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ PDFConverter = (*ChromeConverter)(nil)

// NewChromeConverter creates a converter from the printing configuration
func NewChromeConverter(cfg *config.PrintingConfig, logger *zap.Logger) *ChromeConverter {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromeConverter{
		cfg:         cfg,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Convert renders the HTML to an A4 PDF
func (c *ChromeConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("html content is empty")
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(c.allocCtx)
	defer browserCancel()

	margin := c.cfg.MarginInch
	if margin <= 0 {
		margin = 0.4
	}

	start := time.Now()
	var pdf []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInch).
				WithPaperHeight(a4HeightInch).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithLandscape(c.cfg.Landscape)

			if c.cfg.HeaderTitle != "" {
				params = params.
					WithDisplayHeaderFooter(true).
					WithHeaderTemplate(fmt.Sprintf(`<div style="font-size:8px;width:100%%;text-align:center">%s</div>`, c.cfg.HeaderTitle)).
					WithFooterTemplate(`<div style="font-size:8px;width:100%;text-align:center"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`)
			}

			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", timeout, err)
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("generated pdf is empty")
	}

	c.logger.Debug("pdf rendered",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

// Close releases the Chrome allocator
func (c *ChromeConverter) Close() {
	c.allocCancel()
}
