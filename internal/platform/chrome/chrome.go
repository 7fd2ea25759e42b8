// Package chrome prints paystub markup to PDF through a headless browser.
// It implements the document.Backend contract: markup in, Letter pages with
// 5mm margins, raw PDF bytes out.
package chrome

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	letterWidthInches  = 8.5
	letterHeightInches = 11.0
	marginInches       = 5.0 / 25.4 // 5mm
)

type Backend struct {
	timeout time.Duration
}

func New(timeout time.Duration) *Backend {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Backend{timeout: timeout}
}

// PrintPDF loads the markup in a fresh tab and prints it. Each call owns its
// own browser context, so concurrent prints do not interfere.
func (b *Backend) PrintPDF(ctx context.Context, markup string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(markup))

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(letterWidthInches).
				WithPaperHeight(letterHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
