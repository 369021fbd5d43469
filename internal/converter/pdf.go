package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"blog2docx/internal/document"
	"blog2docx/internal/htmlout"
)

const defaultPDFTimeout = 30 * time.Second

// A4 纸张尺寸（英寸）
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// renderPDF 先渲染HTML页面，再由无头Chrome打印为PDF
func (c *Converter) renderPDF(ctx context.Context, blocks document.Document, out string) error {
	execPath, err := FindChromePath(c.config.PDF.ChromePath)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "blog2docx-pdf")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "page.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	if err := htmlout.NewRenderer(c.config).Render(f, blocks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := defaultPDFTimeout
	if c.config.PDF.Timeout > 0 {
		timeout = time.Duration(c.config.PDF.Timeout) * time.Second
	}
	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	c.log.Debug("printing pdf", "chrome", execPath, "timeout", timeout)
	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(absPath)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("chromedp打印PDF失败: %w", err)
	}

	return writeAtomic(out, func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	})
}
