// Package capture screenshots a URL with a headless Chromium-family
// browser, producing source images sized to a device's screen.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"device-mockup-renderer/internal/logging"
)

// Capturer owns one browser allocator and memoizes screenshots per
// viewport size, so a batch over many devices with the same screen
// ratio hits the browser once.
type Capturer struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	url      string

	mu    sync.Mutex
	shots map[[2]int]image.Image
}

// New starts a headless browser allocator for the given URL.
func New(ctx context.Context, url string) (*Capturer, error) {
	browser, err := detectBrowserPath()
	if err != nil {
		return nil, err
	}
	logging.Logger().Debug("using browser", "path", browser)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(browser),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return &Capturer{
		allocCtx: allocCtx,
		cancel:   cancel,
		url:      url,
		shots:    make(map[[2]int]image.Image),
	}, nil
}

// Close releases the browser allocator.
func (c *Capturer) Close() {
	c.cancel()
}

// Screenshot renders the URL at w×h and returns the decoded capture.
// Repeat calls for the same size return the memoized image.
func (c *Capturer) Screenshot(w, h int) (image.Image, error) {
	key := [2]int{w, h}
	c.mu.Lock()
	if img, ok := c.shots[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	ctx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(w), int64(h)),
		chromedp.Navigate(c.url),
		chromedp.Sleep(2*time.Second),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("capture: %s at %dx%d: %w", c.url, w, h, err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("capture: decode screenshot: %w", err)
	}

	c.mu.Lock()
	c.shots[key] = img
	c.mu.Unlock()
	return img, nil
}

// detectBrowserPath probes for an installed Chromium-family browser.
func detectBrowserPath() (string, error) {
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{
			filepath.Join(os.Getenv("PROGRAMFILES(X86)"), "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(os.Getenv("PROGRAMFILES"), "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(os.Getenv("PROGRAMFILES(X86)"), "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(os.Getenv("PROGRAMFILES"), "Google", "Chrome", "Application", "chrome.exe"),
		}
	case "darwin":
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
	default:
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/usr/bin/microsoft-edge",
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("capture: no Chromium-family browser found")
}
