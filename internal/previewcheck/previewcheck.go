// Package previewcheck is the rendered-video analogue of the teacher's
// cmd/screenshots visual-regression tool: instead of driving the DJ web
// UI, it serves a rendered MP4 in a one-page local HTML harness and uses
// headless Chromium (playwright-go) to seek to golden timestamps and
// screenshot the <video> element, for comparison against golden PNGs.
package previewcheck

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

const harnessHTML = `<!DOCTYPE html>
<html><body style="margin:0;background:#000">
<video id="v" src="/video.mp4" width="%d" height="%d" muted></video>
</body></html>`

// Checker drives a headless browser against one rendered video file.
type Checker struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	server  *http.Server
	addr    string
}

// Open starts Playwright, launches headless Chromium, and serves
// videoPath locally so the browser can load it without file:// CORS
// restrictions. width/height must match the rendered frame resolution.
func Open(videoPath string, width, height int) (*Checker, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("listen: %w", err)
	}
	addr := ln.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc("/video.mp4", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, videoPath)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, harnessHTML, width, height)
	})
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: width, Height: height},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if _, err := page.Goto("http://" + addr + "/"); err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("goto harness: %w", err)
	}

	return &Checker{pw: pw, browser: browser, page: page, server: srv, addr: addr}, nil
}

// Close tears down the browser, Playwright driver, and local server.
func (c *Checker) Close() {
	c.browser.Close()
	c.pw.Stop()
	c.server.Close()
}

// ScreenshotAt seeks the <video> element to atSeconds, waits for the seek
// to settle, and screenshots it to outPath.
func (c *Checker) ScreenshotAt(atSeconds float64, outPath string) error {
	video := c.page.Locator("#v")
	if _, err := video.Evaluate(fmt.Sprintf("el => { el.currentTime = %f; }", atSeconds), nil); err != nil {
		return fmt.Errorf("seek video: %w", err)
	}

	// Poll until the video reports it has actually seeked, rather than a
	// fixed sleep — frame-accurate seeks can take a variable number of
	// decode steps.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		seeking, err := video.Evaluate("el => el.seeking", nil)
		if err == nil {
			if done, ok := seeking.(bool); ok && !done {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}
	if _, err := video.Screenshot(playwright.LocatorScreenshotOptions{Path: playwright.String(outPath)}); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}
