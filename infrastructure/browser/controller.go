package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Options configures the persistent browser context
type Options struct {
	UserDataDir string
	Headless    bool
	Locale      string
	StepTimeout time.Duration
	Latitude    float64
	Longitude   float64
	Country     string
}

type browserController struct {
	pw        *playwright.Playwright
	context   playwright.BrowserContext
	logger    *logrus.Logger
	timeout   float64
	closeOnce sync.Once
	closeErr  error
}

const defaultStepTimeout = 30 * time.Second

// NewBrowserController - launches a persistent chromium context on opts.UserDataDir
func NewBrowserController(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	if opts.UserDataDir == "" {
		return nil, fmt.Errorf("user data dir is required")
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = defaultStepTimeout
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-proxy-server",
			"--start-maximized",
		},
		HasTouch:    playwright.Bool(true),
		NoViewport:  playwright.Bool(true),
		Permissions: []string{"geolocation"},
	}
	if opts.Locale != "" {
		launchOptions.Locale = playwright.String(opts.Locale)
	}
	if opts.Latitude != 0 || opts.Longitude != 0 {
		launchOptions.Geolocation = &playwright.Geolocation{
			Latitude:  opts.Latitude,
			Longitude: opts.Longitude,
		}
	}
	if opts.Country != "" {
		launchOptions.ExtraHttpHeaders = map[string]string{
			"X-Forwarded-For": opts.Country,
		}
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(opts.UserDataDir, launchOptions)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch persistent context: %w", err)
	}

	bctx.OnPage(func(p playwright.Page) {
		p.OnDialog(func(dialog playwright.Dialog) {
			dialog.Accept()
		})
	})

	logger.WithFields(logrus.Fields{
		"profile":  opts.UserDataDir,
		"headless": opts.Headless,
		"locale":   opts.Locale,
	}).Info("Browser context launched")

	return &browserController{
		pw:      pw,
		context: bctx,
		logger:  logger,
		timeout: float64(opts.StepTimeout.Milliseconds()),
	}, nil
}

// NewPage - opens a new page in the context
func (b *browserController) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return newPlaywrightPage(page, b.timeout), nil
}

// ActivePage - returns the last open page or a new one
func (b *browserController) ActivePage(ctx context.Context) (interfaces.Page, error) {
	pages := b.context.Pages()
	if len(pages) > 0 {
		return newPlaywrightPage(pages[len(pages)-1], b.timeout), nil
	}
	return b.NewPage(ctx)
}

// Close - closes the context and stops the driver
func (b *browserController) Close() error {
	b.closeOnce.Do(func() {
		if err := b.context.Close(); err != nil && !isClosedErr(err) {
			b.closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		if err := b.pw.Stop(); err != nil {
			if b.closeErr != nil {
				b.closeErr = fmt.Errorf("%v; failed to stop playwright: %w", b.closeErr, err)
			} else {
				b.closeErr = fmt.Errorf("failed to stop playwright: %w", err)
			}
		}
		b.logger.Info("Browser context closed")
	})
	return b.closeErr
}

type playwrightPage struct {
	page    playwright.Page
	timeout float64
}

func newPlaywrightPage(page playwright.Page, timeout float64) *playwrightPage {
	return &playwrightPage{page: page, timeout: timeout}
}

// Goto - navigates and waits for the load event
func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(p.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitForLoad - waits for the load lifecycle event
func (p *playwrightPage) WaitForLoad(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(p.timeout),
	})
}

// Find - builds a locator for selector
func (p *playwrightPage) Find(selector entities.Selector) interfaces.Element {
	var loc playwright.Locator
	switch selector.Kind {
	case entities.SelectorLabel:
		loc = p.page.GetByLabel(selector.Name)
	case entities.SelectorRole:
		loc = p.page.GetByRole(playwright.AriaRole(selector.Role), playwright.PageGetByRoleOptions{
			Name: selector.Name,
		})
	case entities.SelectorText:
		loc = p.page.GetByText(selector.Name)
	default:
		loc = p.page.Locator(selector.Name)
	}
	if selector.Inner != "" {
		loc = loc.Locator(selector.Inner)
	}
	return &playwrightElement{locator: loc.First(), timeout: p.timeout}
}

// Close - closes the page, ignoring pages that are already gone
func (p *playwrightPage) Close() error {
	if err := p.page.Close(); err != nil && !isClosedErr(err) {
		return fmt.Errorf("failed to close page: %w", err)
	}
	return nil
}

type playwrightElement struct {
	locator playwright.Locator
	timeout float64
}

// IsVisible - reports visibility without waiting
func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.locator.IsVisible()
}

// Click - clicks the element
func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

// Fill - replaces the element value with text
func (e *playwrightElement) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

// isClosedErr - true for errors raised on already closed targets
func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}
