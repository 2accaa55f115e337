package session

import (
	"context"
	"fmt"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Bootstrapper prepares the browser context before any connection check:
// it opens the target site and dismisses the consent and language prompts.
type Bootstrapper struct {
	browser   interfaces.Browser
	selectors entities.SelectorTable
	targetURL string
	logger    *logrus.Logger
}

func NewBootstrapper(browser interfaces.Browser, selectors entities.SelectorTable, targetURL string, logger *logrus.Logger) *Bootstrapper {
	return &Bootstrapper{
		browser:   browser,
		selectors: selectors,
		targetURL: targetURL,
		logger:    logger,
	}
}

// Bootstrap returns the prepared page. It belongs to the context and is
// closed together with it.
func (b *Bootstrapper) Bootstrap(ctx context.Context) (interfaces.Page, error) {
	page, err := b.browser.ActivePage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	if err := page.Goto(ctx, b.targetURL); err != nil {
		return nil, err
	}

	if err := b.dismiss(ctx, page, entities.UIAcceptCookies); err != nil {
		return nil, err
	}
	if err := b.dismiss(ctx, page, entities.UISwitchLocale); err != nil {
		return nil, err
	}

	b.logger.WithField("url", b.targetURL).Info("Session ready")
	return page, nil
}

// dismiss clicks action when it is visible, then waits for load
func (b *Bootstrapper) dismiss(ctx context.Context, page interfaces.Page, action entities.UIAction) error {
	sel, err := b.selectors.Lookup(action)
	if err != nil {
		return err
	}

	el := page.Find(sel)
	visible, err := el.IsVisible(ctx)
	if err != nil {
		return fmt.Errorf("check %s: %w", action, err)
	}
	if !visible {
		return nil
	}

	b.logger.WithField("action", action).Info("Dismissing prompt")
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", action, err)
	}
	if err := page.WaitForLoad(ctx); err != nil {
		return fmt.Errorf("wait after %s: %w", action, err)
	}
	return nil
}
