package interfaces

import (
	"context"

	"account_connector/domain/entities"
)

// Browser is one persistent browsing context
type Browser interface {
	// NewPage opens a fresh page in the context
	NewPage(ctx context.Context) (Page, error)

	// ActivePage returns the most recent open page, opening one if none exist
	ActivePage(ctx context.Context) (Page, error)

	// Close closes the context; calling it more than once is a no-op
	Close() error
}

// Page is a single document view within a Browser
type Page interface {
	// Goto navigates to url and waits for the load event
	Goto(ctx context.Context, url string) error

	// WaitForLoad waits for the page to reach the load lifecycle event
	WaitForLoad(ctx context.Context) error

	// Find resolves a selector to an element handle; it does not wait
	Find(selector entities.Selector) Element

	// Close closes the page
	Close() error
}

// Element is a lazily resolved handle to a UI element
type Element interface {
	IsVisible(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
}
