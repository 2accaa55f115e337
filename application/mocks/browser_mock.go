package mocks

import (
	"context"
	"fmt"
	"sync"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"
)

// Transition runs when an element is clicked and returns the next screen.
// An empty result keeps the current screen.
type Transition func() string

// Screen lists the elements visible on one screen of the mock site
type Screen map[entities.UIAction]Transition

// Goto returns a transition to a fixed screen
func Goto(screen string) Transition {
	return func() string { return screen }
}

// MockSite scripts the UI seen by every page of a MockBrowser
type MockSite struct {
	mu        sync.Mutex
	screens   map[string]Screen
	home      func() string
	selectors map[entities.Selector]entities.UIAction

	clicks []entities.UIAction
	fills  map[entities.UIAction][]string
}

// NewMockSite creates a site whose pages land on home after navigation
func NewMockSite(selectors entities.SelectorTable, home string, screens map[string]Screen) *MockSite {
	reverse := make(map[entities.Selector]entities.UIAction, len(selectors))
	for action, sel := range selectors {
		reverse[sel] = action
	}
	return &MockSite{
		screens:   screens,
		home:      func() string { return home },
		selectors: reverse,
		fills:     make(map[entities.UIAction][]string),
	}
}

// SetHome makes navigation land on the screen returned by fn
func (s *MockSite) SetHome(fn func() string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.home = fn
}

// Clicks returns the clicked actions in order
func (s *MockSite) Clicks() []entities.UIAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.UIAction(nil), s.clicks...)
}

// ClickCount returns how many times action was clicked
func (s *MockSite) ClickCount(action entities.UIAction) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.clicks {
		if a == action {
			n++
		}
	}
	return n
}

// Fills returns the values typed into action
func (s *MockSite) Fills(action entities.UIAction) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fills[action]...)
}

// MockBrowser implements interfaces.Browser over a MockSite
type MockBrowser struct {
	mu     sync.Mutex
	site   *MockSite
	pages  []*MockPage
	closed int

	NewPageErr error
	GotoErr    error
}

// NewMockBrowser creates a browser serving site
func NewMockBrowser(site *MockSite) *MockBrowser {
	return &MockBrowser{site: site}
}

// NewPage implements interfaces.Browser
func (b *MockBrowser) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.NewPageErr != nil {
		return nil, b.NewPageErr
	}
	p := &MockPage{browser: b}
	b.pages = append(b.pages, p)
	return p, nil
}

// ActivePage implements interfaces.Browser
func (b *MockBrowser) ActivePage(ctx context.Context) (interfaces.Page, error) {
	b.mu.Lock()
	for i := len(b.pages) - 1; i >= 0; i-- {
		if !b.pages[i].closed {
			p := b.pages[i]
			b.mu.Unlock()
			return p, nil
		}
	}
	b.mu.Unlock()
	return b.NewPage(ctx)
}

// Close implements interfaces.Browser
func (b *MockBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

// PagesOpened returns how many pages were created
func (b *MockBrowser) PagesOpened() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pages)
}

// PagesClosed returns how many pages were closed
func (b *MockBrowser) PagesClosed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, p := range b.pages {
		if p.closed {
			n++
		}
	}
	return n
}

// MockPage implements interfaces.Page
type MockPage struct {
	browser *MockBrowser
	screen  string
	loaded  bool
	closed  bool
	loads   int
}

// Screen returns the screen the page currently shows
func (p *MockPage) Screen() string {
	return p.screen
}

// Goto implements interfaces.Page
func (p *MockPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.closed {
		return fmt.Errorf("page closed")
	}
	if p.browser.GotoErr != nil {
		return p.browser.GotoErr
	}
	site := p.browser.site
	site.mu.Lock()
	home := site.home
	site.mu.Unlock()
	p.screen = home()
	p.loaded = true
	p.loads++
	return nil
}

// WaitForLoad implements interfaces.Page
func (p *MockPage) WaitForLoad(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.closed {
		return fmt.Errorf("page closed")
	}
	p.loaded = true
	p.loads++
	return nil
}

// Find implements interfaces.Page
func (p *MockPage) Find(selector entities.Selector) interfaces.Element {
	site := p.browser.site
	site.mu.Lock()
	action, known := site.selectors[selector]
	site.mu.Unlock()
	return &MockElement{page: p, action: action, known: known}
}

// Close implements interfaces.Page
func (p *MockPage) Close() error {
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()
	p.closed = true
	return nil
}

// MockElement implements interfaces.Element
type MockElement struct {
	page   *MockPage
	action entities.UIAction
	known  bool
}

func (e *MockElement) transition() (Transition, bool) {
	if !e.known || e.page.closed {
		return nil, false
	}
	site := e.page.browser.site
	site.mu.Lock()
	defer site.mu.Unlock()
	screen, ok := site.screens[e.page.screen]
	if !ok {
		return nil, false
	}
	t, ok := screen[e.action]
	return t, ok
}

// IsVisible implements interfaces.Element.
// Elements are never visible before the page reached load.
func (e *MockElement) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !e.page.loaded {
		return false, fmt.Errorf("%s queried before load", e.action)
	}
	_, ok := e.transition()
	return ok, nil
}

// Click implements interfaces.Element; the page must be waited on again afterwards
func (e *MockElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, ok := e.transition()
	if !ok {
		return fmt.Errorf("%s is not visible", e.action)
	}

	site := e.page.browser.site
	site.mu.Lock()
	site.clicks = append(site.clicks, e.action)
	site.mu.Unlock()

	if t != nil {
		if next := t(); next != "" {
			e.page.screen = next
			e.page.loaded = false
		}
	}
	return nil
}

// Fill implements interfaces.Element
func (e *MockElement) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := e.transition(); !ok {
		return fmt.Errorf("%s is not visible", e.action)
	}

	site := e.page.browser.site
	site.mu.Lock()
	site.fills[e.action] = append(site.fills[e.action], text)
	site.mu.Unlock()
	return nil
}
