package connector

import (
	"context"
	"errors"
	"fmt"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures the connection state machine
type Options struct {
	TargetURL   string
	Selectors   entities.SelectorTable
	Credentials entities.Credentials

	// MaxStaleAccounts caps how many saved accounts Login deletes before giving up.
	MaxStaleAccounts int

	// TreatSilentLoginAsConnected reports a sign-in control that vanishes
	// after being clicked as connected instead of not connected.
	TreatSilentLoginAsConnected bool
}

// Connector checks and establishes the logged in state of a browser context
type Connector struct {
	browser interfaces.Browser
	guard   interfaces.ActionGuard
	logger  *logrus.Logger
	opts    Options
	state   entities.ConnectionState
}

// NewConnector - creates a connector over an already bootstrapped browser
func NewConnector(browser interfaces.Browser, guard interfaces.ActionGuard, logger *logrus.Logger, opts Options) *Connector {
	return &Connector{
		browser: browser,
		guard:   guard,
		logger:  logger,
		opts:    opts,
		state:   entities.StateUnknown,
	}
}

// State - returns the last state the machine reached
func (c *Connector) State() entities.ConnectionState {
	return c.state
}

// Connect - checks the connection and logs in when not connected
func (c *Connector) Connect(ctx context.Context) (bool, error) {
	runID := uuid.NewString()
	log := c.logger.WithField("run_id", runID)

	connected, err := c.checkConnection(ctx, runID)
	if err != nil {
		return false, fmt.Errorf("check connection: %w", err)
	}
	log.WithField("connected", connected).Info("Connection before login")
	if connected {
		return true, nil
	}

	connected, err = c.login(ctx, runID)
	log.WithField("connected", connected).Info("Connection after login")
	if err != nil {
		return false, fmt.Errorf("login: %w", err)
	}
	return connected, nil
}

// CheckConnection - reports whether the account is already logged in
func (c *Connector) CheckConnection(ctx context.Context) (bool, error) {
	return c.checkConnection(ctx, uuid.NewString())
}

func (c *Connector) checkConnection(ctx context.Context, runID string) (bool, error) {
	s, err := c.openStep(ctx, runID, "check")
	if err != nil {
		return false, err
	}
	defer s.close()

	s.transition(entities.StateCheckingLogin)

	visible, err := s.visible(ctx, entities.UISignIn)
	if err != nil {
		return false, err
	}
	if !visible {
		s.transition(entities.StateLoggedIn)
		return true, nil
	}

	if err := s.clickAndWait(ctx, entities.UISignIn); err != nil {
		return false, err
	}

	multiple, err := s.visible(ctx, entities.UIAccountChooser)
	if err != nil {
		return false, err
	}
	if multiple {
		s.transition(entities.StateMultipleAccounts)
		return false, nil
	}

	visible, err = s.visible(ctx, entities.UISignIn)
	if err != nil {
		return false, err
	}
	if !visible {
		if c.opts.TreatSilentLoginAsConnected {
			s.transition(entities.StateLoggedIn)
			return true, nil
		}
		s.log.Warn("Sign-in control vanished after click without account chooser, reporting not connected")
	}

	s.transition(entities.StateNeedsLogin)
	return false, nil
}

type attemptOutcome int

const (
	attemptFailed attemptOutcome = iota
	attemptSucceeded
	attemptRetry
)

// Login - drives the login dialog, deleting stale accounts first when the
// account chooser shows up. Each deletion restarts the flow from a new page.
func (c *Connector) Login(ctx context.Context) (bool, error) {
	return c.login(ctx, uuid.NewString())
}

func (c *Connector) login(ctx context.Context, runID string) (bool, error) {
	for deleted := 0; ; deleted++ {
		if err := ctx.Err(); err != nil {
			c.state = entities.StateFailed
			return false, err
		}

		outcome, err := c.loginAttempt(ctx, runID, deleted)
		switch outcome {
		case attemptRetry:
			continue
		case attemptSucceeded:
			return true, nil
		default:
			return false, err
		}
	}
}

func (c *Connector) loginAttempt(ctx context.Context, runID string, deleted int) (outcome attemptOutcome, err error) {
	s, err := c.openStep(ctx, runID, "login")
	if err != nil {
		return attemptFailed, err
	}
	defer s.close()
	defer func() {
		if outcome == attemptFailed {
			s.log.WithError(err).Warn("Login failed")
			s.transition(entities.StateFailed)
		}
	}()

	s.log = s.log.WithField("deleted_accounts", deleted)
	s.transition(entities.StateCheckingLogin)

	if err := s.requireVisible(ctx, entities.UISignIn); err != nil {
		return attemptFailed, err
	}
	if err := s.clickAndWait(ctx, entities.UISignIn); err != nil {
		return attemptFailed, err
	}

	multiple, err := s.visible(ctx, entities.UIAccountChooser)
	if err != nil {
		return attemptFailed, err
	}
	if multiple {
		s.transition(entities.StateMultipleAccounts)
		if deleted >= c.opts.MaxStaleAccounts {
			return attemptFailed, fmt.Errorf("%w: deleted %d", entities.ErrTooManyStaleAccounts, deleted)
		}
		if err := c.deleteAccount(ctx, s); err != nil {
			return attemptFailed, err
		}
		return attemptRetry, nil
	}

	s.transition(entities.StateNeedsLogin)
	if err := c.enterCredentials(ctx, s); err != nil {
		return attemptFailed, err
	}
	s.transition(entities.StateSuccess)
	return attemptSucceeded, nil
}

// step is one page opened by the state machine
type step struct {
	c    *Connector
	page interfaces.Page
	log  *logrus.Entry
}

// openStep opens a page for one step of the run identified by runID
func (c *Connector) openStep(ctx context.Context, runID, name string) (*step, error) {
	log := c.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"step":   name,
	})

	page, err := c.browser.NewPage(ctx)
	if err != nil {
		return nil, &entities.ActionRejectedError{Step: entities.UIOpenPage, Err: err}
	}
	s := &step{c: c, page: page, log: log}

	if err := page.Goto(ctx, c.opts.TargetURL); err != nil {
		s.close()
		return nil, &entities.ActionRejectedError{Step: entities.UINavigate, Err: err}
	}
	return s, nil
}

func (s *step) close() {
	if err := s.page.Close(); err != nil {
		s.log.WithError(err).Warn("Failed to close page")
	}
}

func (s *step) transition(state entities.ConnectionState) {
	s.c.state = state
	s.log.WithField("state", state).Debug("State transition")
}

func (s *step) find(action entities.UIAction) (interfaces.Element, entities.Selector, error) {
	sel, err := s.c.opts.Selectors.Lookup(action)
	if err != nil {
		return nil, entities.Selector{}, err
	}
	return s.page.Find(sel), sel, nil
}

func (s *step) visible(ctx context.Context, action entities.UIAction) (bool, error) {
	el, _, err := s.find(action)
	if err != nil {
		return false, err
	}
	visible, err := el.IsVisible(ctx)
	if err != nil {
		return false, &entities.ActionRejectedError{Step: action, Err: err}
	}
	return visible, nil
}

// requireVisible - returns a *NotFoundError when action is not visible
func (s *step) requireVisible(ctx context.Context, action entities.UIAction) error {
	el, sel, err := s.find(action)
	if err != nil {
		return err
	}
	visible, err := el.IsVisible(ctx)
	if err != nil {
		return &entities.ActionRejectedError{Step: action, Err: err}
	}
	if !visible {
		return &entities.NotFoundError{Action: action, Selector: sel}
	}
	return nil
}

// clickAndWait - clicks then waits for load; nothing is queried before load
func (s *step) clickAndWait(ctx context.Context, action entities.UIAction) error {
	el, sel, err := s.find(action)
	if err != nil {
		return err
	}
	if !s.c.guard.Allow(ctx, action, sel) {
		return &entities.ActionRejectedError{Step: action, Err: errors.New("blocked by guard")}
	}

	s.log.WithFields(logrus.Fields{
		"action": action,
		"risk":   s.c.guard.RiskLevel(action, sel),
	}).Debug("Click")

	if err := el.Click(ctx); err != nil {
		return &entities.ActionRejectedError{Step: action, Err: err}
	}
	if err := s.page.WaitForLoad(ctx); err != nil {
		return &entities.ActionRejectedError{Step: action, Err: fmt.Errorf("wait for load: %w", err)}
	}
	return nil
}

func (s *step) fill(ctx context.Context, action entities.UIAction, text string) error {
	el, _, err := s.find(action)
	if err != nil {
		return err
	}
	if err := el.Fill(ctx, text); err != nil {
		return &entities.ActionRejectedError{Step: action, Err: err}
	}
	return nil
}
