package connector

import (
	"context"
	"errors"
	"testing"

	"account_connector/application/mocks"
	"account_connector/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleAccountScreens extends loginScreens with an account chooser shown
// while stale accounts remain.
func staleAccountScreens(stale *int) map[string]mocks.Screen {
	screens := loginScreens(0)
	screens["home"] = mocks.Screen{entities.UISignIn: func() string {
		if *stale > 0 {
			return "chooser"
		}
		return "email"
	}}
	screens["chooser"] = mocks.Screen{
		entities.UIAccountChooser:    nil,
		entities.UIDeleteAccountLink: mocks.Goto("delete_list"),
	}
	screens["delete_list"] = mocks.Screen{entities.UIFirstAccountEntry: mocks.Goto("confirm")}
	screens["confirm"] = mocks.Screen{entities.UIConfirmDelete: func() string {
		*stale--
		return "chooser"
	}}
	return screens
}

func TestLogin_DeletesStaleAccountAndRestarts(t *testing.T) {
	stale := 1
	site := mocks.NewMockSite(selectors(t), "home", staleAccountScreens(&stale))
	c, browser := newTestConnector(t, site, Options{MaxStaleAccounts: 5})

	ok, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, stale)

	assert.Equal(t, []entities.UIAction{
		entities.UISignIn,
		entities.UIDeleteAccountLink,
		entities.UIFirstAccountEntry,
		entities.UIConfirmDelete,
		// restarted from the top on a new page
		entities.UISignIn,
		entities.UINextButton,
		entities.UINextButton,
	}, site.Clicks())
	assert.Equal(t, 2, browser.PagesOpened())
	assertPagesBalanced(t, browser)
}

func TestLogin_SeveralStaleAccounts(t *testing.T) {
	stale := 3
	site := mocks.NewMockSite(selectors(t), "home", staleAccountScreens(&stale))
	c, browser := newTestConnector(t, site, Options{MaxStaleAccounts: 3})

	ok, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, site.ClickCount(entities.UIConfirmDelete))
	assert.Equal(t, 4, browser.PagesOpened())
	assertPagesBalanced(t, browser)
}

func TestLogin_TooManyStaleAccounts(t *testing.T) {
	stale := 10
	site := mocks.NewMockSite(selectors(t), "home", staleAccountScreens(&stale))
	c, browser := newTestConnector(t, site, Options{MaxStaleAccounts: 2})

	ok, err := c.Login(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, entities.ErrTooManyStaleAccounts)
	assert.Equal(t, 2, site.ClickCount(entities.UIConfirmDelete))
	assert.Equal(t, 8, stale)
	assert.Equal(t, 3, browser.PagesOpened())
	assertPagesBalanced(t, browser)
}

func TestLogin_DeletionStepMissing(t *testing.T) {
	tests := []struct {
		name    string
		missing entities.UIAction
		edit    func(map[string]mocks.Screen)
	}{
		{
			name:    "no delete link",
			missing: entities.UIDeleteAccountLink,
			edit: func(s map[string]mocks.Screen) {
				s["chooser"] = mocks.Screen{entities.UIAccountChooser: nil}
			},
		},
		{
			name:    "empty account list",
			missing: entities.UIFirstAccountEntry,
			edit: func(s map[string]mocks.Screen) {
				s["delete_list"] = mocks.Screen{}
			},
		},
		{
			name:    "no confirmation",
			missing: entities.UIConfirmDelete,
			edit: func(s map[string]mocks.Screen) {
				s["confirm"] = mocks.Screen{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stale := 1
			screens := staleAccountScreens(&stale)
			tt.edit(screens)
			site := mocks.NewMockSite(selectors(t), "home", screens)
			c, browser := newTestConnector(t, site, Options{MaxStaleAccounts: 5})

			ok, err := c.Login(context.Background())
			assert.False(t, ok)

			var notFound *entities.NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, tt.missing, notFound.Action)
			assert.Equal(t, 1, stale)
			assert.Equal(t, 1, browser.PagesOpened())
			assertPagesBalanced(t, browser)
		})
	}
}

func TestLogin_DeletionBlockedByGuard(t *testing.T) {
	stale := 1
	site := mocks.NewMockSite(selectors(t), "home", staleAccountScreens(&stale))
	c, browser := newTestConnector(t, site, Options{MaxStaleAccounts: 5}, entities.UIDeleteAccountLink)

	ok, err := c.Login(context.Background())
	assert.False(t, ok)

	var rejected *entities.ActionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, entities.UIDeleteAccountLink, rejected.Step)
	assert.Zero(t, site.ClickCount(entities.UIDeleteAccountLink))
	assertPagesBalanced(t, browser)
}

func TestLogin_NoDeletionWhenCapIsZero(t *testing.T) {
	stale := 1
	site := mocks.NewMockSite(selectors(t), "home", staleAccountScreens(&stale))
	c, _ := newTestConnector(t, site, Options{})

	ok, err := c.Login(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, entities.ErrTooManyStaleAccounts)
	assert.Zero(t, site.ClickCount(entities.UIDeleteAccountLink))
}
