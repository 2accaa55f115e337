package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelectors_Complete(t *testing.T) {
	actions := []UIAction{
		UIAcceptCookies, UISwitchLocale, UISignIn, UIAccountChooser,
		UIDeleteAccountLink, UIFirstAccountEntry, UIConfirmDelete,
		UIEmailInput, UINextButton, UIPasswordInput, UIInvalidPassword,
	}

	for _, locale := range []string{"fr-FR", "en-US"} {
		table, err := DefaultSelectors(locale)
		require.NoError(t, err)

		for _, action := range actions {
			sel, err := table.Lookup(action)
			require.NoError(t, err, "%s/%s", locale, action)
			assert.NoError(t, sel.Validate(), "%s/%s", locale, action)
		}
	}
}

func TestDefaultSelectors_ReturnsCopy(t *testing.T) {
	table, err := DefaultSelectors("fr-FR")
	require.NoError(t, err)
	table[UISignIn] = Selector{Kind: SelectorText, Name: "changed"}

	again, err := DefaultSelectors("fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "Connexion", again[UISignIn].Name)
}

func TestSelectorTable_Lookup(t *testing.T) {
	_, err := SelectorTable{}.Lookup(UISignIn)
	assert.Error(t, err)
}

func TestSelector_String(t *testing.T) {
	assert.Equal(t, `role=heading[name="Sélectionner un compte"] >> span`,
		Selector{Kind: SelectorRole, Role: "heading", Name: "Sélectionner un compte", Inner: "span"}.String())
	assert.Equal(t, `label="Connexion"`, Selector{Kind: SelectorLabel, Name: "Connexion"}.String())
	assert.Equal(t, "div > ul", Selector{Kind: SelectorCSS, Name: "div > ul"}.String())
}

func TestErrors(t *testing.T) {
	nf := &NotFoundError{Action: UISignIn, Selector: Selector{Kind: SelectorLabel, Name: "Connexion"}}
	assert.Equal(t, `sign_in not found (label="Connexion")`, nf.Error())

	rejected := &ActionRejectedError{Step: UINextButton, Err: ErrInvalidPassword}
	assert.ErrorIs(t, rejected, ErrInvalidPassword)
}
