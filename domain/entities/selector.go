package entities

import "fmt"

// UIAction names a logical step of the UI the connector interacts with.
type UIAction string

const (
	UIAcceptCookies     UIAction = "accept_cookies"
	UISwitchLocale      UIAction = "switch_locale"
	UISignIn            UIAction = "sign_in"
	UIAccountChooser    UIAction = "account_chooser"
	UIDeleteAccountLink UIAction = "delete_account_link"
	UIFirstAccountEntry UIAction = "first_account_entry"
	UIConfirmDelete     UIAction = "confirm_delete"
	UIEmailInput        UIAction = "email_input"
	UINextButton        UIAction = "next_button"
	UIPasswordInput     UIAction = "password_input"
	UIInvalidPassword   UIAction = "invalid_password"

	// steps that are not bound to a selector
	UINavigate UIAction = "navigate"
	UIOpenPage UIAction = "open_page"
)

// SelectorKind tells the browser layer which locator strategy to use.
type SelectorKind string

const (
	SelectorLabel SelectorKind = "label"
	SelectorRole  SelectorKind = "role"
	SelectorText  SelectorKind = "text"
	SelectorCSS   SelectorKind = "css"
)

// Selector describes how to find one element on a page.
type Selector struct {
	Kind  SelectorKind `yaml:"kind" json:"kind"`
	Role  string       `yaml:"role,omitempty" json:"role,omitempty"`   // aria role, only for SelectorRole
	Name  string       `yaml:"name" json:"name"`                       // label, accessible name, text or css
	Inner string       `yaml:"inner,omitempty" json:"inner,omitempty"` // nested css within the match
}

func (s Selector) String() string {
	var base string
	switch s.Kind {
	case SelectorRole:
		base = fmt.Sprintf("role=%s[name=%q]", s.Role, s.Name)
	case SelectorCSS:
		base = s.Name
	default:
		base = fmt.Sprintf("%s=%q", s.Kind, s.Name)
	}
	if s.Inner != "" {
		base += " >> " + s.Inner
	}
	return base
}

// Validate checks that the selector can be resolved by a locator.
func (s Selector) Validate() error {
	switch s.Kind {
	case SelectorLabel, SelectorText, SelectorCSS:
	case SelectorRole:
		if s.Role == "" {
			return fmt.Errorf("role selector %q has no role", s.Name)
		}
	default:
		return fmt.Errorf("unknown selector kind %q", s.Kind)
	}
	if s.Name == "" {
		return fmt.Errorf("%s selector has empty name", s.Kind)
	}
	return nil
}

// SelectorTable maps logical UI actions to locale specific selectors.
type SelectorTable map[UIAction]Selector

// Lookup returns the selector registered for action.
func (t SelectorTable) Lookup(action UIAction) (Selector, error) {
	sel, ok := t[action]
	if !ok {
		return Selector{}, fmt.Errorf("no selector configured for %s", action)
	}
	return sel, nil
}

// Merge returns a copy of t with the entries of override applied on top.
func (t SelectorTable) Merge(override SelectorTable) SelectorTable {
	merged := make(SelectorTable, len(t)+len(override))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// firstAccountEntry is positional on every locale: first item of the account menu.
var firstAccountEntry = Selector{Kind: SelectorCSS, Name: "div[jsname] > ul > li:first-child"}

var passwordInput = Selector{Kind: SelectorCSS, Name: `input[type="password"]`}

var builtinSelectors = map[string]SelectorTable{
	"fr-FR": {
		UIAcceptCookies:     {Kind: SelectorRole, Role: "button", Name: "Tout accepter"},
		UISwitchLocale:      {Kind: SelectorRole, Role: "link", Name: "Français"},
		UISignIn:            {Kind: SelectorLabel, Name: "Connexion"},
		UIAccountChooser:    {Kind: SelectorRole, Role: "heading", Name: "Sélectionner un compte", Inner: "span"},
		UIDeleteAccountLink: {Kind: SelectorRole, Role: "link", Name: "Supprimer un compte"},
		UIFirstAccountEntry: firstAccountEntry,
		UIConfirmDelete:     {Kind: SelectorRole, Role: "button", Name: "Oui, supprimer"},
		UIEmailInput:        {Kind: SelectorLabel, Name: "Adresse e-mail ou téléphone"},
		UINextButton:        {Kind: SelectorRole, Role: "button", Name: "Suivant"},
		UIPasswordInput:     passwordInput,
		UIInvalidPassword:   {Kind: SelectorText, Name: "Saisissez un mot de passe"},
	},
	"en-US": {
		UIAcceptCookies:     {Kind: SelectorRole, Role: "button", Name: "Accept all"},
		UISwitchLocale:      {Kind: SelectorRole, Role: "link", Name: "English"},
		UISignIn:            {Kind: SelectorLabel, Name: "Sign in"},
		UIAccountChooser:    {Kind: SelectorRole, Role: "heading", Name: "Choose an account", Inner: "span"},
		UIDeleteAccountLink: {Kind: SelectorRole, Role: "link", Name: "Remove an account"},
		UIFirstAccountEntry: firstAccountEntry,
		UIConfirmDelete:     {Kind: SelectorRole, Role: "button", Name: "Yes, remove"},
		UIEmailInput:        {Kind: SelectorLabel, Name: "Email or phone"},
		UINextButton:        {Kind: SelectorRole, Role: "button", Name: "Next"},
		UIPasswordInput:     passwordInput,
		UIInvalidPassword:   {Kind: SelectorText, Name: "Enter a password"},
	},
}

// DefaultSelectors returns the built-in table for locale.
func DefaultSelectors(locale string) (SelectorTable, error) {
	table, ok := builtinSelectors[locale]
	if !ok {
		return nil, fmt.Errorf("no built-in selectors for locale %q", locale)
	}
	return table.Merge(nil), nil
}
