package entities

// ConnectionState is a step of the account connection state machine
type ConnectionState string

const (
	StateUnknown          ConnectionState = "unknown"
	StateCheckingLogin    ConnectionState = "checking_login"
	StateLoggedIn         ConnectionState = "logged_in"
	StateNeedsLogin       ConnectionState = "needs_login"
	StateMultipleAccounts ConnectionState = "multiple_accounts_present"
	StateDeletingAccount  ConnectionState = "deleting_account"
	StateLoginAttempted   ConnectionState = "login_attempted"
	StateSuccess          ConnectionState = "success"
	StateFailed           ConnectionState = "failed"
)

// Credentials is the fixed account used for every login attempt
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}

// IsZero reports whether no credentials were configured.
func (c Credentials) IsZero() bool {
	return c.Email == "" && c.Password == ""
}
