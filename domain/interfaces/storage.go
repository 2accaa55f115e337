package interfaces

// ProfileStore manages on-disk browser profile directories
type ProfileStore interface {
	// EnsureProfile creates the profile directory for token if needed and returns its path
	EnsureProfile(token string) (string, error)

	// ResetProfile removes every file of the profile for token
	ResetProfile(token string) error
}
