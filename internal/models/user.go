package models

// User represents a registered person.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address. Unique across all users; the
	// CLI resolves people by email the way the original terminal app did.
	Email string `json:"email"`

	// CreatedAt is the Unix timestamp when the user was registered.
	CreatedAt int64 `json:"created_at"`
}
