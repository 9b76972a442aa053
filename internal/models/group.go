package models

// Group represents a set of members who share expenses.
// Each group owns an independent expense ledger, settlement history and
// debt tracker; nothing is shared between groups.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g. "Roommates", "Goa Trip").
	Name string `json:"name"`

	// MemberIDs are the user IDs of the group's members.
	MemberIDs []string `json:"member_ids"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether userID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
