package domain

// Identity is the authenticated actor for a single operation: a user and
// the organization (tenant) context it is acting under. It is passed
// explicitly into every service call; there is no ambient auth state.
type Identity struct {
	UserID string
	OrgID  string
}

// Authenticated reports whether both the user and an organization context
// are present. Operations require both.
func (id Identity) Authenticated() bool {
	return id.UserID != "" && id.OrgID != ""
}
