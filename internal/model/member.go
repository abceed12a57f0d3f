package model

// Default role assigned to members registered from within the board UI.
const RoleMember = "member"

// Member is an identity from the member directory, used to populate
// every assignment picker.
type Member struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role,omitempty"`
}

// Display returns the name to show in pickers and assignments,
// falling back to the username when no display name is set.
func (m Member) Display() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}
