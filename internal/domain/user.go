package domain

import "time"

// User is a known actor referenced as reporter or assignee. Credentials
// live with the external identity provider; only the reference is stored.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Initials returns up to two uppercase initials for avatar-style display.
func (u *User) Initials() string {
	var out []rune
	word := false
	for _, r := range u.Name {
		if r == ' ' || r == '\t' {
			word = false
			continue
		}
		if !word {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			out = append(out, r)
			word = true
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
