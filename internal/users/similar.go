package users

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similar returns the first record that looks like a duplicate of d: same
// email ignoring case, or a full name within maxDistance edits. Records whose
// ID equals skipID are ignored. A negative maxDistance disables name matching.
func Similar(s Store, d Draft, skipID string, maxDistance int) (User, bool) {
	email := strings.ToLower(strings.TrimSpace(d.Email))
	name := normName(d.FirstName + " " + d.LastName)
	for _, u := range s.users {
		if u.ID == skipID {
			continue
		}
		if email != "" && strings.ToLower(strings.TrimSpace(u.Email)) == email {
			return u, true
		}
		if maxDistance < 0 || name == "" {
			continue
		}
		if levenshtein.ComputeDistance(name, normName(u.FullName())) <= maxDistance {
			return u, true
		}
	}
	return User{}, false
}

func normName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
