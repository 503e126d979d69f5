package model

import "strings"

// MemberFilter is the list-page filter: a free-text search plus exact facets.
// All non-empty predicates are ANDed.
type MemberFilter struct {
	Search         string // case-insensitive substring over name, email, phone
	Status         string // exact match, "" or "all" disables
	MembershipType string // exact match, "" or "all" disables
}

func (f *MemberFilter) matches(m *Member) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) &&
			!strings.Contains(strings.ToLower(m.Phone), q) {
			return false
		}
	}
	if f.Status != "" && f.Status != "all" && string(m.Status) != f.Status {
		return false
	}
	if f.MembershipType != "" && f.MembershipType != "all" && m.MembershipType != f.MembershipType {
		return false
	}
	return true
}

// FilterMembers returns the members matching the filter, preserving order.
func FilterMembers(members []Member, f MemberFilter) []Member {
	out := []Member{}
	for i := range members {
		if f.matches(&members[i]) {
			out = append(out, members[i])
		}
	}
	return out
}
