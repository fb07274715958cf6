package entity

import "strings"

// Address locates a testing site.
type Address struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	UnitNumber string  `json:"unitNumber"`
	Street     string  `json:"street"`
	Suburb     string  `json:"suburb"`
	State      string  `json:"state"`
	Postcode   string  `json:"postcode"`
}

// TestingSite is a physical COVID testing facility.
type TestingSite struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	WebsiteURL  string         `json:"websiteUrl"`
	PhoneNumber string         `json:"phoneNumber"`
	Address     Address        `json:"address"`
	Extensions  map[string]any `json:"extensionFields"`
}

// Matches reports whether the site matches a free-text search over name,
// suburb and facility kind.
func (s *TestingSite) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(s.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Address.Suburb), term) {
		return true
	}
	for _, kind := range []string{"driveThrough", "walk-in", "clinic", "gp", "hospital"} {
		if flag, _ := s.Extensions[kind].(bool); flag && strings.Contains(strings.ToLower(kind), term) {
			return true
		}
	}
	return false
}
