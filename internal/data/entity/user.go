package entity

import "fmt"

// Extension field keys owned by user records.
const (
	FieldWorkplace = "workplace"
	FieldInbox     = "inbox"
)

// Message is a change notification sitting in a staff inbox until the
// staff member's client drains it.
type Message struct {
	Kind       string `json:"kind"`
	CustomerID string `json:"customerId"`
}

// User is a patient or staff record mirrored from the record store. Role
// flags are independent; site staff carry their workplace and inbox in the
// extension map.
type User struct {
	ID                 string
	GivenName          string
	FamilyName         string
	UserName           string
	PhoneNumber        string
	IsCustomer         bool
	IsReceptionist     bool
	IsHealthcareWorker bool

	extensions map[string]any
}

// UserPayload is the wire shape of a user on the record store.
type UserPayload struct {
	ID                 string         `json:"id,omitempty"`
	GivenName          string         `json:"givenName"`
	FamilyName         string         `json:"familyName"`
	UserName           string         `json:"userName"`
	PhoneNumber        string         `json:"phoneNumber"`
	IsCustomer         bool           `json:"isCustomer"`
	IsReceptionist     bool           `json:"isReceptionist"`
	IsHealthcareWorker bool           `json:"isHealthcareWorker"`
	Extensions         map[string]any `json:"extensionFields"`
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.GivenName, u.FamilyName)
}

// SiteStaff reports whether the user staffs a testing site and therefore
// subscribes to booking change notifications.
func (u *User) SiteStaff() bool {
	return u.IsReceptionist && !u.IsCustomer
}

// Workplace returns the testing site the staff member works at, empty when
// none is recorded.
func (u *User) Workplace() string {
	v, ok := u.extensions[FieldWorkplace]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (u *User) SetWorkplace(testingSiteID string) {
	if u.extensions == nil {
		u.extensions = map[string]any{}
	}
	u.extensions[FieldWorkplace] = testingSiteID
}

// Inbox returns the undelivered change messages on this record. Entries
// that do not look like messages are skipped.
func (u *User) Inbox() []Message {
	raw, ok := u.extensions[FieldInbox].([]any)
	if !ok {
		return nil
	}

	messages := make([]Message, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["kind"].(string)
		customerID, _ := m["customerId"].(string)
		messages = append(messages, Message{Kind: kind, CustomerID: customerID})
	}
	return messages
}

// AddMessage appends a change message to the inbox.
func (u *User) AddMessage(msg Message) {
	if u.extensions == nil {
		u.extensions = map[string]any{}
	}
	raw, _ := u.extensions[FieldInbox].([]any)
	u.extensions[FieldInbox] = append(raw, map[string]any{
		"kind":       msg.Kind,
		"customerId": msg.CustomerID,
	})
}

// ClearInbox empties the inbox after its messages have been displayed.
func (u *User) ClearInbox() {
	if u.extensions == nil {
		u.extensions = map[string]any{}
	}
	u.extensions[FieldInbox] = []any{}
}

// ToPayload builds the record store representation of the user.
func (u *User) ToPayload() *UserPayload {
	ext := make(map[string]any, len(u.extensions))
	for k, v := range u.extensions {
		ext[k] = v
	}

	return &UserPayload{
		ID:                 u.ID,
		GivenName:          u.GivenName,
		FamilyName:         u.FamilyName,
		UserName:           u.UserName,
		PhoneNumber:        u.PhoneNumber,
		IsCustomer:         u.IsCustomer,
		IsReceptionist:     u.IsReceptionist,
		IsHealthcareWorker: u.IsHealthcareWorker,
		Extensions:         ext,
	}
}

// UserFromPayload decodes a record store document.
func UserFromPayload(p *UserPayload) *User {
	ext := make(map[string]any, len(p.Extensions))
	for k, v := range p.Extensions {
		ext[k] = v
	}

	return &User{
		ID:                 p.ID,
		GivenName:          p.GivenName,
		FamilyName:         p.FamilyName,
		UserName:           p.UserName,
		PhoneNumber:        p.PhoneNumber,
		IsCustomer:         p.IsCustomer,
		IsReceptionist:     p.IsReceptionist,
		IsHealthcareWorker: p.IsHealthcareWorker,
		extensions:         ext,
	}
}
