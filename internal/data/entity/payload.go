package entity

import "fmt"

// BookingPayload is the wire shape of a booking on the record store.
// Version histories travel inside extensionFields as timeVersion1..3 and
// venueVersion1..3.
type BookingPayload struct {
	ID            string         `json:"id,omitempty"`
	CustomerID    string         `json:"customerId"`
	TestingSiteID *string        `json:"testingSiteId"`
	StartTime     string         `json:"startTime"`
	Notes         string         `json:"notes"`
	UpdatedAt     string         `json:"updatedAt"`
	Extensions    map[string]any `json:"extensionFields"`
}

// ToPayload builds the record store representation of the booking.
func (b *Booking) ToPayload() *BookingPayload {
	ext := make(map[string]any, len(b.extensions)+2*versionSlots)
	for k, v := range b.extensions {
		ext[k] = v
	}

	var siteID *string
	if b.kind == BookingKindFacility {
		id := b.TestingSiteID
		siteID = &id
		for i := 1; i <= versionSlots; i++ {
			ext[fmt.Sprintf("timeVersion%d", i)] = b.timeHistory.Slot(i)
			ext[fmt.Sprintf("venueVersion%d", i)] = b.venueHistory.Slot(i)
		}
	}

	return &BookingPayload{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		TestingSiteID: siteID,
		StartTime:     b.StartTime,
		Notes:         b.Notes,
		UpdatedAt:     b.UpdatedAt,
		Extensions:    ext,
	}
}

// BookingFromPayload decodes a record store document. The variant is
// decided here, once, from the presence of a testing site and is never
// re-inspected afterwards.
func BookingFromPayload(p *BookingPayload) *Booking {
	b := &Booking{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		StartTime:  p.StartTime,
		Notes:      p.Notes,
		UpdatedAt:  p.UpdatedAt,
		extensions: map[string]any{},
	}

	if p.TestingSiteID != nil && *p.TestingSiteID != "" {
		b.kind = BookingKindFacility
		b.TestingSiteID = *p.TestingSiteID
		b.timeHistory = VersionHistory{VersionSentinel, VersionSentinel, VersionSentinel}
		b.venueHistory = VersionHistory{VersionSentinel, VersionSentinel, VersionSentinel}
	} else {
		b.kind = BookingKindHome
	}

	for k, v := range p.Extensions {
		if s, ok := v.(string); ok && b.setVersionField(k, s) {
			continue
		}
		b.extensions[k] = v
	}

	return b
}
