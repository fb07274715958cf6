package collection

import (
	"strings"

	"covid-booking/internal/data/entity"
)

// BookingCollection is the in-memory mirror of the bookings known to the
// record store. It is a convenience index, not the system of record, and
// is not safe for concurrent use. Lookups are linear scans; duplicates are
// not prevented and the last match wins.
type BookingCollection struct {
	bookings []*entity.Booking
}

func NewBookingCollection() *BookingCollection {
	return &BookingCollection{}
}

func (c *BookingCollection) Add(booking *entity.Booking) {
	c.bookings = append(c.bookings, booking)
}

// RemoveByID drops the booking with the given id. Removing an unknown id
// is a no-op.
func (c *BookingCollection) RemoveByID(id string) bool {
	for i, booking := range c.bookings {
		if booking.ID == id {
			c.bookings = append(c.bookings[:i], c.bookings[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the entry with the given id for the supplied booking. The
// new booking is added even when no old entry existed.
func (c *BookingCollection) Replace(id string, booking *entity.Booking) {
	c.RemoveByID(id)
	c.Add(booking)
}

func (c *BookingCollection) FindByID(id string) *entity.Booking {
	var found *entity.Booking
	for _, booking := range c.bookings {
		if booking.ID == id {
			found = booking
		}
	}
	return found
}

// FindByField scans extension fields for a case-insensitive value match.
func (c *BookingCollection) FindByField(name, value string) *entity.Booking {
	var found *entity.Booking
	for _, booking := range c.bookings {
		v, ok := booking.Field(name)
		if ok && strings.EqualFold(v, value) {
			found = booking
		}
	}
	return found
}

func (c *BookingCollection) FindByPIN(pin string) *entity.Booking {
	return c.FindByField(entity.FieldPIN, pin)
}

// ActiveForCustomer returns the customer's bookings whose test has not yet
// been administered.
func (c *BookingCollection) ActiveForCustomer(customerID string) []*entity.Booking {
	var active []*entity.Booking
	for _, booking := range c.bookings {
		if booking.CustomerID == customerID && booking.Active() {
			active = append(active, booking)
		}
	}
	return active
}

func (c *BookingCollection) Len() int {
	return len(c.bookings)
}
