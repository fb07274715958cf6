package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"covid-booking/pkg/utils"
)

// BookingKind tags the booking variant. It is fixed when the booking is
// constructed or decoded and never changes afterwards.
type BookingKind string

const (
	BookingKindHome     BookingKind = "home"
	BookingKindFacility BookingKind = "facility"
)

// Extension field keys owned by the booking variants.
const (
	FieldPIN         = "pin"
	FieldQRCode      = "qrCode"
	FieldAccessURL   = "accessUrl"
	FieldNeedsKit    = "needsKit"
	FieldKitPickedUp = "kitPickedUp"
	FieldStatus      = "status"

	// Home-testing handshake fields, written during the video interview.
	FieldVerifyCode = "code"
	FieldComments   = "comments"
)

const (
	pinLength       = 4
	qrCodeLength    = 15
	accessURLLength = 10
)

// Booking is a COVID-test appointment. A facility booking is tied to a
// testing site and identified to staff by a short PIN; a home booking is
// self-administered and identified by a QR code and access URL.
type Booking struct {
	// ID is assigned by the record store and stays empty until the first
	// successful create.
	ID            string
	CustomerID    string
	TestingSiteID string // empty for home bookings
	StartTime     string
	Notes         string
	UpdatedAt     string

	kind         BookingKind
	extensions   map[string]any
	timeHistory  VersionHistory
	venueHistory VersionHistory
}

// NewFacilityBooking creates an on-site appointment. The PIN is generated
// once here and never changes; both edit histories are seeded with the
// initial values.
func NewFacilityBooking(customerID, testingSiteID, startTime string) *Booking {
	b := newBooking(customerID, startTime)
	b.kind = BookingKindFacility
	b.TestingSiteID = testingSiteID
	b.extensions[FieldPIN] = utils.RandomDigits(pinLength)
	b.timeHistory = NewVersionHistory(startTime)
	b.venueHistory = NewVersionHistory(testingSiteID)
	return b
}

// NewHomeBooking creates a self-administered appointment with a generated
// QR code and access URL.
func NewHomeBooking(customerID, startTime string, needsKit bool) *Booking {
	b := newBooking(customerID, startTime)
	b.kind = BookingKindHome
	b.extensions[FieldQRCode] = utils.RandomString(qrCodeLength)
	b.extensions[FieldAccessURL] = utils.RandomString(accessURLLength)
	b.extensions[FieldNeedsKit] = needsKit
	b.extensions[FieldKitPickedUp] = false
	return b
}

func newBooking(customerID, startTime string) *Booking {
	return &Booking{
		CustomerID: customerID,
		StartTime:  startTime,
		UpdatedAt:  startTime,
		extensions: map[string]any{
			FieldStatus: string(TestStatusInitiated),
		},
	}
}

func (b *Booking) Kind() BookingKind {
	return b.kind
}

// Field returns the named extension value as a string. The rotating
// version slots are addressed through the same namespace so searches over
// extension fields see them. Missing or non-string entries report absent.
func (b *Booking) Field(name string) (string, bool) {
	if v, ok := b.versionField(name); ok {
		return v, true
	}

	v, ok := b.extensions[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SetField stores an extension value, last write wins. Writes to version
// slot names go to the corresponding history slot.
func (b *Booking) SetField(name string, value any) {
	if s, ok := value.(string); ok && b.setVersionField(name, s) {
		return
	}
	if b.extensions == nil {
		b.extensions = map[string]any{}
	}
	b.extensions[name] = value
}

func (b *Booking) boolField(name string) bool {
	v, ok := b.extensions[name]
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

// versionSlotFor resolves names of the form timeVersionN / venueVersionN.
func (b *Booking) versionSlotFor(name string) (*VersionHistory, int) {
	var family *VersionHistory
	var suffix string

	switch {
	case strings.HasPrefix(name, "timeVersion"):
		family, suffix = &b.timeHistory, strings.TrimPrefix(name, "timeVersion")
	case strings.HasPrefix(name, "venueVersion"):
		family, suffix = &b.venueHistory, strings.TrimPrefix(name, "venueVersion")
	default:
		return nil, 0
	}

	slot, err := strconv.Atoi(suffix)
	if err != nil || slot < 1 || slot > versionSlots {
		return nil, 0
	}
	if b.kind != BookingKindFacility {
		return nil, 0
	}
	return family, slot
}

func (b *Booking) versionField(name string) (string, bool) {
	family, slot := b.versionSlotFor(name)
	if family == nil {
		return "", false
	}
	return family.Slot(slot), true
}

func (b *Booking) setVersionField(name, value string) bool {
	family, slot := b.versionSlotFor(name)
	if family == nil {
		return false
	}
	family[slot-1] = value
	return true
}

// PIN returns the facility booking's access code.
func (b *Booking) PIN() string {
	pin, _ := b.Field(FieldPIN)
	return pin
}

// QRCode returns the home booking's QR code.
func (b *Booking) QRCode() string {
	code, _ := b.Field(FieldQRCode)
	return code
}

// AccessURL returns the home booking's access URL.
func (b *Booking) AccessURL() string {
	url, _ := b.Field(FieldAccessURL)
	return url
}

// NeedsKit reports whether the patient still needs to pick up a RAT kit.
// Always false for facility bookings.
func (b *Booking) NeedsKit() bool {
	return b.kind == BookingKindHome && b.boolField(FieldNeedsKit)
}

// HasPickedUpKit reports whether the kit has been handed over.
func (b *Booking) HasPickedUpKit() bool {
	return b.kind == BookingKindHome && b.boolField(FieldKitPickedUp)
}

// ClaimKit records the kit handover. It fails when the booking is not a
// home booking, the kit was already picked up, or no kit is needed; it
// succeeds exactly once otherwise.
func (b *Booking) ClaimKit() bool {
	if b.kind != BookingKindHome {
		return false
	}
	if b.boolField(FieldKitPickedUp) || !b.boolField(FieldNeedsKit) {
		return false
	}
	b.extensions[FieldKitPickedUp] = true
	b.extensions[FieldNeedsKit] = false
	return true
}

// VerifyCode returns the handshake code published by the patient at the
// start of a home-testing interview, empty until then.
func (b *Booking) VerifyCode() string {
	code, _ := b.Field(FieldVerifyCode)
	return code
}

func (b *Booking) SetVerifyCode(code string) {
	b.SetField(FieldVerifyCode, code)
}

// Comments returns the interviewer's comments attached during home
// testing. Decoded records carry them as a generic JSON array.
func (b *Booking) Comments() []string {
	switch v := b.extensions[FieldComments].(type) {
	case []string:
		return v
	case []any:
		comments := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				comments = append(comments, s)
			}
		}
		return comments
	}
	return nil
}

func (b *Booking) SetComments(comments []string) {
	b.SetField(FieldComments, comments)
}

// Status returns the booking's test status. An empty value means no test
// has been associated yet and counts as active.
func (b *Booking) Status() TestStatus {
	s, _ := b.Field(FieldStatus)
	return TestStatus(s)
}

func (b *Booking) SetStatus(status TestStatus) {
	b.SetField(FieldStatus, string(status))
}

// Active reports whether the appointment's test has not been administered.
func (b *Booking) Active() bool {
	s := b.Status()
	return s == "" || s == TestStatusInitiated
}

// EditStartTime moves the appointment, snapshotting the previous time for
// facility bookings.
func (b *Booking) EditStartTime(startTime string) {
	if b.kind == BookingKindFacility {
		b.timeHistory.Record(b.StartTime)
	}
	b.StartTime = startTime
	b.Touch()
}

// EditVenue moves a facility booking to another testing site, snapshotting
// the previous site. Home bookings have no venue.
func (b *Booking) EditVenue(testingSiteID string) error {
	if b.kind != BookingKindFacility {
		return fmt.Errorf("home booking has no venue")
	}
	b.venueHistory.Record(b.TestingSiteID)
	b.TestingSiteID = testingSiteID
	b.Touch()
	return nil
}

// RestoreStartTime swaps the live start time with the snapshot in the given
// 1-based slot. Restoring an empty slot fails without mutating the booking.
func (b *Booking) RestoreStartTime(slot int) bool {
	if b.kind != BookingKindFacility {
		return false
	}
	prev, ok := b.timeHistory.Restore(slot, b.StartTime)
	if !ok {
		return false
	}
	b.StartTime = prev
	b.Touch()
	return true
}

// RestoreVenue swaps the live testing site with the snapshot in the given
// 1-based slot.
func (b *Booking) RestoreVenue(slot int) bool {
	if b.kind != BookingKindFacility {
		return false
	}
	prev, ok := b.venueHistory.Restore(slot, b.TestingSiteID)
	if !ok {
		return false
	}
	b.TestingSiteID = prev
	b.Touch()
	return true
}

// TimeVersion returns the snapshot in a time history slot.
func (b *Booking) TimeVersion(slot int) string {
	return b.timeHistory.Slot(slot)
}

// VenueVersion returns the snapshot in a venue history slot.
func (b *Booking) VenueVersion(slot int) string {
	return b.venueHistory.Slot(slot)
}

// Touch stamps the booking as mutated now.
func (b *Booking) Touch() {
	b.UpdatedAt = time.Now().Format(time.RFC3339)
}
