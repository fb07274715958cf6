package menu

import (
	"context"
	"fmt"

	"covid-booking/internal/data/entity"
	"covid-booking/internal/session"
	"covid-booking/internal/usecase"
	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

// verifyCodeLength sizes the handshake code read out over the video call.
const verifyCodeLength = 6

func (m *Menu) patientMenu(ctx context.Context, sess *session.Session) {
	for {
		choice := m.view.Choose("Patient Menu", []string{
			"Book a test at a testing site",
			"Book a home test",
			"View my active bookings",
			"Manage a booking",
			"Check booking status",
			"Join my home test",
		})

		switch choice {
		case 0:
			return
		case 1:
			m.createFacilityBooking(ctx, sess)
		case 2:
			m.createHomeBooking(ctx, sess)
		case 3:
			m.listActiveBookings(sess)
		case 4:
			m.manageBooking(ctx, sess)
		case 5:
			m.checkBookingStatus(ctx)
		case 6:
			m.joinHomeTest(ctx, sess)
		}
	}
}

func (m *Menu) createFacilityBooking(ctx context.Context, sess *session.Session) {
	term := m.view.Prompt("Search testing sites (blank for all)")
	sites, err := m.service.Site.Search(ctx, term)
	if err != nil {
		m.view.ShowError(err)
		return
	}
	if len(sites) == 0 {
		m.view.Say("No testing sites matched.")
		return
	}
	for _, site := range sites {
		m.view.ShowSite(site)
	}

	siteID := m.view.Prompt("Testing site ID")
	exists, err := m.service.Site.Exists(ctx, siteID)
	if err != nil {
		m.view.ShowError(err)
		return
	}
	if !exists {
		m.view.Say("Unknown testing site %q.", siteID)
		return
	}

	booking, err := m.service.Booking.CreateFacilityBooking(ctx, &usecase.CreateFacilityBookingInput{
		CustomerID:    sess.UserID(),
		TestingSiteID: siteID,
		StartTime:     m.view.Prompt("Start time (e.g. 2026-09-01T10:00)"),
		Notes:         m.view.Prompt("Notes (optional)"),
	})
	if err != nil {
		m.view.ShowError(err)
		return
	}

	m.view.Say("Booking confirmed. Quote this PIN at the site: %s", booking.PIN())
	m.view.ShowBooking(booking)
}

func (m *Menu) createHomeBooking(ctx context.Context, sess *session.Session) {
	booking, err := m.service.Booking.CreateHomeBooking(ctx, &usecase.CreateHomeBookingInput{
		CustomerID: sess.UserID(),
		StartTime:  m.view.Prompt("Start time (e.g. 2026-09-01T10:00)"),
		Notes:      m.view.Prompt("Notes (optional)"),
		NeedsKit:   m.view.PromptYesNo("Do you need a RAT kit"),
	})
	if err != nil {
		m.view.ShowError(err)
		return
	}

	m.view.Say("Home booking confirmed.")
	m.view.ShowBooking(booking)
	if booking.NeedsKit() {
		m.view.Say("Show the QR code at any testing site to collect your kit.")
	}
}

func (m *Menu) listActiveBookings(sess *session.Session) {
	bookings := m.service.Booking.ActiveForCustomer(sess.UserID())
	if len(bookings) == 0 {
		m.view.Say("You have no active bookings.")
		return
	}
	for _, booking := range bookings {
		m.view.ShowBooking(booking)
	}
}

// manageBooking is the edit submenu: change time or venue, cancel, or roll
// back to a stored version.
func (m *Menu) manageBooking(ctx context.Context, sess *session.Session) {
	booking := m.promptOwnBooking(sess)
	if booking == nil {
		return
	}
	m.view.ShowBooking(booking)

	choice := m.view.Choose("Manage Booking", []string{
		"Change start time",
		"Change testing site",
		"Cancel booking",
		"Restore a previous version",
	})

	switch choice {
	case 1:
		booking.EditStartTime(m.view.Prompt("New start time"))
		m.saveBooking(ctx, booking)
	case 2:
		siteID := m.view.Prompt("New testing site ID")
		exists, err := m.service.Site.Exists(ctx, siteID)
		if err != nil {
			m.view.ShowError(err)
			return
		}
		if !exists {
			m.view.Say("Unknown testing site %q.", siteID)
			return
		}
		if err := booking.EditVenue(siteID); err != nil {
			m.view.ShowError(err)
			return
		}
		m.saveBooking(ctx, booking)
	case 3:
		if !m.view.PromptYesNo("Really cancel this booking") {
			return
		}
		if err := m.service.Booking.Delete(ctx, booking); err != nil {
			m.view.ShowError(err)
			return
		}
		m.view.Say("Booking cancelled.")
	case 4:
		m.restoreBookingVersion(ctx, booking)
	}
}

func (m *Menu) restoreBookingVersion(ctx context.Context, booking *entity.Booking) {
	if booking.Kind() != entity.BookingKindFacility {
		m.view.Say("Home bookings keep no version history.")
		return
	}

	for slot := 1; slot <= 3; slot++ {
		m.view.Say("Version %d: time=%s venue=%s",
			slot, booking.TimeVersion(slot), booking.VenueVersion(slot))
	}

	kind := m.view.Choose("Restore", []string{"Start time", "Testing site"})
	if kind == 0 {
		return
	}
	slot := m.view.PromptInt("Version number (1-3)")

	var restored bool
	if kind == 1 {
		restored = booking.RestoreStartTime(slot)
	} else {
		restored = booking.RestoreVenue(slot)
	}
	if !restored {
		m.view.Say("Version does not exist.")
		return
	}

	m.saveBooking(ctx, booking)
}

// joinHomeTest runs the patient side of a home-testing video call: a
// handshake code is published on the booking for the supervising worker,
// and after a positive self-reported result the worker's comments are
// fetched and shown.
func (m *Menu) joinHomeTest(ctx context.Context, sess *session.Session) {
	url := m.view.Prompt("Your booking's access URL")
	booking := m.service.Booking.FindByField(entity.FieldAccessURL, url)
	if booking == nil || booking.Kind() != entity.BookingKindHome {
		m.view.Say("No home booking with access URL %q.", url)
		return
	}
	if booking.CustomerID != sess.UserID() {
		m.view.Say("This booking does not belong to you.")
		return
	}

	m.view.Prompt("Join your interviewer on the video call, then press enter")

	code := utils.RandomString(verifyCodeLength)
	booking.SetVerifyCode(code)
	booking.Touch()
	if err := m.service.Booking.Update(ctx, booking); err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Tell your interviewer the following code: %s", code)

	m.view.Prompt("Perform your test with the interviewer, then press enter")

	if !m.view.PromptYesNo("Did you test positive") {
		m.view.Say("Thank you. Your interviewer will record the result.")
		return
	}

	// Positive patients get to see the supervisor's comments, which were
	// pushed to the record store during the call.
	fresh, err := m.service.Booking.Resync(ctx, booking.ID)
	if err != nil {
		m.view.ShowError(err)
		return
	}

	if comments := fresh.Comments(); len(comments) > 0 {
		m.view.Say("Supervisor comments:")
		for _, comment := range comments {
			m.view.Say("  %s", comment)
		}
	}
	m.view.Say("Please isolate and test every alternate day until a test comes back negative.")
}

func (m *Menu) checkBookingStatus(ctx context.Context) {
	id := m.view.Prompt("Booking ID")
	booking, err := m.service.Booking.Resync(ctx, id)
	if err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Status: %s", booking.Status())
	m.view.ShowBooking(booking)
}

// promptOwnBooking resolves a booking ID and refuses other customers'
// bookings.
func (m *Menu) promptOwnBooking(sess *session.Session) *entity.Booking {
	id := m.view.Prompt("Booking ID")
	booking := m.service.Booking.FindByID(id)
	if booking == nil {
		m.view.Say("No booking with ID %q.", id)
		return nil
	}
	if booking.CustomerID != sess.UserID() {
		m.view.ShowError(fmt.Errorf("booking %s does not belong to you", id))
		return nil
	}
	return booking
}

func (m *Menu) saveBooking(ctx context.Context, booking *entity.Booking) {
	if err := m.service.Booking.Update(ctx, booking); err != nil {
		m.view.ShowError(err)
		m.log.Warn("Booking update not acknowledged by record store",
			zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}
	m.view.Say("Booking updated.")
	m.view.ShowBooking(booking)
}
