package menu

import (
	"context"

	"covid-booking/internal/data/entity"
	"covid-booking/internal/session"

	"go.uber.org/zap"
)

func (m *Menu) receptionistMenu(ctx context.Context, sess *session.Session) {
	for {
		choice := m.view.Choose("Receptionist Menu", []string{
			"View notifications",
			"Find booking by PIN",
			"Hand over a RAT kit",
		})

		switch choice {
		case 0:
			return
		case 1:
			m.drainNotifications(ctx, sess)
		case 2:
			m.findBookingByPIN()
		case 3:
			m.handOverKit(ctx)
		}
	}
}

// drainNotifications shows every queued booking-change message and then
// clears the inbox so each message is seen exactly once.
func (m *Menu) drainNotifications(ctx context.Context, sess *session.Session) {
	messages := sess.User.Inbox()
	if len(messages) == 0 {
		m.view.Say("No new notifications.")
		return
	}

	for _, msg := range messages {
		customer := "unknown customer"
		if user := m.service.User.FindByID(msg.CustomerID); user != nil {
			customer = user.FullName()
		}
		m.view.Say("- booking %s by %s", msg.Kind, customer)
	}

	sess.User.ClearInbox()
	if err := m.service.User.Save(ctx, sess.User); err != nil {
		m.view.ShowError(err)
		m.log.Error("Failed to persist drained inbox",
			zap.String("user_id", sess.UserID()), zap.Error(err))
	}
}

func (m *Menu) findBookingByPIN() {
	pin := m.view.Prompt("Booking PIN")
	booking := m.service.Booking.FindByPIN(pin)
	if booking == nil {
		m.view.Say("No booking with PIN %q.", pin)
		return
	}
	m.view.ShowBooking(booking)
}

// handOverKit marks a home booking's RAT kit as collected. The QR code on
// the patient's phone identifies the booking.
func (m *Menu) handOverKit(ctx context.Context) {
	code := m.view.Prompt("Scan QR code")
	booking := m.service.Booking.FindByField(entity.FieldQRCode, code)
	if booking == nil {
		m.view.Say("No booking with QR code %q.", code)
		return
	}

	if !booking.ClaimKit() {
		m.view.Say("This booking has no kit to collect (already picked up or none requested).")
		return
	}

	booking.Touch()
	if err := m.service.Booking.Update(ctx, booking); err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Kit handed over for booking %s.", booking.ID)
}
