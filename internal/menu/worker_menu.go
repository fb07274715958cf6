package menu

import (
	"context"

	"covid-booking/internal/data/entity"
	"covid-booking/internal/session"
	"covid-booking/internal/usecase"
)

func (m *Menu) workerMenu(ctx context.Context, sess *session.Session) {
	for {
		choice := m.view.Choose("Healthcare Worker Menu", []string{
			"Search testing sites",
			"Find booking by PIN",
			"Administer a test",
			"Record a test result",
			"Perform home testing",
		})

		switch choice {
		case 0:
			return
		case 1:
			m.searchSites(ctx)
		case 2:
			m.findBookingByPIN()
		case 3:
			m.administerTest(ctx, sess)
		case 4:
			m.recordTestResult(ctx)
		case 5:
			m.superviseHomeTest(ctx, sess)
		}
	}
}

func (m *Menu) searchSites(ctx context.Context) {
	term := m.view.Prompt("Search term (name, suburb or site type)")
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
}

// administerTest locates the patient's booking by PIN and creates the test
// record, which also flips the booking to PROCESSED.
func (m *Menu) administerTest(ctx context.Context, sess *session.Session) {
	pin := m.view.Prompt("Booking PIN")
	booking := m.service.Booking.FindByPIN(pin)
	if booking == nil {
		m.view.Say("No booking with PIN %q.", pin)
		return
	}
	m.view.ShowBooking(booking)

	var testType entity.TestType
	switch m.view.Choose("Test Type", []string{"PCR", "RAT"}) {
	case 1:
		testType = entity.TestTypePCR
	case 2:
		testType = entity.TestTypeRAT
	default:
		return
	}

	test, err := m.service.Test.Administer(ctx, &usecase.AdministerTestInput{
		BookingID:      booking.ID,
		AdministererID: sess.UserID(),
		Type:           testType,
		Notes:          m.view.Prompt("Notes (optional)"),
	})
	if err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Test %s administered for booking %s.", test.ID, booking.ID)
}

// superviseHomeTest runs the worker side of a home-testing video call: the
// booking is identified by its access URL, the patient's handshake code is
// checked against the latest record, comments are attached, and the RAT
// result is recorded.
func (m *Menu) superviseHomeTest(ctx context.Context, sess *session.Session) {
	url := m.view.Prompt("Booking access URL")
	booking := m.service.Booking.FindByField(entity.FieldAccessURL, url)
	if booking == nil || booking.Kind() != entity.BookingKindHome {
		m.view.Say("No home booking with access URL %q.", url)
		return
	}

	// The patient publishes the code through the record store, so each
	// attempt re-fetches the booking before comparing.
	for {
		fresh, err := m.service.Booking.Resync(ctx, booking.ID)
		if err != nil {
			m.view.ShowError(err)
			return
		}
		booking = fresh

		code := m.view.Prompt("Verification code from the patient (blank to cancel)")
		if code == "" {
			return
		}
		if booking.VerifyCode() != "" && code == booking.VerifyCode() {
			break
		}
		m.view.Say("Code does not match. Ask the patient to read it again.")
	}

	m.view.Say("Both parties are online. Begin testing procedures.")

	if m.view.PromptYesNo("Would you like to enter comments") {
		m.view.Say("Enter EXIT to finish.")
		var comments []string
		for {
			comment := m.view.Prompt("Comment")
			if comment == "EXIT" {
				break
			}
			comments = append(comments, comment)
		}
		booking.SetComments(comments)
		booking.Touch()
		if err := m.service.Booking.Update(ctx, booking); err != nil {
			m.view.ShowError(err)
			return
		}
	}

	test, err := m.service.Test.Administer(ctx, &usecase.AdministerTestInput{
		BookingID:      booking.ID,
		AdministererID: sess.UserID(),
		Type:           entity.TestTypeRAT,
	})
	if err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Home test %s administered for booking %s.", test.ID, booking.ID)

	var result entity.TestResult
	switch m.view.Choose("Patient's Reported Result", []string{"POSITIVE", "NEGATIVE", "INVALID"}) {
	case 1:
		result = entity.TestResultPositive
	case 2:
		result = entity.TestResultNegative
	case 3:
		result = entity.TestResultInvalid
	default:
		m.view.Say("Result left pending.")
		return
	}

	if err := m.service.Test.RecordResult(ctx, test, result); err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Result recorded. Test %s is now %s.", test.ID, test.Status)
}

func (m *Menu) recordTestResult(ctx context.Context) {
	tests, err := m.service.Test.List(ctx)
	if err != nil {
		m.view.ShowError(err)
		return
	}

	var pending []*entity.CovidTest
	for _, test := range tests {
		if test.Status == entity.TestStatusProcessed {
			pending = append(pending, test)
		}
	}
	if len(pending) == 0 {
		m.view.Say("No tests awaiting results.")
		return
	}
	for _, test := range pending {
		m.view.Say("Test %s (%s) for booking %s", test.ID, test.Type, test.BookingID)
	}

	id := m.view.Prompt("Test ID")
	var target *entity.CovidTest
	for _, test := range pending {
		if test.ID == id {
			target = test
			break
		}
	}
	if target == nil {
		m.view.Say("No pending test with ID %q.", id)
		return
	}

	var result entity.TestResult
	switch m.view.Choose("Result", []string{"POSITIVE", "NEGATIVE", "INVALID"}) {
	case 1:
		result = entity.TestResultPositive
	case 2:
		result = entity.TestResultNegative
	case 3:
		result = entity.TestResultInvalid
	default:
		return
	}

	if err := m.service.Test.RecordResult(ctx, target, result); err != nil {
		m.view.ShowError(err)
		return
	}
	m.view.Say("Result recorded. Test %s is now %s.", target.ID, target.Status)
}
