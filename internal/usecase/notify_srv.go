package usecase

import (
	"context"

	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/entity"
	"covid-booking/internal/data/remote"

	"go.uber.org/zap"
)

// EventKind classifies a booking change for notification fan-out.
type EventKind string

const (
	EventCreated  EventKind = "created"
	EventModified EventKind = "modified"
	EventDeleted  EventKind = "deleted"
)

// Notifier delivers a change message to every staff member of the
// booking's site. Delivery is fire-and-forget: failures are logged and
// never surface to the mutation that triggered the event.
type Notifier interface {
	Dispatch(ctx context.Context, kind EventKind, booking *entity.Booking)
}

type notifyService struct {
	users remote.UserStore
	log   *zap.Logger
}

func NewNotifyService(users remote.UserStore, log *zap.Logger) Notifier {
	return &notifyService{
		users: users,
		log:   log.With(zap.String("service", "notify")),
	}
}

func (s *notifyService) Dispatch(ctx context.Context, kind EventKind, booking *entity.Booking) {
	// Home bookings have no site and therefore no subscribers.
	if booking.Kind() != entity.BookingKindFacility {
		return
	}

	// Subscribers are resolved fresh for every event, never cached.
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("Failed to resolve notification subscribers",
			zap.String("event", string(kind)),
			zap.String("testing_site_id", booking.TestingSiteID),
			zap.Error(err),
		)
		return
	}

	directory := collection.NewUserList()
	for _, user := range users {
		directory.Add(user)
	}

	message := entity.Message{Kind: string(kind), CustomerID: booking.CustomerID}

	for _, user := range directory.SiteStaff() {
		if user.Workplace() != booking.TestingSiteID {
			continue
		}

		user.AddMessage(message)
		if err := s.users.Replace(ctx, user); err != nil {
			// One failed delivery must not block the remaining subscribers.
			s.log.Error("Failed to deliver booking notification",
				zap.String("event", string(kind)),
				zap.String("staff_id", user.ID),
				zap.Error(err),
			)
			continue
		}

		s.log.Debug("Delivered booking notification",
			zap.String("event", string(kind)),
			zap.String("staff_id", user.ID),
		)
	}
}
