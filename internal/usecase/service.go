package usecase

import (
	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/remote"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	User    UserService
	Site    SiteService
	Test    TestService
	Notify  Notifier
}

func NewService(stores *remote.Stores, log *zap.Logger) *Service {
	bookings := collection.NewBookingCollection()
	users := collection.NewUserList()

	notify := NewNotifyService(stores.User, log)
	booking := NewBookingService(stores.Booking, bookings, notify, log)

	return &Service{
		Booking: booking,
		User:    NewUserService(stores.User, users, log),
		Site:    NewSiteService(stores.Site, log),
		Test:    NewTestService(stores.Test, booking, log),
		Notify:  notify,
	}
}
