package remote

import "go.uber.org/zap"

// Stores groups the typed record store collections behind one handle.
type Stores struct {
	Booking BookingStore
	User    UserStore
	Site    SiteStore
	Test    TestStore
}

func NewStores(client *Client, log *zap.Logger) *Stores {
	return &Stores{
		Booking: NewBookingStore(client, log),
		User:    NewUserStore(client, log),
		Site:    NewSiteStore(client, log),
		Test:    NewTestStore(client, log),
	}
}
