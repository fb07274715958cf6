package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingStore records calls and serves canned responses in place of
// the record store.
type fakeBookingStore struct {
	listed    []*entity.Booking
	got       map[string]*entity.Booking
	createErr error
	replaced  []string
	pushErr   error
	deleted   []string
	deleteErr error
	nextID    int
}

func (f *fakeBookingStore) List(ctx context.Context) ([]*entity.Booking, error) {
	return f.listed, nil
}

func (f *fakeBookingStore) Get(ctx context.Context, id string) (*entity.Booking, error) {
	b, ok := f.got[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	return fmt.Sprintf("bk-%d", f.nextID), nil
}

func (f *fakeBookingStore) Replace(ctx context.Context, booking *entity.Booking) error {
	f.replaced = append(f.replaced, booking.ID)
	return f.pushErr
}

func (f *fakeBookingStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

// recordingNotifier captures dispatch order relative to store calls.
type recordingNotifier struct {
	events []EventKind
}

func (n *recordingNotifier) Dispatch(ctx context.Context, kind EventKind, booking *entity.Booking) {
	n.events = append(n.events, kind)
}

func newBookingFixture(store *fakeBookingStore) (BookingService, *collection.BookingCollection, *recordingNotifier) {
	bookings := collection.NewBookingCollection()
	notifier := &recordingNotifier{}
	return NewBookingService(store, bookings, notifier, zap.NewNop()), bookings, notifier
}

func TestCreateFacilityBookingAssignsStoreID(t *testing.T) {
	store := &fakeBookingStore{}
	svc, bookings, notifier := newBookingFixture(store)

	booking, err := svc.CreateFacilityBooking(context.Background(), &CreateFacilityBookingInput{
		CustomerID:    "cust-1",
		TestingSiteID: "site-1",
		StartTime:     "2026-09-01T10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)
	assert.Same(t, booking, bookings.FindByID("bk-1"))
	assert.Equal(t, []EventKind{EventCreated}, notifier.events)
}

func TestCreateFailureLeavesNoOrphan(t *testing.T) {
	store := &fakeBookingStore{createErr: errors.New("store down")}
	svc, bookings, notifier := newBookingFixture(store)

	_, err := svc.CreateFacilityBooking(context.Background(), &CreateFacilityBookingInput{
		CustomerID:    "cust-1",
		TestingSiteID: "site-1",
		StartTime:     "2026-09-01T10:00",
	})

	require.Error(t, err)
	assert.Zero(t, bookings.Len(), "failed create must not cache the booking")
	assert.Empty(t, notifier.events, "failed create must not notify")
}

func TestCreateValidationRejectsMissingFields(t *testing.T) {
	svc, bookings, _ := newBookingFixture(&fakeBookingStore{})

	_, err := svc.CreateFacilityBooking(context.Background(), &CreateFacilityBookingInput{
		CustomerID: "cust-1",
	})

	require.Error(t, err)
	assert.Zero(t, bookings.Len())
}

func TestUpdateReplacesLocallyEvenOnRemoteFailure(t *testing.T) {
	store := &fakeBookingStore{pushErr: errors.New("store down")}
	svc, bookings, notifier := newBookingFixture(store)

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	booking.ID = "bk-1"
	bookings.Add(booking)

	booking.EditStartTime("t1")
	err := svc.Update(context.Background(), booking)

	require.Error(t, err, "remote failure must surface to the caller")
	assert.Equal(t, "t1", bookings.FindByID("bk-1").StartTime,
		"local cache keeps caller state regardless of remote outcome")
	assert.Equal(t, []EventKind{EventModified}, notifier.events)
}

func TestDeleteRemovesLocallyEvenOnRemoteFailure(t *testing.T) {
	store := &fakeBookingStore{deleteErr: errors.New("store down")}
	svc, bookings, notifier := newBookingFixture(store)

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	booking.ID = "bk-1"
	bookings.Add(booking)

	err := svc.Delete(context.Background(), booking)

	require.Error(t, err)
	assert.Nil(t, bookings.FindByID("bk-1"))
	assert.Equal(t, []EventKind{EventDeleted}, notifier.events,
		"delete notifies before touching the store")
	assert.Equal(t, []string{"bk-1"}, store.deleted)
}

func TestResyncOverwritesLocalEntry(t *testing.T) {
	stale := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	stale.ID = "bk-1"
	fresh := entity.NewFacilityBooking("cust-1", "site-2", "t5")
	fresh.ID = "bk-1"

	store := &fakeBookingStore{got: map[string]*entity.Booking{"bk-1": fresh}}
	svc, bookings, _ := newBookingFixture(store)
	bookings.Add(stale)

	got, err := svc.Resync(context.Background(), "bk-1")

	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Same(t, fresh, bookings.FindByID("bk-1"))
	assert.Equal(t, 1, bookings.Len())
}

func TestPopulateFillsCache(t *testing.T) {
	a := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	a.ID = "bk-1"
	b := entity.NewHomeBooking("cust-2", "t1", false)
	b.ID = "bk-2"

	store := &fakeBookingStore{listed: []*entity.Booking{a, b}}
	svc, bookings, _ := newBookingFixture(store)

	require.NoError(t, svc.Populate(context.Background()))
	assert.Equal(t, 2, bookings.Len())
}
