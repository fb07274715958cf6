package usecase

import (
	"context"
	"errors"
	"testing"

	"covid-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	users      []*entity.User
	listErr    error
	listCalls  int
	replaced   []string
	replaceErr map[string]error
	loginToken string
	loginErr   error
	verified   []string
	verifyErr  error
}

func (f *fakeUserStore) List(ctx context.Context) ([]*entity.User, error) {
	f.listCalls++
	return f.users, f.listErr
}

func (f *fakeUserStore) Get(ctx context.Context, id string) (*entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserStore) Replace(ctx context.Context, user *entity.User) error {
	if err := f.replaceErr[user.ID]; err != nil {
		return err
	}
	f.replaced = append(f.replaced, user.ID)
	return nil
}

func (f *fakeUserStore) Login(ctx context.Context, userName, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeUserStore) VerifyToken(ctx context.Context, token string) error {
	f.verified = append(f.verified, token)
	return f.verifyErr
}

func receptionistAt(id, siteID string) *entity.User {
	u := &entity.User{ID: id, IsReceptionist: true}
	u.SetWorkplace(siteID)
	return u
}

func TestDispatchDeliversToMatchingSiteStaff(t *testing.T) {
	matching := receptionistAt("staff-1", "site-1")
	elsewhere := receptionistAt("staff-2", "site-2")
	patient := &entity.User{ID: "cust-9", IsCustomer: true}

	store := &fakeUserStore{users: []*entity.User{matching, elsewhere, patient}}
	notifier := NewNotifyService(store, zap.NewNop())

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	booking.ID = "bk-1"
	notifier.Dispatch(context.Background(), EventCreated, booking)

	assert.Equal(t, []string{"staff-1"}, store.replaced)

	inbox := matching.Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, "created", inbox[0].Kind)
	assert.Equal(t, "cust-1", inbox[0].CustomerID)
	assert.Empty(t, elsewhere.Inbox())
}

func TestDispatchSkipsHomeBookings(t *testing.T) {
	store := &fakeUserStore{users: []*entity.User{receptionistAt("staff-1", "site-1")}}
	notifier := NewNotifyService(store, zap.NewNop())

	booking := entity.NewHomeBooking("cust-1", "t0", false)
	notifier.Dispatch(context.Background(), EventCreated, booking)

	assert.Zero(t, store.listCalls, "home bookings have no subscribers to resolve")
	assert.Empty(t, store.replaced)
}

func TestDispatchResolvesSubscribersFreshEachEvent(t *testing.T) {
	store := &fakeUserStore{}
	notifier := NewNotifyService(store, zap.NewNop())

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	notifier.Dispatch(context.Background(), EventCreated, booking)
	notifier.Dispatch(context.Background(), EventModified, booking)

	assert.Equal(t, 2, store.listCalls)
}

func TestDispatchContinuesPastFailedDelivery(t *testing.T) {
	first := receptionistAt("staff-1", "site-1")
	second := receptionistAt("staff-2", "site-1")

	store := &fakeUserStore{
		users:      []*entity.User{first, second},
		replaceErr: map[string]error{"staff-1": errors.New("store down")},
	}
	notifier := NewNotifyService(store, zap.NewNop())

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	notifier.Dispatch(context.Background(), EventDeleted, booking)

	assert.Equal(t, []string{"staff-2"}, store.replaced,
		"a failed delivery must not block remaining subscribers")
}

func TestDispatchSwallowsListFailure(t *testing.T) {
	store := &fakeUserStore{listErr: errors.New("store down")}
	notifier := NewNotifyService(store, zap.NewNop())

	booking := entity.NewFacilityBooking("cust-1", "site-1", "t0")
	notifier.Dispatch(context.Background(), EventCreated, booking)

	assert.Empty(t, store.replaced)
}
