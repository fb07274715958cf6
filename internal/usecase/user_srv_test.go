package usecase

import (
	"context"
	"errors"
	"testing"

	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginReturnsSessionWithToken(t *testing.T) {
	alice := &entity.User{ID: "u-1", UserName: "alice", IsCustomer: true}
	store := &fakeUserStore{users: []*entity.User{alice}, loginToken: "jwt-token"}

	users := collection.NewUserList()
	svc := NewUserService(store, users, zap.NewNop())
	require.NoError(t, svc.Populate(context.Background()))

	sess, err := svc.Login(context.Background(), &LoginInput{UserName: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Same(t, alice, sess.User)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, []string{"jwt-token"}, store.verified,
		"the issued token is verified before the session is handed out")
}

func TestLoginRejectsUnverifiableToken(t *testing.T) {
	alice := &entity.User{ID: "u-1", UserName: "alice"}
	store := &fakeUserStore{
		users:      []*entity.User{alice},
		loginToken: "jwt-token",
		verifyErr:  errors.New("signature mismatch"),
	}
	svc := NewUserService(store, collection.NewUserList(), zap.NewNop())

	_, err := svc.Login(context.Background(), &LoginInput{UserName: "alice", Password: "pw"})

	assert.Error(t, err)
}

func TestLoginRefreshesDirectoryForUnknownUser(t *testing.T) {
	bob := &entity.User{ID: "u-2", UserName: "bob"}
	store := &fakeUserStore{users: []*entity.User{bob}, loginToken: "jwt-token"}

	// Directory deliberately not populated: the login must refresh it.
	svc := NewUserService(store, collection.NewUserList(), zap.NewNop())

	sess, err := svc.Login(context.Background(), &LoginInput{UserName: "bob", Password: "pw"})

	require.NoError(t, err)
	assert.Same(t, bob, sess.User)
	assert.Equal(t, 1, store.listCalls)
}

func TestLoginRejectedByStore(t *testing.T) {
	store := &fakeUserStore{loginErr: errors.New("invalid credentials")}
	svc := NewUserService(store, collection.NewUserList(), zap.NewNop())

	_, err := svc.Login(context.Background(), &LoginInput{UserName: "alice", Password: "bad"})

	assert.Error(t, err)
}

func TestLoginValidationRequiresCredentials(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, collection.NewUserList(), zap.NewNop())

	_, err := svc.Login(context.Background(), &LoginInput{UserName: "alice"})

	assert.Error(t, err)
}

func TestSaveUpdatesLocalMirror(t *testing.T) {
	staff := receptionistAt("staff-1", "site-1")
	store := &fakeUserStore{}
	users := collection.NewUserList()
	svc := NewUserService(store, users, zap.NewNop())

	staff.AddMessage(entity.Message{Kind: "created", CustomerID: "cust-1"})
	staff.ClearInbox()
	require.NoError(t, svc.Save(context.Background(), staff))

	assert.Equal(t, []string{"staff-1"}, store.replaced)
	assert.Same(t, staff, users.FindByID("staff-1"))
}
