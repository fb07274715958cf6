package usecase

import (
	"context"
	"fmt"

	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/entity"
	"covid-booking/internal/data/remote"
	"covid-booking/internal/session"
	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

type LoginInput struct {
	UserName string `validate:"required"`
	Password string `validate:"required"`
}

// UserService wraps the record store's user directory and login endpoints
// and keeps a local mirror for name/id lookups.
type UserService interface {
	Populate(ctx context.Context) error

	// Login exchanges credentials for a session holding the user and JWT.
	Login(ctx context.Context, in *LoginInput) (*session.Session, error)

	FindByID(id string) *entity.User
	FindByUserName(userName string) *entity.User

	// Save persists a mutated user record (e.g. a drained inbox) to the
	// record store and refreshes the local mirror.
	Save(ctx context.Context, user *entity.User) error
}

type userService struct {
	store remote.UserStore
	users *collection.UserList
	log   *zap.Logger
}

func NewUserService(store remote.UserStore, users *collection.UserList, log *zap.Logger) UserService {
	return &userService{
		store: store,
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) Populate(ctx context.Context) error {
	remoteUsers, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("populate users: %w", err)
	}

	for _, user := range remoteUsers {
		s.users.Update(user)
	}

	s.log.Info("Populated user cache", zap.Int("count", len(remoteUsers)))
	return nil
}

func (s *userService) Login(ctx context.Context, in *LoginInput) (*session.Session, error) {
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	token, err := s.store.Login(ctx, in.UserName, in.Password)
	if err != nil {
		s.log.Warn("Login rejected", zap.String("user_name", in.UserName))
		return nil, err
	}

	// The store vouches for the token it just issued; a verification
	// failure means the session would be rejected on its first use.
	if err := s.store.VerifyToken(ctx, token); err != nil {
		s.log.Warn("Issued token failed verification", zap.String("user_name", in.UserName))
		return nil, fmt.Errorf("login %s: %w", in.UserName, err)
	}

	user := s.users.FindByUserName(in.UserName)
	if user == nil {
		// The directory may have changed since startup; refresh once.
		if err := s.Populate(ctx); err != nil {
			return nil, err
		}
		user = s.users.FindByUserName(in.UserName)
	}
	if user == nil {
		return nil, fmt.Errorf("login %s: user record not found", in.UserName)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID))
	return session.New(user, token), nil
}

func (s *userService) FindByID(id string) *entity.User {
	return s.users.FindByID(id)
}

func (s *userService) FindByUserName(userName string) *entity.User {
	return s.users.FindByUserName(userName)
}

func (s *userService) Save(ctx context.Context, user *entity.User) error {
	if err := s.store.Replace(ctx, user); err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}
	s.users.Update(user)
	return nil
}
