package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"covid-booking/internal/data/entity"

	"go.uber.org/zap"
)

const userPath = "/user"

// UserStore is the record store's user collection, including the login and
// token verification endpoints.
type UserStore interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Replace(ctx context.Context, user *entity.User) error
	// Login exchanges credentials for a JWT.
	Login(ctx context.Context, userName, password string) (string, error)
	VerifyToken(ctx context.Context, token string) error
}

type userStore struct {
	client *Client
	log    *zap.Logger
}

func NewUserStore(client *Client, log *zap.Logger) UserStore {
	return &userStore{
		client: client,
		log:    log.With(zap.String("store", "user")),
	}
}

func (s *userStore) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := s.client.list(ctx, userPath)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		var payload entity.UserPayload
		if err := json.Unmarshal(doc, &payload); err != nil {
			s.log.Warn("Skipping malformed user record", zap.Error(err))
			continue
		}
		users = append(users, entity.UserFromPayload(&payload))
	}
	return users, nil
}

func (s *userStore) Get(ctx context.Context, id string) (*entity.User, error) {
	doc, err := s.client.get(ctx, userPath+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var payload entity.UserPayload
	if err := json.Unmarshal(doc, &payload); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return entity.UserFromPayload(&payload), nil
}

func (s *userStore) Replace(ctx context.Context, user *entity.User) error {
	if err := s.client.replace(ctx, userPath+"/"+user.ID, user.ToPayload()); err != nil {
		return fmt.Errorf("replace user %s: %w", user.ID, err)
	}
	return nil
}

func (s *userStore) Login(ctx context.Context, userName, password string) (string, error) {
	body := map[string]string{
		"userName": userName,
		"password": password,
	}

	docs, err := s.client.do(ctx, http.MethodPost, userPath+"/login?jwt=true", body)
	if err != nil {
		return "", fmt.Errorf("login %s: %w", userName, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("login %s: empty response", userName)
	}

	var result struct {
		JWT string `json:"jwt"`
	}
	if err := json.Unmarshal(docs[0], &result); err != nil || result.JWT == "" {
		return "", fmt.Errorf("login %s: no token in response", userName)
	}
	return result.JWT, nil
}

func (s *userStore) VerifyToken(ctx context.Context, token string) error {
	body := map[string]string{"jwt": token}
	if _, err := s.client.do(ctx, http.MethodPost, userPath+"/verify-token", body); err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	return nil
}
