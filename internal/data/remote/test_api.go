package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"covid-booking/internal/data/entity"

	"go.uber.org/zap"
)

const testPath = "/covid-test"

// TestStore is the record store's COVID-test collection.
type TestStore interface {
	List(ctx context.Context) ([]*entity.CovidTest, error)
	// Create pushes a new test and returns the id the store assigned.
	Create(ctx context.Context, test *entity.CovidTest) (string, error)
	Replace(ctx context.Context, test *entity.CovidTest) error
}

type testStore struct {
	client *Client
	log    *zap.Logger
}

func NewTestStore(client *Client, log *zap.Logger) TestStore {
	return &testStore{
		client: client,
		log:    log.With(zap.String("store", "covid-test")),
	}
}

func (s *testStore) List(ctx context.Context) ([]*entity.CovidTest, error) {
	docs, err := s.client.list(ctx, testPath)
	if err != nil {
		return nil, fmt.Errorf("list covid tests: %w", err)
	}

	tests := make([]*entity.CovidTest, 0, len(docs))
	for _, doc := range docs {
		var test entity.CovidTest
		if err := json.Unmarshal(doc, &test); err != nil {
			s.log.Warn("Skipping malformed covid test record", zap.Error(err))
			continue
		}
		tests = append(tests, &test)
	}
	return tests, nil
}

func (s *testStore) Create(ctx context.Context, test *entity.CovidTest) (string, error) {
	doc, err := s.client.create(ctx, testPath, test)
	if err != nil {
		return "", fmt.Errorf("create covid test: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &created); err != nil || created.ID == "" {
		return "", fmt.Errorf("create covid test: store returned no id")
	}
	return created.ID, nil
}

func (s *testStore) Replace(ctx context.Context, test *entity.CovidTest) error {
	if err := s.client.replace(ctx, testPath+"/"+test.ID, test); err != nil {
		return fmt.Errorf("replace covid test %s: %w", test.ID, err)
	}
	return nil
}
