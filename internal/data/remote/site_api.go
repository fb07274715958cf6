package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"covid-booking/internal/data/entity"

	"go.uber.org/zap"
)

const sitePath = "/testing-site"

// SiteStore is the record store's testing-site directory.
type SiteStore interface {
	List(ctx context.Context) ([]*entity.TestingSite, error)
	Get(ctx context.Context, id string) (*entity.TestingSite, error)
}

type siteStore struct {
	client *Client
	log    *zap.Logger
}

func NewSiteStore(client *Client, log *zap.Logger) SiteStore {
	return &siteStore{
		client: client,
		log:    log.With(zap.String("store", "testing-site")),
	}
}

func (s *siteStore) List(ctx context.Context) ([]*entity.TestingSite, error) {
	docs, err := s.client.list(ctx, sitePath)
	if err != nil {
		return nil, fmt.Errorf("list testing sites: %w", err)
	}

	sites := make([]*entity.TestingSite, 0, len(docs))
	for _, doc := range docs {
		var site entity.TestingSite
		if err := json.Unmarshal(doc, &site); err != nil {
			s.log.Warn("Skipping malformed testing site record", zap.Error(err))
			continue
		}
		sites = append(sites, &site)
	}
	return sites, nil
}

func (s *siteStore) Get(ctx context.Context, id string) (*entity.TestingSite, error) {
	doc, err := s.client.get(ctx, sitePath+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("get testing site %s: %w", id, err)
	}

	var site entity.TestingSite
	if err := json.Unmarshal(doc, &site); err != nil {
		return nil, fmt.Errorf("decode testing site record: %w", err)
	}
	return &site, nil
}
