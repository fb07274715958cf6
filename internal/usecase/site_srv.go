package usecase

import (
	"context"
	"fmt"

	"covid-booking/internal/data/entity"
	"covid-booking/internal/data/remote"

	"go.uber.org/zap"
)

// SiteService exposes the testing-site directory the booking flows need:
// listing, free-text search, and an existence check for facility bookings.
type SiteService interface {
	List(ctx context.Context) ([]*entity.TestingSite, error)
	Search(ctx context.Context, term string) ([]*entity.TestingSite, error)
	Get(ctx context.Context, id string) (*entity.TestingSite, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type siteService struct {
	store remote.SiteStore
	log   *zap.Logger
}

func NewSiteService(store remote.SiteStore, log *zap.Logger) SiteService {
	return &siteService{
		store: store,
		log:   log.With(zap.String("service", "testing-site")),
	}
}

func (s *siteService) List(ctx context.Context) ([]*entity.TestingSite, error) {
	return s.store.List(ctx)
}

func (s *siteService) Search(ctx context.Context, term string) ([]*entity.TestingSite, error) {
	sites, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search testing sites: %w", err)
	}

	var matches []*entity.TestingSite
	for _, site := range sites {
		if site.Matches(term) {
			matches = append(matches, site)
		}
	}
	return matches, nil
}

func (s *siteService) Get(ctx context.Context, id string) (*entity.TestingSite, error) {
	return s.store.Get(ctx, id)
}

func (s *siteService) Exists(ctx context.Context, id string) (bool, error) {
	sites, err := s.store.List(ctx)
	if err != nil {
		return false, fmt.Errorf("check testing site %s: %w", id, err)
	}

	for _, site := range sites {
		if site.ID == id {
			return true, nil
		}
	}
	return false, nil
}
