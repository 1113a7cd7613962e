package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nechmerust/sanctuary-api/internal/model"
	"github.com/nechmerust/sanctuary-api/internal/repository"
)

const (
	cacheKeyEvents  = "events:upcoming"
	cacheKeyAnimals = "animals:sanctuary"
)

// ContentService serves the read-only listings for the public site. Results
// are cached with a short TTL since the admin process updates them rarely
// and the homepage fetches them on every visit.
type ContentService struct {
	events  repository.EventRepository
	animals repository.AnimalRepository
	cache   *gocache.Cache

	now func() time.Time
}

// NewContentService constructs a ContentService with the given cache TTL.
func NewContentService(events repository.EventRepository, animals repository.AnimalRepository, ttl time.Duration) *ContentService {
	return &ContentService{
		events:  events,
		animals: animals,
		cache:   gocache.New(ttl, 2*ttl),
		now:     time.Now,
	}
}

// UpcomingEvents lists active events that have not started yet, earliest
// first.
func (s *ContentService) UpcomingEvents(ctx context.Context) ([]model.Event, error) {
	if v, ok := s.cache.Get(cacheKeyEvents); ok {
		return v.([]model.Event), nil
	}
	events, err := s.events.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyEvents, events)
	return events, nil
}

// SanctuaryAnimals lists current residents, featured first.
func (s *ContentService) SanctuaryAnimals(ctx context.Context) ([]model.Animal, error) {
	if v, ok := s.cache.Get(cacheKeyAnimals); ok {
		return v.([]model.Animal), nil
	}
	animals, err := s.animals.ListSanctuary(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyAnimals, animals)
	return animals, nil
}
