package profile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/corewizard/internal/logger"
)

// Client is the part of the server API the service needs.
type Client interface {
	DefaultProfile(ctx context.Context) (Data, error)
	UpdateDefaultProfile(ctx context.Context, d Data) error
	Profiles(ctx context.Context) (map[string]Data, error)
}

// Service fetches and updates the default profile and keeps a cached
// listing of all profiles for display.
type Service struct {
	client Client

	mu     sync.RWMutex
	cached map[string]Data
}

// NewService creates a service over client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// FetchDefault returns the server's default profile.
func (s *Service) FetchDefault(ctx context.Context) (Data, error) {
	d, err := s.client.DefaultProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching default profile: %w", err)
	}
	return d, nil
}

// UpdateDefault stores d as the default profile.
func (s *Service) UpdateDefault(ctx context.Context, d Data) error {
	if err := s.client.UpdateDefaultProfile(ctx, d); err != nil {
		return fmt.Errorf("updating default profile: %w", err)
	}
	return nil
}

// RefreshCache reloads the profile listing.
func (s *Service) RefreshCache(ctx context.Context) error {
	profiles, err := s.client.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	s.mu.Lock()
	s.cached = profiles
	s.mu.Unlock()

	logger.Debug("Profile cache refreshed: %d profile(s)", len(profiles))
	return nil
}

// Cached returns the cached profiles sorted by id. It is empty until the
// first RefreshCache.
func (s *Service) Cached() []Data {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.cached))
	for id := range s.cached {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Data, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.cached[id].Clone())
	}
	return out
}
