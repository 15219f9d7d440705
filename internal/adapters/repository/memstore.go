package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/roster"
	"github.com/mergington/activities/pkg/metrics"
)

// entry is one activity plus the lock guarding its roster.
type entry struct {
	mu          sync.Mutex
	name        string
	description string
	schedule    string
	roster      *roster.Roster
}

func (e *entry) snapshot() model.Activity {
	return model.Activity{
		Name:            e.name,
		Description:     e.description,
		Schedule:        e.schedule,
		MaxParticipants: e.roster.Capacity(),
		Participants:    e.roster.Emails(),
	}
}

// MemStore is the in-memory Store.
//
// The set of activities is fixed at construction, so the map itself is
// read-only and needs no lock. Each activity has its own mutex; every
// check-then-mutate sequence runs under it via Update.
type MemStore struct {
	activities      map[string]*entry
	names           []string // sorted, for deterministic iteration
	enforceCapacity bool
}

// NewMemStore builds a catalog from seeds. Seeds are validated; an invalid
// seed returns an error wrapping ErrInvalidSeed.
func NewMemStore(_ context.Context, seeds map[string]model.Seed, opts ...Option) (*MemStore, error) {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}

	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}

	s.activities = make(map[string]*entry, len(seeds))
	s.names = make([]string, 0, len(seeds))
	for name, seed := range seeds {
		r, err := roster.FromEmails(seed.MaxParticipants, seed.Participants,
			roster.WithCapacityEnforced(s.enforceCapacity))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, name, err)
		}
		s.activities[name] = &entry{
			name:        name,
			description: seed.Description,
			schedule:    seed.Schedule,
			roster:      r,
		}
		s.names = append(s.names, name)
		metrics.UpdateParticipants(name, r.Len())
	}
	sort.Strings(s.names)
	metrics.UpdateActivityCount(len(s.names))

	return s, nil
}

// List returns a snapshot of every activity keyed by name.
func (s *MemStore) List(_ context.Context) map[string]model.Activity {
	out := make(map[string]model.Activity, len(s.activities))
	for _, name := range s.names {
		e := s.activities[name]
		e.mu.Lock()
		out[name] = e.snapshot()
		e.mu.Unlock()
	}
	return out
}

// Get returns a snapshot of one activity.
func (s *MemStore) Get(_ context.Context, name string) (model.Activity, error) {
	e, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// Update runs fn on the named roster under the activity lock.
func (s *MemStore) Update(_ context.Context, name string, fn func(*roster.Roster) error) (model.Activity, error) {
	e, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.roster); err != nil {
		return model.Activity{}, err
	}
	metrics.UpdateParticipants(name, e.roster.Len())
	return e.snapshot(), nil
}

// Count returns the number of activities.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.activities)
}

// ParticipantCount returns the total number of signups.
func (s *MemStore) ParticipantCount(_ context.Context) int {
	total := 0
	for _, e := range s.activities {
		e.mu.Lock()
		total += e.roster.Len()
		e.mu.Unlock()
	}
	return total
}

func validateSeeds(seeds map[string]model.Seed) error {
	if len(seeds) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalidSeed)
	}
	v := validator.New()
	for name, seed := range seeds {
		// Names are matched against a single URL path segment.
		if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
			return fmt.Errorf("%w: invalid activity name %q", ErrInvalidSeed, name)
		}
		if err := v.Struct(seed); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSeed, name, err)
		}
	}
	return nil
}
