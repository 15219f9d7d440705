// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/roster"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// ErrNotStarted is returned by catalog operations before Start.
var ErrNotStarted = errors.New("service not started")

// Rejection reasons used as metric labels.
const (
	reasonNotFound      = "activity_not_found"
	reasonDuplicate     = "already_registered"
	reasonFull          = "activity_full"
	reasonNotRegistered = "not_registered"
)

// Roster operations used as metric labels.
const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Service implements the API dependencies for the signup system.
type Service struct {
	mu sync.RWMutex

	catalog repository.Store

	// Configuration
	seeds           map[string]model.Seed
	seedFile        string
	enforceCapacity bool

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeeds replaces the built-in catalog.
func WithSeeds(seeds map[string]model.Seed) Option {
	return func(s *Service) {
		if seeds != nil {
			s.seeds = seeds
		}
	}
}

// WithSeedFile loads the catalog from a YAML file at Start. It takes
// precedence over WithSeeds.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// WithCapacityEnforced turns max_participants into a hard limit.
func WithCapacityEnforced(enforce bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enforce
	}
}

// WithStore injects a prebuilt catalog; seeds are then ignored.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seeds:  repository.DefaultSeeds(),
		logger: nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the activity catalog.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activity signup service...")

	if s.catalog == nil {
		seeds := s.seeds
		if s.seedFile != "" {
			loaded, err := repository.LoadSeedFile(ctx, s.seedFile)
			if err != nil {
				return fmt.Errorf("load seed file: %w", err)
			}
			seeds = loaded
			s.logger.Info(ctx, "loaded activity seed file", logger.String("path", s.seedFile))
		}

		store, err := repository.NewMemStore(ctx, seeds, repository.WithCapacityEnforced(s.enforceCapacity))
		if err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		s.catalog = store
	}

	s.started = true
	s.logger.Info(ctx, "activity signup service started",
		logger.Int("activities", s.catalog.Count(ctx)),
		logger.Int("participants", s.catalog.ParticipantCount(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
	)

	return nil
}

// Stop marks the service as stopped. The catalog is in-memory and holds no
// resources; its state is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "activity signup service stopped")
}

func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.catalog, nil
}

// Activities returns the whole catalog in its JSON shape.
func (s *Service) Activities(ctx context.Context) (map[string]types.Activity, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	all := store.List(ctx)
	out := make(map[string]types.Activity, len(all))
	for name, a := range all {
		out[name] = toAPI(a)
	}
	return out, nil
}

// Signup appends email to the activity's roster.
//
// Checks run in order: the activity exists (repository.ErrActivityNotFound),
// the email is not already present (roster.ErrAlreadyRegistered), and, when
// capacity is enforced, a seat is free (roster.ErrFull).
func (s *Service) Signup(ctx context.Context, activity, email string) (types.Message, error) {
	store, err := s.store()
	if err != nil {
		return types.Message{}, err
	}

	_, err = store.Update(ctx, activity, func(r *roster.Roster) error {
		return r.Add(email)
	})
	if err != nil {
		s.reject(ctx, opSignup, activity, email, err)
		return types.Message{}, err
	}

	metrics.RecordSignup(activity)
	s.logger.Info(ctx, "student signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return types.Message{Message: fmt.Sprintf("Signed up %s for %s", email, activity)}, nil
}

// Unregister removes email from the activity's roster.
//
// Checks run in order: the activity exists (repository.ErrActivityNotFound)
// and the email is present (roster.ErrNotRegistered).
func (s *Service) Unregister(ctx context.Context, activity, email string) (types.Message, error) {
	store, err := s.store()
	if err != nil {
		return types.Message{}, err
	}

	_, err = store.Update(ctx, activity, func(r *roster.Roster) error {
		return r.Remove(email)
	})
	if err != nil {
		s.reject(ctx, opUnregister, activity, email, err)
		return types.Message{}, err
	}

	metrics.RecordUnregister(activity)
	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return types.Message{Message: fmt.Sprintf("Unregistered %s from %s", email, activity)}, nil
}

func (s *Service) reject(ctx context.Context, op, activity, email string, err error) {
	msg := op + " rejected"
	reason := rejectionReason(err)
	if reason == "" {
		s.logger.Error(ctx, msg, logger.String("activity", activity), logger.Error(err))
		return
	}
	// Unknown names are not catalog entries; keep them out of metric labels.
	label := activity
	if reason == reasonNotFound {
		label = ""
	}
	metrics.RecordRosterRejected(op, label, reason)
	s.logger.Debug(ctx, msg,
		logger.String("activity", activity),
		logger.String("email", email),
		logger.String("reason", reason),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return reasonNotFound
	case errors.Is(err, roster.ErrAlreadyRegistered):
		return reasonDuplicate
	case errors.Is(err, roster.ErrFull):
		return reasonFull
	case errors.Is(err, roster.ErrNotRegistered):
		return reasonNotRegistered
	default:
		return ""
	}
}

func toAPI(a model.Activity) types.Activity {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return types.Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"enforceCapacity": s.enforceCapacity,
	}

	if s.started {
		activities := s.catalog.Count(ctx)
		stats["activities"] = activities
		stats["participants"] = s.catalog.ParticipantCount(ctx)

		metrics.UpdateActivityCount(activities)
	}

	return stats
}
