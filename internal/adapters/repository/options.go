package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacityEnforced rejects signups once an activity reaches
// max_participants. Off by default: capacity is advisory.
func WithCapacityEnforced(enforce bool) Option {
	return func(s *MemStore) {
		s.enforceCapacity = enforce
	}
}
