package roster

// Option applies a configuration option to a Roster.
type Option func(*Roster)

// WithCapacityEnforced makes Add fail with ErrFull once the roster holds
// capacity participants. Without it capacity is informational only.
func WithCapacityEnforced(enforce bool) Option {
	return func(r *Roster) {
		r.enforce = enforce
	}
}
