// Package roster holds the ordered participant list of a single activity.
package roster

import (
	"errors"
)

// Sentinel kinds for roster errors. These allow errors.Is from callers.
var (
	ErrAlreadyRegistered = errors.New("student already signed up for this activity")
	ErrNotRegistered     = errors.New("student not registered for this activity")
	ErrFull              = errors.New("activity is full")
)

// Roster is an ordered, duplicate-free list of participant emails.
// Insertion order is signup order.
//
// Roster is not safe for concurrent use; the owning store serializes access.
type Roster struct {
	emails   []string
	index    map[string]struct{}
	capacity int  // advisory unless enforce is set
	enforce  bool // reject Add once len(emails) >= capacity
}

// New creates an empty roster with the given capacity.
func New(capacity int, opts ...Option) *Roster {
	r := &Roster{
		emails:   make([]string, 0, max(capacity, 0)),
		index:    make(map[string]struct{}, max(capacity, 0)),
		capacity: capacity,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FromEmails builds a roster pre-filled with emails in the given order.
// Seeds are loaded regardless of capacity; duplicates are rejected.
func FromEmails(capacity int, emails []string, opts ...Option) (*Roster, error) {
	r := New(capacity, opts...)
	for _, email := range emails {
		if _, exists := r.index[email]; exists {
			return nil, ErrAlreadyRegistered
		}
		r.append(email)
	}
	return r, nil
}

// Add appends email at the end of the roster.
// Returns ErrAlreadyRegistered if email is present, ErrFull if capacity is
// enforced and reached.
func (r *Roster) Add(email string) error {
	if _, exists := r.index[email]; exists {
		return ErrAlreadyRegistered
	}
	if r.enforce && len(r.emails) >= r.capacity {
		return ErrFull
	}
	r.append(email)
	return nil
}

// Remove deletes the single occurrence of email, keeping the order of the rest.
func (r *Roster) Remove(email string) error {
	if _, exists := r.index[email]; !exists {
		return ErrNotRegistered
	}
	delete(r.index, email)
	for i, e := range r.emails {
		if e == email {
			r.emails = append(r.emails[:i], r.emails[i+1:]...)
			break
		}
	}
	return nil
}

// Contains reports whether email is on the roster.
func (r *Roster) Contains(email string) bool {
	_, ok := r.index[email]
	return ok
}

// Emails returns a copy of the participants in signup order. Never nil.
func (r *Roster) Emails() []string {
	out := make([]string, len(r.emails))
	copy(out, r.emails)
	return out
}

// Len returns the number of participants.
func (r *Roster) Len() int { return len(r.emails) }

// Capacity returns the configured maximum number of participants.
func (r *Roster) Capacity() int { return r.capacity }

func (r *Roster) append(email string) {
	r.emails = append(r.emails, email)
	r.index[email] = struct{}{}
}
