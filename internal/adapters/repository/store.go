// Package repository holds the activity catalog and its errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/roster"
)

// Store provides read/write access to the activity catalog.
type Store interface {
	// List returns a snapshot of every activity keyed by name.
	List(ctx context.Context) map[string]model.Activity

	// Get returns a snapshot of one activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Update runs fn against the activity's roster while holding that
	// activity's lock and returns the resulting snapshot. An error from fn is
	// returned unchanged. Returns ErrActivityNotFound if the name is unknown.
	Update(ctx context.Context, name string, fn func(*roster.Roster) error) (model.Activity, error)

	// Count returns the number of activities in the catalog.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of signups across all activities.
	ParticipantCount(ctx context.Context) int
}
