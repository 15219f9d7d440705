// Package model contains domain models passed between layers.
package model

// Activity is a point-in-time copy of one catalog entry.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string // signup order
}

// Seed describes one activity as read from a seed source.
type Seed struct {
	Description     string   `koanf:"description" validate:"required"`
	Schedule        string   `koanf:"schedule" validate:"required"`
	MaxParticipants int      `koanf:"max_participants" validate:"gte=1"`
	Participants    []string `koanf:"participants" validate:"unique,dive,required"`
}
