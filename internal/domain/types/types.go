// Package types contains common types used across the application
package types

// Activity is the JSON shape of a catalog entry. The name is the map key.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Message is the body of a successful signup or unregister.
type Message struct {
	Message string `json:"message"`
}
