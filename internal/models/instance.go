package models

import "time"

// InstanceState is the externally visible state of a live loader instance.
type InstanceState struct {
	ID           string    `json:"id"`
	Containers   []string  `json:"containers"`
	Mounted      bool      `json:"mounted"`
	Visible      bool      `json:"visible"`
	Destroyed    bool      `json:"destroyed"`
	Settings     *Settings `json:"settings,omitempty"`
	Warning      string    `json:"warning,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}
