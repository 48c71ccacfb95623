package client

import "time"

// Record mirrors the daemon's recorded-event JSON shape.
type Record struct {
	Kind     string    `json:"kind"`
	Rendered string    `json:"rendered"`
	Seq      uint64    `json:"seq"`
	At       time.Time `json:"at"`
}

// ObserveRequest delivers one event to the daemon's recording path.
type ObserveRequest struct {
	Kind     string `json:"kind"`
	Rendered string `json:"rendered"`
}

// ActiveStatus reports the recorder's activation state and history size.
type ActiveStatus struct {
	Active bool `json:"active"`
	Size   int  `json:"size"`
}

// EventsQuery holds the optional kind filters for Events. Nil/empty slices
// mean "no filter" on that side.
type EventsQuery struct {
	Includes []string
	Excludes []string
}

// RenderQuery holds the optional kind sets for Render.
type RenderQuery struct {
	Filtered    []string
	Highlighted []string
}
