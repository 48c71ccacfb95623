package main

import "time"

// GlobalFlags holds minimal global/persistent flags for CLI commands
type GlobalFlags struct {
	ConfigPath string
}

// APIFlags holds daemon connection flags shared by the client commands
type APIFlags struct {
	APIUrl     string
	APITimeout time.Duration
}

// EventsFlags holds flags for the events command
type EventsFlags struct {
	Includes []string
	Excludes []string
	APIFlags
}

// RenderFlags holds flags for the render command
type RenderFlags struct {
	Filtered    []string
	Highlighted []string
	APIFlags
}

// ActiveFlags holds flags for the active command
type ActiveFlags struct {
	Set string // "", "true" or "false"
	APIFlags
}

// ObserveFlags holds flags for the observe command
type ObserveFlags struct {
	Kind     string
	Rendered string
	APIFlags
}

// ServeFlags holds flags for the serve command
type ServeFlags struct {
	ConfigPath string
}
