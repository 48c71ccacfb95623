package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/evhist/evhist/pkg/client"
)

const defaultAPIUrl = "http://127.0.0.1:8080/api"

type command struct{}

func (command) dial(ctx context.Context, f APIFlags) (*client.Client, error) {
	apiURL := f.APIUrl
	if apiURL == "" {
		apiURL = defaultAPIUrl
	}
	c := client.New(client.Config{BaseURL: apiURL, Timeout: f.APITimeout})
	if !c.IsReachable(ctx) {
		return nil, fmt.Errorf("daemon not reachable at %s - please start daemon first with 'evhist serve'", apiURL)
	}
	return c, nil
}

// Events queries recorded history, optionally filtered by kind names.
func (c command) Events(f EventsFlags) error {
	ctx := context.Background()
	api, err := c.dial(ctx, f.APIFlags)
	if err != nil {
		return err
	}
	recs, err := api.Events(ctx, client.EventsQuery{Includes: f.Includes, Excludes: f.Excludes})
	if err != nil {
		return err
	}
	printJSON(recs)
	return nil
}

// Render prints the daemon's rendered history text.
func (c command) Render(f RenderFlags) error {
	ctx := context.Background()
	api, err := c.dial(ctx, f.APIFlags)
	if err != nil {
		return err
	}
	text, err := api.Render(ctx, client.RenderQuery{Filtered: f.Filtered, Highlighted: f.Highlighted})
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// Active shows or forces the recorder's activation state.
func (c command) Active(f ActiveFlags) error {
	ctx := context.Background()
	api, err := c.dial(ctx, f.APIFlags)
	if err != nil {
		return err
	}
	switch f.Set {
	case "":
	case "true", "on":
		if err := api.SetActive(ctx, true); err != nil {
			return err
		}
	case "false", "off":
		if err := api.SetActive(ctx, false); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid --set value %q (use true or false)", f.Set)
	}
	st, err := api.ActiveStatus(ctx)
	if err != nil {
		return err
	}
	printJSON(st)
	return nil
}

// Clear empties the daemon's history.
func (c command) Clear(f APIFlags) error {
	ctx := context.Background()
	api, err := c.dial(ctx, f)
	if err != nil {
		return err
	}
	return api.Clear(ctx)
}

// Kinds lists registered event kinds.
func (c command) Kinds(f APIFlags) error {
	ctx := context.Background()
	api, err := c.dial(ctx, f)
	if err != nil {
		return err
	}
	names, err := api.Kinds(ctx)
	if err != nil {
		return err
	}
	printJSON(names)
	return nil
}

// Observe delivers a single event to the daemon.
func (c command) Observe(f ObserveFlags) error {
	if f.Kind == "" {
		return fmt.Errorf("event kind is required")
	}
	ctx := context.Background()
	api, err := c.dial(ctx, f.APIFlags)
	if err != nil {
		return err
	}
	return api.Observe(ctx, f.Kind, f.Rendered)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
