package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the root command and wires all subcommands
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	serveFlags := &ServeFlags{}
	eventsFlags := &EventsFlags{}
	renderFlags := &RenderFlags{}
	activeFlags := &ActiveFlags{}
	observeFlags := &ObserveFlags{}
	clearFlags := &APIFlags{}
	kindsFlags := &APIFlags{}

	cmds := command{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createServeCommand(serveFlags),
		createEventsCommand(cmds, eventsFlags),
		createRenderCommand(cmds, renderFlags),
		createActiveCommand(cmds, activeFlags),
		createObserveCommand(cmds, observeFlags),
		createClearCommand(cmds, clearFlags),
		createKindsCommand(cmds, kindsFlags),
	)
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "evhist",
		Short: "In-memory event-history recorder daemon and client",
		Long: `evhist records typed application events into an in-memory history,
notifies registered listeners, and answers kind-filtered queries over the
recorded history. The serve command runs the daemon; the remaining commands
talk to a running daemon over its HTTP API.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to config.toml")
	return root
}

func createServeCommand(flags *ServeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [config.toml]",
		Short: "Start the evhist daemon",
		Long: `Start the evhist daemon. Kinds, sinks and the HTTP listener are
loaded from the TOML config file.

Examples:
  evhist serve config.toml
  evhist serve --config=config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.ConfigPath, "config", "", "path to config.toml")
	return cmd
}

func addAPIFlags(cmd *cobra.Command, f *APIFlags) {
	cmd.Flags().StringVar(&f.APIUrl, "api-url", "", "daemon API base URL (default http://127.0.0.1:8080/api)")
	cmd.Flags().DurationVar(&f.APITimeout, "api-timeout", 10*time.Second, "API request timeout")
}

func createEventsCommand(c command, f *EventsFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Query recorded events, optionally filtered by kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Events(*f)
		},
	}
	cmd.Flags().StringArrayVar(&f.Includes, "include", nil, "kind to include (with descendants, repeatable)")
	cmd.Flags().StringArrayVar(&f.Excludes, "exclude", nil, "kind to exclude (with descendants, repeatable)")
	addAPIFlags(cmd, &f.APIFlags)
	return cmd
}

func createRenderCommand(c command, f *RenderFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render recorded history as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Render(*f)
		},
	}
	cmd.Flags().StringArrayVar(&f.Filtered, "filter", nil, "kind to drop from output (repeatable)")
	cmd.Flags().StringArrayVar(&f.Highlighted, "highlight", nil, "kind to emphasize (repeatable)")
	addAPIFlags(cmd, &f.APIFlags)
	return cmd
}

func createActiveCommand(c command, f *ActiveFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "Show or force the recorder's activation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Active(*f)
		},
	}
	cmd.Flags().StringVar(&f.Set, "set", "", "force recording on/off (true or false)")
	addAPIFlags(cmd, &f.APIFlags)
	return cmd
}

func createObserveCommand(c command, f *ObserveFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observe",
		Short: "Deliver a single event to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Observe(*f)
		},
	}
	cmd.Flags().StringVar(&f.Kind, "kind", "", "event kind name (required)")
	cmd.Flags().StringVar(&f.Rendered, "rendered", "", "rendered text form of the event")
	addAPIFlags(cmd, &f.APIFlags)
	return cmd
}

func createClearCommand(c command, f *APIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the daemon's event history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Clear(*f)
		},
	}
	addAPIFlags(cmd, f)
	return cmd
}

func createKindsCommand(c command, f *APIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List registered event kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Kinds(*f)
		},
	}
	addAPIFlags(cmd, f)
	return cmd
}
