package cli

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/store"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Database string
}

// GetResult is the JSON payload of the get command.
type GetResult struct {
	Kind       string             `json:"kind"`
	Key        string             `json:"key"`
	Version    int64              `json:"version"`
	Properties map[string]*string `json:"properties"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <kind> <key>",
		Short: "Fetch an entity and decode its timestamp properties",
		Long: `Fetch an entity and decode every property as an offset date-time.

Exit codes:
  0 - Entity decoded
  1 - Entity not found (E_NOT_FOUND) or a property is not a timestamp (E_MAPPING)
  2 - Command error (database unavailable, invalid config)

Examples:
  dsmap get Event e1
  dsmap get Event e1 --format json`,
		Args:          checkArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config)")

	return cmd
}

var timePtrType = reflect.TypeFor[*time.Time]()

func runGet(opts *GetOptions, kind, key string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	f := s.formatter

	st, err := s.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := st.Get(ctx, kind, key)
	if errors.Is(err, store.ErrInvalidKind) {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid kind", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitFailure, ErrCodeNotFound, "entity not found", err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to read entity", err)
	}

	names := make([]string, 0, len(e.Properties))
	for name := range e.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	result := GetResult{
		Kind:       e.Kind,
		Key:        e.Key,
		Version:    e.Version,
		Properties: make(map[string]*string, len(names)),
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s/%s (version %d)", e.Kind, e.Key, e.Version)

	for _, name := range names {
		m, err := s.registry.ToModel(timePtrType, e.Properties[name])
		if err != nil {
			return reportMappingError(f, name, fmt.Errorf("property %q: %w", name, err))
		}

		var t *time.Time
		if m != nil {
			v := m.(time.Time)
			t = &v
		}
		result.Properties[name] = instantString(t)
		fmt.Fprintf(&text, "\n  %s = %s", name, formatInstant(t))
	}

	return f.Result(text.String(), result)
}
