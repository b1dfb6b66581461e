package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/store"
	"github.com/roach88/dsmap/internal/value"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// ListEntry is one entity in the list command's JSON payload.
type ListEntry struct {
	Key        string          `json:"key"`
	Version    int64           `json:"version"`
	Properties json.RawMessage `json:"properties"` // store JSON form
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Kind     string      `json:"kind"`
	Entities []ListEntry `json:"entities"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List entities of a kind with their stored values",
		Long: `List every entity of a kind, ordered by key, with properties in
their store JSON form.`,
		Args:          checkArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config)")

	return cmd
}

func runList(opts *ListOptions, kind string, cmd *cobra.Command) error {
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

	entities, err := st.List(ctx, kind)
	if errors.Is(err, store.ErrInvalidKind) {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid kind", err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to list entities", err)
	}

	if len(entities) == 0 {
		return f.Result(
			fmt.Sprintf("No entities of kind %s.", kind),
			ListResult{Kind: kind, Entities: []ListEntry{}},
		)
	}

	result := ListResult{Kind: kind, Entities: make([]ListEntry, 0, len(entities))}
	lines := make([]string, 0, len(entities))

	for _, e := range entities {
		raw, err := value.MarshalProperties(e.Properties)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeMapping, fmt.Sprintf("cannot marshal %s/%s", e.Kind, e.Key), err)
		}
		result.Entities = append(result.Entities, ListEntry{
			Key:        e.Key,
			Version:    e.Version,
			Properties: raw,
		})
		lines = append(lines, fmt.Sprintf("%s (version %d) %s", e.Key, e.Version, raw))
	}

	return f.Result(strings.Join(lines, "\n"), result)
}
