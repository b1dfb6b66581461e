package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/store"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Database string
}

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "delete <kind> <key>",
		Short:         "Delete an entity",
		Args:          checkArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config)")

	return cmd
}

func runDelete(opts *DeleteOptions, kind, key string, cmd *cobra.Command) error {
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

	err = st.Delete(ctx, kind, key)
	if errors.Is(err, store.ErrInvalidKind) {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid kind", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitFailure, ErrCodeNotFound, "entity not found", err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to delete entity", err)
	}

	return f.Result(
		fmt.Sprintf("Deleted %s/%s", kind, key),
		DeleteResult{Kind: kind, Key: key},
	)
}
