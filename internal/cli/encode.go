package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/mapper"
	"github.com/roach88/dsmap/internal/value"
)

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <rfc3339|null>",
		Short: "Encode an offset date-time as a store value",
		Long: `Encode an RFC 3339 timestamp as a store timestamp value.

The offset is dropped and the instant is truncated to the millisecond.
The literal "null" encodes to a null value.

Examples:
  dsmap encode 2024-01-15T10:30:00+05:30
  dsmap encode null --format json`,
		Args:          checkArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runEncode(opts *RootOptions, arg string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	f := s.formatter

	t, err := parseInstant(arg)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid input", err)
	}

	v, err := s.odt.Encode(t)
	if errors.Is(err, mapper.ErrOutOfRange) {
		return f.Fail(ExitFailure, ErrCodeRange, "cannot encode", err)
	}
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeMapping, "cannot encode", err)
	}

	raw, err := value.Marshal(v)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeMapping, "cannot marshal store value", err)
	}

	s.log.Debug().Str("kind", v.Kind()).Msg("encoded")
	return f.Result(string(raw), json.RawMessage(raw))
}
