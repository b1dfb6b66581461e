package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/mapper"
	"github.com/roach88/dsmap/internal/value"
)

// DecodeResult is the JSON payload of the decode command.
type DecodeResult struct {
	Value *string `json:"value"` // RFC 3339, or null
}

// MappingDetails is attached to E_MAPPING errors.
type MappingDetails struct {
	Property string `json:"property,omitempty"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <store-json>",
		Short: "Decode a store value into an offset date-time",
		Long: `Decode a store value, given in its JSON form, into an RFC 3339 timestamp.

The offset attached to the result comes from the configured offset policy
and location. A null value decodes to null.

Exit codes:
  0 - Decoded
  1 - The value is not a timestamp (E_MAPPING)
  2 - Command error (malformed JSON, invalid config)

Examples:
  dsmap decode '{"timestampValue":"2024-01-15T05:00:00Z"}'
  dsmap decode '{"nullValue":null}'`,
		Args:          checkArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDecode(opts *RootOptions, arg string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	f := s.formatter

	v, err := value.Unmarshal([]byte(arg))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid store value", err)
	}

	t, err := s.odt.Decode(v)
	if err != nil {
		return reportMappingError(f, "", err)
	}

	s.log.Debug().Str("kind", value.KindOf(v)).Msg("decoded")
	return f.Result(formatInstant(t), DecodeResult{Value: instantString(t)})
}

// reportMappingError outputs a MappingError with its kinds as details.
// Other errors are reported as generic mapping failures.
func reportMappingError(f *OutputFormatter, property string, err error) error {
	var me *mapper.MappingError
	if !errors.As(err, &me) {
		return f.Fail(ExitFailure, ErrCodeMapping, "cannot decode", err)
	}

	_ = f.Error(ErrCodeMapping, err.Error(), MappingDetails{
		Property: property,
		Expected: me.Expected,
		Actual:   me.Actual,
	})
	exitErr := WrapExitError(ExitFailure, ErrCodeMapping, err)
	exitErr.Reported = true
	return exitErr
}
