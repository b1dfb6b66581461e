package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/dsmap/internal/config"
	"github.com/roach88/dsmap/internal/logging"
	"github.com/roach88/dsmap/internal/mapper"
	"github.com/roach88/dsmap/internal/store"
)

// session bundles what a command needs once flags and config are resolved.
type session struct {
	formatter *OutputFormatter
	cfg       *config.Config
	log       zerolog.Logger
	odt       *mapper.OffsetDateTimeMapper
	registry  *mapper.Registry
}

// newSession loads config and builds the logger and mappers for cmd.
// Errors are reported through the formatter.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = zerolog.LevelDebugValue
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "failed to create logger", err)
	}

	mopts, err := cfg.MapperOptions()
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid mapper options", err)
	}

	s := &session{
		formatter: formatter,
		cfg:       cfg,
		log:       log.With().Str("command", cmd.Name()).Logger(),
		odt:       mapper.NewOffsetDateTimeMapper(mopts...),
		registry:  mapper.NewRegistry(mopts...),
	}

	formatter.VerboseLog("Offset policy: %s, location: %s", s.odt.Policy(), s.odt.Location())
	return s, nil
}

// openStore opens the database named by dbFlag, or by the config if empty.
func (s *session) openStore(dbFlag string) (*store.Store, error) {
	path := s.cfg.Database
	if dbFlag != "" {
		path = dbFlag
	}
	s.formatter.VerboseLog("Opening database %s", path)

	st, err := store.Open(path, store.WithLogger(s.log))
	if err != nil {
		return nil, s.formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	return st, nil
}

// parseInstant parses an RFC 3339 timestamp, or "null" for an absent value.
func parseInstant(s string) (*time.Time, error) {
	if strings.EqualFold(s, "null") {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: want RFC 3339 or null", s)
	}
	return &t, nil
}

// formatInstant is the inverse of parseInstant.
func formatInstant(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format(time.RFC3339Nano)
}

// instantString returns t formatted as RFC 3339, or nil.
func instantString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatInstant(t)
	return &s
}
