package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeMapping, "expecting TimestampValue, but found StringValue", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_MAPPING", resp.Error.Code)
	assert.Equal(t, "expecting TimestampValue, but found StringValue", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Stored Event/e1 (version 1)")
	require.NoError(t, err)
	assert.Equal(t, "Stored Event/e1 (version 1)\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			details := MappingDetails{Expected: "TimestampValue", Actual: "StringValue"}
			err := formatter.Error(ErrCodeMapping, "mismatch", details)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "Error [E_MAPPING]: mismatch")

			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details:")
				assert.Contains(t, buf.String(), "Actual:StringValue")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_Result(t *testing.T) {
	text := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: text}
	require.NoError(t, f.Result("Deleted Event/e1", DeleteResult{Kind: "Event", Key: "e1"}))
	assert.Equal(t, "Deleted Event/e1\n", text.String())

	js := &bytes.Buffer{}
	f = &OutputFormatter{Format: "json", Writer: js}
	require.NoError(t, f.Result("Deleted Event/e1", DeleteResult{Kind: "Event", Key: "e1"}))
	assert.Equal(t, `{"status":"ok","data":{"kind":"Event","key":"e1"}}`+"\n", js.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}
	cause := errors.New("disk full")

	err := f.Fail(ExitCommandError, ErrCodeStore, "failed to store entity", cause)

	assert.Equal(t, "Error [E_STORE]: failed to store entity: disk full\n", buf.String())
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, NeedsReport(err))
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Opening database %s", "test.db")

			assert.Empty(t, buf.String())
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "Opening database test.db")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "x", errors.New("y"))))
}

func TestNeedsReport(t *testing.T) {
	assert.False(t, NeedsReport(nil))
	assert.True(t, NeedsReport(errors.New("plain")))
	assert.True(t, NeedsReport(NewExitError(ExitCommandError, "bad")))

	reported := NewExitError(ExitFailure, "shown")
	reported.Reported = true
	assert.False(t, NeedsReport(reported))
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "bad", NewExitError(ExitCommandError, "bad").Error())
	assert.Equal(t, "open: no such file", WrapExitError(ExitCommandError, "open", errors.New("no such file")).Error())
}
