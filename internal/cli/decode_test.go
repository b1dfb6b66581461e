package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Golden(t *testing.T) {
	tests := []struct {
		golden string
		args   []string
	}{
		{"decode_text", []string{"decode", `{"timestampValue":"2024-01-15T05:00:00.123Z"}`}},
		{"decode_null_json", []string{"--format", "json", "decode", `{"nullValue":null}`}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			env := newTestEnv(t)
			out := env.mustRun(t, tt.args...)
			assertGolden(t, tt.golden, out)
		})
	}
}

func TestDecode_MappingErrorGolden(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "--format", "json", "decode", `{"stringValue":"Hello"}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.False(t, NeedsReport(err))
	assertGolden(t, "decode_mapping_error", out)
}

func TestDecode_MappingErrorText(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "decode", `{"integerValue":"7"}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E_MAPPING]: expecting TimestampValue, but found IntegerValue\n", out)
}

func TestDecode_MalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"not json", `nope`},
		{"unknown kind", `{"geoPointValue":{}}`},
		{"two keys", `{"nullValue":null,"stringValue":"x"}`},
		{"bad timestamp", `{"timestampValue":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			out, _, err := env.run(t, "decode", tt.arg)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error [E_INPUT]")
		})
	}
}

func TestDecode_OffsetPolicy(t *testing.T) {
	if _, err := time.LoadLocation("Asia/Kolkata"); err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	tests := []struct {
		policy string
		want   string
	}{
		{"local", "2024-01-15T10:30:00+05:30"},
		{"utc", "2024-01-15T05:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			env := newTestEnvWith(t, "Asia/Kolkata", tt.policy)

			out := env.mustRun(t, "--format", "json", "decode", `{"timestampValue":"2024-01-15T05:00:00Z"}`)

			var resp struct {
				Status string       `json:"status"`
				Data   DecodeResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "ok", resp.Status)
			require.NotNil(t, resp.Data.Value)
			assert.Equal(t, tt.want, *resp.Data.Value)
		})
	}
}

func TestEncodeDecode_RoundTripKeepsInstant(t *testing.T) {
	env := newTestEnv(t)

	stored := env.mustRun(t, "encode", "2024-01-15T10:30:00.987654+05:30")
	out := env.mustRun(t, "decode", stored[:len(stored)-1])

	got, err := time.Parse(time.RFC3339Nano, out[:len(out)-1])
	require.NoError(t, err)
	want := time.Date(2024, 1, 15, 5, 0, 0, 987_000_000, time.UTC)
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestDecode_InvalidConfig(t *testing.T) {
	env := newTestEnvWith(t, "UTC", "sideways")

	out, _, err := env.run(t, "decode", `{"nullValue":null}`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E_CONFIG]")
}
