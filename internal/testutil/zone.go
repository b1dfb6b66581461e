package testutil

import (
	"testing"
	"time"
)

// Fixed zones used across tests. Using these instead of time.Local keeps
// results independent of the machine's TZ setting.
var (
	// IST is UTC+05:30.
	IST = time.FixedZone("IST", 5*3600+30*60)

	// PST is UTC-08:00, with no daylight saving.
	PST = time.FixedZone("PST", -8*3600)
)

// MustParse parses an RFC 3339 timestamp or fails the test.
func MustParse(t testing.TB, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

// Offset returns the UTC offset of ts in seconds.
func Offset(ts time.Time) int {
	_, off := ts.Zone()
	return off
}
