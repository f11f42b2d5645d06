// Package testutil provides shared helpers for tests.
//
// Skip helpers call t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so live tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestLiveSynthesis(t *testing.T) {
//	    id, key := testutil.RequireCredentials(t)
//	    ...
//	}
package testutil

import (
	"os"
	"testing"
)

// LiveEnv opts in to tests that call the real TextToVoice API.
const LiveEnv = "TENCENTTTS_LIVE_TEST"

// RequireCredentials skips the test unless LiveEnv is set and a SecretId /
// SecretKey pair is present in the environment. It returns the pair.
func RequireCredentials(tb testing.TB) (string, string) {
	tb.Helper()

	if os.Getenv(LiveEnv) == "" {
		tb.Skipf("live API test disabled; set %s=1 to enable", LiveEnv)
		return "", ""
	}

	id, key := os.Getenv("TENCENT_SECRET_ID"), os.Getenv("TENCENT_SECRET_KEY")
	if id == "" || key == "" {
		tb.Skip("TENCENT_SECRET_ID and TENCENT_SECRET_KEY must be set for live API tests")
		return "", ""
	}

	return id, key
}
