package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSanitizeHost(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"standard http", "http://example.com/path", "example.com"},
		{"standard https", "https://Example.com/path", "example.com"},
		{"no scheme", "example.com/path", "example.com"},
		{"host with port", "127.0.0.1:8000", "127.0.0.1"},
		{"invalid url", "http://%", "unknown"},
		{"empty string", "", "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeHost(tc.input); got != tc.expected {
				t.Errorf("SanitizeHost(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	first := probeAttemptsTotal
	Init()

	if probeAttemptsTotal == nil || probeAttemptsTotal != first {
		t.Fatal("Init() must create collectors exactly once")
	}
}

func TestObserveCounters(t *testing.T) {
	Init()

	before := testutil.ToFloat64(probeAttemptsTotal.WithLabelValues("/health", ProbeOK))
	ObserveProbeAttempt("/health", ProbeOK)
	if got := testutil.ToFloat64(probeAttemptsTotal.WithLabelValues("/health", ProbeOK)); got != before+1 {
		t.Errorf("expected probe counter %f, got %f", before+1, got)
	}

	before = testutil.ToFloat64(submissionsTotal.WithLabelValues("submitted"))
	ObserveSubmission("submitted")
	if got := testutil.ToFloat64(submissionsTotal.WithLabelValues("submitted")); got != before+1 {
		t.Errorf("expected submission counter %f, got %f", before+1, got)
	}

	before = testutil.ToFloat64(jobListLoadsTotal.WithLabelValues("empty"))
	ObserveJobListLoad("empty")
	if got := testutil.ToFloat64(jobListLoadsTotal.WithLabelValues("empty")); got != before+1 {
		t.Errorf("expected job list counter %f, got %f", before+1, got)
	}

	before = testutil.ToFloat64(clientRequestsTotal.WithLabelValues("api.example", "GET", "0"))
	ObserveClientRequest("https://api.example/jobs", "GET", "/jobs", 0, 10*time.Millisecond)
	if got := testutil.ToFloat64(clientRequestsTotal.WithLabelValues("api.example", "GET", "0")); got != before+1 {
		t.Errorf("expected client request counter %f, got %f", before+1, got)
	}
}

func FuzzSanitizeHost(f *testing.F) {
	for _, tc := range []string{"http://example.com", "https://api.example:8443/x", "ftp://example.com"} {
		f.Add(tc)
	}
	f.Fuzz(func(t *testing.T, orig string) {
		if SanitizeHost(orig) == "" {
			t.Errorf("SanitizeHost(%q) returned an empty string", orig)
		}
	})
}

func TestObserveClientRequestRecordsDuration(t *testing.T) {
	Init()

	before := testutil.CollectAndCount(clientRequestDurationSeconds)
	ObserveClientRequest("https://duration.example/jobs", "GET", "/duration-check", 200, 5*time.Millisecond)
	if got := testutil.CollectAndCount(clientRequestDurationSeconds); got != before+1 {
		t.Errorf("expected %d duration series, got %d", before+1, got)
	}
}
