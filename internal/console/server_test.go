package console

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
	"github.com/JakeFAU/quantum-job-console/internal/render"
)

func newTestServer(t *testing.T, p Prober, s Submitter, l Lister) *Server {
	t.Helper()
	page, err := render.NewHTML(0)
	require.NoError(t, err)
	c := New(endpoint.Resolve("http://api"), p, s, l, nil, zap.NewNop())
	return NewServer(c, page, zap.NewNop())
}

func onlineProber() *mockProber {
	p := &mockProber{}
	p.On("Probe", mock.Anything, mock.Anything).
		Return(probe.Result{OK: true, URLTried: "http://api/health", StatusCode: 200})
	return p
}

func TestServerIndexRendersStartupState(t *testing.T) {
	t.Parallel()

	lister := &mockLister{}
	lister.On("LoadJobs", mock.Anything).Return([]jobs.Job{{ID: "j9", Status: "running"}}, nil)
	srv := newTestServer(t, onlineProber(), &mockSubmitter{}, lister)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	body := rec.Body.String()
	require.Contains(t, body, "API online (200) at http://api/health")
	require.Contains(t, body, "status-running")
	require.Contains(t, body, "j9")
}

func TestServerSubmitPostsFormAndRefreshes(t *testing.T) {
	t.Parallel()

	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, "secret", "sampler", `{"shots": 100}`).
		Return(jobs.Outcome{Kind: jobs.OutcomeSubmitted, StatusCode: 200, Response: []byte(`{"id":"j1"}`)}).Once()
	lister := &mockLister{}
	lister.On("LoadJobs", mock.Anything).Return([]jobs.Job{{ID: "j1", Status: "queued"}}, nil).Once()
	srv := newTestServer(t, onlineProber(), submitter, lister)

	form := url.Values{"api_key": {"secret"}, "job_type": {"sampler"}, "payload": {`{"shots": 100}`}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "submission-submitted")
	require.NotContains(t, body, "secret")
	submitter.AssertExpectations(t)
	lister.AssertExpectations(t)
}

func TestServerSubmitInvalidPayloadStillShowsJobs(t *testing.T) {
	t.Parallel()

	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything, "{nope").
		Return(jobs.Outcome{Kind: jobs.OutcomeInvalidPayload, Message: "Payload must be valid JSON.", Err: jobs.ErrInvalidPayload})
	lister := &mockLister{}
	lister.On("LoadJobs", mock.Anything).Return([]jobs.Job{}, nil).Once()
	srv := newTestServer(t, onlineProber(), submitter, lister)

	form := url.Values{"job_type": {"sampler"}, "payload": {"{nope"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Payload must be valid JSON.")
	require.Contains(t, body, render.NoJobsMessage)
	require.Contains(t, body, "{nope")
}

func TestServerHealthzAndMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &mockProber{}, &mockSubmitter{}, &mockLister{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestServerRecoversFromPanics(t *testing.T) {
	t.Parallel()

	prober := &mockProber{}
	prober.On("Probe", mock.Anything, mock.Anything).Panic("probe exploded")
	srv := newTestServer(t, prober, &mockSubmitter{}, &mockLister{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerWithoutLoggerServesHealthz(t *testing.T) {
	t.Parallel()

	page, err := render.NewHTML(0)
	require.NoError(t, err)
	c := New(endpoint.Resolve(""), &mockProber{}, &mockSubmitter{}, &mockLister{}, nil, nil)
	srv := NewServer(c, page, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
