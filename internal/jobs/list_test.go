package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
)

func newListServer(t *testing.T, status int, body string) *Lister {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != ListPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewLister(endpoint.Resolve(srv.URL), srv.Client(), zap.NewNop())
}

func TestLoadJobsPreservesServerOrder(t *testing.T) {
	t.Parallel()

	l := newListServer(t, http.StatusOK, `[
		{"id":"j3","job_type":"sampler","status":"running","created_at":"2025-01-03"},
		{"id":"j1","job_type":"estimator","status":"weird-new-state","created_at":"2025-01-01"},
		{"id":"j2","job_type":"sampler","status":"queued","created_at":"2025-01-02"}
	]`)

	list, err := l.LoadJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []Opaque{"j3", "j1", "j2"}, []Opaque{list[0].ID, list[1].ID, list[2].ID})
	require.Equal(t, Opaque("weird-new-state"), list[1].Status)
}

func TestLoadJobsEmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	list, err := newListServer(t, http.StatusOK, `[]`).LoadJobs(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestLoadJobsAcceptsItemsEnvelope(t *testing.T) {
	t.Parallel()

	body := `{"items":[{"id":"a","status":"completed","provider":"sim"}],"next_cursor":null}`
	list, err := newListServer(t, http.StatusOK, body).LoadJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, Opaque("sim"), list[0].Provider)
}

func TestDecodeListEmptyEnvelope(t *testing.T) {
	t.Parallel()

	list, err := DecodeList([]byte(`{"items":[],"next_cursor":null}`))
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestLoadJobsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, ErrHTTPStatus},
		{"not json", http.StatusOK, `<html></html>`, ErrDecode},
		{"scalar", http.StatusOK, `42`, ErrDecode},
		{"object without items", http.StatusOK, `{"jobs":[]}`, ErrDecode},
		{"null items", http.StatusOK, `{"items":null}`, ErrDecode},
		{"empty body", http.StatusOK, ``, ErrDecode},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			list, err := newListServer(t, tt.status, tt.body).LoadJobs(context.Background())
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, list)
		})
	}
}

func TestLoadJobsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := endpoint.Resolve(srv.URL)
	srv.Close()

	_, err := NewLister(base, nil, nil).LoadJobs(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}
