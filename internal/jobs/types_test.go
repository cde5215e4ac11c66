package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpaqueKeepsValuesVerbatim(t *testing.T) {
	t.Parallel()

	var job Job
	raw := `{"id": 17, "job_type": "sampler", "status": "queued", "created_at": "2025-01-01T00:00:00Z", "provider": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &job))

	require.Equal(t, Opaque("17"), job.ID)
	require.Equal(t, "sampler", job.JobType.String())
	require.Equal(t, Opaque("queued"), job.Status)
	require.Equal(t, Opaque("2025-01-01T00:00:00Z"), job.CreatedAt)
	require.Empty(t, job.Provider)
}

func TestOpaqueRejectsBrokenString(t *testing.T) {
	t.Parallel()

	var o Opaque
	require.Error(t, o.UnmarshalJSON([]byte(`"unterminated`)))
}
