// Package jobs talks to the job endpoints of the API: it submits new jobs
// (POST /submit-job) and lists existing ones (GET /jobs).
//
// Jobs are owned by the backend. The client only observes snapshots and never
// interprets a job's status: it is an open string rendered verbatim.
package jobs
