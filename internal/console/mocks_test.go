package console

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
)

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context, paths []string) probe.Result {
	args := m.Called(ctx, paths)
	return args.Get(0).(probe.Result)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, apiKey, jobType, payloadText string) jobs.Outcome {
	args := m.Called(ctx, apiKey, jobType, payloadText)
	return args.Get(0).(jobs.Outcome)
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) LoadJobs(ctx context.Context) ([]jobs.Job, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]jobs.Job)
	return list, args.Error(1)
}
