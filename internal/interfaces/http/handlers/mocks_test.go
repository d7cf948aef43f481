package handlers

import (
	"context"

	dashboardUsecases "hotelops/internal/application/dashboard/usecases"
	"hotelops/internal/application/envelope"
)

type mockGetSummaryUC struct {
	result *dashboardUsecases.SummaryResponse
	err    error
}

func (m *mockGetSummaryUC) Execute(ctx context.Context) (*dashboardUsecases.SummaryResponse, error) {
	return m.result, m.err
}

type mockQueryRunner struct {
	RunFunc func(ctx context.Context, q string) *envelope.Envelope
}

func (m *mockQueryRunner) Run(ctx context.Context, q string) *envelope.Envelope {
	return m.RunFunc(ctx, q)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}
