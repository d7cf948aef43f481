package handlers

import (
	"context"

	dashboardUsecases "hotelops/internal/application/dashboard/usecases"
	"hotelops/internal/application/envelope"
)

type getSummaryUseCase interface {
	Execute(ctx context.Context) (*dashboardUsecases.SummaryResponse, error)
}

type queryRunner interface {
	Run(ctx context.Context, q string) *envelope.Envelope
}
