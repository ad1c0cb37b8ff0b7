package storage

import (
	"context"

	"overmind/internal/model"
)

// Store persists selector weights and session reports.
type Store interface {
	Init(ctx context.Context) error
	SaveWeights(ctx context.Context, record model.WeightRecord) error
	GetWeights(ctx context.Context, key model.WeightKey) (model.WeightRecord, bool, error)
	ListWeights(ctx context.Context) ([]model.WeightKey, error)
	DeleteWeights(ctx context.Context, key model.WeightKey) error
	SaveSessionReport(ctx context.Context, report model.SessionReport) error
	GetSessionReport(ctx context.Context, id string) (model.SessionReport, bool, error)
	ListSessionReports(ctx context.Context) ([]string, error)
}
