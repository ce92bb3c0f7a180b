package ports

import (
	"context"

	"github.com/bnema/trajectory-cli/internal/domain"
)

// PredictionClient submits one trait vector to the prediction service.
// Implementations do not retry.
type PredictionClient interface {
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error)
}
