package countdown

import (
	"context"

	"github.com/rankreel/rankreel/internal/models"
)

type UseCase interface {
	GenerateNarration(ctx context.Context, req *models.NarrationRequest) (*models.NarrationResult, error)
	CompileVideo(ctx context.Context, input *models.CompileInput) (*models.ProcessingResult, error)
}
