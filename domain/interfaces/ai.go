package interfaces

import (
	"context"

	"account_connector/domain/entities"
)

// ContentGenerator sends a prompt and an inline image to a generative model
type ContentGenerator interface {
	// GenerateContent returns the textual payload of the model response
	GenerateContent(ctx context.Context, prompt string, image *entities.InlineImage) (string, error)
}
