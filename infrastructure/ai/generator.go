package ai

import (
	"context"

	"omnipost/domain/dto"
)

// IGenerator is the boundary to the text generation service. Prompt content
// and model behavior are opaque; only the request/response contract matters.
type IGenerator interface {
	GenerateCaption(ctx context.Context, req dto.CaptionRequest) (string, error)
	GenerateScript(ctx context.Context, req dto.ScriptRequest) (string, error)
	GenerateHashtags(ctx context.Context, req dto.HashtagRequest) ([]string, error)
	GenerateCampaignIdeas(ctx context.Context, req dto.CampaignIdeaRequest) ([]string, error)
}
