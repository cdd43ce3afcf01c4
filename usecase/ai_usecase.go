package usecase

import (
	"context"
	"errors"

	"omnipost/domain/dto"
	"omnipost/infrastructure/ai"
)

type IAIUsecase interface {
	Caption(ctx context.Context, req dto.CaptionRequest) (*dto.GeneratedText, error)
	Script(ctx context.Context, req dto.ScriptRequest) (*dto.GeneratedText, error)
	Hashtags(ctx context.Context, req dto.HashtagRequest) (*dto.GeneratedList, error)
	CampaignIdeas(ctx context.Context, req dto.CampaignIdeaRequest) (*dto.GeneratedList, error)
}

type AIUsecase struct {
	generator ai.IGenerator
}

func NewAIUsecase(generator ai.IGenerator) IAIUsecase {
	return &AIUsecase{generator: generator}
}

func (u *AIUsecase) Caption(ctx context.Context, req dto.CaptionRequest) (*dto.GeneratedText, error) {
	if req.Topic == "" {
		return nil, errors.New("topic is required")
	}
	text, err := u.generator.GenerateCaption(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedText{Text: text}, nil
}

func (u *AIUsecase) Script(ctx context.Context, req dto.ScriptRequest) (*dto.GeneratedText, error) {
	if req.Topic == "" {
		return nil, errors.New("topic is required")
	}
	text, err := u.generator.GenerateScript(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedText{Text: text}, nil
}

func (u *AIUsecase) Hashtags(ctx context.Context, req dto.HashtagRequest) (*dto.GeneratedList, error) {
	if req.Caption == "" {
		return nil, errors.New("caption is required")
	}
	items, err := u.generator.GenerateHashtags(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedList{Items: items}, nil
}

func (u *AIUsecase) CampaignIdeas(ctx context.Context, req dto.CampaignIdeaRequest) (*dto.GeneratedList, error) {
	if req.Brief == "" {
		return nil, errors.New("brief is required")
	}
	items, err := u.generator.GenerateCampaignIdeas(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedList{Items: items}, nil
}
