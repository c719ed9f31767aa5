package wrapper

import (
	"context"

	"ecotrack/internal/dto/gemini_v1beta_dto"
)

type geminiClient interface {
	GenerateContent(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error)
}
