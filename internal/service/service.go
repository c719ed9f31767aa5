package service

import (
	"context"
	"errors"
	"fmt"

	"ecotrack/internal/dto/footprint_v1_dto"

	"github.com/rs/zerolog"
)

const promptTemplate = "Provide simple and effective ways to reduce a carbon footprint of %s kg CO2. Give concise, actionable advice."

// ErrAIRequestFailed any failure of the text-completion call
var ErrAIRequestFailed = errors.New("AI request failed")

type Service struct {
	generator generator
}

func New(generator generator) *Service {
	return &Service{
		generator: generator,
	}
}

// Recommend asks the generator for advice on reducing carbonFootprint kg of CO2.
// The value is rendered into the prompt as given. Upstream errors are logged and
// reported as ErrAIRequestFailed only.
func (s *Service) Recommend(ctx context.Context, carbonFootprint any) (string, error) {
	prompt := buildPrompt(carbonFootprint)

	recommendation, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Gemini API Error")
		return "", ErrAIRequestFailed
	}

	return recommendation, nil
}

func buildPrompt(carbonFootprint any) string {
	return fmt.Sprintf(promptTemplate, footprint_v1_dto.Stringify(carbonFootprint))
}
