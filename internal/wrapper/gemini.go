package wrapper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecotrack/internal/dto/gemini_v1beta_dto"
	"ecotrack/internal/metrics"
	"ecotrack/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	serviceName   = "gemini"
	operationName = "generateContent"
)

var (
	ErrBlocked     = errors.New("prompt was blocked")
	ErrBadFinish   = errors.New("candidate finished abnormally")
	ErrNilResponse = errors.New("empty response")
)

// finish reasons that leave a candidate without usable text
var badFinishReasons = map[string]struct{}{
	"SAFETY":     {},
	"RECITATION": {},
	"LANGUAGE":   {},
}

// Service text-completion capability on top of Gemini
type Service struct {
	geminiClient geminiClient
	timeout      time.Duration
}

// New returns the text-completion service. A zero timeout leaves the call unbounded.
func New(geminiClient geminiClient,
	timeout time.Duration,
) *Service {
	return &Service{
		geminiClient: geminiClient,
		timeout:      timeout,
	}
}

// Generate sends prompt as a single user turn and returns the text of the first candidate
func (s *Service) Generate(ctx context.Context, prompt string) (text string, err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx, span := tracing.StartSpan(ctx, serviceName+"."+operationName)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamRequest(serviceName, operationName, time.Since(start), err == nil)
		tracing.EndSpan(span, err)
	}()

	response, err := s.geminiClient.GenerateContent(ctx, toDto(prompt))
	if err != nil {
		return "", err
	}

	return toText(response)
}

func toDto(prompt string) gemini_v1beta_dto.GenerateContentRequest {
	return gemini_v1beta_dto.GenerateContentRequest{
		Contents: []gemini_v1beta_dto.Content{
			{
				Role:  "user",
				Parts: []gemini_v1beta_dto.Part{{Text: prompt}},
			},
		},
	}
}

func toText(response *gemini_v1beta_dto.GenerateContentResponse) (string, error) {
	if response == nil {
		return "", ErrNilResponse
	}

	if len(response.Candidates) == 0 {
		if response.PromptFeedback != nil {
			if response.PromptFeedback.BlockReason == "" {
				return "", ErrBlocked
			}
			return "", fmt.Errorf("%w: %s", ErrBlocked, response.PromptFeedback.BlockReason)
		}
		return "", nil
	}

	candidate := response.Candidates[0]
	if _, bad := badFinishReasons[candidate.FinishReason]; bad {
		return "", fmt.Errorf("%w: %s", ErrBadFinish, candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
