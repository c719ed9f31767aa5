package wrapper

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ecotrack/internal/dto/gemini_v1beta_dto"
	"ecotrack/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// geminiClientMock implements the geminiClient interface for testing.
type geminiClientMock struct {
	generateFunc func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error)
}

func (m *geminiClientMock) GenerateContent(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
	return m.generateFunc(ctx, request)
}

func textResponse(finishReason string, texts ...string) *gemini_v1beta_dto.GenerateContentResponse {
	parts := make([]gemini_v1beta_dto.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, gemini_v1beta_dto.Part{Text: text})
	}
	return &gemini_v1beta_dto.GenerateContentResponse{
		Candidates: []gemini_v1beta_dto.Candidate{
			{
				Content:      gemini_v1beta_dto.Content{Role: "model", Parts: parts},
				FinishReason: finishReason,
			},
		},
	}
}

func TestService_Generate(t *testing.T) {
	testCases := []struct {
		name          string
		fetchResponse *gemini_v1beta_dto.GenerateContentResponse
		fetchError    error
		expectedText  string
		expectedError string
	}{
		{
			name:          "Successful response",
			fetchResponse: textResponse("STOP", "Use public transit."),
			expectedText:  "Use public transit.",
		},
		{
			name:          "Parts are concatenated",
			fetchResponse: textResponse("STOP", "Walk more. ", "Fly less."),
			expectedText:  "Walk more. Fly less.",
		},
		{
			name:          "Client error",
			fetchError:    errors.New("fetch error"),
			expectedError: "fetch error",
		},
		{
			name:          "Safety finish",
			fetchResponse: textResponse("SAFETY", "partial"),
			expectedError: "candidate finished abnormally: SAFETY",
		},
		{
			name: "Blocked prompt",
			fetchResponse: &gemini_v1beta_dto.GenerateContentResponse{
				PromptFeedback: &gemini_v1beta_dto.PromptFeedback{BlockReason: "OTHER"},
			},
			expectedError: "prompt was blocked: OTHER",
		},
		{
			name: "Feedback without block reason",
			fetchResponse: &gemini_v1beta_dto.GenerateContentResponse{
				PromptFeedback: &gemini_v1beta_dto.PromptFeedback{},
			},
			expectedError: "prompt was blocked",
		},
		{
			name:          "No candidates and no feedback",
			fetchResponse: &gemini_v1beta_dto.GenerateContentResponse{},
			expectedText:  "",
		},
		{
			name:          "Nil response",
			expectedError: "empty response",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := &geminiClientMock{
				generateFunc: func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
					return tc.fetchResponse, tc.fetchError
				},
			}
			svc := New(mockClient, 0)

			text, err := svc.Generate(context.Background(), "prompt")
			if tc.expectedError != "" {
				require.EqualError(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedText, text)
		})
	}
}

func TestService_GenerateTimeout(t *testing.T) {
	mockClient := &geminiClientMock{
		generateFunc: func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
			deadline, ok := ctx.Deadline()
			if !ok {
				return nil, errors.New("no deadline")
			}
			if time.Until(deadline) > time.Second {
				return nil, errors.New("deadline too far")
			}
			return textResponse("STOP", "ok"), nil
		},
	}

	text, err := New(mockClient, 100*time.Millisecond).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "ok", text)
}

func TestService_GenerateNoTimeout(t *testing.T) {
	mockClient := &geminiClientMock{
		generateFunc: func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
			if _, ok := ctx.Deadline(); ok {
				return nil, errors.New("unexpected deadline")
			}
			return textResponse("STOP", "ok"), nil
		},
	}

	_, err := New(mockClient, 0).Generate(context.Background(), "prompt")
	require.NoError(t, err)
}

func TestService_GenerateRecordsMetrics(t *testing.T) {
	metrics.UpstreamRequestsTotal.Reset()

	ok := New(&geminiClientMock{
		generateFunc: func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
			return textResponse("STOP", "ok"), nil
		},
	}, 0)
	failing := New(&geminiClientMock{
		generateFunc: func(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
			return nil, errors.New("quota")
		},
	}, 0)

	_, _ = ok.Generate(context.Background(), "p")
	_, _ = failing.Generate(context.Background(), "p")

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues(serviceName, operationName, "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues(serviceName, operationName, "error")))
}

func TestToDto(t *testing.T) {
	expected := gemini_v1beta_dto.GenerateContentRequest{
		Contents: []gemini_v1beta_dto.Content{
			{Role: "user", Parts: []gemini_v1beta_dto.Part{{Text: "hello"}}},
		},
	}

	result := toDto("hello")
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}
