package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ecotrack/internal/dto/gemini_v1beta_dto"

	"github.com/rs/zerolog/log"
)

const apiKeyHeader = "x-goog-api-key"

type Client struct {
	APIURL string
	Model  string
	apiKey string
	client *http.Client
}

// NewClient returns a client of the Gemini generateContent api.
// A zero timeout means no timeout.
func NewClient(apiURL, model, apiKey string, timeout time.Duration) (*Client, error) {
	if apiURL == "" {
		return nil, errors.New("api url is empty")
	}
	if model == "" {
		return nil, errors.New("model is empty")
	}
	return &Client{
		APIURL: strings.TrimRight(apiURL, "/"),
		Model:  model,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) endpoint() string {
	return c.APIURL + "/models/" + url.PathEscape(c.Model) + ":generateContent"
}

func (c *Client) GenerateContent(ctx context.Context, request gemini_v1beta_dto.GenerateContentRequest) (*gemini_v1beta_dto.GenerateContentResponse, error) {
	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("err during marshaling of a request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("err during creating a request with context: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Msg("couldn't close a body")
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("err during reading of a response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr gemini_v1beta_dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("unexpected status code: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, errors.New("unexpected status code: " + resp.Status)
	}

	var response gemini_v1beta_dto.GenerateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("err during unmarshaling of a response: %w", err)
	}

	return &response, nil
}
