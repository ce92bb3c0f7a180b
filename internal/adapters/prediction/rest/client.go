package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/bnema/trajectory-cli/internal/ports"
)

const (
	predictPath      = "/predict"
	maxResponseBytes = 1 << 20
	userAgent        = "trj/predict"
	requestIDHeader  = "X-Request-ID"
)

var (
	ErrMalformedResponse = errors.New("malformed prediction response")
	ErrUnexpectedStatus  = errors.New("unexpected prediction status")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.PredictionClient = (*Client)(nil)

// NewClient returns a client for the service at baseURL. Timeouts belong to
// httpClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

type responsePayload struct {
	Predictions *[]predictionPayload `json:"predictions"`
	Reasoning   *[]reasonPayload     `json:"reasoning"`
}

type predictionPayload struct {
	Career     string   `json:"career"`
	Confidence *float64 `json:"confidence"`
}

type reasonPayload struct {
	Feature string   `json:"feature"`
	Impact  *float64 `json:"impact"`
}

func (c *Client) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	body, err := json.Marshal(req.Traits)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("encode traits: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)
	if req.ID != "" {
		request.Header.Set(requestIDHeader, req.ID)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return domain.PredictionResult{}, fmt.Errorf("%w: status %d: %s", ErrUnexpectedStatus, response.StatusCode, strings.TrimSpace(string(raw)))
	}

	return decodeResult(raw)
}

func decodeResult(raw []byte) (domain.PredictionResult, error) {
	var payload responsePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.PredictionResult{}, fmt.Errorf("%w: decode payload: %w", ErrMalformedResponse, err)
	}
	if payload.Predictions == nil {
		return domain.PredictionResult{}, fmt.Errorf("%w: missing predictions", ErrMalformedResponse)
	}
	if payload.Reasoning == nil {
		return domain.PredictionResult{}, fmt.Errorf("%w: missing reasoning", ErrMalformedResponse)
	}

	result := domain.PredictionResult{
		Predictions: make([]domain.Prediction, 0, len(*payload.Predictions)),
		Reasoning:   make([]domain.Reason, 0, len(*payload.Reasoning)),
	}

	for i, p := range *payload.Predictions {
		if strings.TrimSpace(p.Career) == "" {
			return domain.PredictionResult{}, fmt.Errorf("%w: prediction %d has no career", ErrMalformedResponse, i)
		}
		if p.Confidence == nil {
			return domain.PredictionResult{}, fmt.Errorf("%w: prediction %d has no confidence", ErrMalformedResponse, i)
		}
		result.Predictions = append(result.Predictions, domain.Prediction{Career: p.Career, Confidence: *p.Confidence})
	}

	for i, r := range *payload.Reasoning {
		if strings.TrimSpace(r.Feature) == "" {
			return domain.PredictionResult{}, fmt.Errorf("%w: reason %d has no feature", ErrMalformedResponse, i)
		}
		if r.Impact == nil {
			return domain.PredictionResult{}, fmt.Errorf("%w: reason %d has no impact", ErrMalformedResponse, i)
		}
		result.Reasoning = append(result.Reasoning, domain.Reason{Feature: r.Feature, Impact: *r.Impact})
	}

	return result, nil
}
