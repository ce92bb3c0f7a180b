package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/bnema/trajectory-cli/internal/ports"
)

type gatedResponse struct {
	result domain.PredictionResult
	err    error
}

// gatedClient holds every Predict call until the test releases it.
type gatedClient struct {
	mu    sync.Mutex
	gates map[domain.SessionID]*gate
}

type gate struct {
	arrived  chan domain.PredictionRequest
	response chan gatedResponse
}

func newGatedClient() *gatedClient {
	return &gatedClient{gates: map[domain.SessionID]*gate{}}
}

func (c *gatedClient) gateFor(id domain.SessionID) *gate {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.gates[id]
	if !ok {
		g = &gate{
			arrived:  make(chan domain.PredictionRequest, 1),
			response: make(chan gatedResponse, 1),
		}
		c.gates[id] = g
	}
	return g
}

func (c *gatedClient) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	g := c.gateFor(req.SessionID)
	g.arrived <- req

	select {
	case resp := <-g.response:
		return resp.result, resp.err
	case <-ctx.Done():
		return domain.PredictionResult{}, ctx.Err()
	}
}

func (c *gatedClient) request(t *testing.T, id domain.SessionID) domain.PredictionRequest {
	t.Helper()

	g := c.gateFor(id)
	select {
	case req := <-g.arrived:
		g.arrived <- req
		return req
	case <-time.After(completionTimeout):
		t.Fatalf("no request arrived for session %d", id)
		return domain.PredictionRequest{}
	}
}

func (c *gatedClient) release(id domain.SessionID, result domain.PredictionResult, err error) {
	c.gateFor(id).response <- gatedResponse{result: result, err: err}
}

var _ ports.PredictionClient = (*gatedClient)(nil)

type recordingMetrics struct {
	mu       sync.Mutex
	started  int
	outcomes []string
}

func (m *recordingMetrics) RequestStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *recordingMetrics) RequestFinished(outcome ports.RequestOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, string(outcome))
}

// steppingClock returns its times in order and then repeats the last one.
type steppingClock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return now
}
