package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/bnema/trajectory-cli/internal/ports"
	"github.com/google/uuid"
)

type RequestState string

const (
	RequestStateIdle    RequestState = "idle"
	RequestStatePending RequestState = "pending"
)

// Completion reports how one submitted request ended. Discarded is set when
// the originating session was deleted before the response arrived.
type Completion struct {
	SessionID domain.SessionID
	RequestID string
	Result    *domain.PredictionResult
	Renamed   string
	Discarded bool
	Err       error
	Elapsed   time.Duration
}

type CoordinatorOption func(*RequestCoordinator)

func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *RequestCoordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRequestMetrics(metrics ports.RequestMetrics) CoordinatorOption {
	return func(c *RequestCoordinator) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

func WithRequestIDs(next func() string) CoordinatorOption {
	return func(c *RequestCoordinator) {
		if next != nil {
			c.newRequestID = next
		}
	}
}

func WithCoordinatorClock(clock ports.Clock) CoordinatorOption {
	return func(c *RequestCoordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// RequestCoordinator runs the submit-and-merge cycle against the prediction
// client. Each session is either idle or has exactly one request pending;
// results are written back by session id, never to "whichever is active".
type RequestCoordinator struct {
	store  *SessionStore
	client ports.PredictionClient

	logger       *slog.Logger
	metrics      ports.RequestMetrics
	clock        ports.Clock
	newRequestID func() string

	mu      sync.Mutex
	pending map[domain.SessionID]string
}

func NewRequestCoordinator(store *SessionStore, client ports.PredictionClient, opts ...CoordinatorOption) *RequestCoordinator {
	c := &RequestCoordinator{
		store:        store,
		client:       client,
		logger:       slog.New(slog.DiscardHandler),
		metrics:      ports.NopRequestMetrics{},
		clock:        ports.SystemClock{},
		newRequestID: func() string { return uuid.NewString() },
		pending:      map[domain.SessionID]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RequestCoordinator) State(id domain.SessionID) RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[id]; ok {
		return RequestStatePending
	}
	return RequestStateIdle
}

// PendingCount returns the number of requests still outstanding, including
// orphaned ones whose session has been deleted.
func (c *RequestCoordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

func (c *RequestCoordinator) SubmitActive(ctx context.Context) (domain.SessionID, <-chan Completion, error) {
	id, ok := c.store.ActiveID()
	if !ok {
		return 0, nil, domain.ErrNoActiveSession
	}

	done, err := c.Submit(ctx, id)
	if err != nil {
		return id, nil, err
	}
	return id, done, nil
}

// Submit snapshots the session's traits and starts a prediction without
// waiting for it. The returned channel yields exactly one Completion and is
// then closed. ctx governs the underlying client call.
func (c *RequestCoordinator) Submit(ctx context.Context, id domain.SessionID) (<-chan Completion, error) {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return nil, fmt.Errorf("submit session %d: %w", id, domain.ErrRequestInFlight)
	}

	traits, err := c.store.TraitSnapshot(id)
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("submit session %d: %w", id, err)
	}

	requestID := c.newRequestID()
	c.pending[id] = requestID
	c.mu.Unlock()

	req := domain.PredictionRequest{ID: requestID, SessionID: id, Traits: traits}
	done := make(chan Completion, 1)

	started := c.clock.Now()
	c.metrics.RequestStarted()
	c.logger.Debug("prediction submitted", "session_id", id, "request_id", requestID)

	go c.run(ctx, req, started, done)

	return done, nil
}

func (c *RequestCoordinator) run(ctx context.Context, req domain.PredictionRequest, started time.Time, done chan<- Completion) {
	defer close(done)

	result, err := c.client.Predict(ctx, req)

	// Merging and leaving Pending happen under c.mu, so State never reports
	// Pending for a session that already shows the new result.
	c.mu.Lock()
	completion := c.merge(req, result, err)
	delete(c.pending, req.SessionID)
	c.mu.Unlock()

	completion.Elapsed = c.clock.Now().Sub(started)
	c.metrics.RequestFinished(outcomeOf(completion), completion.Elapsed)

	done <- completion
}

func (c *RequestCoordinator) merge(req domain.PredictionRequest, result domain.PredictionResult, err error) Completion {
	completion := Completion{SessionID: req.SessionID, RequestID: req.ID}
	log := c.logger.With("session_id", req.SessionID, "request_id", req.ID)

	if err != nil {
		if _, lookupErr := c.store.Get(req.SessionID); errors.Is(lookupErr, domain.ErrSessionNotFound) {
			log.Debug("dropping failed prediction for deleted session", "error", err)
			completion.Discarded = true
			return completion
		}

		log.Warn("prediction failed", "error", err)
		completion.Err = fmt.Errorf("%w: %w", domain.ErrPredictionFailed, err)
		return completion
	}

	renamed, completeErr := c.store.CompleteRequest(req.SessionID, result)
	if completeErr != nil {
		log.Debug("dropping prediction for deleted session")
		completion.Discarded = true
		return completion
	}
	completion.Result = result.Clone()
	completion.Renamed = renamed

	log.Debug("prediction attached", "predictions", len(result.Predictions), "renamed", completion.Renamed)
	return completion
}

func outcomeOf(completion Completion) ports.RequestOutcome {
	switch {
	case completion.Discarded:
		return ports.RequestOutcomeDiscarded
	case completion.Err != nil:
		return ports.RequestOutcomeFailure
	default:
		return ports.RequestOutcomeSuccess
	}
}
