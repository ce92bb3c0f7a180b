package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func announceOnce(ctx context.Context, completion application.Completion) string {
	var buf bytes.Buffer
	sh := &shell{out: &lockedWriter{w: &buf}}

	done := make(chan application.Completion, 1)
	done <- completion
	close(done)

	sh.inflight.Add(1)
	sh.announce(ctx, completion.SessionID, done)
	return buf.String()
}

func TestAnnounceStaysSilentForDeletedSession(t *testing.T) {
	out := announceOnce(context.Background(), application.Completion{SessionID: 2, Discarded: true})
	assert.Empty(t, out)
}

func TestAnnounceReportsOutcome(t *testing.T) {
	ready := announceOnce(context.Background(), application.Completion{
		SessionID: 1,
		Result:    &domain.PredictionResult{Predictions: []domain.Prediction{{Career: "Engineer", Confidence: 82}}},
	})
	assert.Equal(t, "#1 prediction ready: Engineer (82.0%)\n", ready)

	empty := announceOnce(context.Background(), application.Completion{
		SessionID: 3,
		Result:    &domain.PredictionResult{},
	})
	assert.Equal(t, "#3 prediction ready: no careers returned\n", empty)

	failed := announceOnce(context.Background(), application.Completion{
		SessionID: 4,
		Err:       errors.New("prediction failed: status 502"),
	})
	assert.Equal(t, "#4: prediction failed: status 502\n", failed)
}

func TestAnnounceSkipsCancellationAfterQuit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := announceOnce(ctx, application.Completion{SessionID: 1, Err: context.Canceled})
	assert.Empty(t, out)
}
