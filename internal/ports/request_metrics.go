package ports

import "time"

type RequestOutcome string

const (
	RequestOutcomeSuccess   RequestOutcome = "success"
	RequestOutcomeFailure   RequestOutcome = "failure"
	RequestOutcomeDiscarded RequestOutcome = "discarded"
)

type RequestMetrics interface {
	RequestStarted()
	RequestFinished(outcome RequestOutcome, elapsed time.Duration)
}

type NopRequestMetrics struct{}

func (NopRequestMetrics) RequestStarted() {}

func (NopRequestMetrics) RequestFinished(RequestOutcome, time.Duration) {}
