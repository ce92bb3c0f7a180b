package domain

import (
	"strings"
	"time"
)

type SessionID int64

type Session struct {
	ID        SessionID
	Name      string
	Active    bool
	Traits    TraitVector
	Results   *PredictionResult
	ResultsAt time.Time
}

func (s Session) HasResults() bool {
	return s.Results != nil
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	s.Results = s.Results.Clone()
	return s
}

type Prediction struct {
	Career     string  `json:"career"`
	Confidence float64 `json:"confidence"`
}

type Reason struct {
	Feature string  `json:"feature"`
	Impact  float64 `json:"impact"`
}

// PredictionResult is the service response. Predictions arrive ordered by
// descending confidence and are kept in that order.
type PredictionResult struct {
	Predictions []Prediction `json:"predictions"`
	Reasoning   []Reason     `json:"reasoning"`
}

func (r *PredictionResult) Clone() *PredictionResult {
	if r == nil {
		return nil
	}

	return &PredictionResult{
		Predictions: append([]Prediction(nil), r.Predictions...),
		Reasoning:   append([]Reason(nil), r.Reasoning...),
	}
}

// TopCareer returns the highest ranked label, if any.
func (r *PredictionResult) TopCareer() (string, bool) {
	if r == nil || len(r.Predictions) == 0 {
		return "", false
	}

	career := strings.TrimSpace(r.Predictions[0].Career)
	if career == "" {
		return "", false
	}

	return career, true
}

type PredictionRequest struct {
	ID        string
	SessionID SessionID
	Traits    TraitVector
}
