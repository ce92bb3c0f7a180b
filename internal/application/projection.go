package application

import (
	"fmt"
	"math"

	"github.com/bnema/trajectory-cli/internal/domain"
)

// DefaultTopN is how many ranked careers are shown.
const DefaultTopN = 4

const (
	TierOptimal = "optimal"

	magnitudeScale = 20
	percentScale   = 10
	maxMagnitude   = 100
)

type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

type RankingRow struct {
	Rank       int     `json:"rank"`
	Tier       string  `json:"tier"`
	Career     string  `json:"career"`
	Confidence float64 `json:"confidence"`
}

type InfluenceRow struct {
	Feature   string    `json:"feature"`
	Impact    float64   `json:"impact"`
	Magnitude float64   `json:"magnitude"`
	Signed    string    `json:"signed"`
	Direction Direction `json:"direction"`
}

type Projection struct {
	Rankings   []RankingRow   `json:"rankings"`
	Influences []InfluenceRow `json:"influences"`
}

func (p Projection) Empty() bool {
	return len(p.Rankings) == 0 && len(p.Influences) == 0
}

// Project turns a raw result into display rows. It keeps the service's
// ranking order and only truncates it to topN.
func Project(result *domain.PredictionResult, topN int) Projection {
	projection := Projection{
		Rankings:   []RankingRow{},
		Influences: []InfluenceRow{},
	}
	if result == nil {
		return projection
	}

	limit := len(result.Predictions)
	if topN < limit {
		limit = topN
	}
	for i := 0; i < limit; i++ {
		p := result.Predictions[i]
		projection.Rankings = append(projection.Rankings, RankingRow{
			Rank:       i + 1,
			Tier:       rankTier(i),
			Career:     p.Career,
			Confidence: p.Confidence,
		})
	}

	for _, r := range result.Reasoning {
		projection.Influences = append(projection.Influences, projectInfluence(r))
	}

	return projection
}

func rankTier(index int) string {
	if index == 0 {
		return TierOptimal
	}
	return fmt.Sprintf("alt %d", index)
}

func projectInfluence(r domain.Reason) InfluenceRow {
	return InfluenceRow{
		Feature:   r.Feature,
		Impact:    r.Impact,
		Magnitude: math.Min(maxMagnitude, math.Abs(r.Impact*magnitudeScale)),
		Signed:    signedPercent(r.Impact),
		Direction: directionOf(r.Impact),
	}
}

func signedPercent(impact float64) string {
	sign := ""
	if impact > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, impact*percentScale)
}

func directionOf(impact float64) Direction {
	switch {
	case impact > 0:
		return DirectionPositive
	case impact < 0:
		return DirectionNegative
	default:
		return DirectionNeutral
	}
}
