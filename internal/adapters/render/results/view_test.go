package results

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineerSession(now time.Time) domain.Session {
	traits := domain.DefaultTraitVector()
	traits.LikesCoding = 1
	traits.Teamwork = 80

	return domain.Session{
		ID:     1,
		Name:   "Engineer",
		Active: true,
		Traits: traits,
		Results: &domain.PredictionResult{
			Predictions: []domain.Prediction{
				{Career: "Engineer", Confidence: 82},
				{Career: "Data Science", Confidence: 11.5},
			},
			Reasoning: []domain.Reason{
				{Feature: "math_score", Impact: 2.3},
				{Feature: "creativity", Impact: -1.25},
			},
		},
		ResultsAt: now.Add(-3 * time.Minute),
	}
}

func TestRenderSessionWithResults(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	session := engineerSession(now)

	output, err := RenderSession(SessionView{
		Session:    session,
		Projection: application.Project(session.Results, application.DefaultTopN),
		Now:        now,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Engineer (#1) [active]")
	assert.Contains(t, output, "Coding Interest")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "(Team-Oriented)")
	assert.Contains(t, output, "(Fluid)")
	assert.Contains(t, output, "updated 3 minutes ago")
	assert.Contains(t, output, "optimal")
	assert.Contains(t, output, "alt 1")
	assert.Contains(t, output, " 82.0%")
	assert.Contains(t, output, "+23.0%")
	assert.Contains(t, output, "-12.5%")
	assert.NotContains(t, output, "pending")
}

func TestRenderSessionWithoutResults(t *testing.T) {
	output, err := RenderSession(SessionView{
		Session: domain.Session{ID: 2, Name: "Consultation 2", Traits: domain.DefaultTraitVector()},
		Pending: true,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Consultation 2 (#2)")
	assert.NotContains(t, output, "[active]")
	assert.Contains(t, output, "prediction pending...")
	assert.Contains(t, output, "No prediction yet.")
	assert.NotContains(t, output, "updated")
}

func TestRenderSessionWithEmptyResult(t *testing.T) {
	session := domain.Session{
		ID:      3,
		Name:    "Consultation 3",
		Traits:  domain.DefaultTraitVector(),
		Results: &domain.PredictionResult{Predictions: []domain.Prediction{}, Reasoning: []domain.Reason{}},
	}

	output, err := RenderSession(SessionView{Session: session, Projection: application.Project(session.Results, application.DefaultTopN)})

	require.NoError(t, err)
	assert.Contains(t, output, "No careers returned.")
	assert.Contains(t, output, "No reasoning returned.")
}

func TestRenderSessionList(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	output, err := RenderSessionList([]SessionRow{
		{Session: engineerSession(now)},
		{Session: domain.Session{ID: 4, Name: "Consultation 4"}, Pending: true},
		{Session: domain.Session{ID: 5, Name: "Consultation 5"}},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 3")
	assert.Contains(t, output, "* #1")
	assert.Contains(t, output, "pending")
	assert.Contains(t, output, "no results")

	lines := strings.Split(output, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "Engineer")
}

func TestRenderEmptySessionList(t *testing.T) {
	output, err := RenderSessionList(nil)

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0")
	assert.Contains(t, output, "No sessions.")
}

func TestRenderCatalogue(t *testing.T) {
	output, err := RenderCatalogue(domain.TraitSpecs())

	require.NoError(t, err)
	for _, spec := range domain.TraitSpecs() {
		assert.Contains(t, output, string(spec.Name))
	}
	assert.Contains(t, output, "30-100")
	assert.Contains(t, output, "default no")
	assert.Contains(t, output, "default 50")
}

func TestProgressBarIsClamped(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "["+strings.Repeat("=", 4)+"]", renderProgressBar(250, 4, s))
	assert.Equal(t, "["+strings.Repeat("-", 4)+"]", renderProgressBar(-3, 4, s))
	assert.Equal(t, "[==--]", renderProgressBar(50, 4, s))
	assert.Empty(t, renderProgressBar(50, 0, s))
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, formatAge(time.Time{}, now))
	assert.Empty(t, formatAge(now, time.Time{}))
	assert.Equal(t, "just now", formatAge(now.Add(-10*time.Second), now))
	assert.Equal(t, "1 minute ago", formatAge(now.Add(-time.Minute), now))
	assert.Equal(t, "2 hours ago", formatAge(now.Add(-2*time.Hour), now))
	assert.Equal(t, "at 09:00 on 28 Feb", formatAge(now.Add(-49*time.Hour), now))
}
