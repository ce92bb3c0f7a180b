package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTraitVectorBaseline(t *testing.T) {
	v := DefaultTraitVector()

	for _, spec := range TraitSpecs() {
		got, err := v.Get(spec.Name)
		require.NoError(t, err)
		if spec.Kind == TraitKindFlag {
			assert.Equal(t, 0, got, spec.Name)
			continue
		}
		assert.Equal(t, 50, got, spec.Name)
	}
	require.NoError(t, v.Validate())
}

func TestDefaultTraitVectorIsReproducible(t *testing.T) {
	first, err := json.Marshal(DefaultTraitVector())
	require.NoError(t, err)
	second, err := json.Marshal(DefaultTraitVector())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.JSONEq(t, `{
		"likes_coding": 0, "likes_design": 0, "math_score": 50, "social_skill": 50,
		"analytical_thinking": 50, "creativity": 50, "risk_tolerance": 50,
		"leadership": 50, "public_speaking": 50, "teamwork": 50, "structure": 50
	}`, string(first))
}

func TestTraitVectorApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		update  TraitUpdate
		wantErr error
		check   func(t *testing.T, v TraitVector)
	}{
		{
			name:   "merges partial update",
			update: TraitUpdate{TraitMathScore: 91, TraitLikesCoding: 1},
			check: func(t *testing.T, v TraitVector) {
				assert.Equal(t, 91, v.MathScore)
				assert.Equal(t, 1, v.LikesCoding)
				assert.Equal(t, 50, v.Creativity)
			},
		},
		{
			name:    "unknown trait",
			update:  TraitUpdate{"charisma": 70},
			wantErr: ErrUnknownTrait,
		},
		{
			name:    "flag above one",
			update:  TraitUpdate{TraitLikesDesign: 2},
			wantErr: ErrTraitOutOfRange,
		},
		{
			name:    "scale below lower bound",
			update:  TraitUpdate{TraitLeadership: 29},
			wantErr: ErrTraitOutOfRange,
		},
		{
			name:    "one bad entry rejects the whole update",
			update:  TraitUpdate{TraitMathScore: 80, TraitTeamwork: 101},
			wantErr: ErrTraitOutOfRange,
		},
		{
			name:   "empty update is a no-op",
			update: TraitUpdate{},
			check: func(t *testing.T, v TraitVector) {
				assert.Equal(t, DefaultTraitVector(), v)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			base := DefaultTraitVector()
			got, err := base.Apply(tc.update)
			assert.Equal(t, DefaultTraitVector(), base)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			tc.check(t, got)
		})
	}
}

func TestTraitVectorValidateReportsEveryViolation(t *testing.T) {
	v := DefaultTraitVector()
	v.SocialSkill = 10
	v.Structure = -1

	err := v.Validate()
	require.ErrorIs(t, err, ErrTraitOutOfRange)
	assert.ErrorContains(t, err, "social_skill=10")
	assert.ErrorContains(t, err, "structure=-1")
}

func TestParseTraitValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trait   TraitName
		raw     string
		want    int
		wantErr error
	}{
		{name: "flag true", trait: TraitLikesCoding, raw: "true", want: 1},
		{name: "flag off", trait: TraitLikesDesign, raw: "off", want: 0},
		{name: "flag numeric", trait: TraitLikesCoding, raw: " 1 ", want: 1},
		{name: "flag garbage", trait: TraitLikesCoding, raw: "maybe", wantErr: ErrTraitOutOfRange},
		{name: "scale", trait: TraitCreativity, raw: "72", want: 72},
		{name: "scale out of range", trait: TraitCreativity, raw: "20", wantErr: ErrTraitOutOfRange},
		{name: "unknown", trait: "height", raw: "1", wantErr: ErrUnknownTrait},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTraitValue(tc.trait, tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTraitAssignment(t *testing.T) {
	name, value, err := ParseTraitAssignment("math_score=77")
	require.NoError(t, err)
	assert.Equal(t, TraitMathScore, name)
	assert.Equal(t, 77, value)

	_, _, err = ParseTraitAssignment("math_score")
	assert.ErrorContains(t, err, "want name=value")
}

func TestTraitUpdateNamesOrdering(t *testing.T) {
	update := TraitUpdate{TraitStructure: 1, "zeta": 1, TraitLikesCoding: 1, "alpha": 1}

	assert.Equal(t, []TraitName{TraitLikesCoding, TraitStructure, "alpha", "zeta"}, update.Names())
}

func TestTraitVectorAsUpdateRoundTrip(t *testing.T) {
	v := DefaultTraitVector()
	v.RiskTolerance = 88

	got, err := TraitVector{}.Apply(v.AsUpdate())
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestTraitVectorDescriptors(t *testing.T) {
	v := DefaultTraitVector()
	assert.Equal(t, "Independent", v.Descriptors()[TraitTeamwork])
	assert.Equal(t, "Fluid", v.Descriptors()[TraitStructure])

	v.Teamwork = 51
	v.Structure = 90
	assert.Equal(t, "Team-Oriented", v.Descriptors()[TraitTeamwork])
	assert.Equal(t, "Structured", v.Descriptors()[TraitStructure])
}

func TestPredictionResultCloneAndTopCareer(t *testing.T) {
	var empty *PredictionResult
	assert.Nil(t, empty.Clone())
	_, ok := empty.TopCareer()
	assert.False(t, ok)

	result := &PredictionResult{
		Predictions: []Prediction{{Career: " Engineer ", Confidence: 82}},
		Reasoning:   []Reason{{Feature: "math_score", Impact: 2.3}},
	}
	clone := result.Clone()
	clone.Predictions[0].Career = "Designer"

	top, ok := result.TopCareer()
	require.True(t, ok)
	assert.Equal(t, "Engineer", top)
}
