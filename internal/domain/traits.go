package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type TraitName string

const (
	TraitLikesCoding        TraitName = "likes_coding"
	TraitLikesDesign        TraitName = "likes_design"
	TraitMathScore          TraitName = "math_score"
	TraitSocialSkill        TraitName = "social_skill"
	TraitAnalyticalThinking TraitName = "analytical_thinking"
	TraitCreativity         TraitName = "creativity"
	TraitRiskTolerance      TraitName = "risk_tolerance"
	TraitLeadership         TraitName = "leadership"
	TraitPublicSpeaking     TraitName = "public_speaking"
	TraitTeamwork           TraitName = "teamwork"
	TraitStructure          TraitName = "structure"
)

type TraitKind string

const (
	TraitKindFlag  TraitKind = "flag"
	TraitKindScale TraitKind = "scale"
)

// TraitSpec describes one attribute of the fixed trait set.
type TraitSpec struct {
	Name    TraitName
	Label   string
	Kind    TraitKind
	Min     int
	Max     int
	Default int
}

var traitSpecs = []TraitSpec{
	{Name: TraitLikesCoding, Label: "Coding Interest", Kind: TraitKindFlag, Min: 0, Max: 1, Default: 0},
	{Name: TraitLikesDesign, Label: "Design Affinity", Kind: TraitKindFlag, Min: 0, Max: 1, Default: 0},
	{Name: TraitMathScore, Label: "Math Score", Kind: TraitKindScale, Min: 0, Max: 100, Default: 50},
	{Name: TraitSocialSkill, Label: "Social Skill", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitAnalyticalThinking, Label: "Analytical", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitCreativity, Label: "Creativity", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitRiskTolerance, Label: "Risk Tolerance", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitLeadership, Label: "Leadership", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitPublicSpeaking, Label: "Public Speaking", Kind: TraitKindScale, Min: 30, Max: 100, Default: 50},
	{Name: TraitTeamwork, Label: "Collaboration Synergy", Kind: TraitKindScale, Min: 0, Max: 100, Default: 50},
	{Name: TraitStructure, Label: "Workspace Linearity", Kind: TraitKindScale, Min: 0, Max: 100, Default: 50},
}

// TraitSpecs returns the trait catalogue in wire order.
func TraitSpecs() []TraitSpec {
	return append([]TraitSpec(nil), traitSpecs...)
}

func LookupTrait(name TraitName) (TraitSpec, bool) {
	for _, spec := range traitSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return TraitSpec{}, false
}

// TraitVector is the full set of inputs submitted for one prediction. Field
// order and JSON names match the prediction service's request schema.
type TraitVector struct {
	LikesCoding        int `json:"likes_coding" validate:"min=0,max=1"`
	LikesDesign        int `json:"likes_design" validate:"min=0,max=1"`
	MathScore          int `json:"math_score" validate:"min=0,max=100"`
	SocialSkill        int `json:"social_skill" validate:"min=30,max=100"`
	AnalyticalThinking int `json:"analytical_thinking" validate:"min=30,max=100"`
	Creativity         int `json:"creativity" validate:"min=30,max=100"`
	RiskTolerance      int `json:"risk_tolerance" validate:"min=30,max=100"`
	Leadership         int `json:"leadership" validate:"min=30,max=100"`
	PublicSpeaking     int `json:"public_speaking" validate:"min=30,max=100"`
	Teamwork           int `json:"teamwork" validate:"min=0,max=100"`
	Structure          int `json:"structure" validate:"min=0,max=100"`
}

var traitValidate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	traitValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})
}

func DefaultTraitVector() TraitVector {
	var v TraitVector
	for _, spec := range traitSpecs {
		*v.field(spec.Name) = spec.Default
	}
	return v
}

func (v TraitVector) Get(name TraitName) (int, error) {
	p := v.field(name)
	if p == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
	}
	return *p, nil
}

// Validate checks every attribute against its bounds.
func (v TraitVector) Validate() error {
	err := traitValidate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		spec, _ := LookupTrait(TraitName(fe.Field()))
		problems = append(problems, fmt.Errorf("%w: %s=%v (allowed %d-%d)", ErrTraitOutOfRange, fe.Field(), fe.Value(), spec.Min, spec.Max))
	}
	return errors.Join(problems...)
}

// Apply returns a copy of v with update merged in. The receiver is never
// modified and nothing is applied when any entry is rejected.
func (v TraitVector) Apply(update TraitUpdate) (TraitVector, error) {
	next := v
	for _, name := range update.Names() {
		p := next.field(name)
		if p == nil {
			return v, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
		}
		*p = update[name]
	}

	if err := next.Validate(); err != nil {
		return v, err
	}

	return next, nil
}

// AsUpdate expresses the whole vector as an update touching every trait.
func (v TraitVector) AsUpdate() TraitUpdate {
	update := make(TraitUpdate, len(traitSpecs))
	for _, spec := range traitSpecs {
		update[spec.Name] = *v.field(spec.Name)
	}
	return update
}

// Descriptors returns the qualitative labels shown next to the two
// preference sliders.
func (v TraitVector) Descriptors() map[TraitName]string {
	teamwork := "Independent"
	if v.Teamwork > 50 {
		teamwork = "Team-Oriented"
	}
	structure := "Fluid"
	if v.Structure > 50 {
		structure = "Structured"
	}
	return map[TraitName]string{
		TraitTeamwork:  teamwork,
		TraitStructure: structure,
	}
}

func (v *TraitVector) field(name TraitName) *int {
	switch name {
	case TraitLikesCoding:
		return &v.LikesCoding
	case TraitLikesDesign:
		return &v.LikesDesign
	case TraitMathScore:
		return &v.MathScore
	case TraitSocialSkill:
		return &v.SocialSkill
	case TraitAnalyticalThinking:
		return &v.AnalyticalThinking
	case TraitCreativity:
		return &v.Creativity
	case TraitRiskTolerance:
		return &v.RiskTolerance
	case TraitLeadership:
		return &v.Leadership
	case TraitPublicSpeaking:
		return &v.PublicSpeaking
	case TraitTeamwork:
		return &v.Teamwork
	case TraitStructure:
		return &v.Structure
	default:
		return nil
	}
}

// TraitUpdate is a partial set of attribute values keyed by wire name.
type TraitUpdate map[TraitName]int

// Names returns the update's keys in catalogue order, unknown names last
// and sorted.
func (u TraitUpdate) Names() []TraitName {
	names := make([]TraitName, 0, len(u))
	for _, spec := range traitSpecs {
		if _, ok := u[spec.Name]; ok {
			names = append(names, spec.Name)
		}
	}

	unknown := make([]TraitName, 0)
	for name := range u {
		if _, ok := LookupTrait(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })

	return append(names, unknown...)
}

// ParseTraitValue converts user input for the named trait. Flags also accept
// the usual boolean spellings.
func ParseTraitValue(name TraitName, raw string) (int, error) {
	spec, ok := LookupTrait(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
	}

	value := strings.ToLower(strings.TrimSpace(raw))
	if spec.Kind == TraitKindFlag {
		switch value {
		case "1", "true", "yes", "on":
			return 1, nil
		case "0", "false", "no", "off":
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %s=%q (want 0/1 or true/false)", ErrTraitOutOfRange, name, raw)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if n < spec.Min || n > spec.Max {
		return 0, fmt.Errorf("%w: %s=%d (allowed %d-%d)", ErrTraitOutOfRange, name, n, spec.Min, spec.Max)
	}

	return n, nil
}

// ParseTraitAssignment parses "name=value".
func ParseTraitAssignment(raw string) (TraitName, int, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid trait assignment %q (want name=value)", raw)
	}

	name := TraitName(strings.TrimSpace(key))
	n, err := ParseTraitValue(name, value)
	if err != nil {
		return "", 0, err
	}

	return name, n, nil
}
