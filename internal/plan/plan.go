// Package plan turns unreliable generated text into a bounded,
// schema-conformant exercise plan. The pipeline repairs malformed JSON,
// maps whatever parsed onto the fixed schema, then clamps every value to
// domain bounds; on any failure it degrades to a fixed fallback plan with
// the same shape, never to an error the user sees.
package plan

// Intensity is the closed set of plan intensities.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

// Burn-estimate domain bounds.
const (
	MinBurnEstimate     = 250
	MaxBurnEstimate     = 600
	DefaultBurnEstimate = 350
)

// MaxExercises bounds the exercise list.
const MaxExercises = 3

// DefaultDurationMinutes is used when a generated duration has no number.
const DefaultDurationMinutes = 20

// Exercise is one entry of a generated plan.
type Exercise struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Reason   string `json:"reason"`
}

// Plan is the normalized target schema for generated exercise plans.
type Plan struct {
	Summary           string     `json:"summary"`
	Intensity         Intensity  `json:"intensity"`
	Exercises         []Exercise `json:"exercises"`
	TotalBurnEstimate int        `json:"totalBurnEstimate"`
	Advice            string     `json:"advice"`
}

// Fallback returns the fixed plan served when generation or parsing fails.
// It uses the same schema as the success path so callers never special-case
// it, and it satisfies every domain bound.
func Fallback() *Plan {
	return &Plan{
		Summary:   "A balanced session to keep you moving today.",
		Intensity: IntensityModerate,
		Exercises: []Exercise{
			{Name: "Walking", Duration: "20 minutes", Reason: "Low impact and easy to fit in."},
			{Name: "Stretching", Duration: "10 minutes", Reason: "Keeps you loose and helps recovery."},
		},
		TotalBurnEstimate: DefaultBurnEstimate,
		Advice:            "Listen to your body and drink water throughout.",
	}
}
