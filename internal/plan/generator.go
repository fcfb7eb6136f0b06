package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"fitcoach/internal/llm"
	"fitcoach/internal/profile"
)

// PlanCacheTTL bounds same-day reuse of a generated plan.
const PlanCacheTTL = 12 * time.Hour

// DefaultKnownExercises is the standard whitelist generated names are
// matched against.
var DefaultKnownExercises = []string{
	"Walking", "Running", "Cycling", "Swimming", "Yoga",
	"Bodyweight circuit", "Stretching", "HIIT", "Strength training",
}

// Request describes one plan generation.
type Request struct {
	UserID         string
	Date           string // defaults to today
	IntakeCalories float64
	Profile        profile.Profile
	KnownExercises []string // defaults to DefaultKnownExercises
	Exclude        []string
	ForceIntensity Intensity // overrides the intake policy when set
	UseCache       bool
}

// Generator produces normalized exercise plans through the completion
// service. Identical concurrent requests for one cache key are coalesced so
// only a single upstream call runs.
type Generator struct {
	llm     llm.Client
	history *HistoryProvider
	cache   *TTLCache[string]
	group   singleflight.Group
	logger  *zap.Logger
}

// NewGenerator wires a generator.
func NewGenerator(client llm.Client, history *HistoryProvider, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		llm:     client,
		history: history,
		cache:   NewTTLCache[string](PlanCacheTTL),
		logger:  logger,
	}
}

// Generate returns a plan that always satisfies the domain bounds. It never
// returns an error: any upstream or parse failure degrades to the fixed
// fallback plan.
func (g *Generator) Generate(ctx context.Context, req Request) *Plan {
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}
	if len(req.KnownExercises) == 0 {
		req.KnownExercises = DefaultKnownExercises
	}

	key := requestKey(req)
	if req.UseCache {
		if cached, ok := g.cache.Get(key); ok {
			if p := decodePlan(cached); p != nil {
				return p
			}
		}
	}

	// The flight returns serialized JSON so every coalesced caller decodes
	// its own copy instead of sharing one mutable plan.
	result, _, _ := g.group.Do(key, func() (any, error) {
		data, err := json.Marshal(g.generate(ctx, req, key))
		if err != nil {
			return "", nil
		}
		return string(data), nil
	})
	if data, ok := result.(string); ok {
		if p := decodePlan(data); p != nil {
			return p
		}
	}
	return Fallback()
}

func (g *Generator) generate(ctx context.Context, req Request, key string) *Plan {
	raw, err := g.llm.Complete(ctx, systemPrompt, g.buildPrompt(ctx, req))
	if err != nil {
		g.logger.Warn("plan generation failed, serving fallback",
			zap.String("user_id", req.UserID), zap.Error(err))
		return g.finish(Fallback(), req, key)
	}

	p, ok := Normalize(raw, req.KnownExercises)
	if !ok {
		g.logger.Warn("plan output unrecoverable, serving fallback",
			zap.String("user_id", req.UserID))
		return g.finish(Fallback(), req, key)
	}
	return g.finish(p, req, key)
}

// finish applies the authoritative constraint pass and stores the result.
func (g *Generator) finish(p *Plan, req Request, key string) *Plan {
	tdee := req.Profile.TDEE()
	percent := 0.0
	if tdee > 0 {
		percent = req.IntakeCalories / tdee * 100
	}
	ApplyIntakePolicy(p, percent)
	if req.ForceIntensity != "" {
		p.Intensity = req.ForceIntensity
	}
	p.TotalBurnEstimate = ClampBurn(p.TotalBurnEstimate)
	p.Exercises = dropExcluded(p.Exercises, req.Exclude)
	if len(p.Exercises) > MaxExercises {
		p.Exercises = p.Exercises[:MaxExercises]
	}

	if req.UseCache {
		if data, err := json.Marshal(p); err == nil {
			g.cache.Set(key, string(data))
		}
	}
	return p
}

const systemPrompt = "You are a fitness coach. Reply with a single JSON object only, " +
	`matching {"summary":"...","intensity":"light|moderate|intense",` +
	`"exercises":[{"name":"...","duration":"...","reason":"..."}],` +
	`"totalBurnEstimate":number,"advice":"..."}. At most 3 exercises.`

func (g *Generator) buildPrompt(ctx context.Context, req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create today's exercise plan (%s).\n", req.Date)
	fmt.Fprintf(&b, "User: %s\n", req.Profile.PromptLine())
	fmt.Fprintf(&b, "Calories eaten so far today: %.0f\n", req.IntakeCalories)
	if len(req.Exclude) > 0 {
		fmt.Fprintf(&b, "Do not include: %s\n", strings.Join(req.Exclude, ", "))
	}
	fmt.Fprintf(&b, "Pick exercises from: %s\n", strings.Join(req.KnownExercises, ", "))
	if g.history != nil {
		if hist := g.history.Context(ctx, req.UserID); hist != "" {
			b.WriteString(hist)
		}
	}
	return b.String()
}

// requestKey composes day, numeric intake, truncated profile fingerprint
// and the constraint set. Constraints are part of the key so a request
// carrying exclusions or a forced intensity never coalesces with, or reads
// the cache of, an unconstrained one.
func requestKey(req Request) string {
	fp := req.Profile.Fingerprint()
	if len(fp) > 8 {
		fp = fp[:8]
	}
	exclude := make([]string, 0, len(req.Exclude))
	for _, term := range req.Exclude {
		exclude = append(exclude, strings.ToLower(term))
	}
	sort.Strings(exclude)
	return fmt.Sprintf("%s|%.0f|%s|%s|%s",
		req.Date, req.IntakeCalories, fp, strings.Join(exclude, ","), req.ForceIntensity)
}

// dropExcluded removes exercises whose name mentions an excluded term.
// The prompt already asks the model to avoid them; this pass makes the
// exclusion authoritative.
func dropExcluded(exercises []Exercise, exclude []string) []Exercise {
	if len(exclude) == 0 {
		return exercises
	}
	kept := exercises[:0]
	for _, ex := range exercises {
		lower := strings.ToLower(ex.Name)
		banned := false
		for _, term := range exclude {
			if strings.Contains(lower, strings.ToLower(term)) {
				banned = true
				break
			}
		}
		if !banned {
			kept = append(kept, ex)
		}
	}
	return kept
}

func decodePlan(data string) *Plan {
	var p Plan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil
	}
	return &p
}
