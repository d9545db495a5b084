package experiment

import (
	"math"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// strategy is the interchangeable statistics backend. Both implementations
// must degrade to neutral values instead of failing: a nil control or a
// too-small sample yields zero confidence, never an error.
type strategy interface {
	evaluate(variant, control *VariantInput) variantStats
}

// variantStats is what a strategy contributes to a VariantResult.
type variantStats struct {
	confidence   float64
	credible     *Interval
	expectedLoss *float64
	significant  bool
}

// Engine computes experiment verdicts from per-variant counts. It is pure
// and stateless; concurrent use needs no coordination.
type Engine struct {
	cfg   Config
	strat strategy
}

// NewEngine creates an engine using the strategy named in cfg. Unknown
// methods fall back to Bayesian.
func NewEngine(cfg Config) *Engine {
	var strat strategy
	switch cfg.Method {
	case MethodFrequentist:
		strat = frequentist{cfg: cfg}
	default:
		strat = bayesian{cfg: cfg}
	}
	return &Engine{cfg: cfg, strat: strat}
}

// ComputeResults evaluates a snapshot of variant counts. The only rejected
// input is an empty variant list; everything else, including the absence of
// a control, degrades gracefully in the output.
func (e *Engine) ComputeResults(variants []VariantInput, daysRunning int) (Results, error) {
	if len(variants) == 0 {
		return Results{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("experiment requires at least one variant")
	}

	control := findControl(variants)

	totalVisitors := 0
	totalConversions := 0
	results := make([]VariantResult, len(variants))

	for i, v := range variants {
		v := v
		totalVisitors += v.Visitors
		totalConversions += v.Conversions

		r := VariantResult{
			Key:            v.Key,
			IsControl:      v.IsControl,
			ConversionRate: safeRate(v.Conversions, v.Visitors),
		}

		if control != nil && !v.IsControl {
			r.Lift = liftVsControl(r.ConversionRate, safeRate(control.Conversions, control.Visitors))

			stats := e.strat.evaluate(&v, control)
			r.Confidence = stats.confidence
			r.CredibleInterval = stats.credible
			r.ExpectedLoss = stats.expectedLoss
			r.IsSignificant = stats.significant
		} else {
			// Control arms and control-less experiments only carry an
			// absolute rate (plus a posterior interval on the Bayesian path).
			stats := e.strat.evaluate(&v, nil)
			r.CredibleInterval = stats.credible
		}

		results[i] = r
	}

	hasWinner := markWinner(results)

	return Results{
		Variants:                    results,
		TotalVisitors:               totalVisitors,
		TotalConversions:            totalConversions,
		HasSignificantWinner:        hasWinner,
		RecommendedAction:           e.recommendAction(hasWinner, totalVisitors),
		DaysRunning:                 daysRunning,
		ProjectedDaysToSignificance: e.projectDays(totalVisitors, daysRunning),
	}, nil
}

// findControl returns the first variant marked control, or nil.
func findControl(variants []VariantInput) *VariantInput {
	for i := range variants {
		if variants[i].IsControl {
			return &variants[i]
		}
	}
	return nil
}

// markWinner flags the single significant positive-lift variant with the
// strictly greatest lift. A tie for the top lift means no strict winner.
func markWinner(results []VariantResult) bool {
	best := -1
	tied := false
	for i, r := range results {
		if !r.IsSignificant || r.Lift == nil || *r.Lift <= 0 {
			continue
		}
		switch {
		case best == -1 || *r.Lift > *results[best].Lift:
			best = i
			tied = false
		case *r.Lift == *results[best].Lift:
			tied = true
		}
	}
	if best == -1 || tied {
		return false
	}
	results[best].IsWinner = true
	return true
}

func (e *Engine) recommendAction(hasWinner bool, totalVisitors int) Action {
	switch {
	case hasWinner:
		return ActionStopWinner
	case e.cfg.TargetSampleSize > 0 && totalVisitors >= 2*e.cfg.TargetSampleSize:
		return ActionStopLoser
	case totalVisitors >= 100:
		return ActionContinue
	default:
		return ActionNeedsMoreData
	}
}

// projectDays linearly extrapolates how many more days of current traffic
// are needed to reach the target sample. Nil when there is nothing to
// extrapolate from.
func (e *Engine) projectDays(totalVisitors, daysRunning int) *int {
	if daysRunning <= 0 || totalVisitors == 0 {
		return nil
	}
	remaining := e.cfg.TargetSampleSize - totalVisitors
	if remaining < 0 {
		remaining = 0
	}
	dailyRate := float64(totalVisitors) / float64(daysRunning)
	days := int(math.Ceil(float64(remaining) / dailyRate))
	return &days
}

// safeRate divides conversions by visitors, returning 0 for an empty arm.
func safeRate(conversions, visitors int) float64 {
	if visitors <= 0 {
		return 0
	}
	return float64(conversions) / float64(visitors)
}

// liftVsControl returns the percent lift over the control rate, or nil when
// the control rate is zero and lift is undefined.
func liftVsControl(rate, controlRate float64) *float64 {
	if controlRate == 0 {
		return nil
	}
	lift := (rate - controlRate) / controlRate * 100
	return &lift
}
