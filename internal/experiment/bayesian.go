package experiment

import "math"

// bayesian implements the Beta-posterior path: each arm's conversion rate is
// modeled as Beta(conversions+1, failures+1) under a uniform prior.
type bayesian struct {
	cfg Config
}

// betaPosterior holds one arm's posterior parameters. Alpha is always an
// integer plus one since conversions are counts, which the closed-form
// probability below relies on.
type betaPosterior struct {
	alpha float64
	beta  float64
}

func posteriorFor(v *VariantInput) betaPosterior {
	conversions := v.Conversions
	if conversions < 0 {
		conversions = 0
	}
	failures := v.Visitors - conversions
	if failures < 0 {
		failures = 0
	}
	return betaPosterior{alpha: float64(conversions) + 1, beta: float64(failures) + 1}
}

func (p betaPosterior) mean() float64 {
	return p.alpha / (p.alpha + p.beta)
}

func (b bayesian) evaluate(variant, control *VariantInput) variantStats {
	post := posteriorFor(variant)
	stats := variantStats{credible: credibleInterval(post)}

	if control == nil {
		return stats
	}

	controlPost := posteriorFor(control)

	prob := probBeats(post, controlPost) * 100
	loss := expectedLoss(post, controlPost)

	stats.confidence = prob
	stats.expectedLoss = &loss

	// Significance needs all three: high probability to beat control, a
	// bounded downside if we are wrong, and enough traffic on both arms.
	floorMet := variant.Visitors >= b.cfg.MinSampleSize && control.Visitors >= b.cfg.MinSampleSize
	stats.significant = floorMet && prob >= b.cfg.ConfidenceLevel && loss <= b.cfg.LossTolerance

	return stats
}

// probBeats returns P(rate_a > rate_b) for two Beta posteriors using the
// closed-form sum over a's integer alpha:
//
//	sum_{i=0}^{alpha_a-1} B(alpha_b+i, beta_a+beta_b) / ((beta_a+i) B(1+i, beta_a) B(alpha_b, beta_b))
//
// evaluated in log space. Cost is O(alpha_a); arms with very large conversion
// counts switch to a normal approximation of the rate difference, where both
// posteriors are effectively Gaussian anyway.
func probBeats(a, b betaPosterior) float64 {
	const exactLimit = 10000
	if a.alpha > exactLimit || b.alpha > exactLimit {
		return probBeatsNormal(a, b)
	}

	logDenomB := logBeta(b.alpha, b.beta)
	total := 0.0
	for i := 0.0; i < a.alpha; i++ {
		total += math.Exp(logBeta(b.alpha+i, a.beta+b.beta) -
			math.Log(a.beta+i) -
			logBeta(1+i, a.beta) -
			logDenomB)
	}
	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

// probBeatsNormal approximates P(rate_a > rate_b) by treating the posterior
// difference as Gaussian.
func probBeatsNormal(a, b betaPosterior) float64 {
	sd := math.Sqrt(variance(a) + variance(b))
	if sd == 0 {
		return 0.5
	}
	z := (a.mean() - b.mean()) / sd
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// expectedLoss is the Bayesian risk of choosing the variant: the expected
// shortfall E[max(rate_control - rate_variant, 0)], in absolute rate.
func expectedLoss(variant, control betaPosterior) float64 {
	shiftedControl := betaPosterior{alpha: control.alpha + 1, beta: control.beta}
	shiftedVariant := betaPosterior{alpha: variant.alpha + 1, beta: variant.beta}

	loss := control.mean()*probBeats(shiftedControl, variant) -
		variant.mean()*probBeats(control, shiftedVariant)
	if loss < 0 {
		return 0
	}
	return loss
}

// credibleInterval returns a 95% interval for the posterior rate using the
// normal approximation to the Beta, clamped to [0,1].
func credibleInterval(p betaPosterior) *Interval {
	mean := p.mean()
	sd := math.Sqrt(variance(p))
	return &Interval{
		Low:  clampUnit(mean - 1.96*sd),
		High: clampUnit(mean + 1.96*sd),
	}
}

func variance(p betaPosterior) float64 {
	n := p.alpha + p.beta
	return p.alpha * p.beta / (n * n * (n + 1))
}

func logBeta(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return la + lb - lab
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
