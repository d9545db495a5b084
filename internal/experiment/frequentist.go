package experiment

import "math"

// frequentist implements the pooled two-proportion z-test path.
type frequentist struct {
	cfg Config
}

func (f frequentist) evaluate(variant, control *VariantInput) variantStats {
	if control == nil {
		return variantStats{}
	}
	// Below the sample floor the verdict stays neutral: tiny samples produce
	// huge rate disparities that mean nothing.
	if variant.Visitors < f.cfg.MinSampleSize || control.Visitors < f.cfg.MinSampleSize {
		return variantStats{}
	}

	z := zScore(variant, control)
	conf := confidenceFromZ(z)

	return variantStats{
		confidence:  conf,
		significant: conf >= f.cfg.ConfidenceLevel,
	}
}

// zScore computes the pooled two-proportion z statistic. Empty arms and zero
// standard error (identical degenerate arms) short-circuit to z = 0; the
// sample floor alone is not a guard because it is tunable down to zero.
func zScore(variant, control *VariantInput) float64 {
	nv := float64(variant.Visitors)
	nc := float64(control.Visitors)
	if nv <= 0 || nc <= 0 {
		return 0
	}

	pooled := float64(variant.Conversions+control.Conversions) / (nv + nc)
	se := math.Sqrt(pooled * (1 - pooled) * (1/nv + 1/nc))
	if se == 0 {
		return 0
	}

	rateV := safeRate(variant.Conversions, variant.Visitors)
	rateC := safeRate(control.Conversions, control.Visitors)
	return math.Abs(rateV-rateC) / se
}

// confidenceFromZ maps a z statistic to a confidence percentage via
// 100*(1 - e^(-0.7z)), capped at 99.9. This is a heuristic the product has
// always reported, not a normal CDF; it is monotonic in z, which is all the
// significance check needs. Do not swap it for an exact CDF without
// versioning the output.
func confidenceFromZ(z float64) float64 {
	if z <= 0 {
		return 0
	}
	conf := (1 - math.Exp(-0.7*z)) * 100
	if conf > 99.9 {
		return 99.9
	}
	return conf
}
