package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosteriorFor(t *testing.T) {
	tests := []struct {
		name          string
		variant       VariantInput
		expectedAlpha float64
		expectedBeta  float64
	}{
		{
			name:          "empty arm is the uniform prior",
			variant:       VariantInput{},
			expectedAlpha: 1,
			expectedBeta:  1,
		},
		{
			name:          "counts shift the posterior",
			variant:       VariantInput{Visitors: 100, Conversions: 30},
			expectedAlpha: 31,
			expectedBeta:  71,
		},
		{
			name:          "malformed negative counts clamp",
			variant:       VariantInput{Visitors: 10, Conversions: -5},
			expectedAlpha: 1,
			expectedBeta:  11,
		},
		{
			name:          "conversions above visitors clamp failures",
			variant:       VariantInput{Visitors: 10, Conversions: 20},
			expectedAlpha: 21,
			expectedBeta:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := posteriorFor(&tt.variant)
			assert.Equal(t, tt.expectedAlpha, post.alpha)
			assert.Equal(t, tt.expectedBeta, post.beta)
		})
	}
}

func TestProbBeats(t *testing.T) {
	t.Run("identical posteriors are a coin flip", func(t *testing.T) {
		p := betaPosterior{alpha: 2, beta: 2}
		assert.InDelta(t, 0.5, probBeats(p, p), 1e-9)
	})

	t.Run("known closed-form value", func(t *testing.T) {
		// P(Beta(2,1) > Beta(1,2)) = 5/6
		a := betaPosterior{alpha: 2, beta: 1}
		b := betaPosterior{alpha: 1, beta: 2}
		assert.InDelta(t, 5.0/6.0, probBeats(a, b), 1e-9)
	})

	t.Run("complementary probabilities sum to one", func(t *testing.T) {
		a := betaPosterior{alpha: 16, beta: 86}
		b := betaPosterior{alpha: 11, beta: 91}
		assert.InDelta(t, 1.0, probBeats(a, b)+probBeats(b, a), 1e-9)
	})

	t.Run("strong separation approaches certainty", func(t *testing.T) {
		a := betaPosterior{alpha: 151, beta: 851}
		b := betaPosterior{alpha: 101, beta: 901}
		assert.Greater(t, probBeats(a, b), 0.999)
	})

	t.Run("normal fallback agrees with exact sum near the cutoff", func(t *testing.T) {
		a := betaPosterior{alpha: 9000, beta: 51000}
		b := betaPosterior{alpha: 8700, beta: 51300}
		exact := probBeats(a, b)
		approx := probBeatsNormal(a, b)
		assert.InDelta(t, exact, approx, 0.005)
	})
}

func TestExpectedLoss(t *testing.T) {
	t.Run("clearly better variant carries negligible loss", func(t *testing.T) {
		variant := betaPosterior{alpha: 151, beta: 851}
		control := betaPosterior{alpha: 101, beta: 901}
		assert.Less(t, expectedLoss(variant, control), 0.001)
	})

	t.Run("clearly worse variant loses about the rate gap", func(t *testing.T) {
		variant := betaPosterior{alpha: 101, beta: 901}
		control := betaPosterior{alpha: 151, beta: 851}
		assert.InDelta(t, 0.05, expectedLoss(variant, control), 0.005)
	})

	t.Run("never negative", func(t *testing.T) {
		variant := betaPosterior{alpha: 500, beta: 500}
		control := betaPosterior{alpha: 100, beta: 900}
		assert.GreaterOrEqual(t, expectedLoss(variant, control), 0.0)
	})
}

func TestCredibleInterval(t *testing.T) {
	t.Run("brackets the posterior mean", func(t *testing.T) {
		p := betaPosterior{alpha: 101, beta: 901}
		interval := credibleInterval(p)
		require.NotNil(t, interval)
		assert.Less(t, interval.Low, p.mean())
		assert.Greater(t, interval.High, p.mean())
		assert.InDelta(t, 0.082, interval.Low, 0.002)
		assert.InDelta(t, 0.119, interval.High, 0.002)
	})

	t.Run("clamped to the unit interval", func(t *testing.T) {
		wide := betaPosterior{alpha: 1, beta: 1}
		interval := credibleInterval(wide)
		require.NotNil(t, interval)
		assert.GreaterOrEqual(t, interval.Low, 0.0)
		assert.LessOrEqual(t, interval.High, 1.0)
	})
}

func TestBayesianEvaluate(t *testing.T) {
	strat := bayesian{cfg: DefaultConfig()}

	t.Run("nil control still yields a credible interval", func(t *testing.T) {
		stats := strat.evaluate(&VariantInput{Visitors: 1000, Conversions: 100}, nil)
		assert.NotNil(t, stats.credible)
		assert.Zero(t, stats.confidence)
		assert.Nil(t, stats.expectedLoss)
		assert.False(t, stats.significant)
	})

	t.Run("strong variant is significant", func(t *testing.T) {
		stats := strat.evaluate(
			&VariantInput{Visitors: 1000, Conversions: 150},
			&VariantInput{Visitors: 1000, Conversions: 100},
		)
		assert.Greater(t, stats.confidence, 95.0)
		require.NotNil(t, stats.expectedLoss)
		assert.LessOrEqual(t, *stats.expectedLoss, 0.005)
		assert.True(t, stats.significant)
	})

	t.Run("sample floor gates significance", func(t *testing.T) {
		// Perfect separation on tiny arms must stay inconclusive
		stats := strat.evaluate(
			&VariantInput{Visitors: 10, Conversions: 9},
			&VariantInput{Visitors: 10, Conversions: 1},
		)
		assert.False(t, stats.significant)
	})

	t.Run("marginal separation stays inconclusive", func(t *testing.T) {
		stats := strat.evaluate(
			&VariantInput{Visitors: 1000, Conversions: 130},
			&VariantInput{Visitors: 1000, Conversions: 120},
		)
		assert.Less(t, stats.confidence, 95.0)
		assert.False(t, stats.significant)
	})
}
