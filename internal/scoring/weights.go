package scoring

var (
	dimensionWeights = map[string]float64{
		"engagement":  0.30,
		"reach":       0.15,
		"duplication": 0.15,
		"requester":   0.15,
		"urgency":     0.15,
		"alignment":   0.10,
	}

	// mix of the three engagement signals inside the engagement dimension
	voteMix    = 0.5
	commentMix = 0.3
	voterMix   = 0.2

	// half-points for the saturating transforms: the input value at which
	// a signal earns half credit
	voteHalfPoint    = 10.0
	commentHalfPoint = 5.0
	voterHalfPoint   = 8.0
	similarHalfPoint = 2.0

	championBonus = 0.1
)

var tierWeights = map[Tier]float64{
	TierFree:       0.2,
	TierPro:        0.55,
	TierEnterprise: 0.9,
}

const defaultTierWeight = 0.2

// categoryUrgency ranks how inherently pressing a category is. Unknown or
// missing categories fall back to a neutral weight.
var categoryUrgency = map[string]float64{
	"security":    1.0,
	"bug":         0.9,
	"performance": 0.75,
	"integration": 0.6,
	"feature":     0.5,
	"ux":          0.5,
	"general":     0.35,
	"feedback":    0.35,
}

const neutralUrgency = 0.5

// strategyAffinity maps each strategy to the categories it upweights.
// Categories absent from a strategy's table earn no alignment bonus.
var strategyAffinity = map[Strategy]map[string]float64{
	StrategyGrowth: {
		"feature":     1.0,
		"integration": 0.8,
		"ux":          0.6,
		"performance": 0.4,
		"general":     0.2,
	},
	StrategyRetention: {
		"bug":         1.0,
		"performance": 0.8,
		"ux":          0.7,
		"security":    0.6,
		"general":     0.2,
	},
	StrategyExpansion: {
		"integration": 1.0,
		"feature":     0.8,
		"security":    0.5,
	},
	StrategyEfficiency: {
		"performance": 1.0,
		"bug":         0.6,
		"integration": 0.5,
	},
}

// Thresholds maps the 0-10 display score onto priority levels. Scores below
// Medium classify as low.
type Thresholds struct {
	Critical float64
	High     float64
	Medium   float64
}

// DefaultThresholds returns the production level boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 8.0, High: 6.0, Medium: 3.5}
}
