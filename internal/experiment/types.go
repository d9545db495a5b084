package experiment

// Method selects the statistical strategy used to judge variants.
type Method string

const (
	MethodFrequentist Method = "frequentist"
	MethodBayesian    Method = "bayesian"
)

// Action is the aggregate recommendation derived from a result set.
type Action string

const (
	ActionStopWinner    Action = "stop_winner"
	ActionStopLoser     Action = "stop_loser"
	ActionContinue      Action = "continue"
	ActionNeedsMoreData Action = "needs_more_data"
)

// VariantInput is a snapshot of one arm's traffic counts.
type VariantInput struct {
	Key         string `json:"key"`
	Visitors    int    `json:"visitors"`
	Conversions int    `json:"conversions"`
	IsControl   bool   `json:"is_control"`
}

// Interval is a two-sided credible interval for a conversion rate.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// VariantResult is the per-arm verdict. Lift is nil for the control and
// whenever no usable control exists. Confidence is a percentage: the
// z-derived confidence on the frequentist path, the probability to beat
// control on the Bayesian path.
type VariantResult struct {
	Key              string    `json:"key"`
	IsControl        bool      `json:"is_control"`
	ConversionRate   float64   `json:"conversion_rate"`
	Lift             *float64  `json:"lift,omitempty"`
	Confidence       float64   `json:"confidence"`
	CredibleInterval *Interval `json:"credible_interval,omitempty"`
	ExpectedLoss     *float64  `json:"expected_loss,omitempty"`
	IsSignificant    bool      `json:"is_significant"`
	IsWinner         bool      `json:"is_winner"`
}

// Results is the full verdict for one experiment snapshot.
type Results struct {
	Variants                    []VariantResult `json:"variants"`
	TotalVisitors               int             `json:"total_visitors"`
	TotalConversions            int             `json:"total_conversions"`
	HasSignificantWinner        bool            `json:"has_significant_winner"`
	RecommendedAction           Action          `json:"recommended_action"`
	DaysRunning                 int             `json:"days_running"`
	ProjectedDaysToSignificance *int            `json:"projected_days_to_significance,omitempty"`
}

// Config carries the engine's tunables.
type Config struct {
	Method           Method
	MinSampleSize    int     // per-arm visitor floor before significance is considered
	TargetSampleSize int     // visitors the experiment was sized for
	ConfidenceLevel  float64 // significance threshold, percent
	LossTolerance    float64 // Bayesian expected-loss ceiling, absolute rate
}

// DefaultConfig returns the production defaults. Bayesian is the preferred
// strategy; frequentist remains available for callers that need it.
func DefaultConfig() Config {
	return Config{
		Method:           MethodBayesian,
		MinSampleSize:    100,
		TargetSampleSize: 1000,
		ConfidenceLevel:  95,
		LossTolerance:    0.005,
	}
}
