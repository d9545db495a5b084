package scoring

import (
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// Scorer converts a feedback item plus its context into a weighted priority
// score and classification. It is pure: no I/O, no shared state, identical
// input yields identical output.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with the given level thresholds.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// CalculateScore scores a single feedback item. The only rejected input is a
// snapshot missing its identity fields; all-zero metrics are valid and score
// near the bottom of the scale.
func (s *Scorer) CalculateScore(in Input) (ScoreResult, error) {
	if strings.TrimSpace(in.Snapshot.ID) == "" || strings.TrimSpace(in.Snapshot.Title) == "" {
		return ScoreResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("feedback snapshot requires id and title")
	}

	bd := Breakdown{
		Engagement:  engagementSubScore(in.Engagement),
		Reach:       clamp01(in.Engagement.PercentActive / 100),
		Duplication: saturate(float64(in.Engagement.SimilarPosts), similarHalfPoint),
		Requester:   requesterSubScore(in.Requester),
		Urgency:     urgencySubScore(in.Snapshot.Category),
		Alignment:   alignmentSubScore(in.Business.Strategy, in.Snapshot.Category),
	}

	weighted := dimensionWeights["engagement"]*bd.Engagement +
		dimensionWeights["reach"]*bd.Reach +
		dimensionWeights["duplication"]*bd.Duplication +
		dimensionWeights["requester"]*bd.Requester +
		dimensionWeights["urgency"]*bd.Urgency +
		dimensionWeights["alignment"]*bd.Alignment

	score := clamp01(weighted) * 10

	level := s.levelFor(score)

	return ScoreResult{
		WeightedScore:   score,
		Level:           level,
		Justification:   buildJustification(in, bd),
		SuggestedAction: suggestedAction(level, normalizeCategory(in.Snapshot.Category)),
		Breakdown:       bd,
	}, nil
}

func (s *Scorer) levelFor(score float64) PriorityLevel {
	switch {
	case score >= s.thresholds.Critical:
		return LevelCritical
	case score >= s.thresholds.High:
		return LevelHigh
	case score >= s.thresholds.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// engagementSubScore blends votes, comments, and unique voters, each through
// a saturating transform so that volume has diminishing returns.
func engagementSubScore(m EngagementMetrics) float64 {
	return clamp01(voteMix*saturate(float64(m.Votes), voteHalfPoint) +
		commentMix*saturate(float64(m.Comments), commentHalfPoint) +
		voterMix*saturate(float64(m.UniqueVoters), voterHalfPoint))
}

func requesterSubScore(r RequesterContext) float64 {
	w, ok := tierWeights[r.Tier]
	if !ok {
		w = defaultTierWeight
	}
	if r.IsChampion {
		w += championBonus
	}
	return clamp01(w)
}

func urgencySubScore(category string) float64 {
	if w, ok := categoryUrgency[normalizeCategory(category)]; ok {
		return w
	}
	return neutralUrgency
}

// alignmentSubScore returns the strategy-category affinity, or 0 when the
// strategy is absent or unrecognized. Alignment is a soft bonus, never a gate.
func alignmentSubScore(strategy Strategy, category string) float64 {
	affinities, ok := strategyAffinity[strategy]
	if !ok {
		return 0
	}
	return clamp01(affinities[normalizeCategory(category)])
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// saturate maps x >= 0 into [0,1) with half credit at the half point.
// Monotonically increasing, 0 at 0.
func saturate(x, halfPoint float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (x + halfPoint)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
