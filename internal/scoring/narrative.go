package scoring

import (
	"fmt"
	"strings"
)

// salienceThreshold is the sub-score above which a dimension is considered
// worth citing in the justification.
const salienceThreshold = 0.6

// buildJustification assembles a deterministic explanation from the
// dimensions that crossed the salience threshold, in fixed order. No
// generative step: the same input always yields the same sentence.
func buildJustification(in Input, bd Breakdown) string {
	var parts []string

	if bd.Engagement >= salienceThreshold {
		parts = append(parts, fmt.Sprintf("strong engagement (%d votes and %d comments from %d unique voters)",
			in.Engagement.Votes, in.Engagement.Comments, in.Engagement.UniqueVoters))
	}
	if bd.Reach >= salienceThreshold {
		parts = append(parts, fmt.Sprintf("reaches %.0f%% of active users", in.Engagement.PercentActive))
	}
	if bd.Duplication >= salienceThreshold {
		parts = append(parts, fmt.Sprintf("%d similar requests already filed", in.Engagement.SimilarPosts))
	}
	if bd.Requester >= salienceThreshold {
		desc := fmt.Sprintf("%s-tier requester", in.Requester.Tier)
		if in.Requester.IsChampion {
			desc += " who is a champion advocate"
		}
		parts = append(parts, desc)
	}
	if bd.Urgency >= salienceThreshold {
		parts = append(parts, fmt.Sprintf("high-urgency %s category", normalizeCategory(in.Snapshot.Category)))
	}
	if bd.Alignment >= salienceThreshold {
		parts = append(parts, fmt.Sprintf("aligns with the current %s strategy", in.Business.Strategy))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Limited signal so far: %d votes and %d comments from %d voters. Worth revisiting as engagement grows.",
			in.Engagement.Votes, in.Engagement.Comments, in.Engagement.UniqueVoters)
	}

	sentence := strings.Join(parts, "; ")
	return strings.ToUpper(sentence[:1]) + sentence[1:] + "."
}

// suggestedAction derives a recommendation from the priority level and the
// item's category class.
func suggestedAction(level PriorityLevel, category string) string {
	defect := category == "bug" || category == "security"

	switch level {
	case LevelCritical:
		if defect {
			return "Investigate immediately and assign an owner"
		}
		return "Fast-track into the current delivery cycle"
	case LevelHigh:
		if defect {
			return "Schedule a fix for the upcoming sprint"
		}
		return "Validate scope with affected customers and schedule"
	case LevelMedium:
		return "Add to roadmap candidates for the next planning round"
	default:
		return "Add to backlog for periodic review"
	}
}
