package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildJustificationCitesSalientDimensions(t *testing.T) {
	in := Input{
		Snapshot: FeedbackSnapshot{ID: "fb-1", Title: "Export crashes", Category: "bug"},
		Engagement: EngagementMetrics{
			Votes:        50,
			UniqueVoters: 40,
			SimilarPosts: 5,
		},
		Requester: RequesterContext{Tier: TierEnterprise, IsChampion: true},
	}
	bd := Breakdown{
		Engagement:  0.58,
		Duplication: 0.71,
		Requester:   1.0,
		Urgency:     0.9,
	}

	got := buildJustification(in, bd)

	assert.Contains(t, got, "5 similar requests already filed")
	assert.Contains(t, got, "enterprise-tier requester who is a champion advocate")
	assert.Contains(t, got, "high-urgency bug category")
	assert.NotContains(t, got, "strong engagement", "sub-threshold dimensions must not be cited")
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestBuildJustificationFallbackWhenNothingSalient(t *testing.T) {
	in := Input{
		Snapshot:   FeedbackSnapshot{ID: "fb-2", Title: "Minor tweak"},
		Engagement: EngagementMetrics{Votes: 2, Comments: 1, UniqueVoters: 2},
	}

	got := buildJustification(in, Breakdown{Engagement: 0.1, Urgency: 0.5})

	assert.Contains(t, got, "Limited signal so far")
	assert.Contains(t, got, "2 votes")
	assert.NotEmpty(t, got)
}

func TestBuildJustificationDeterministic(t *testing.T) {
	in := Input{
		Snapshot:   FeedbackSnapshot{ID: "fb-3", Title: "SSO", Category: "integration"},
		Engagement: EngagementMetrics{Votes: 30, Comments: 10, UniqueVoters: 20, PercentActive: 80, SimilarPosts: 6},
		Requester:  RequesterContext{Tier: TierPro},
		Business:   BusinessContext{Strategy: StrategyExpansion},
	}
	bd := Breakdown{Engagement: 0.7, Reach: 0.8, Duplication: 0.75, Requester: 0.55, Urgency: 0.6, Alignment: 1.0}

	first := buildJustification(in, bd)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, buildJustification(in, bd))
	}
}

func TestSuggestedAction(t *testing.T) {
	tests := []struct {
		name     string
		level    PriorityLevel
		category string
		expected string
	}{
		{
			name:     "critical defect",
			level:    LevelCritical,
			category: "bug",
			expected: "Investigate immediately and assign an owner",
		},
		{
			name:     "critical security issue",
			level:    LevelCritical,
			category: "security",
			expected: "Investigate immediately and assign an owner",
		},
		{
			name:     "critical feature request",
			level:    LevelCritical,
			category: "feature",
			expected: "Fast-track into the current delivery cycle",
		},
		{
			name:     "high defect",
			level:    LevelHigh,
			category: "bug",
			expected: "Schedule a fix for the upcoming sprint",
		},
		{
			name:     "high feature request",
			level:    LevelHigh,
			category: "ux",
			expected: "Validate scope with affected customers and schedule",
		},
		{
			name:     "medium anything",
			level:    LevelMedium,
			category: "bug",
			expected: "Add to roadmap candidates for the next planning round",
		},
		{
			name:     "low anything",
			level:    LevelLow,
			category: "security",
			expected: "Add to backlog for periodic review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestedAction(tt.level, tt.category))
		})
	}
}
