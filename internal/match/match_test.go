package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPercentage(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{
			name:     "labeled percentage",
			response: "- Match Percentage: 85%\n- Missing Keywords: [Go, Kubernetes]",
			want:     85,
		},
		{
			name:     "labeled percentage lowercase",
			response: "match percentage: 42%",
			want:     42,
		},
		{
			name:     "label with extra whitespace",
			response: "Match  Percentage:  73%",
			want:     73,
		},
		{
			name:     "label wins over earlier numbers",
			response: "Based on 10 years of experience, Match Percentage: 90%",
			want:     90,
		},
		{
			name:     "fallback to first number in range",
			response: "The resume covers roughly 72 percent of the requirements.",
			want:     72,
		},
		{
			name:     "fallback skips out-of-range numbers",
			response: "Listed 3 skills out of 12 required; overall about 65 of 100.",
			want:     65,
		},
		{
			name:     "no usable number",
			response: "The resume has 5 sections and 12 bullet points.",
			want:     DefaultPercentage,
		},
		{
			name:     "empty response",
			response: "",
			want:     DefaultPercentage,
		},
		{
			name:     "labeled zero",
			response: "Match Percentage: 0%",
			want:     0,
		},
		{
			name:     "label without percent sign falls back",
			response: "Match Percentage is high. Score: 88%",
			want:     88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPercentage(tt.response))
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{100, RatingExcellent},
		{80, RatingExcellent},
		{79, RatingStrong},
		{60, RatingStrong},
		{59, RatingGood},
		{40, RatingGood},
		{39, RatingWeak},
		{20, RatingWeak},
		{19, RatingPoor},
		{0, RatingPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.percentage), "percentage %d", tt.percentage)
	}
}
