// Package match extracts a resume/job match percentage from free-form
// model output and maps it to a qualitative rating.
package match

import (
	"regexp"
	"strconv"
)

// DefaultPercentage is used when no usable number appears in the response.
const DefaultPercentage = 50

var (
	headerRe = regexp.MustCompile(`(?i)Match\s*Percentage[:\s]*([0-9]+)%`)
	numberRe = regexp.MustCompile(`\b[0-9]+\b`)
)

// ExtractPercentage pulls the match percentage out of a model response.
// The labeled "Match Percentage: XX%" form wins; otherwise the first
// standalone integer between 50 and 100 is taken; otherwise the default.
func ExtractPercentage(response string) int {
	if m := headerRe.FindStringSubmatch(response); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	for _, s := range numberRe.FindAllString(response, -1) {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		if n >= 50 && n <= 100 {
			return n
		}
	}
	return DefaultPercentage
}

// Rating labels for each band.
const (
	RatingExcellent = "Excellent Match"
	RatingStrong    = "Strong Match"
	RatingGood      = "Good Match"
	RatingWeak      = "Weak Match"
	RatingPoor      = "Poor Match"
)

// Rating converts a match percentage into a qualitative label.
func Rating(percentage int) string {
	switch {
	case percentage >= 80:
		return RatingExcellent
	case percentage >= 60:
		return RatingStrong
	case percentage >= 40:
		return RatingGood
	case percentage >= 20:
		return RatingWeak
	default:
		return RatingPoor
	}
}
