package model

import "time"

// AnalysisKind enumerates the supported resume analysis tasks.
type AnalysisKind string

const (
	// KindAnalyze asks for detailed, actionable feedback on the resume.
	KindAnalyze AnalysisKind = "analyze"
	// KindImprove asks for concrete skill improvements and certifications.
	KindImprove AnalysisKind = "improve"
	// KindMatch evaluates the resume against the job description and
	// produces a match percentage with a qualitative rating.
	KindMatch AnalysisKind = "match"
)

// Valid reports whether k is one of the supported analysis kinds.
func (k AnalysisKind) Valid() bool {
	switch k {
	case KindAnalyze, KindImprove, KindMatch:
		return true
	}
	return false
}

// Analysis is a persisted LLM analysis of a resume against a job description.
// MatchPercentage and Rating are only set for KindMatch.
type Analysis struct {
	ID              string       `json:"id"`
	ResumeID        string       `json:"resume_id"`
	Kind            AnalysisKind `json:"kind"`
	JobDescription  string       `json:"job_description"`
	Response        string       `json:"response"`
	MatchPercentage *int         `json:"match_percentage,omitempty"`
	Rating          string       `json:"rating,omitempty"`
	Model           string       `json:"model"`
	CreatedAt       time.Time    `json:"created_at"`
}
