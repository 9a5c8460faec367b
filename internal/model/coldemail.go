package model

import "time"

// EmailTone selects the writing style for a generated cold email.
type EmailTone string

const (
	ToneFormal EmailTone = "formal"
	ToneCasual EmailTone = "casual"
)

// Valid reports whether t is a supported tone.
func (t EmailTone) Valid() bool {
	return t == ToneFormal || t == ToneCasual
}

// ColdEmail is a persisted cold email generated for a resume and job description.
type ColdEmail struct {
	ID             string    `json:"id"`
	ResumeID       string    `json:"resume_id"`
	JobDescription string    `json:"job_description"`
	LinkedIn       string    `json:"linkedin,omitempty"`
	Tone           EmailTone `json:"tone"`
	Email          string    `json:"email"`
	Model          string    `json:"model"`
	CreatedAt      time.Time `json:"created_at"`
}
