package llm

import "fmt"

// SystemPrompt frames every resume-related completion.
const SystemPrompt = "You are an expert ATS resume analyzer and career coach."

// Task instructions for the three analysis kinds.
const (
	TaskAnalyze = "Analyze the resume and job description. Provide detailed, actionable feedback."
	TaskImprove = "Suggest concrete skill improvements and certifications."
	TaskMatch   = `Evaluate the resume against the job description.
Output format:
- Match Percentage: XX%
- Missing Keywords: [List missing skills/tools]
- Final Thoughts: Summary of strengths, weaknesses, recommendation.`
)

// AnalysisPrompt assembles the user message for an analysis completion.
func AnalysisPrompt(jobDescription, resumeText, task string) string {
	return fmt.Sprintf("Job Description:\n%s\n\nResume:\n%s\n\nTask:\n%s", jobDescription, resumeText, task)
}

// ColdEmailPrompt assembles the user message for cold email generation.
// An empty linkedin value is surfaced to the model as "Not Provided".
func ColdEmailPrompt(resumeText, jobDescription, linkedin, tone string) string {
	if linkedin == "" {
		linkedin = "Not Provided"
	}
	return fmt.Sprintf(`Write a professional cold email for a job opportunity.

LinkedIn: %s
Tone: %s

Resume:
%s

Job Description:
%s`, linkedin, tone, resumeText, jobDescription)
}
