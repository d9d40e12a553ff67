package grader

import (
	"fmt"
	"strings"

	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
)

// gradingSystemPrompt fixes the assessor persona and the structured-output
// contract for per-question grading.
const gradingSystemPrompt = `You are a Senior Technical Assessor.
Your task is to grade interview answers.
You MUST output valid JSON.
IMPORTANT: The 'reason' field must contain a DEEP, DETAILED ANALYSIS (3-5 sentences).
Do not give short summaries. Explain the strengths, missing keywords, and logic gaps clearly in the 'reason'.`

func gradingUserPrompt(entry rubric.Entry, transcript string, wpm float64) string {
	return fmt.Sprintf(`### QUESTION:
%q

### RUBRIC CRITERIA:
%s

### CANDIDATE ANSWER:
%q

### METRICS:
- Speaking Rate: %.1f WPM.

### TASK:
1. Score the answer (0-4) based strictly on the rubric.
2. Write a detailed analysis for the 'reason' field. Explain WHY they got that score. Mention specific technical terms used or missed.

### REQUIRED JSON OUTPUT:
{
    "score": (integer 0-4),
    "reason": (string, detailed analysis paragraph)
}`, entry.Question, entry.CriteriaText, transcript, wpm)
}

// summarySystemPrompt fixes the lead-interviewer persona for the whole
// session conclusion.
const summarySystemPrompt = `You are a Lead Interviewer.
You are provided with detailed grading notes from the technical interview questions.
Your task is to write one cohesive 'Overall Note' (Conclusion).
You MUST output valid JSON.`

func summaryUserPrompt(results []session.QuestionResult) string {
	var combined strings.Builder
	for _, r := range results {
		fmt.Fprintf(&combined, "Question %d Score (%d/4): %s\n\n", r.QuestionID, r.Score, r.Reason)
	}
	return fmt.Sprintf(`### CANDIDATE PERFORMANCE DATA:
%s
### INSTRUCTION:
Write a professional summary paragraph (approx 50-80 words) concluding the candidate's overall competency, strengths, and areas for improvement based on the data above.
Do not use bullet points. Write it as a flowing paragraph for a final report.

### REQUIRED JSON OUTPUT:
{
    "overall_summary": "The candidate demonstrated..."
}`, combined.String())
}
