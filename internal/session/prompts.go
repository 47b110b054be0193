package session

import "fmt"

// openingPrompt frames the whole interview for the interviewer assistant.
func openingPrompt(portfolioData, language string, p Progress) string {
	return fmt.Sprintf(`Start the interview. Here's the portfolio data: %s

For the first message, use "other", as stated in the instructions, to ask for the applicant's background and major they are applying for.

Important Instructions:
1. Ask only ONE question at a time
2. Wait for my response before asking the next question
3. You are encouraged to ask follow-up questions based on my answers to gain deeper insights (these do not count as a question). Please ensure that you frequently use this opportunity to clarify and explore my responses further.
4. You must ask at least %d questions
5. You cannot ask more than %d questions
6. After each answer, decide if you want to:
   - Ask a follow-up question (does not count as a question)
   - Move to a new topic (start a new question by using "question" message type)
   - Conclude the interview (only if min questions reached)
7. Current question: %d/%d
8. Please communicate in %s language`,
		portfolioData, p.MinQuestions, p.MaxQuestions, p.QuestionCount, p.MaxQuestions, language)
}

// answerPrompt wraps an applicant answer with the current budget state so
// the assistant can decide between follow-up, new topic and conclusion.
func answerPrompt(answer string, p Progress) string {
	return fmt.Sprintf(`My answer: %s

Note: This is question #%d.
- You can ask a follow-up question if needed
- You can move to a new topic
- You can conclude the interview if we've reached at least %d questions
- Maximum questions allowed: %d
- Questions remaining: %d
- Can conclude: %s
- Should conclude: %s`,
		answer, p.QuestionCount, p.MinQuestions, p.MaxQuestions, p.Remaining(),
		yesNo(p.CanConclude()), yesNo(p.ShouldConclude()))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
