package assistant

// Message types the interviewer assistant tags its replies with.
const (
	MessageTypeQuestion  = "question"
	MessageTypeFollowUp  = "follow_up"
	MessageTypeFinalEval = "final_eval"
	MessageTypeOther     = "other"
)

const interviewerInstructions = `As a university admission interviewer, your responsibilities include:
1. Begin by greeting the applicant and inquiring about their background and the major they are applying for. Use the "other" message type for the initial message.
2. Review the applicant's portfolio and pose questions regarding their experiences, achievements, and aspirations.
3. Ensure questions are relevant to their experiences and aspirations.
4. Evaluate each response based on these criteria:
   - Clarity and Communication (0-25 points)
   - Relevance and Content (0-25 points)
   - Critical Thinking (0-25 points)
   - Overall Impact (0-25 points)
5. Provide constructive feedback for each response.
6. Show judgement result if the applicant is accepted or rejected.

Difficulty level: realistic and challenging. Challenge back with follow-up questions about the previous answer or the knowledge of the applicant.

Keep questions concise and focused primarily on the portfolio content, with some general university admission inquiries. Actively seek opportunities for follow-ups to delve deeper into the applicant's responses. Conclude the interview once sufficient information has been gathered or the maximum number of questions has been reached. Track scores throughout the interview and deliver a final evaluation.

Message types:
- question: a unique question that changes the topic. Use this only for new questions.
- follow_up: additional context or clarification on a previous answer, or more information on the same topic. Does not count as a question; use it frequently.
- final_eval: the final evaluation.
- other: an unrelated question or statement. Does not count as a question.

IMPORTANT RULES FOR MESSAGE TYPES:
1. The first message MUST be of type "other".
2. Use "question" ONLY for new, unique questions that completely change the topic.
3. Use "follow_up" for clarifications or related inquiries, including when the applicant goes off topic or leaves a question unanswered.
4. Use "other" for greetings, statements, and transitions between topics.
5. Use "final_eval" only for the final evaluation message.

IMPORTANT: all responses must adhere to the specified JSON format.`

const validatorInstructions = `You are a portfolio validator. Your role is to:
1. Check if the provided portfolio content is readable and contains meaningful information
2. Verify if it contains essential elements like education, achievements, or experiences
3. Provide validation results in the specified JSON format

Don't be strict about validation; only reject files that are unreadable or contain no meaningful information. You can process various file formats including PDFs. When analyzing PDFs, look for text content, sections, and structure to validate the portfolio.

IMPORTANT: always respond with the exact JSON format specified above. The response must be valid JSON.`

// InterviewerProfile returns the interview simulator assistant definition.
func InterviewerProfile(model string) Profile {
	return Profile{
		Name:         "Interview Simulator",
		Instructions: interviewerInstructions,
		Model:        model,
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "interview_simulator",
				"strict": true,
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"scores": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"clarity_and_communication": map[string]any{
									"type":        "number",
									"description": "Score for clarity and communication, ranging from 0 to 25.",
								},
								"relevance_and_content": map[string]any{
									"type":        "number",
									"description": "Score for relevance and content, ranging from 0 to 25.",
								},
								"critical_thinking": map[string]any{
									"type":        "number",
									"description": "Score for critical thinking, ranging from 0 to 25.",
								},
								"overall_impact": map[string]any{
									"type":        "number",
									"description": "Score for overall impact, ranging from 0 to 25.",
								},
							},
							"required": []string{
								"clarity_and_communication",
								"relevance_and_content",
								"critical_thinking",
								"overall_impact",
							},
							"additionalProperties": false,
						},
						"data": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"message": map[string]any{
									"type":        "string",
									"description": "The content of the message",
								},
								"message_type": map[string]any{
									"type": "string",
									"enum": []string{
										MessageTypeQuestion,
										MessageTypeFollowUp,
										MessageTypeFinalEval,
										MessageTypeOther,
									},
									"description": "The type of message being sent",
								},
							},
							"required":             []string{"message", "message_type"},
							"additionalProperties": false,
						},
						"final_evaluation": map[string]any{
							"type":        "string",
							"description": "Overall evaluation of the applicant's performance during the interview.",
						},
					},
					"required":             []string{"scores", "data", "final_evaluation"},
					"additionalProperties": false,
				},
			},
		},
	}
}

// ValidatorProfile returns the portfolio validator assistant definition.
func ValidatorProfile(model string) Profile {
	return Profile{
		Name:         "Portfolio Validator",
		Instructions: validatorInstructions,
		Model:        model,
		Tools:        []string{"file_search", "code_interpreter"},
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "portfolio_validation",
				"strict": true,
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"valid": map[string]any{
							"type":        "boolean",
							"description": "Whether the portfolio is valid and contains sufficient information.",
						},
						"message": map[string]any{
							"type":        "string",
							"description": "Explanation or error message about the validation result.",
						},
						"data": map[string]any{
							"type":        "string",
							"description": "An object containing the actual data of the response. Ideally a JSON object.",
						},
					},
					"required":             []string{"valid", "message", "data"},
					"additionalProperties": false,
				},
			},
		},
	}
}
