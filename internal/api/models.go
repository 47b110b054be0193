// Package api implements the HTTP surface of the interview service.
package api

import "github.com/vivasim/viva-api/internal/session"

// StartSessionRequest starts a new interview.
type StartSessionRequest struct {
	// PortfolioData is the validated portfolio content the interview is
	// grounded on.
	PortfolioData string `json:"portfolio_data" validate:"required"`

	// Language optionally overrides the interview language.
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// SubmitAnswerRequest carries one applicant answer.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// ReplyResponse is one interviewer message as returned to clients.
type ReplyResponse struct {
	Message         string          `json:"message"`
	MessageType     string          `json:"message_type"`
	Scores          *session.Scores `json:"scores,omitempty"`
	FinalEvaluation string          `json:"final_evaluation,omitempty"`
}

// SessionResponse describes an interview session.
type SessionResponse struct {
	ID       string           `json:"id"`
	Language string           `json:"language"`
	Progress session.Progress `json:"progress"`
	Reply    *ReplyResponse   `json:"reply,omitempty"`
}

// AnswerResponse is the interviewer's reaction to an answer.
type AnswerResponse struct {
	Reply    ReplyResponse    `json:"reply"`
	Progress session.Progress `json:"progress"`
}

// SpeechRequest renders text to speech.
type SpeechRequest struct {
	Text  string `json:"text" validate:"required"`
	Voice string `json:"voice,omitempty"`
}

// TranscriptionResponse carries the text of a transcribed recording.
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// newReplyResponse flattens a parsed interviewer reply for clients.
func newReplyResponse(reply *session.Reply) ReplyResponse {
	resp := ReplyResponse{
		Message:         reply.Data.Message,
		MessageType:     reply.Data.MessageType,
		FinalEvaluation: reply.FinalEvaluation,
	}
	if reply.Scores != (session.Scores{}) {
		scores := reply.Scores
		resp.Scores = &scores
	}
	return resp
}
