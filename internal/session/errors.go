package session

import "errors"

var (
	// ErrSessionNotFound indicates the session ID is unknown or already
	// ended.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInterviewCompleted indicates an answer arrived after the final
	// evaluation was delivered.
	ErrInterviewCompleted = errors.New("interview already completed")

	// ErrMalformedReply indicates the interviewer assistant's response
	// did not match the structured output schema.
	ErrMalformedReply = errors.New("malformed interviewer reply")
)
