package api

import (
	"errors"
	"net/http"

	"github.com/vivasim/viva-api/internal/assistant"
	"github.com/vivasim/viva-api/internal/async"
	"github.com/vivasim/viva-api/internal/session"
)

// mapServiceError translates domain errors into an HTTP status and a
// client-safe message. Unrecognized errors become opaque 500s.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrInterviewCompleted):
		return http.StatusConflict, "interview already completed"
	case errors.Is(err, session.ErrMalformedReply):
		return http.StatusBadGateway, "assistant returned an unusable reply"
	case errors.Is(err, assistant.ErrUnexpectedStatus):
		return http.StatusBadGateway, "assistant run ended in an unexpected state"
	case errors.Is(err, assistant.ErrRunRecoveryExhausted),
		errors.Is(err, assistant.ErrRunPollingTimedOut):
		return http.StatusGatewayTimeout, "assistant did not respond in time"
	case errors.Is(err, assistant.ErrPollingStopped),
		errors.Is(err, async.ErrPoolClosed):
		return http.StatusServiceUnavailable, "server is shutting down"
	case errors.Is(err, async.ErrTimedOut):
		return http.StatusGatewayTimeout, "request to assistant service timed out"
	case errors.Is(err, async.ErrQueueFull):
		return http.StatusServiceUnavailable, "server is overloaded, try again shortly"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
