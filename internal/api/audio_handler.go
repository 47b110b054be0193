package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vivasim/viva-api/internal/api/shared"
)

// maxAudioBytes caps uploaded recordings at 25 MiB, matching the remote
// transcription limit.
const maxAudioBytes = 25 << 20

// AudioService converts between speech and text.
type AudioService interface {
	Transcribe(ctx context.Context, path string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// AudioHandler serves the speech endpoints.
type AudioHandler struct {
	audio  AudioService
	logger *slog.Logger
}

// NewAudioHandler creates an audio handler.
func NewAudioHandler(audio AudioService, logger *slog.Logger) *AudioHandler {
	return &AudioHandler{audio: audio, logger: logger}
}

// Transcribe handles POST /audio/transcriptions. The recording arrives as
// the multipart field "file".
func (h *AudioHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	path, cleanup, err := h.saveUpload(file, header.Filename)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"failed to store uploaded file", err)
		return
	}
	defer cleanup()

	text, err := h.audio.Transcribe(r.Context(), path)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TranscriptionResponse{Text: text})
}

// Synthesize handles POST /audio/speech and streams back MP3 audio.
func (h *AudioHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	data, err := h.audio.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write speech response", "error", err)
	}
}

func (h *AudioHandler) saveUpload(file io.Reader, name string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "audio-upload-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			h.logger.Error("failed to remove uploaded file", "dir", dir, "error", err)
		}
	}

	path := filepath.Join(dir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, cleanup, nil
}
