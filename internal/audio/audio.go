// Package audio converts between applicant speech and text: answers are
// transcribed with the Whisper model and interviewer messages rendered to
// MP3 speech. Capture and playback are device concerns and stay with the
// caller.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Speech is the remote speech boundary; satisfied by the platform client.
type Speech interface {
	Transcribe(ctx context.Context, path string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Service wraps the speech boundary with local file handling.
type Service struct {
	speech Speech
	logger *slog.Logger
}

// NewService creates an audio service.
func NewService(speech Speech, logger *slog.Logger) (*Service, error) {
	if speech == nil {
		return nil, errors.New("speech client cannot be nil")
	}
	return &Service{speech: speech, logger: logger}, nil
}

// Transcribe converts the recorded answer at path to text.
func (s *Service) Transcribe(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("audio file not found: %w", err)
	}

	text, err := s.speech.Transcribe(ctx, path)
	if err != nil {
		s.logger.Error("transcription failed", "path", path, "error", err)
		return "", err
	}
	s.logger.Debug("transcribed audio", "path", path, "chars", len(text))
	return text, nil
}

// Synthesize renders text to MP3 speech audio.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	data, err := s.speech.Synthesize(ctx, text, voice)
	if err != nil {
		s.logger.Error("speech synthesis failed", "error", err)
		return nil, err
	}
	return data, nil
}

// SynthesizeToFile renders text to speech and writes the MP3 into dir,
// returning the file path. An empty dir uses the system temp directory.
func (s *Service) SynthesizeToFile(ctx context.Context, text, voice, dir string) (string, error) {
	data, err := s.Synthesize(ctx, text, voice)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "speech.mp3")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write speech file: %w", err)
	}
	s.logger.Debug("created speech file", "path", path)
	return path, nil
}
