package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vivasim/viva-api/internal/assistant"
)

const validationPrompt = "Please validate this portfolio file and analyze its contents."

// Result is the validator assistant's verdict on a portfolio document.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Poller drives a run to completion; satisfied by assistant.RunPoller.
type Poller interface {
	Await(ctx context.Context, handle *assistant.RunHandle, onComplete func(*assistant.Run)) (*assistant.Run, error)
}

// Service validates portfolio documents against the validator assistant.
type Service struct {
	client      assistant.Client
	poller      Poller
	validatorID string
	cache       *Cache
	logger      *slog.Logger
}

// NewService creates a portfolio validation service bound to the given
// validator assistant.
func NewService(client assistant.Client, poller Poller, validatorID string, cache *Cache, logger *slog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if poller == nil {
		return nil, errors.New("poller cannot be nil")
	}
	if validatorID == "" {
		return nil, errors.New("validator assistant ID cannot be empty")
	}
	if cache == nil {
		return nil, errors.New("cache cannot be nil")
	}
	return &Service{
		client:      client,
		poller:      poller,
		validatorID: validatorID,
		cache:       cache,
		logger:      logger,
	}, nil
}

// Validate checks the portfolio document at path. Identical content is
// served from the cache; otherwise the file is uploaded, run past the
// validator assistant and the parsed verdict returned. Only accepted
// portfolios are cached. An unparsable validator reply yields an invalid
// Result, not an error; errors are reserved for failed remote operations.
func (s *Service) Validate(ctx context.Context, path string) (Result, error) {
	s.logger.Info("starting portfolio validation", "path", path)

	hash, err := hashFile(path)
	if err != nil {
		return Result{}, err
	}

	if result, ok := s.cache.Get(hash); ok {
		s.logger.Info("using cached portfolio validation", "hash", hash)
		return result, nil
	}

	thread, err := s.client.CreateThread(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create validation thread: %w", err)
	}
	s.logger.Debug("created validation thread", "thread_id", thread.ID)

	file, err := s.client.UploadFile(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload portfolio: %w", err)
	}
	s.logger.Debug("portfolio uploaded", "file_id", file.ID)

	// The remote copy is only needed for this validation run.
	defer s.deleteRemoteFile(ctx, file.ID)

	_, err = s.client.CreateMessage(ctx, thread.ID, assistant.MessageRequest{
		Role:    "user",
		Text:    validationPrompt,
		FileIDs: []string{file.ID},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to create validation message: %w", err)
	}

	run, err := s.client.CreateRun(ctx, thread.ID, s.validatorID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to start validation run: %w", err)
	}

	if _, err := s.poller.Await(ctx, assistant.NewRunHandle(run), nil); err != nil {
		return Result{}, fmt.Errorf("validation run did not complete: %w", err)
	}

	messages, err := s.client.ListMessages(ctx, thread.ID, 1)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read validation reply: %w", err)
	}
	if len(messages) == 0 {
		return Result{}, errors.New("validation run produced no reply")
	}

	var result Result
	if err := json.Unmarshal([]byte(messages[0].Text), &result); err != nil {
		s.logger.Error("failed to parse validation response", "error", err)
		return Result{
			Valid:   false,
			Message: fmt.Sprintf("error parsing validation response: %s", truncate(messages[0].Text, 200)),
		}, nil
	}

	s.logger.Info("portfolio validation completed", "valid", result.Valid)
	if result.Valid {
		s.cache.Put(hash, path, result)
	}
	return result, nil
}

// Cleanup sweeps stale entries out of the validation cache.
func (s *Service) Cleanup() {
	s.cache.Sweep()
}

// deleteRemoteFile removes the uploaded copy; failures only leak a remote
// file, so the error is discarded after logging.
func (s *Service) deleteRemoteFile(ctx context.Context, fileID string) {
	if err := s.client.DeleteFile(ctx, fileID); err != nil {
		s.logger.Debug("failed to delete uploaded portfolio", "file_id", fileID, "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
