package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vivasim/viva-api/internal/assistant"
)

// Poller drives a run to completion; satisfied by assistant.RunPoller.
type Poller interface {
	Await(ctx context.Context, handle *assistant.RunHandle, onComplete func(*assistant.Run)) (*assistant.Run, error)
}

// Config holds the interview policy of the session service.
type Config struct {
	// InterviewerID is the provisioned interviewer assistant.
	InterviewerID string

	// MinQuestions must be asked before the interview may conclude.
	MinQuestions int

	// MaxQuestions caps how many budget-consuming questions one
	// interview gets.
	MaxQuestions int

	// DefaultLanguage is used when a session does not pick one.
	DefaultLanguage string
}

// Service starts interviews and routes applicant answers through the
// interviewer assistant.
type Service struct {
	client   assistant.Client
	poller   Poller
	cfg      Config
	registry *registry
	logger   *slog.Logger
}

// NewService creates an interview session service.
func NewService(client assistant.Client, poller Poller, cfg Config, logger *slog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if poller == nil {
		return nil, errors.New("poller cannot be nil")
	}
	if cfg.InterviewerID == "" {
		return nil, errors.New("interviewer assistant ID cannot be empty")
	}
	if cfg.MinQuestions <= 0 || cfg.MaxQuestions < cfg.MinQuestions {
		return nil, errors.New("invalid question budget")
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	return &Service{
		client:   client,
		poller:   poller,
		cfg:      cfg,
		registry: newRegistry(),
		logger:   logger,
	}, nil
}

// Start opens a new interview thread seeded with the applicant's portfolio
// data and returns the session together with the interviewer's greeting.
func (s *Service) Start(ctx context.Context, portfolioData, language string) (*Session, *Reply, error) {
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	thread, err := s.client.CreateThread(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create interview thread: %w", err)
	}

	sess := &Session{
		ID:       uuid.New(),
		ThreadID: thread.ID,
		Language: language,
		progress: Progress{
			MinQuestions: s.cfg.MinQuestions,
			MaxQuestions: s.cfg.MaxQuestions,
		},
	}
	s.logger.Info("starting interview",
		"session_id", sess.ID,
		"thread_id", sess.ThreadID,
		"language", language)

	reply, err := s.exchange(ctx, sess, openingPrompt(portfolioData, language, sess.Progress()))
	if err != nil {
		return nil, nil, err
	}

	s.registry.add(sess)
	interviewsStartedTotal.Inc()
	return sess, reply, nil
}

// SubmitAnswer forwards one applicant answer and returns the interviewer's
// next message along with the updated budget.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*Reply, Progress, error) {
	sess, ok := s.registry.get(sessionID)
	if !ok {
		return nil, Progress{}, ErrSessionNotFound
	}
	if sess.Progress().Completed {
		return nil, sess.Progress(), ErrInterviewCompleted
	}

	reply, err := s.exchange(ctx, sess, answerPrompt(answer, sess.Progress()))
	if err != nil {
		return nil, sess.Progress(), err
	}
	return reply, sess.Progress(), nil
}

// Get returns a live session by ID.
func (s *Service) Get(sessionID uuid.UUID) (*Session, error) {
	sess, ok := s.registry.get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// End drops a session from the registry. The remote thread is left behind;
// the service keeps no remote state worth cleaning up.
func (s *Service) End(sessionID uuid.UUID) error {
	if _, ok := s.registry.get(sessionID); !ok {
		return ErrSessionNotFound
	}
	s.registry.remove(sessionID)
	return nil
}

// exchange sends one user message, runs the interviewer over the thread
// and parses the structured reply, folding it into the session budget.
func (s *Service) exchange(ctx context.Context, sess *Session, prompt string) (*Reply, error) {
	_, err := s.client.CreateMessage(ctx, sess.ThreadID, assistant.MessageRequest{
		Role: "user",
		Text: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	run, err := s.client.CreateRun(ctx, sess.ThreadID, s.cfg.InterviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start interviewer run: %w", err)
	}

	if _, err := s.poller.Await(ctx, assistant.NewRunHandle(run), nil); err != nil {
		return nil, fmt.Errorf("interviewer run did not complete: %w", err)
	}

	messages, err := s.client.ListMessages(ctx, sess.ThreadID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read interviewer reply: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: run produced no reply", ErrMalformedReply)
	}

	var reply Reply
	if err := json.Unmarshal([]byte(messages[0].Text), &reply); err != nil {
		s.logger.Error("failed to parse interviewer reply",
			"session_id", sess.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	sess.apply(&reply)
	switch reply.Data.MessageType {
	case assistant.MessageTypeQuestion:
		questionsAskedTotal.Inc()
	case assistant.MessageTypeFinalEval:
		interviewsCompletedTotal.Inc()
		s.logger.Info("interview completed",
			"session_id", sess.ID,
			"questions", sess.Progress().QuestionCount)
	}

	return &reply, nil
}
