package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ManagerConfig holds the settings for assistant provisioning.
type ManagerConfig struct {
	// ConfigFile is the local JSON file the provisioned assistant IDs are
	// cached in between restarts.
	ConfigFile string

	// Model is the model both assistants are configured with.
	Model string
}

// assistantIDs is the persisted shape of the ID cache file.
type assistantIDs struct {
	InterviewerID string `json:"interviewer_id"`
	ValidatorID   string `json:"validator_id"`
}

// Manager keeps the interviewer and portfolio validator assistants
// provisioned on the remote service. Known IDs are updated in place so
// instruction changes take effect; when that fails (or no IDs are cached
// yet) fresh assistants are created and their IDs cached locally.
type Manager struct {
	client Client
	cfg    ManagerConfig
	logger *slog.Logger

	interviewer *Assistant
	validator   *Assistant
}

// NewManager creates a Manager. Ensure must be called before the assistant
// accessors are used.
func NewManager(client Client, cfg ManagerConfig, logger *slog.Logger) (*Manager, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if cfg.ConfigFile == "" {
		return nil, errors.New("assistant config file cannot be empty")
	}
	if cfg.Model == "" {
		return nil, errors.New("model cannot be empty")
	}
	return &Manager{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Ensure makes both assistants exist remotely with the current profiles.
func (m *Manager) Ensure(ctx context.Context) error {
	m.logger.Info("loading or creating assistants")

	interviewerProfile := InterviewerProfile(m.cfg.Model)
	validatorProfile := ValidatorProfile(m.cfg.Model)

	if ids, err := m.loadIDs(); err == nil {
		interviewer, updateErr := m.client.UpdateAssistant(ctx, ids.InterviewerID, interviewerProfile)
		if updateErr == nil {
			var validator *Assistant
			validator, updateErr = m.client.UpdateAssistant(ctx, ids.ValidatorID, validatorProfile)
			if updateErr == nil {
				m.interviewer = interviewer
				m.validator = validator
				m.logger.Debug("updated existing assistants",
					"interviewer_id", interviewer.ID,
					"validator_id", validator.ID)
				return nil
			}
		}
		m.logger.Warn("failed to update existing assistants, creating new ones",
			"error", updateErr)
	}

	interviewer, err := m.client.CreateAssistant(ctx, interviewerProfile)
	if err != nil {
		return fmt.Errorf("failed to create interviewer assistant: %w", err)
	}
	validator, err := m.client.CreateAssistant(ctx, validatorProfile)
	if err != nil {
		return fmt.Errorf("failed to create validator assistant: %w", err)
	}

	m.interviewer = interviewer
	m.validator = validator
	m.logger.Info("created new assistants",
		"interviewer_id", interviewer.ID,
		"validator_id", validator.ID)

	if err := m.saveIDs(assistantIDs{
		InterviewerID: interviewer.ID,
		ValidatorID:   validator.ID,
	}); err != nil {
		// The assistants exist; a failed cache write only costs a
		// recreation on the next start.
		m.logger.Error("failed to save assistant IDs", "error", err)
	}

	return nil
}

// Interviewer returns the provisioned interview simulator assistant.
func (m *Manager) Interviewer() *Assistant {
	return m.interviewer
}

// Validator returns the provisioned portfolio validator assistant.
func (m *Manager) Validator() *Assistant {
	return m.validator
}

func (m *Manager) loadIDs() (assistantIDs, error) {
	var ids assistantIDs
	data, err := os.ReadFile(m.cfg.ConfigFile)
	if err != nil {
		return ids, err
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		return ids, fmt.Errorf("failed to parse assistant config file: %w", err)
	}
	if ids.InterviewerID == "" || ids.ValidatorID == "" {
		return ids, errors.New("assistant config file is incomplete")
	}
	return ids, nil
}

func (m *Manager) saveIDs(ids assistantIDs) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(m.cfg.ConfigFile, data, 0o600)
}
