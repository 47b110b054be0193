package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient implements Client with per-method hooks. Methods without a
// hook fail the calling test.
type mockClient struct {
	t *testing.T

	creates int
	updates int

	createAssistantFn func(call int, profile Profile) (*Assistant, error)
	updateAssistantFn func(call int, assistantID string, profile Profile) (*Assistant, error)
}

func (m *mockClient) CreateThread(ctx context.Context) (*Thread, error) {
	m.t.Fatal("unexpected CreateThread call")
	return nil, nil
}

func (m *mockClient) CreateMessage(ctx context.Context, threadID string, req MessageRequest) (*Message, error) {
	m.t.Fatal("unexpected CreateMessage call")
	return nil, nil
}

func (m *mockClient) ListMessages(ctx context.Context, threadID string, limit int) ([]Message, error) {
	m.t.Fatal("unexpected ListMessages call")
	return nil, nil
}

func (m *mockClient) CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error) {
	m.t.Fatal("unexpected CreateRun call")
	return nil, nil
}

func (m *mockClient) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	m.t.Fatal("unexpected RetrieveRun call")
	return nil, nil
}

func (m *mockClient) CancelRun(ctx context.Context, threadID, runID string) (*Run, error) {
	m.t.Fatal("unexpected CancelRun call")
	return nil, nil
}

func (m *mockClient) CreateAssistant(ctx context.Context, profile Profile) (*Assistant, error) {
	call := m.creates
	m.creates++
	if m.createAssistantFn == nil {
		m.t.Fatal("unexpected CreateAssistant call")
	}
	return m.createAssistantFn(call, profile)
}

func (m *mockClient) UpdateAssistant(ctx context.Context, assistantID string, profile Profile) (*Assistant, error) {
	call := m.updates
	m.updates++
	if m.updateAssistantFn == nil {
		m.t.Fatal("unexpected UpdateAssistant call")
	}
	return m.updateAssistantFn(call, assistantID, profile)
}

func (m *mockClient) UploadFile(ctx context.Context, path string) (*File, error) {
	m.t.Fatal("unexpected UploadFile call")
	return nil, nil
}

func (m *mockClient) DeleteFile(ctx context.Context, fileID string) error {
	m.t.Fatal("unexpected DeleteFile call")
	return nil
}

func testManagerConfig(t *testing.T) ManagerConfig {
	t.Helper()
	return ManagerConfig{
		ConfigFile: filepath.Join(t.TempDir(), "assistants_config.json"),
		Model:      "gpt-4o-mini",
	}
}

func TestNewManagerValidation(t *testing.T) {
	t.Parallel()

	client := &mockClient{t: t}
	cfg := ManagerConfig{ConfigFile: "assistants.json", Model: "gpt-4o-mini"}

	_, err := NewManager(nil, cfg, setupTestLogger())
	assert.Error(t, err)

	_, err = NewManager(client, ManagerConfig{Model: cfg.Model}, setupTestLogger())
	assert.Error(t, err)

	_, err = NewManager(client, ManagerConfig{ConfigFile: cfg.ConfigFile}, setupTestLogger())
	assert.Error(t, err)

	m, err := NewManager(client, cfg, setupTestLogger())
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestEnsureCreatesAssistantsWhenNoIDsCached(t *testing.T) {
	t.Parallel()

	client := &mockClient{
		t: t,
		createAssistantFn: func(call int, profile Profile) (*Assistant, error) {
			return &Assistant{
				ID:    fmt.Sprintf("asst_%d", call+1),
				Name:  profile.Name,
				Model: profile.Model,
			}, nil
		},
	}
	cfg := testManagerConfig(t)
	manager, err := NewManager(client, cfg, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, manager.Ensure(context.Background()))

	require.NotNil(t, manager.Interviewer())
	require.NotNil(t, manager.Validator())
	assert.Equal(t, "asst_1", manager.Interviewer().ID)
	assert.Equal(t, "asst_2", manager.Validator().ID)
	assert.Equal(t, 2, client.creates)
	assert.Zero(t, client.updates)

	// The IDs must be cached for the next start.
	data, err := os.ReadFile(cfg.ConfigFile)
	require.NoError(t, err)
	var ids assistantIDs
	require.NoError(t, json.Unmarshal(data, &ids))
	assert.Equal(t, "asst_1", ids.InterviewerID)
	assert.Equal(t, "asst_2", ids.ValidatorID)
}

func TestEnsureUpdatesCachedAssistants(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig(t)
	require.NoError(t, os.WriteFile(cfg.ConfigFile,
		[]byte(`{"interviewer_id":"asst_int","validator_id":"asst_val"}`), 0o600))

	client := &mockClient{
		t: t,
		updateAssistantFn: func(_ int, assistantID string, profile Profile) (*Assistant, error) {
			return &Assistant{ID: assistantID, Name: profile.Name, Model: profile.Model}, nil
		},
	}
	manager, err := NewManager(client, cfg, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, manager.Ensure(context.Background()))

	assert.Equal(t, "asst_int", manager.Interviewer().ID)
	assert.Equal(t, "asst_val", manager.Validator().ID)
	assert.Equal(t, 2, client.updates)
	assert.Zero(t, client.creates)
}

func TestEnsureFallsBackToCreateWhenUpdateFails(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig(t)
	require.NoError(t, os.WriteFile(cfg.ConfigFile,
		[]byte(`{"interviewer_id":"asst_gone","validator_id":"asst_gone_too"}`), 0o600))

	client := &mockClient{
		t: t,
		updateAssistantFn: func(_ int, assistantID string, _ Profile) (*Assistant, error) {
			return nil, errors.New("no assistant found with id " + assistantID)
		},
		createAssistantFn: func(call int, profile Profile) (*Assistant, error) {
			return &Assistant{ID: fmt.Sprintf("asst_new_%d", call+1), Name: profile.Name}, nil
		},
	}
	manager, err := NewManager(client, cfg, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, manager.Ensure(context.Background()))

	assert.Equal(t, "asst_new_1", manager.Interviewer().ID)
	assert.Equal(t, "asst_new_2", manager.Validator().ID)
}

func TestEnsureIgnoresCorruptIDCache(t *testing.T) {
	t.Parallel()

	cfg := testManagerConfig(t)
	require.NoError(t, os.WriteFile(cfg.ConfigFile, []byte("not json"), 0o600))

	client := &mockClient{
		t: t,
		createAssistantFn: func(call int, profile Profile) (*Assistant, error) {
			return &Assistant{ID: fmt.Sprintf("asst_%d", call+1), Name: profile.Name}, nil
		},
	}
	manager, err := NewManager(client, cfg, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, manager.Ensure(context.Background()))
	assert.Equal(t, 2, client.creates)
	assert.Zero(t, client.updates)
}

func TestEnsurePropagatesCreateFailure(t *testing.T) {
	t.Parallel()

	createErr := errors.New("rate limited")
	client := &mockClient{
		t: t,
		createAssistantFn: func(int, Profile) (*Assistant, error) {
			return nil, createErr
		},
	}
	manager, err := NewManager(client, testManagerConfig(t), setupTestLogger())
	require.NoError(t, err)

	err = manager.Ensure(context.Background())
	assert.ErrorIs(t, err, createErr)
}
