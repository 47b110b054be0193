package openai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasim/viva-api/internal/assistant"
	"github.com/vivasim/viva-api/internal/async"
)

// fakeAPI implements the api subset with per-method hooks.
type fakeAPI struct {
	createThreadFn    func(ctx context.Context, req openai.ThreadRequest) (openai.Thread, error)
	createMessageFn   func(ctx context.Context, threadID string, req openai.MessageRequest) (openai.Message, error)
	listMessageFn     func(ctx context.Context, threadID string, limit *int) (openai.MessagesList, error)
	createRunFn       func(ctx context.Context, threadID string, req openai.RunRequest) (openai.Run, error)
	retrieveRunFn     func(ctx context.Context, threadID, runID string) (openai.Run, error)
	cancelRunFn       func(ctx context.Context, threadID, runID string) (openai.Run, error)
	createAssistantFn func(ctx context.Context, req openai.AssistantRequest) (openai.Assistant, error)
	modifyAssistantFn func(ctx context.Context, assistantID string, req openai.AssistantRequest) (openai.Assistant, error)
	createFileFn      func(ctx context.Context, req openai.FileRequest) (openai.File, error)
	deleteFileFn      func(ctx context.Context, fileID string) error
	transcriptionFn   func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
	speechFn          func(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

func (f *fakeAPI) CreateThread(ctx context.Context, req openai.ThreadRequest) (openai.Thread, error) {
	return f.createThreadFn(ctx, req)
}

func (f *fakeAPI) CreateMessage(ctx context.Context, threadID string, req openai.MessageRequest) (openai.Message, error) {
	return f.createMessageFn(ctx, threadID, req)
}

func (f *fakeAPI) ListMessage(ctx context.Context, threadID string, limit *int, order, after, before, runID *string) (openai.MessagesList, error) {
	return f.listMessageFn(ctx, threadID, limit)
}

func (f *fakeAPI) CreateRun(ctx context.Context, threadID string, req openai.RunRequest) (openai.Run, error) {
	return f.createRunFn(ctx, threadID, req)
}

func (f *fakeAPI) RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error) {
	return f.retrieveRunFn(ctx, threadID, runID)
}

func (f *fakeAPI) CancelRun(ctx context.Context, threadID, runID string) (openai.Run, error) {
	return f.cancelRunFn(ctx, threadID, runID)
}

func (f *fakeAPI) CreateAssistant(ctx context.Context, req openai.AssistantRequest) (openai.Assistant, error) {
	return f.createAssistantFn(ctx, req)
}

func (f *fakeAPI) ModifyAssistant(ctx context.Context, assistantID string, req openai.AssistantRequest) (openai.Assistant, error) {
	return f.modifyAssistantFn(ctx, assistantID, req)
}

func (f *fakeAPI) CreateFile(ctx context.Context, req openai.FileRequest) (openai.File, error) {
	return f.createFileFn(ctx, req)
}

func (f *fakeAPI) DeleteFile(ctx context.Context, fileID string) error {
	return f.deleteFileFn(ctx, fileID)
}

func (f *fakeAPI) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	return f.transcriptionFn(ctx, req)
}

func (f *fakeAPI) CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	return f.speechFn(ctx, req)
}

func newTestClient(t *testing.T, fake *fakeAPI) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool := async.NewPool(async.PoolConfig{WorkerCount: 2, QueueSize: 8}, logger)
	t.Cleanup(func() { pool.Shutdown(true) })

	policy := async.LinearPolicy{
		Attempts:    2,
		BaseTimeout: time.Second,
		BackoffUnit: time.Millisecond,
	}
	executor := async.NewExecutor(pool, policy, logger)

	client, err := New(Options{Client: fake, Executor: executor, Logger: logger})
	require.NoError(t, err)
	return client
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool := async.NewPool(async.PoolConfig{WorkerCount: 1, QueueSize: 1}, logger)
	t.Cleanup(func() { pool.Shutdown(true) })
	executor := async.NewExecutor(pool, nil, logger)

	_, err := New(Options{Executor: executor, Logger: logger})
	assert.Error(t, err)

	_, err = New(Options{Client: &fakeAPI{}, Logger: logger})
	assert.Error(t, err)

	_, err = NewFromAPIKey("", executor, logger)
	assert.Error(t, err)
}

func TestCreateThreadRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	fake := &fakeAPI{
		createThreadFn: func(ctx context.Context, req openai.ThreadRequest) (openai.Thread, error) {
			calls++
			if calls == 1 {
				return openai.Thread{}, errors.New("connection reset")
			}
			return openai.Thread{ID: "thread_abc"}, nil
		},
	}
	client := newTestClient(t, fake)

	thread, err := client.CreateThread(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "thread_abc", thread.ID)
	assert.Equal(t, 2, calls, "a transient failure must be retried")
}

func TestCreateMessageAttachesFiles(t *testing.T) {
	t.Parallel()

	var captured openai.MessageRequest
	fake := &fakeAPI{
		createMessageFn: func(ctx context.Context, threadID string, req openai.MessageRequest) (openai.Message, error) {
			captured = req
			return openai.Message{
				ID:       "msg_1",
				ThreadID: threadID,
				Role:     req.Role,
				Content: []openai.MessageContent{
					{Type: "text", Text: &openai.MessageText{Value: req.Content}},
				},
			}, nil
		},
	}
	client := newTestClient(t, fake)

	msg, err := client.CreateMessage(context.Background(), "thread_1", assistant.MessageRequest{
		Role:    "user",
		Text:    "portfolio attached",
		FileIDs: []string{"file_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "portfolio attached", msg.Text)
	assert.Equal(t, "thread_1", msg.ThreadID)
	require.Len(t, captured.Attachments, 1)
	assert.Equal(t, "file_1", captured.Attachments[0].FileID)
	require.Len(t, captured.Attachments[0].Tools, 2)
	assert.Equal(t, string(openai.AssistantToolTypeFileSearch), captured.Attachments[0].Tools[0].Type)
	assert.Equal(t, string(openai.AssistantToolTypeCodeInterpreter), captured.Attachments[0].Tools[1].Type)
}

func TestListMessagesFlattensContent(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{
		listMessageFn: func(ctx context.Context, threadID string, limit *int) (openai.MessagesList, error) {
			require.NotNil(t, limit)
			assert.Equal(t, 1, *limit)
			return openai.MessagesList{
				Messages: []openai.Message{
					{
						ID:   "msg_2",
						Role: "assistant",
						Content: []openai.MessageContent{
							{Type: "text", Text: &openai.MessageText{Value: `{"data":`}},
							{Type: "text", Text: &openai.MessageText{Value: `{}}`}},
						},
					},
				},
			}, nil
		},
	}
	client := newTestClient(t, fake)

	messages, err := client.ListMessages(context.Background(), "thread_1", 1)

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, `{"data":{}}`, messages[0].Text)
}

func TestRunStatusTranslation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sdkStatus openai.RunStatus
		want      assistant.RunStatus
	}{
		{openai.RunStatusQueued, assistant.StatusQueued},
		{openai.RunStatusInProgress, assistant.StatusInProgress},
		{openai.RunStatusCompleted, assistant.StatusCompleted},
		{openai.RunStatusRequiresAction, assistant.StatusRequiresAction},
		{openai.RunStatusFailed, assistant.StatusFailed},
		{openai.RunStatusExpired, assistant.StatusExpired},
		{openai.RunStatusCancelled, assistant.StatusCancelled},
		{openai.RunStatus("incomplete"), assistant.StatusUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.sdkStatus), func(t *testing.T) {
			t.Parallel()

			fake := &fakeAPI{
				retrieveRunFn: func(ctx context.Context, threadID, runID string) (openai.Run, error) {
					return openai.Run{
						ID:          runID,
						ThreadID:    threadID,
						AssistantID: "asst_1",
						Status:      tc.sdkStatus,
					}, nil
				},
			}
			client := newTestClient(t, fake)

			run, err := client.RetrieveRun(context.Background(), "thread_1", "run_1")

			require.NoError(t, err)
			assert.Equal(t, tc.want, run.Status)
			assert.Equal(t, string(tc.sdkStatus), run.RawStatus)
		})
	}
}

func TestCreateRunUsesAssistantID(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{
		createRunFn: func(ctx context.Context, threadID string, req openai.RunRequest) (openai.Run, error) {
			assert.Equal(t, "asst_1", req.AssistantID)
			return openai.Run{
				ID:          "run_1",
				ThreadID:    threadID,
				AssistantID: req.AssistantID,
				Status:      openai.RunStatusQueued,
			}, nil
		},
	}
	client := newTestClient(t, fake)

	run, err := client.CreateRun(context.Background(), "thread_1", "asst_1")

	require.NoError(t, err)
	assert.Equal(t, assistant.StatusQueued, run.Status)
	assert.Equal(t, "run_1", run.ID)
}

func TestCreateAssistantTranslatesProfile(t *testing.T) {
	t.Parallel()

	var captured openai.AssistantRequest
	fake := &fakeAPI{
		createAssistantFn: func(ctx context.Context, req openai.AssistantRequest) (openai.Assistant, error) {
			captured = req
			return openai.Assistant{ID: "asst_1", Name: req.Name, Model: req.Model}, nil
		},
	}
	client := newTestClient(t, fake)

	profile := assistant.ValidatorProfile("gpt-4o-mini")
	created, err := client.CreateAssistant(context.Background(), profile)

	require.NoError(t, err)
	assert.Equal(t, "asst_1", created.ID)
	assert.Equal(t, profile.Name, created.Name)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.NotNil(t, captured.Instructions)
	assert.Equal(t, profile.Instructions, *captured.Instructions)
	require.Len(t, captured.Tools, 2)
	assert.Equal(t, openai.AssistantToolTypeFileSearch, captured.Tools[0].Type)
	assert.Equal(t, openai.AssistantToolTypeCodeInterpreter, captured.Tools[1].Type)
	assert.NotNil(t, captured.ResponseFormat)
}

func TestUploadFileSetsAssistantsPurpose(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{
		createFileFn: func(ctx context.Context, req openai.FileRequest) (openai.File, error) {
			assert.Equal(t, "assistants", req.Purpose)
			assert.Equal(t, "portfolio.pdf", req.FileName)
			return openai.File{ID: "file_1", FileName: req.FileName}, nil
		},
	}
	client := newTestClient(t, fake)

	file, err := client.UploadFile(context.Background(), "/tmp/uploads/portfolio.pdf")

	require.NoError(t, err)
	assert.Equal(t, "file_1", file.ID)
	assert.Equal(t, "portfolio.pdf", file.Name)
}

func TestDeleteFilePropagatesExhaustion(t *testing.T) {
	t.Parallel()

	deleteErr := errors.New("file not found")
	calls := 0
	fake := &fakeAPI{
		deleteFileFn: func(ctx context.Context, fileID string) error {
			calls++
			return deleteErr
		},
	}
	client := newTestClient(t, fake)

	err := client.DeleteFile(context.Background(), "file_1")

	require.Error(t, err)
	assert.ErrorIs(t, err, deleteErr, "the original error must survive retry exhaustion")
	assert.Equal(t, 2, calls)
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{
		transcriptionFn: func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
			assert.Equal(t, openai.Whisper1, req.Model)
			assert.Equal(t, "/tmp/answer.wav", req.FilePath)
			return openai.AudioResponse{Text: "my thesis was about distributed systems"}, nil
		},
	}
	client := newTestClient(t, fake)

	text, err := client.Transcribe(context.Background(), "/tmp/answer.wav")

	require.NoError(t, err)
	assert.Equal(t, "my thesis was about distributed systems", text)
}

func TestSynthesizeReadsSpeechBody(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{
		speechFn: func(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
			assert.Equal(t, openai.TTSModel1, req.Model)
			assert.Equal(t, openai.VoiceNova, req.Voice)
			assert.Equal(t, "hello applicant", req.Input)
			return openai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader("mp3-bytes"))}, nil
		},
	}
	client := newTestClient(t, fake)

	data, err := client.Synthesize(context.Background(), "hello applicant", "")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}
