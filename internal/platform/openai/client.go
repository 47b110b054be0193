// Package openai implements the assistant service boundary on top of the
// OpenAI Assistants API using github.com/sashabaranov/go-openai. Every
// remote call is routed through the resilient request executor, so callers
// get uniform retry, per-attempt timeout and backoff behavior.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vivasim/viva-api/internal/assistant"
	"github.com/vivasim/viva-api/internal/async"
)

// api captures the subset of the go-openai client used by the adapter.
type api interface {
	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order, after, before, runID *string) (openai.MessagesList, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error)
	CancelRun(ctx context.Context, threadID, runID string) (openai.Run, error)
	CreateAssistant(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error)
	ModifyAssistant(ctx context.Context, assistantID string, request openai.AssistantRequest) (openai.Assistant, error)
	CreateFile(ctx context.Context, request openai.FileRequest) (openai.File, error)
	DeleteFile(ctx context.Context, fileID string) error
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// Options configures the adapter.
type Options struct {
	// Client is the underlying SDK client. Required.
	Client api

	// Executor runs every remote call. Required.
	Executor *async.Executor

	// Logger receives adapter-level diagnostics. Required.
	Logger *slog.Logger
}

// Client adapts the go-openai SDK to the assistant.Client interface.
type Client struct {
	api      api
	executor *async.Executor
	logger   *slog.Logger
}

var _ assistant.Client = (*Client)(nil)

// New builds an adapter from the provided options.
func New(opts Options) (*Client, error) {
	if opts.Client == nil {
		return nil, errors.New("sdk client is required")
	}
	if opts.Executor == nil {
		return nil, errors.New("executor is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Client{
		api:      opts.Client,
		executor: opts.Executor,
		logger:   opts.Logger,
	}, nil
}

// NewFromAPIKey constructs an adapter using the default SDK HTTP client.
func NewFromAPIKey(apiKey string, executor *async.Executor, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	return New(Options{
		Client:   openai.NewClient(apiKey),
		Executor: executor,
		Logger:   logger,
	})
}

// CreateThread starts a new conversation thread.
func (c *Client) CreateThread(ctx context.Context) (*assistant.Thread, error) {
	result, err := c.executor.Do(ctx, "create_thread", func() (any, error) {
		return c.api.CreateThread(ctx, openai.ThreadRequest{})
	})
	if err != nil {
		return nil, err
	}
	thread := result.(openai.Thread)
	return &assistant.Thread{ID: thread.ID}, nil
}

// CreateMessage appends a message to the thread. File IDs are attached for
// the file_search tool so assistants can read uploaded documents.
func (c *Client) CreateMessage(ctx context.Context, threadID string, req assistant.MessageRequest) (*assistant.Message, error) {
	sdkReq := openai.MessageRequest{
		Role:    req.Role,
		Content: req.Text,
	}
	for _, fileID := range req.FileIDs {
		sdkReq.Attachments = append(sdkReq.Attachments, openai.ThreadAttachment{
			FileID: fileID,
			Tools: []openai.ThreadAttachmentTool{
				{Type: string(openai.AssistantToolTypeFileSearch)},
				{Type: string(openai.AssistantToolTypeCodeInterpreter)},
			},
		})
	}

	result, err := c.executor.Do(ctx, "create_message", func() (any, error) {
		return c.api.CreateMessage(ctx, threadID, sdkReq)
	})
	if err != nil {
		return nil, err
	}
	msg := result.(openai.Message)
	return translateMessage(msg), nil
}

// ListMessages returns the most recent messages on the thread, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string, limit int) ([]assistant.Message, error) {
	result, err := c.executor.Do(ctx, "list_messages", func() (any, error) {
		return c.api.ListMessage(ctx, threadID, &limit, nil, nil, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	list := result.(openai.MessagesList)

	messages := make([]assistant.Message, 0, len(list.Messages))
	for _, msg := range list.Messages {
		messages = append(messages, *translateMessage(msg))
	}
	return messages, nil
}

// CreateRun starts a run of the given assistant against the thread.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (*assistant.Run, error) {
	result, err := c.executor.Do(ctx, "create_run", func() (any, error) {
		return c.api.CreateRun(ctx, threadID, openai.RunRequest{AssistantID: assistantID})
	})
	if err != nil {
		return nil, err
	}
	run := result.(openai.Run)
	return translateRun(run), nil
}

// RetrieveRun reads the current state of a run.
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	result, err := c.executor.Do(ctx, "retrieve_run", func() (any, error) {
		return c.api.RetrieveRun(ctx, threadID, runID)
	})
	if err != nil {
		return nil, err
	}
	run := result.(openai.Run)
	return translateRun(run), nil
}

// CancelRun requests cancellation of an in-flight run.
func (c *Client) CancelRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	result, err := c.executor.Do(ctx, "cancel_run", func() (any, error) {
		return c.api.CancelRun(ctx, threadID, runID)
	})
	if err != nil {
		return nil, err
	}
	run := result.(openai.Run)
	return translateRun(run), nil
}

// CreateAssistant provisions a new assistant from the profile.
func (c *Client) CreateAssistant(ctx context.Context, profile assistant.Profile) (*assistant.Assistant, error) {
	req := translateProfile(profile)
	result, err := c.executor.Do(ctx, "create_assistant", func() (any, error) {
		return c.api.CreateAssistant(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	sdkAssistant := result.(openai.Assistant)
	return translateAssistant(sdkAssistant), nil
}

// UpdateAssistant reconfigures an existing assistant in place.
func (c *Client) UpdateAssistant(ctx context.Context, assistantID string, profile assistant.Profile) (*assistant.Assistant, error) {
	req := translateProfile(profile)
	result, err := c.executor.Do(ctx, "update_assistant", func() (any, error) {
		return c.api.ModifyAssistant(ctx, assistantID, req)
	})
	if err != nil {
		return nil, err
	}
	sdkAssistant := result.(openai.Assistant)
	return translateAssistant(sdkAssistant), nil
}

// UploadFile uploads a local file for use by assistant tools.
func (c *Client) UploadFile(ctx context.Context, path string) (*assistant.File, error) {
	result, err := c.executor.Do(ctx, "upload_file", func() (any, error) {
		return c.api.CreateFile(ctx, openai.FileRequest{
			FileName: filepath.Base(path),
			FilePath: path,
			Purpose:  "assistants",
		})
	})
	if err != nil {
		return nil, err
	}
	file := result.(openai.File)
	return &assistant.File{ID: file.ID, Name: file.FileName}, nil
}

// DeleteFile removes a previously uploaded file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	_, err := c.executor.Do(ctx, "delete_file", func() (any, error) {
		return nil, c.api.DeleteFile(ctx, fileID)
	})
	return err
}

// Transcribe converts the audio file at path to text using the Whisper
// model.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	result, err := c.executor.Do(ctx, "transcribe", func() (any, error) {
		return c.api.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			FilePath: path,
		})
	})
	if err != nil {
		return "", err
	}
	resp := result.(openai.AudioResponse)
	return resp.Text, nil
}

// Synthesize renders text to MP3 speech audio.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = string(openai.VoiceNova)
	}
	result, err := c.executor.Do(ctx, "synthesize", func() (any, error) {
		resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
			Model:          openai.TTSModel1,
			Input:          text,
			Voice:          openai.SpeechVoice(voice),
			ResponseFormat: openai.SpeechResponseFormatMp3,
		})
		if err != nil {
			return nil, err
		}
		defer resp.Close()
		data, err := io.ReadAll(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read speech response: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// translateMessage flattens the structured message content into plain text.
func translateMessage(msg openai.Message) *assistant.Message {
	var text string
	for _, part := range msg.Content {
		if part.Text != nil {
			text += part.Text.Value
		}
	}
	return &assistant.Message{
		ID:       msg.ID,
		ThreadID: msg.ThreadID,
		Role:     msg.Role,
		Text:     text,
	}
}

func translateRun(run openai.Run) *assistant.Run {
	raw := string(run.Status)
	return &assistant.Run{
		ID:          run.ID,
		ThreadID:    run.ThreadID,
		AssistantID: run.AssistantID,
		Status:      assistant.ParseRunStatus(raw),
		RawStatus:   raw,
	}
}

func translateAssistant(a openai.Assistant) *assistant.Assistant {
	name := ""
	if a.Name != nil {
		name = *a.Name
	}
	return &assistant.Assistant{
		ID:    a.ID,
		Name:  name,
		Model: a.Model,
	}
}

func translateProfile(profile assistant.Profile) openai.AssistantRequest {
	name := profile.Name
	instructions := profile.Instructions

	req := openai.AssistantRequest{
		Model:        profile.Model,
		Name:         &name,
		Instructions: &instructions,
	}
	for _, tool := range profile.Tools {
		req.Tools = append(req.Tools, openai.AssistantTool{
			Type: openai.AssistantToolType(tool),
		})
	}
	if profile.ResponseFormat != nil {
		req.ResponseFormat = profile.ResponseFormat
	}
	return req
}
