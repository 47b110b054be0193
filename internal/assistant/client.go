package assistant

import "context"

// Client is the remote assistant service boundary. Implementations are
// expected to route every call through the resilient request executor so
// transient transport failures are retried uniformly.
type Client interface {
	// CreateThread starts a new conversation thread.
	CreateThread(ctx context.Context) (*Thread, error)

	// CreateMessage appends a message to the thread.
	CreateMessage(ctx context.Context, threadID string, req MessageRequest) (*Message, error)

	// ListMessages returns the most recent messages on the thread,
	// newest first.
	ListMessages(ctx context.Context, threadID string, limit int) ([]Message, error)

	// CreateRun starts a run of the given assistant against the thread.
	CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error)

	// RetrieveRun reads the current state of a run.
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)

	// CancelRun requests cancellation of an in-flight run.
	CancelRun(ctx context.Context, threadID, runID string) (*Run, error)

	// CreateAssistant provisions a new assistant from the profile.
	CreateAssistant(ctx context.Context, profile Profile) (*Assistant, error)

	// UpdateAssistant reconfigures an existing assistant in place.
	UpdateAssistant(ctx context.Context, assistantID string, profile Profile) (*Assistant, error)

	// UploadFile uploads a local file for use by assistant tools.
	UploadFile(ctx context.Context, path string) (*File, error)

	// DeleteFile removes a previously uploaded file.
	DeleteFile(ctx context.Context, fileID string) error
}
