package assistant

// Thread is a remote conversation container that messages and runs are
// created against.
type Thread struct {
	ID string
}

// Message is one message on a thread. Text carries the concatenated text
// content of the message.
type Message struct {
	ID       string
	ThreadID string
	Role     string
	Text     string
}

// MessageRequest describes a message to append to a thread. FileIDs
// attaches previously uploaded files for the assistant's file tools.
type MessageRequest struct {
	Role    string
	Text    string
	FileIDs []string
}

// Run is one asynchronously executing unit of assistant work on a thread.
type Run struct {
	ID          string
	ThreadID    string
	AssistantID string
	Status      RunStatus

	// RawStatus is the status string exactly as the remote service
	// reported it, kept for diagnostics when Status is StatusUnknown.
	RawStatus string
}

// RunHandle identifies the run a poll session is driving. It is owned by
// the caller and mutated only by the RunPoller, which replaces RunID and
// Status when it recreates a run.
type RunHandle struct {
	ThreadID    string
	RunID       string
	AssistantID string
	Status      RunStatus
}

// NewRunHandle builds the poll handle for a freshly created run.
func NewRunHandle(run *Run) *RunHandle {
	return &RunHandle{
		ThreadID:    run.ThreadID,
		RunID:       run.ID,
		AssistantID: run.AssistantID,
		Status:      run.Status,
	}
}

// File is a remote file uploaded for assistant tooling.
type File struct {
	ID   string
	Name string
}

// Assistant is a remotely provisioned assistant configuration.
type Assistant struct {
	ID    string
	Name  string
	Model string
}

// Profile is the definition an assistant is created or updated from.
// ResponseFormat carries the provider's structured-output schema verbatim.
type Profile struct {
	Name           string
	Instructions   string
	Model          string
	Tools          []string
	ResponseFormat map[string]any
}
