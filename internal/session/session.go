// Package session runs interview sessions against the interviewer
// assistant: it opens the conversation with the applicant's portfolio,
// exchanges answers for questions and tracks the question budget until the
// assistant delivers its final evaluation.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vivasim/viva-api/internal/assistant"
)

// Scores is the per-answer rubric the interviewer assistant reports.
type Scores struct {
	ClarityAndCommunication float64 `json:"clarity_and_communication"`
	RelevanceAndContent     float64 `json:"relevance_and_content"`
	CriticalThinking        float64 `json:"critical_thinking"`
	OverallImpact           float64 `json:"overall_impact"`
}

// Reply is one parsed interviewer response.
type Reply struct {
	Scores Scores `json:"scores"`
	Data   struct {
		Message     string `json:"message"`
		MessageType string `json:"message_type"`
	} `json:"data"`
	FinalEvaluation string `json:"final_evaluation"`
}

// Progress tracks the question budget of one interview.
type Progress struct {
	MinQuestions  int  `json:"min_questions"`
	MaxQuestions  int  `json:"max_questions"`
	QuestionCount int  `json:"question_count"`
	Completed     bool `json:"completed"`
}

// Remaining returns how many new questions may still be asked.
func (p Progress) Remaining() int {
	if remaining := p.MaxQuestions - p.QuestionCount; remaining > 0 {
		return remaining
	}
	return 0
}

// CanConclude reports whether the minimum question count is satisfied.
func (p Progress) CanConclude() bool {
	return p.QuestionCount >= p.MinQuestions
}

// ShouldConclude reports whether the question budget is used up.
func (p Progress) ShouldConclude() bool {
	return p.QuestionCount >= p.MaxQuestions
}

// Session is one applicant's interview. Its fields are guarded by mu since
// answers may arrive concurrently with status reads.
type Session struct {
	ID       uuid.UUID
	ThreadID string
	Language string

	mu       sync.Mutex
	progress Progress
}

// Progress returns a snapshot of the session's question budget.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// apply folds one interviewer reply into the budget: new questions consume
// it, the final evaluation completes the interview, follow-ups and asides
// are free.
func (s *Session) apply(reply *Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch reply.Data.MessageType {
	case assistant.MessageTypeQuestion:
		s.progress.QuestionCount++
	case assistant.MessageTypeFinalEval:
		s.progress.Completed = true
	}
}

// registry is an in-memory index of live sessions.
type registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[uuid.UUID]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *registry) get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
