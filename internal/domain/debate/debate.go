package debate

import (
	"context"
	"time"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Debate is the session-level record of one multi-round discussion.
// CouncilPublicID is a read-side convenience filled in by the store so
// history views can name the council without a second lookup.
type Debate struct {
	ID              uint
	PublicID        string
	UserID          string
	CouncilID       *uint
	CouncilPublicID string
	BoardType       string
	Question        string
	ThreadID        string
	Rounds          int
	Status          Status
	Verdict         string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// Response is one advisor's completed turn. Rows are append-only; a
// correction is a new turn in a later round, never a mutation.
type Response struct {
	ID          uint
	DebateID    uint
	AdvisorName string
	Archetype   string
	Round       int
	Position    int
	Content     string
	Model       string
	CreatedAt   time.Time
}

// Participant is one seat in a debate, however the roster was resolved.
type Participant struct {
	Name         string
	Archetype    string
	Icon         string
	Model        string
	SystemPrompt string
	Position     int
}

// Repository is the transcript store. Responses are append-only and
// both read paths return rows ordered by round then position.
type Repository interface {
	CreateDebate(ctx context.Context, d *Debate) error
	AppendResponse(ctx context.Context, r *Response) error
	GetTranscript(ctx context.Context, debateID uint) ([]Response, error)
	GetTranscriptBeforeRound(ctx context.Context, debateID uint, round int) ([]Response, error)
	MarkCompleted(ctx context.Context, debateID uint, verdict string) error
	FindByPublicID(ctx context.Context, userID, publicID string) (*Debate, error)
	ListByUser(ctx context.Context, userID string) ([]*Debate, error)
}
