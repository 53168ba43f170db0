package entities

import (
	"time"

	"clarus-server/services/council-api/internal/domain/debate"
)

// Debate represents the database schema for debate sessions
type Debate struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID    string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID      string     `gorm:"type:varchar(64);index:idx_debate_user;not null"`
	CouncilID   *uint      `gorm:"index:idx_debate_council"`
	BoardType   *string    `gorm:"type:varchar(32)"`
	Question    string     `gorm:"type:text;not null"`
	ThreadID    *string    `gorm:"type:varchar(64)"`
	Rounds      int        `gorm:"not null;default:3"`
	Status      string     `gorm:"type:varchar(20);not null;default:'in_progress'"`
	Verdict     *string    `gorm:"type:text"`
	CompletedAt *time.Time `gorm:"type:timestamp"`

	Responses []DebateResponse `gorm:"foreignKey:DebateID"`
}

// TableName specifies the table name for Debate.
func (Debate) TableName() string {
	return "debates"
}

// DebateResponse represents the database schema for one advisor turn.
// Rows are append-only; the unique index makes a duplicate turn a
// constraint violation rather than a silent overwrite.
type DebateResponse struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	DebateID    uint   `gorm:"uniqueIndex:idx_debate_round_position;index:idx_response_debate;not null"`
	Round       int    `gorm:"uniqueIndex:idx_debate_round_position;not null"`
	Position    int    `gorm:"uniqueIndex:idx_debate_round_position;not null"`
	AdvisorName string `gorm:"type:varchar(128);not null"`
	Archetype   string `gorm:"type:varchar(64);not null"`
	Model       string `gorm:"type:varchar(64);not null"`
	Content     string `gorm:"type:text;not null"`
}

// TableName specifies the table name for DebateResponse.
func (DebateResponse) TableName() string {
	return "debate_responses"
}

// NewSchemaDebate converts a domain debate into its database form.
func NewSchemaDebate(d *debate.Debate) *Debate {
	entity := &Debate{
		ID:          d.ID,
		PublicID:    d.PublicID,
		UserID:      d.UserID,
		CouncilID:   d.CouncilID,
		Question:    d.Question,
		Rounds:      d.Rounds,
		Status:      string(d.Status),
		CompletedAt: d.CompletedAt,
	}
	if d.BoardType != "" {
		entity.BoardType = &d.BoardType
	}
	if d.ThreadID != "" {
		entity.ThreadID = &d.ThreadID
	}
	if d.Verdict != "" {
		entity.Verdict = &d.Verdict
	}
	return entity
}

// NewSchemaDebateResponse converts a domain response into its database form.
func NewSchemaDebateResponse(r *debate.Response) *DebateResponse {
	return &DebateResponse{
		ID:          r.ID,
		DebateID:    r.DebateID,
		Round:       r.Round,
		Position:    r.Position,
		AdvisorName: r.AdvisorName,
		Archetype:   r.Archetype,
		Model:       r.Model,
		Content:     r.Content,
	}
}

// EtoD converts the entity to its domain form.
func (e *Debate) EtoD() *debate.Debate {
	d := &debate.Debate{
		ID:          e.ID,
		PublicID:    e.PublicID,
		UserID:      e.UserID,
		CouncilID:   e.CouncilID,
		Question:    e.Question,
		Rounds:      e.Rounds,
		Status:      debate.Status(e.Status),
		CreatedAt:   e.CreatedAt,
		CompletedAt: e.CompletedAt,
	}
	if e.BoardType != nil {
		d.BoardType = *e.BoardType
	}
	if e.ThreadID != nil {
		d.ThreadID = *e.ThreadID
	}
	if e.Verdict != nil {
		d.Verdict = *e.Verdict
	}
	return d
}

// EtoD converts the entity to its domain form.
func (e *DebateResponse) EtoD() *debate.Response {
	return &debate.Response{
		ID:          e.ID,
		DebateID:    e.DebateID,
		Round:       e.Round,
		Position:    e.Position,
		AdvisorName: e.AdvisorName,
		Archetype:   e.Archetype,
		Model:       e.Model,
		Content:     e.Content,
		CreatedAt:   e.CreatedAt,
	}
}
