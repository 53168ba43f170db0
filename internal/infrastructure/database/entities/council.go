package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"clarus-server/services/council-api/internal/domain/advisor"
)

// Council represents the database schema for councils
type Council struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID   string `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID     string `gorm:"type:varchar(64);index:idx_council_user;not null"`
	Name       string `gorm:"type:varchar(128);not null"`
	Type       string `gorm:"type:varchar(20);not null;default:'custom'"`
	UsageCount int    `gorm:"not null;default:0"`

	Advisors []Advisor `gorm:"foreignKey:CouncilID"`
}

// TableName specifies the table name for Council.
func (Council) TableName() string {
	return "councils"
}

// Advisor represents the database schema for advisors
type Advisor struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID     string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	CouncilID    uint           `gorm:"index:idx_advisor_council;not null"`
	Name         string         `gorm:"type:varchar(128);not null"`
	Archetype    string         `gorm:"type:varchar(32);not null"`
	Position     int            `gorm:"not null;default:0"`
	Model        string         `gorm:"type:varchar(64);not null"`
	SystemPrompt string         `gorm:"type:text;not null"`
	Personality  datatypes.JSON `gorm:"type:jsonb"`
}

// TableName specifies the table name for Advisor.
func (Advisor) TableName() string {
	return "advisors"
}

// NewSchemaCouncil converts a domain council into its database form.
func NewSchemaCouncil(c *advisor.Council) *Council {
	entity := &Council{
		ID:         c.ID,
		PublicID:   c.PublicID,
		UserID:     c.UserID,
		Name:       c.Name,
		Type:       string(c.Type),
		UsageCount: c.UsageCount,
	}
	for _, a := range c.Advisors {
		entity.Advisors = append(entity.Advisors, *NewSchemaAdvisor(&a))
	}
	return entity
}

// NewSchemaAdvisor converts a domain advisor into its database form.
func NewSchemaAdvisor(a *advisor.Advisor) *Advisor {
	personality, _ := json.Marshal(a.Personality)
	return &Advisor{
		ID:           a.ID,
		PublicID:     a.PublicID,
		CouncilID:    a.CouncilID,
		Name:         a.Name,
		Archetype:    string(a.Archetype),
		Position:     a.Position,
		Model:        a.Model,
		SystemPrompt: a.SystemPrompt,
		Personality:  datatypes.JSON(personality),
	}
}

// EtoD converts the entity to its domain form.
func (e *Council) EtoD() *advisor.Council {
	c := &advisor.Council{
		ID:         e.ID,
		PublicID:   e.PublicID,
		UserID:     e.UserID,
		Name:       e.Name,
		Type:       advisor.CouncilType(e.Type),
		UsageCount: e.UsageCount,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	for i := range e.Advisors {
		c.Advisors = append(c.Advisors, *e.Advisors[i].EtoD())
	}
	return c
}

// EtoD converts the entity to its domain form.
func (e *Advisor) EtoD() *advisor.Advisor {
	var personality advisor.Personality
	if len(e.Personality) > 0 {
		_ = json.Unmarshal(e.Personality, &personality)
	}
	return &advisor.Advisor{
		ID:           e.ID,
		PublicID:     e.PublicID,
		CouncilID:    e.CouncilID,
		Name:         e.Name,
		Archetype:    advisor.Archetype(e.Archetype),
		Position:     e.Position,
		Model:        e.Model,
		SystemPrompt: e.SystemPrompt,
		Personality:  personality,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
