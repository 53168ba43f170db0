package advisor

import (
	"context"
	"time"
)

type Archetype string

const (
	ArchetypeVisionary    Archetype = "visionary"
	ArchetypeGuardian     Archetype = "guardian"
	ArchetypeRealist      Archetype = "realist"
	ArchetypeCounselor    Archetype = "counselor"
	ArchetypeMentor       Archetype = "mentor"
	ArchetypeSage         Archetype = "sage"
	ArchetypeArtist       Archetype = "artist"
	ArchetypeCritic       Archetype = "critic"
	ArchetypeCraftsperson Archetype = "craftsperson"
	ArchetypeBuilder      Archetype = "builder"
	ArchetypeEthicist     Archetype = "ethicist"
	ArchetypeContrarian   Archetype = "contrarian"
)

type CouncilType string

const (
	CouncilTypeCustom CouncilType = "custom"
	CouncilTypeQuick  CouncilType = "quick"
)

// Personality holds the 0-100 tuning axes applied on top of an
// archetype's base prompt.
type Personality struct {
	Ethics        int    `json:"ethics"`
	RiskTolerance int    `json:"risk_tolerance"`
	TimeHorizon   int    `json:"time_horizon"`
	Ideology      int    `json:"ideology"`
	Experience    int    `json:"experience"`
	Preset        string `json:"preset,omitempty"`
}

type Advisor struct {
	ID           uint
	PublicID     string
	CouncilID    uint
	Name         string
	Archetype    Archetype
	Position     int
	Model        string
	SystemPrompt string
	Personality  Personality
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Council struct {
	ID         uint
	PublicID   string
	UserID     string
	Name       string
	Type       CouncilType
	UsageCount int
	Advisors   []Advisor
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	CreateCouncil(ctx context.Context, council *Council) error
	FindCouncilByPublicID(ctx context.Context, userID, publicID string) (*Council, error)
	ListCouncilsByUser(ctx context.Context, userID string) ([]*Council, error)
	IncrementUsage(ctx context.Context, councilID uint) error
}
