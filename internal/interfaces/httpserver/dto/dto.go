package dto

import (
	"time"

	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
)

// PersonalityDTO carries the 0-100 tuning axes for one advisor.
type PersonalityDTO struct {
	Ethics        int    `json:"ethics"`
	RiskTolerance int    `json:"riskTolerance"`
	TimeHorizon   int    `json:"timeHorizon"`
	Ideology      int    `json:"ideology"`
	Experience    int    `json:"experience"`
	Preset        string `json:"preset,omitempty"`
}

// AdvisorSpecDTO defines one advisor in a create-council request.
type AdvisorSpecDTO struct {
	Name        string         `json:"name"`
	Archetype   string         `json:"archetype" binding:"required"`
	Personality PersonalityDTO `json:"personality"`
}

// CreateCouncilRequest creates a custom council.
type CreateCouncilRequest struct {
	UserID   string           `json:"userId"`
	Name     string           `json:"name" binding:"required"`
	Advisors []AdvisorSpecDTO `json:"advisors" binding:"required"`
}

// QuickCouncilRequest auto-builds a roster from the question. It only
// creates the council; running the debate is a separate call.
type QuickCouncilRequest struct {
	UserID   string `json:"userId"`
	Question string `json:"question" binding:"required"`
}

// DebateRequest starts a council debate stream.
type DebateRequest struct {
	UserID    string `json:"userId"`
	CouncilID string `json:"councilId" binding:"required"`
	Question  string `json:"question" binding:"required"`
	ThreadID  string `json:"threadId"`
}

// BoardDebateRequest starts a preset-board debate stream.
type BoardDebateRequest struct {
	UserID    string `json:"userId"`
	BoardType string `json:"boardType" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// AdvisorDTO is the outward form of one advisor.
type AdvisorDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Archetype   string          `json:"archetype"`
	Icon        string          `json:"icon"`
	Model       string          `json:"model"`
	Position    int             `json:"position"`
	Personality *PersonalityDTO `json:"personality,omitempty"`
}

// CouncilDTO is the outward form of one council.
type CouncilDTO struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	UsageCount int          `json:"usageCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	Advisors   []AdvisorDTO `json:"advisors"`
}

// ResponseDTO is one advisor turn in a transcript.
type ResponseDTO struct {
	Advisor   string    `json:"advisor"`
	Archetype string    `json:"archetype"`
	Round     int       `json:"round"`
	Position  int       `json:"position"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// DebateDTO is the outward form of one debate session.
type DebateDTO struct {
	ID          string        `json:"id"`
	Question    string        `json:"question"`
	Status      string        `json:"status"`
	Rounds      int           `json:"rounds"`
	CouncilID   string        `json:"councilId,omitempty"`
	BoardType   string        `json:"boardType,omitempty"`
	ThreadID    string        `json:"threadId,omitempty"`
	Verdict     string        `json:"verdict,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Responses   []ResponseDTO `json:"responses,omitempty"`
}

// FromCouncil converts a domain council to its outward form.
func FromCouncil(c *advisor.Council) CouncilDTO {
	out := CouncilDTO{
		ID:         c.PublicID,
		Name:       c.Name,
		Type:       string(c.Type),
		UsageCount: c.UsageCount,
		CreatedAt:  c.CreatedAt,
	}
	for _, a := range c.Advisors {
		out.Advisors = append(out.Advisors, FromAdvisor(&a))
	}
	return out
}

// FromAdvisor converts a domain advisor to its outward form.
func FromAdvisor(a *advisor.Advisor) AdvisorDTO {
	_, icon := advisor.Profile(a.Archetype)
	dtoAdvisor := AdvisorDTO{
		ID:        a.PublicID,
		Name:      a.Name,
		Archetype: string(a.Archetype),
		Icon:      icon,
		Model:     a.Model,
		Position:  a.Position,
	}
	if a.Personality != (advisor.Personality{}) {
		dtoAdvisor.Personality = &PersonalityDTO{
			Ethics:        a.Personality.Ethics,
			RiskTolerance: a.Personality.RiskTolerance,
			TimeHorizon:   a.Personality.TimeHorizon,
			Ideology:      a.Personality.Ideology,
			Experience:    a.Personality.Experience,
			Preset:        a.Personality.Preset,
		}
	}
	return dtoAdvisor
}

// FromDebate converts a domain debate to its outward form.
func FromDebate(d *debate.Debate, responses []debate.Response) DebateDTO {
	out := DebateDTO{
		ID:          d.PublicID,
		Question:    d.Question,
		Status:      string(d.Status),
		Rounds:      d.Rounds,
		CouncilID:   d.CouncilPublicID,
		BoardType:   d.BoardType,
		ThreadID:    d.ThreadID,
		Verdict:     d.Verdict,
		CreatedAt:   d.CreatedAt,
		CompletedAt: d.CompletedAt,
	}
	for _, r := range responses {
		out.Responses = append(out.Responses, ResponseDTO{
			Advisor:   r.AdvisorName,
			Archetype: r.Archetype,
			Round:     r.Round,
			Position:  r.Position,
			Content:   r.Content,
			Model:     r.Model,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// ToAdvisorSpec converts the request form into the domain spec.
func (s AdvisorSpecDTO) ToAdvisorSpec() advisor.AdvisorSpec {
	return advisor.AdvisorSpec{
		Name:      s.Name,
		Archetype: advisor.Archetype(s.Archetype),
		Personality: advisor.Personality{
			Ethics:        s.Personality.Ethics,
			RiskTolerance: s.Personality.RiskTolerance,
			TimeHorizon:   s.Personality.TimeHorizon,
			Ideology:      s.Personality.Ideology,
			Experience:    s.Personality.Experience,
			Preset:        s.Personality.Preset,
		},
	}
}
