package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/utils/idgen"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

const (
	councilIDPrefix = "cncl"
	advisorIDPrefix = "advr"
	publicIDLength  = 24
)

// AdvisorSpec is the caller-supplied definition of one custom advisor.
type AdvisorSpec struct {
	Name        string
	Archetype   Archetype
	Personality Personality
}

// RosterService resolves the ordered advisor list a debate runs over,
// whichever way the caller chose it: a saved council, a quick roster
// auto-built from the question, or a preset board handled elsewhere.
type RosterService struct {
	repo   Repository
	tiers  ModelTiers
	logger zerolog.Logger
}

func NewRosterService(repo Repository, tiers ModelTiers, logger zerolog.Logger) *RosterService {
	return &RosterService{
		repo:   repo,
		tiers:  tiers,
		logger: logger.With().Str("component", "roster").Logger(),
	}
}

// ResolveCouncil loads a council with its advisors ordered by position.
// A council with zero advisors cannot debate and resolves as NotFound.
func (s *RosterService) ResolveCouncil(ctx context.Context, userID, councilPublicID string) (*Council, error) {
	council, err := s.repo.FindCouncilByPublicID(ctx, userID, councilPublicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve council")
	}
	if council == nil || len(council.Advisors) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("No advisors found for council %s", councilPublicID), nil, "")
	}
	return council, nil
}

// CreateCouncil persists a custom council, rendering each advisor's
// system prompt from its archetype and personality axes and selecting
// its backing model from the experience axis.
func (s *RosterService) CreateCouncil(ctx context.Context, userID, name string, specs []AdvisorSpec) (*Council, error) {
	if strings.TrimSpace(name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"council name is required", nil, "")
	}
	if len(specs) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"a council needs at least one advisor", nil, "")
	}

	councilID, err := idgen.GenerateSecureID(councilIDPrefix, publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate council id", err, "")
	}

	council := &Council{
		PublicID: councilID,
		UserID:   userID,
		Name:     name,
		Type:     CouncilTypeCustom,
	}
	for i, spec := range specs {
		if _, ok := archetypeProfiles[spec.Archetype]; !ok {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("unknown archetype %q", spec.Archetype), nil, "")
		}
		advisorID, err := idgen.GenerateSecureID(advisorIDPrefix, publicIDLength)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to generate advisor id", err, "")
		}
		advName := spec.Name
		if strings.TrimSpace(advName) == "" {
			advName, _ = Profile(spec.Archetype)
		}
		council.Advisors = append(council.Advisors, Advisor{
			PublicID:     advisorID,
			Name:         advName,
			Archetype:    spec.Archetype,
			Position:     i,
			Model:        s.tiers.ModelForExperience(spec.Personality.Experience),
			SystemPrompt: RenderSystemPrompt(spec.Archetype, spec.Personality),
			Personality:  spec.Personality,
		})
	}

	if err := s.repo.CreateCouncil(ctx, council); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create council")
	}
	s.logger.Info().
		Str("council_id", council.PublicID).
		Str("user_id", userID).
		Int("advisors", len(council.Advisors)).
		Msg("council created")
	return council, nil
}

// BuildQuickCouncil classifies the question, picks the archetype triple
// for it and persists the resulting council so the subsequent debate
// call can resolve it by id. Quick advisors use the archetypes' fixed
// base prompts and the standard model tier.
func (s *RosterService) BuildQuickCouncil(ctx context.Context, userID, question string) (*Council, error) {
	if strings.TrimSpace(question) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"question is required", nil, "")
	}

	archetypes := ArchetypesFor(question)

	councilID, err := idgen.GenerateSecureID(councilIDPrefix, publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate council id", err, "")
	}
	council := &Council{
		PublicID: councilID,
		UserID:   userID,
		Name:     quickCouncilName(question),
		Type:     CouncilTypeQuick,
	}
	for i, archetype := range archetypes {
		advisorID, err := idgen.GenerateSecureID(advisorIDPrefix, publicIDLength)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to generate advisor id", err, "")
		}
		name, _ := Profile(archetype)
		council.Advisors = append(council.Advisors, Advisor{
			PublicID:     advisorID,
			Name:         name,
			Archetype:    archetype,
			Position:     i,
			Model:        s.tiers.Standard,
			SystemPrompt: archetypeProfiles[archetype].BasePrompt,
		})
	}

	if err := s.repo.CreateCouncil(ctx, council); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create quick council")
	}
	s.logger.Info().
		Str("council_id", council.PublicID).
		Str("user_id", userID).
		Msg("quick council created")
	return council, nil
}

func quickCouncilName(question string) string {
	const maxLen = 60
	q := []rune(strings.TrimSpace(question))
	if len(q) > maxLen {
		q = append(q[:maxLen], '…')
	}
	return "Quick Council: " + string(q)
}
