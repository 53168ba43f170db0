package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarus-server/services/council-api/internal/utils/platformerrors"
)

type fakeCouncilRepo struct {
	councils  map[string]*Council
	createErr error
	findErr   error
}

func newFakeCouncilRepo() *fakeCouncilRepo {
	return &fakeCouncilRepo{councils: make(map[string]*Council)}
}

func (r *fakeCouncilRepo) CreateCouncil(ctx context.Context, council *Council) error {
	if r.createErr != nil {
		return r.createErr
	}
	council.ID = uint(len(r.councils) + 1)
	r.councils[council.PublicID] = council
	return nil
}

func (r *fakeCouncilRepo) FindCouncilByPublicID(ctx context.Context, userID, publicID string) (*Council, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.councils[publicID]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCouncilRepo) ListCouncilsByUser(ctx context.Context, userID string) ([]*Council, error) {
	var out []*Council
	for _, c := range r.councils {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouncilRepo) IncrementUsage(ctx context.Context, councilID uint) error {
	return nil
}

var testTiers = ModelTiers{Standard: "gpt-4o-mini", Advanced: "gpt-4o", Premium: "gpt-4-turbo"}

func newTestRosterService(repo Repository) *RosterService {
	return NewRosterService(repo, testTiers, zerolog.Nop())
}

func TestBuildQuickCouncil(t *testing.T) {
	repo := newFakeCouncilRepo()
	svc := newTestRosterService(repo)

	council, err := svc.BuildQuickCouncil(context.Background(), "user-1", "Should I raise prices 10%?")
	require.NoError(t, err)
	require.NotNil(t, council)

	assert.True(t, strings.HasPrefix(council.PublicID, "cncl_"))
	assert.Equal(t, CouncilTypeQuick, council.Type)
	assert.Equal(t, "user-1", council.UserID)
	require.Len(t, council.Advisors, 3)

	for i, adv := range council.Advisors {
		assert.Equal(t, i, adv.Position)
		assert.True(t, strings.HasPrefix(adv.PublicID, "advr_"))
		assert.Equal(t, testTiers.Standard, adv.Model)
		assert.NotEmpty(t, adv.SystemPrompt)
		assert.NotEmpty(t, adv.Name)
	}
	assert.Equal(t, ArchetypeVisionary, council.Advisors[0].Archetype)
	assert.Equal(t, ArchetypeGuardian, council.Advisors[1].Archetype)
	assert.Equal(t, ArchetypeContrarian, council.Advisors[2].Archetype)
}

func TestBuildQuickCouncilEmptyQuestion(t *testing.T) {
	svc := newTestRosterService(newFakeCouncilRepo())

	_, err := svc.BuildQuickCouncil(context.Background(), "user-1", "   ")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestCreateCouncil(t *testing.T) {
	repo := newFakeCouncilRepo()
	svc := newTestRosterService(repo)

	council, err := svc.CreateCouncil(context.Background(), "user-1", "My Board", []AdvisorSpec{
		{Name: "Ada", Archetype: ArchetypeBuilder, Personality: Personality{Experience: 90, RiskTolerance: 10}},
		{Archetype: ArchetypeGuardian, Personality: Personality{Experience: 50}},
	})
	require.NoError(t, err)
	require.Len(t, council.Advisors, 2)

	assert.Equal(t, "Ada", council.Advisors[0].Name)
	assert.Equal(t, testTiers.Premium, council.Advisors[0].Model)
	assert.Contains(t, council.Advisors[0].SystemPrompt, "The Builder")
	assert.Contains(t, council.Advisors[0].SystemPrompt, "risk-averse")

	assert.Equal(t, "The Guardian", council.Advisors[1].Name)
	assert.Equal(t, testTiers.Advanced, council.Advisors[1].Model)
}

func TestCreateCouncilValidation(t *testing.T) {
	svc := newTestRosterService(newFakeCouncilRepo())
	ctx := context.Background()

	_, err := svc.CreateCouncil(ctx, "user-1", "", []AdvisorSpec{{Archetype: ArchetypeSage}})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.CreateCouncil(ctx, "user-1", "Board", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.CreateCouncil(ctx, "user-1", "Board", []AdvisorSpec{{Archetype: Archetype("wizard")}})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestResolveCouncil(t *testing.T) {
	repo := newFakeCouncilRepo()
	svc := newTestRosterService(repo)
	ctx := context.Background()

	created, err := svc.CreateCouncil(ctx, "user-1", "Board", []AdvisorSpec{{Archetype: ArchetypeSage}})
	require.NoError(t, err)

	resolved, err := svc.ResolveCouncil(ctx, "user-1", created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, created.PublicID, resolved.PublicID)

	_, err = svc.ResolveCouncil(ctx, "user-1", "cncl_missing")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	// council owned by someone else resolves as NotFound, not Forbidden
	_, err = svc.ResolveCouncil(ctx, "user-2", created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	repo.councils["cncl_empty"] = &Council{PublicID: "cncl_empty", UserID: "user-1"}
	_, err = svc.ResolveCouncil(ctx, "user-1", "cncl_empty")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestResolveCouncilRepositoryError(t *testing.T) {
	repo := newFakeCouncilRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestRosterService(repo)

	_, err := svc.ResolveCouncil(context.Background(), "user-1", "cncl_x")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeInternal))
}

func TestModelForExperienceMonotonic(t *testing.T) {
	rank := map[string]int{testTiers.Standard: 0, testTiers.Advanced: 1, testTiers.Premium: 2}
	prev := 0
	for exp := 0; exp <= 100; exp++ {
		cur := rank[testTiers.ModelForExperience(exp)]
		assert.GreaterOrEqual(t, cur, prev, "experience %d", exp)
		prev = cur
	}
}

func TestRenderSystemPromptPreset(t *testing.T) {
	p := RenderSystemPrompt(ArchetypeSage, Personality{Ethics: 50, RiskTolerance: 50, TimeHorizon: 50, Ideology: 50, Preset: "operator"})
	assert.Contains(t, p, "The Sage")
	assert.Contains(t, p, "concrete next step")

	noPreset := RenderSystemPrompt(ArchetypeSage, Personality{})
	assert.NotContains(t, noPreset, "concrete next step")
}

func TestRenderSystemPromptExperienceBand(t *testing.T) {
	// experience shades the voice as well as picking the model tier
	novice := RenderSystemPrompt(ArchetypeBuilder, Personality{Experience: 10})
	assert.Contains(t, novice, "early in your practice")

	seasoned := RenderSystemPrompt(ArchetypeBuilder, Personality{Experience: 50})
	assert.Contains(t, seasoned, "seasoned")

	veteran := RenderSystemPrompt(ArchetypeBuilder, Personality{Experience: 90})
	assert.Contains(t, veteran, "veteran")
	assert.NotContains(t, veteran, "early in your practice")
}
