package debate

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/database/entities"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

// PostgresRepository is the transcript store: session metadata plus
// append-only advisor turns.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ domain.Repository = (*PostgresRepository)(nil)

// CreateDebate inserts the session row.
func (r *PostgresRepository) CreateDebate(ctx context.Context, d *domain.Debate) error {
	entity := entities.NewSchemaDebate(d)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create debate",
			err,
			"debate-create-db-001",
		)
	}
	d.ID = entity.ID
	d.CreatedAt = entity.CreatedAt
	return nil
}

// AppendResponse writes one advisor turn. The unique index on
// (debate_id, round, position) turns a duplicate turn into an error.
func (r *PostgresRepository) AppendResponse(ctx context.Context, resp *domain.Response) error {
	entity := entities.NewSchemaDebateResponse(resp)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append response",
			err,
			"debate-append-db-001",
		)
	}
	resp.ID = entity.ID
	resp.CreatedAt = entity.CreatedAt
	return nil
}

// GetTranscript returns every turn of a debate in round-then-position
// order.
func (r *PostgresRepository) GetTranscript(ctx context.Context, debateID uint) ([]domain.Response, error) {
	return r.transcript(ctx, debateID, 0)
}

// GetTranscriptBeforeRound returns turns from rounds strictly earlier
// than the given round, in round-then-position order.
func (r *PostgresRepository) GetTranscriptBeforeRound(ctx context.Context, debateID uint, round int) ([]domain.Response, error) {
	return r.transcript(ctx, debateID, round)
}

func (r *PostgresRepository) transcript(ctx context.Context, debateID uint, beforeRound int) ([]domain.Response, error) {
	query := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("round ASC, position ASC")
	if beforeRound > 0 {
		query = query.Where("round < ?", beforeRound)
	}

	var rows []entities.DebateResponse
	if err := query.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to read transcript",
			err,
			"debate-transcript-db-001",
		)
	}

	out := make([]domain.Response, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].EtoD())
	}
	return out, nil
}

// MarkCompleted stores the verdict and closes the session.
func (r *PostgresRepository) MarkCompleted(ctx context.Context, debateID uint, verdict string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&entities.Debate{}).
		Where("id = ?", debateID).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"verdict":      verdict,
			"completed_at": now,
		}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to mark debate completed",
			err,
			"debate-complete-db-001",
		)
	}
	return nil
}

// FindByPublicID loads one debate with its transcript. Returns nil
// without error when no row matches.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, userID, publicID string) (*domain.Debate, error) {
	var entity entities.Debate
	err := r.db.WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find debate",
			err,
			"debate-find-db-001",
		)
	}
	d := entity.EtoD()
	if err := r.fillCouncilPublicIDs(ctx, []*domain.Debate{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUser returns the user's debates, most recent first, without
// transcripts.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Debate, error) {
	var rows []entities.Debate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list debates",
			err,
			"debate-list-db-001",
		)
	}

	out := make([]*domain.Debate, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	if err := r.fillCouncilPublicIDs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// fillCouncilPublicIDs resolves the councils backing council-driven
// debates so history views can name them. Board debates have no
// council and are left alone.
func (r *PostgresRepository) fillCouncilPublicIDs(ctx context.Context, debates []*domain.Debate) error {
	ids := make([]uint, 0, len(debates))
	for _, d := range debates {
		if d.CouncilID != nil {
			ids = append(ids, *d.CouncilID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var councils []entities.Council
	err := r.db.WithContext(ctx).
		Select("id", "public_id").
		Where("id IN ?", ids).
		Find(&councils).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to resolve councils for debates",
			err,
			"debate-council-db-001",
		)
	}

	publicIDs := make(map[uint]string, len(councils))
	for i := range councils {
		publicIDs[councils[i].ID] = councils[i].PublicID
	}
	for _, d := range debates {
		if d.CouncilID != nil {
			d.CouncilPublicID = publicIDs[*d.CouncilID]
		}
	}
	return nil
}
