package council

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/infrastructure/database/entities"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for councils and advisors.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ domain.Repository = (*PostgresRepository)(nil)

// CreateCouncil inserts a council with its advisors in one transaction.
func (r *PostgresRepository) CreateCouncil(ctx context.Context, council *domain.Council) error {
	entity := entities.NewSchemaCouncil(council)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create council",
			err,
			"council-create-db-001",
		)
	}

	council.ID = entity.ID
	for i := range entity.Advisors {
		council.Advisors[i].ID = entity.Advisors[i].ID
		council.Advisors[i].CouncilID = entity.ID
	}
	return nil
}

// FindCouncilByPublicID loads a council and its advisors ordered by
// position. Returns nil without error when no row matches.
func (r *PostgresRepository) FindCouncilByPublicID(ctx context.Context, userID, publicID string) (*domain.Council, error) {
	var entity entities.Council
	err := r.db.WithContext(ctx).
		Preload("Advisors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
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
			"failed to find council",
			err,
			"council-find-db-001",
		)
	}
	return entity.EtoD(), nil
}

// ListCouncilsByUser returns the user's councils, most recent first.
func (r *PostgresRepository) ListCouncilsByUser(ctx context.Context, userID string) ([]*domain.Council, error) {
	var rows []entities.Council
	err := r.db.WithContext(ctx).
		Preload("Advisors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list councils",
			err,
			"council-list-db-001",
		)
	}

	out := make([]*domain.Council, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

// IncrementUsage bumps the council's usage counter.
func (r *PostgresRepository) IncrementUsage(ctx context.Context, councilID uint) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Council{}).
		Where("id = ?", councilID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to increment council usage",
			err,
			"council-usage-db-001",
		)
	}
	return nil
}
