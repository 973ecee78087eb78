package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
)

type locationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLocationRepository создает новый экземпляр LocationRepository
func NewLocationRepository(db *DB) repository.LocationRepository {
	return &locationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const locationColumns = `
	id, name, category, address, lat, lon,
	description, instagram_url, website, location_key,
	created_at, updated_at
`

// Create сохраняет новую локацию
func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		location.ID.String(), location.Name, location.Category, location.Address,
		location.Lat, location.Lon, location.Description,
		location.InstagramURL, location.Website, location.LocationKey,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create location", zap.String("id", location.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// GetByID возвращает локацию по идентификатору
func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ?`

	var location domain.Location
	err := r.db.GetContext(ctx, &location, query, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.ErrLocationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get location", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &location, nil
}

// List возвращает локации с фильтрацией по категории и ключу таксономии
func (r *locationRepository) List(ctx context.Context, filter domain.LocationFilter) ([]*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE 1=1`
	args := []interface{}{}

	if filter.Category != nil {
		query += ` AND category = ?`
		args = append(args, *filter.Category)
	}
	if filter.LocationKey != nil {
		query += ` AND location_key = ?`
		args = append(args, *filter.LocationKey)
	}

	query += ` ORDER BY created_at DESC, name`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	locations := []*domain.Location{}
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		r.logger.Error("Failed to list locations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return locations, nil
}

// Update обновляет локацию целиком
func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	location.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE locations
		SET name = ?, category = ?, address = ?, lat = ?, lon = ?,
		    description = ?, instagram_url = ?, website = ?, location_key = ?,
		    updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		location.Name, location.Category, location.Address,
		location.Lat, location.Lon, location.Description,
		location.InstagramURL, location.Website, location.LocationKey,
		location.UpdatedAt, location.ID.String(),
	)
	if err != nil {
		r.logger.Error("Failed to update location", zap.String("id", location.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrLocationNotFound
	}

	return nil
}

// Delete удаляет локацию
func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id.String())
	if err != nil {
		r.logger.Error("Failed to delete location", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrLocationNotFound
	}

	return nil
}

// CountByKey возвращает количество локаций, ссылающихся на locationKey
func (r *locationRepository) CountByKey(ctx context.Context, locationKey string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM locations WHERE location_key = ?`, locationKey,
	)
	if err != nil {
		r.logger.Error("Failed to count locations by key", zap.String("location_key", locationKey), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}

// DistinctLocationKeys возвращает все уникальные ключи, встречающиеся на локациях
func (r *locationRepository) DistinctLocationKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := r.db.SelectContext(ctx, &keys, `
		SELECT DISTINCT location_key
		FROM locations
		WHERE location_key IS NOT NULL AND location_key != ''
		ORDER BY location_key
	`)
	if err != nil {
		r.logger.Error("Failed to list distinct location keys", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return keys, nil
}
