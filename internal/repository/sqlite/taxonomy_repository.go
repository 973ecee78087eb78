package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
)

type taxonomyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTaxonomyRepository создает новый экземпляр TaxonomyRepository
func NewTaxonomyRepository(db *DB) repository.TaxonomyRepository {
	return &taxonomyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// FindByKey возвращает запись таксономии по locationKey
func (r *taxonomyRepository) FindByKey(ctx context.Context, locationKey string) (*domain.TaxonomyEntry, error) {
	query := `
		SELECT id, country, city, neighborhood, location_key, status, created_at
		FROM taxonomy_entries
		WHERE location_key = ?
	`

	var entry domain.TaxonomyEntry
	err := r.db.GetContext(ctx, &entry, query, locationKey)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTaxonomyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to find taxonomy entry", zap.String("location_key", locationKey), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &entry, nil
}

// InsertIfAbsent атомарно вставляет запись по уникальному location_key.
// Конфликт по ключу означает, что запись уже создана параллельным запросом:
// возвращаем существующую строку, статус не перезаписываем.
func (r *taxonomyRepository) InsertIfAbsent(ctx context.Context, entry domain.TaxonomyEntry) (*domain.TaxonomyEntry, error) {
	if entry.Status == "" {
		entry.Status = domain.TaxonomyStatusPending
	}

	query := `
		INSERT INTO taxonomy_entries (country, city, neighborhood, location_key, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (location_key) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.Country, entry.City, entry.Neighborhood,
		entry.LocationKey, entry.Status, time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to insert taxonomy entry", zap.String("location_key", entry.LocationKey), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return r.FindByKey(ctx, entry.LocationKey)
}

// ListPending возвращает очередь модерации; location_count считается через
// join и всегда отражает текущее количество ссылающихся локаций
func (r *taxonomyRepository) ListPending(ctx context.Context) ([]domain.PendingTaxonomy, error) {
	query := `
		SELECT t.location_key, COUNT(l.id) AS location_count, t.status, t.created_at
		FROM taxonomy_entries t
		LEFT JOIN locations l ON l.location_key = t.location_key
		WHERE t.status = 'pending'
		GROUP BY t.location_key, t.status, t.created_at
		ORDER BY t.created_at DESC, t.location_key
	`

	pending := []domain.PendingTaxonomy{}
	if err := r.db.SelectContext(ctx, &pending, query); err != nil {
		r.logger.Error("Failed to list pending taxonomy", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pending, nil
}

// ListApproved возвращает все одобренные locationKey
func (r *taxonomyRepository) ListApproved(ctx context.Context) ([]string, error) {
	query := `
		SELECT location_key
		FROM taxonomy_entries
		WHERE status = 'approved'
		ORDER BY location_key
	`

	keys := []string{}
	if err := r.db.SelectContext(ctx, &keys, query); err != nil {
		r.logger.Error("Failed to list approved taxonomy", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return keys, nil
}

// Approve переводит запись в approved; повторное одобрение не является ошибкой
func (r *taxonomyRepository) Approve(ctx context.Context, locationKey string) error {
	query := `UPDATE taxonomy_entries SET status = 'approved' WHERE location_key = ?`

	res, err := r.db.ExecContext(ctx, query, locationKey)
	if err != nil {
		r.logger.Error("Failed to approve taxonomy entry", zap.String("location_key", locationKey), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrTaxonomyNotFound
	}

	return nil
}

// Reject удаляет запись таксономии. Проверка количества ссылок и удаление
// выполняются в одной транзакции: запись, на которую ссылается хотя бы одна
// локация, удалить нельзя - это оставило бы ключи локаций без узла таксономии.
func (r *taxonomyRepository) Reject(ctx context.Context, locationKey string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM locations WHERE location_key = ?`, locationKey,
	); err != nil {
		r.logger.Error("Failed to count locations for key", zap.String("location_key", locationKey), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if count > 0 {
		return errors.ErrTaxonomyInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM taxonomy_entries WHERE location_key = ?`, locationKey)
	if err != nil {
		r.logger.Error("Failed to delete taxonomy entry", zap.String("location_key", locationKey), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrTaxonomyNotFound
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit reject", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// ApproveReferenced одобряет все pending-записи, на которые ссылаются локации
func (r *taxonomyRepository) ApproveReferenced(ctx context.Context) (int, error) {
	query := `
		UPDATE taxonomy_entries
		SET status = 'approved'
		WHERE status = 'pending'
		  AND location_key IN (
			SELECT DISTINCT location_key FROM locations WHERE location_key IS NOT NULL
		  )
	`

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to approve referenced taxonomy entries", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return int(affected), nil
}
