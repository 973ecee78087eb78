package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
)

// previewSampleLimit ограничивает списки примеров в предпросмотре;
// счётчики при этом всегда отражают полное количество затронутых строк
const previewSampleLimit = 3

type correctionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCorrectionRepository создает новый экземпляр CorrectionRepository
func NewCorrectionRepository(db *DB) repository.CorrectionRepository {
	return &correctionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type taxonomyKeyRow struct {
	ID          int64                 `db:"id"`
	LocationKey string                `db:"location_key"`
	Status      domain.TaxonomyStatus `db:"status"`
}

type locationKeyRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	LocationKey string `db:"location_key"`
}

// Preview вычисляет затрагиваемые правилом строки без каких-либо изменений
func (r *correctionRepository) Preview(ctx context.Context, incorrect, correct string, part domain.TaxonomyPart) (*domain.CorrectionPreview, error) {
	preview := &domain.CorrectionPreview{
		PendingTaxonomySamples: []string{},
		LocationSamples:        []domain.CorrectionLocationSample{},
	}

	var entries []taxonomyKeyRow
	if err := r.db.SelectContext(ctx, &entries,
		`SELECT id, location_key, status FROM taxonomy_entries ORDER BY location_key`,
	); err != nil {
		r.logger.Error("Failed to load taxonomy keys for preview", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, entry := range entries {
		if _, ok := domain.ReplaceKeySegment(entry.LocationKey, part, incorrect, correct); !ok {
			continue
		}
		preview.PendingTaxonomyCount++
		if len(preview.PendingTaxonomySamples) < previewSampleLimit {
			preview.PendingTaxonomySamples = append(preview.PendingTaxonomySamples, entry.LocationKey)
		}
	}

	var locations []locationKeyRow
	if err := r.db.SelectContext(ctx, &locations,
		`SELECT id, name, location_key FROM locations WHERE location_key IS NOT NULL ORDER BY name`,
	); err != nil {
		r.logger.Error("Failed to load location keys for preview", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, loc := range locations {
		corrected, ok := domain.ReplaceKeySegment(loc.LocationKey, part, incorrect, correct)
		if !ok {
			continue
		}
		preview.LocationCount++
		if len(preview.LocationSamples) < previewSampleLimit {
			preview.LocationSamples = append(preview.LocationSamples, domain.CorrectionLocationSample{
				ID:           loc.ID,
				Name:         loc.Name,
				CurrentKey:   loc.LocationKey,
				CorrectedKey: corrected,
			})
		}
	}

	return preview, nil
}

// Apply сохраняет правило и переписывает сегмент во всех записях таксономии
// и локациях. Все изменения выполняются в одной транзакции: либо
// переписываются все строки, либо ни одна.
func (r *correctionRepository) Apply(ctx context.Context, incorrect, correct string, part domain.TaxonomyPart) (*domain.CorrectionResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin correction transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	// Повторное создание правила для той же пары (incorrect, part_type)
	// обновляет целевое значение вместо дублирования строки
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO taxonomy_corrections (incorrect_value, correct_value, part_type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (incorrect_value, part_type) DO UPDATE SET correct_value = excluded.correct_value`,
		incorrect, correct, string(part), now,
	); err != nil {
		r.logger.Error("Failed to persist correction rule", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	taxonomyUpdated, err := r.rewriteTaxonomy(ctx, tx, incorrect, correct, part)
	if err != nil {
		return nil, err
	}

	locationsUpdated, err := r.rewriteLocations(ctx, tx, incorrect, correct, part, now)
	if err != nil {
		return nil, err
	}

	var rule domain.TaxonomyCorrection
	if err := tx.GetContext(ctx, &rule, `
		SELECT id, incorrect_value, correct_value, part_type, created_at
		FROM taxonomy_corrections
		WHERE incorrect_value = ? AND part_type = ?`,
		incorrect, string(part),
	); err != nil {
		r.logger.Error("Failed to reload correction rule", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit correction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &domain.CorrectionResult{
		Correction:       rule,
		TaxonomyUpdated:  taxonomyUpdated,
		LocationsUpdated: locationsUpdated,
	}, nil
}

// rewriteTaxonomy переписывает сегмент во всех записях реестра. Если
// исправленный ключ совпадает с уже существующим, строки сливаются:
// остаётся целевая, статус approved никогда не понижается.
func (r *correctionRepository) rewriteTaxonomy(ctx context.Context, tx *sqlx.Tx, incorrect, correct string, part domain.TaxonomyPart) (int, error) {
	var entries []taxonomyKeyRow
	if err := tx.SelectContext(ctx, &entries,
		`SELECT id, location_key, status FROM taxonomy_entries ORDER BY id`,
	); err != nil {
		r.logger.Error("Failed to load taxonomy entries for rewrite", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	byKey := make(map[string]taxonomyKeyRow, len(entries))
	for _, entry := range entries {
		byKey[entry.LocationKey] = entry
	}

	updated := 0
	for _, entry := range entries {
		corrected, ok := domain.ReplaceKeySegment(entry.LocationKey, part, incorrect, correct)
		if !ok {
			continue
		}

		if target, exists := byKey[corrected]; exists {
			if entry.Status == domain.TaxonomyStatusApproved && target.Status != domain.TaxonomyStatusApproved {
				if _, err := tx.ExecContext(ctx,
					`UPDATE taxonomy_entries SET status = 'approved' WHERE id = ?`, target.ID,
				); err != nil {
					r.logger.Error("Failed to merge taxonomy status", zap.Error(err))
					return 0, errors.ErrDatabaseError
				}
				target.Status = domain.TaxonomyStatusApproved
				byKey[corrected] = target
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM taxonomy_entries WHERE id = ?`, entry.ID,
			); err != nil {
				r.logger.Error("Failed to merge taxonomy entry", zap.Error(err))
				return 0, errors.ErrDatabaseError
			}
		} else {
			segments := domain.SplitLocationKey(corrected)
			var city, neighborhood *string
			if len(segments) > 1 {
				city = &segments[1]
			}
			if len(segments) > 2 {
				neighborhood = &segments[2]
			}

			if _, err := tx.ExecContext(ctx, `
				UPDATE taxonomy_entries
				SET country = ?, city = ?, neighborhood = ?, location_key = ?
				WHERE id = ?`,
				segments[0], city, neighborhood, corrected, entry.ID,
			); err != nil {
				r.logger.Error("Failed to rewrite taxonomy entry", zap.Error(err))
				return 0, errors.ErrDatabaseError
			}

			byKey[corrected] = taxonomyKeyRow{ID: entry.ID, LocationKey: corrected, Status: entry.Status}
		}

		delete(byKey, entry.LocationKey)
		updated++
	}

	return updated, nil
}

// rewriteLocations переписывает location_key у всех локаций с затронутым сегментом
func (r *correctionRepository) rewriteLocations(ctx context.Context, tx *sqlx.Tx, incorrect, correct string, part domain.TaxonomyPart, now time.Time) (int, error) {
	var keys []string
	if err := tx.SelectContext(ctx, &keys,
		`SELECT DISTINCT location_key FROM locations WHERE location_key IS NOT NULL`,
	); err != nil {
		r.logger.Error("Failed to load location keys for rewrite", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	updated := 0
	for _, key := range keys {
		corrected, ok := domain.ReplaceKeySegment(key, part, incorrect, correct)
		if !ok {
			continue
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE locations SET location_key = ?, updated_at = ? WHERE location_key = ?`,
			corrected, now, key,
		)
		if err != nil {
			r.logger.Error("Failed to rewrite location keys", zap.String("location_key", key), zap.Error(err))
			return 0, errors.ErrDatabaseError
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, errors.ErrDatabaseError
		}
		updated += int(affected)
	}

	return updated, nil
}

// List возвращает все сохранённые правила коррекции
func (r *correctionRepository) List(ctx context.Context) ([]domain.TaxonomyCorrection, error) {
	query := `
		SELECT id, incorrect_value, correct_value, part_type, created_at
		FROM taxonomy_corrections
		ORDER BY created_at DESC, id DESC
	`

	corrections := []domain.TaxonomyCorrection{}
	if err := r.db.SelectContext(ctx, &corrections, query); err != nil {
		r.logger.Error("Failed to list corrections", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return corrections, nil
}

// Delete удаляет правило; уже применённые перезаписи остаются в силе
func (r *correctionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM taxonomy_corrections WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete correction", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrCorrectionNotFound
	}

	return nil
}
