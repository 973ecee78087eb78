package repository

import (
	"context"

	"github.com/taxonomy-microservice/internal/domain"
)

// CorrectionRepository определяет интерфейс для правил коррекции таксономии
type CorrectionRepository interface {
	// Preview вычисляет затрагиваемые правилом строки без каких-либо изменений
	Preview(ctx context.Context, incorrect, correct string, part domain.TaxonomyPart) (*domain.CorrectionPreview, error)

	// Apply сохраняет правило и в одной транзакции переписывает сегмент
	// во всех записях таксономии и во всех локациях
	Apply(ctx context.Context, incorrect, correct string, part domain.TaxonomyPart) (*domain.CorrectionResult, error)

	// List возвращает все сохранённые правила
	List(ctx context.Context) ([]domain.TaxonomyCorrection, error)

	// Delete удаляет правило; уже применённые перезаписи не откатываются
	Delete(ctx context.Context, id int64) error
}
