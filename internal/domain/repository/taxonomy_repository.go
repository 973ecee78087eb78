package repository

import (
	"context"

	"github.com/taxonomy-microservice/internal/domain"
)

// TaxonomyRepository определяет интерфейс для работы с реестром таксономии
type TaxonomyRepository interface {
	// FindByKey возвращает запись по locationKey или ErrTaxonomyNotFound
	FindByKey(ctx context.Context, locationKey string) (*domain.TaxonomyEntry, error)

	// InsertIfAbsent атомарно вставляет запись; при конфликте по locationKey
	// возвращает существующую строку без изменения её статуса
	InsertIfAbsent(ctx context.Context, entry domain.TaxonomyEntry) (*domain.TaxonomyEntry, error)

	// ListPending возвращает очередь модерации с живым счётчиком ссылающихся локаций
	ListPending(ctx context.Context) ([]domain.PendingTaxonomy, error)

	// ListApproved возвращает все одобренные ключи
	ListApproved(ctx context.Context) ([]string, error)

	// Approve переводит запись в approved; идемпотентна
	Approve(ctx context.Context, locationKey string) error

	// Reject удаляет pending-запись; возвращает ErrTaxonomyInUse,
	// если на ключ ссылается хотя бы одна локация
	Reject(ctx context.Context, locationKey string) error

	// ApproveReferenced одобряет все pending-записи, на которые ссылаются локации
	ApproveReferenced(ctx context.Context) (int, error)
}
