package testhelpers

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/taxonomy-microservice/internal/repository/sqlite"
)

// TestDB - база для тестов репозиториев: отдельный in-memory SQLite
// на каждый suite, схема применяется при создании
type TestDB struct {
	DB     *sqlite.DB
	Logger *zap.Logger
}

// SetupTestDB открывает in-memory базу и применяет схему
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	// In-memory база живёт в рамках одного соединения
	db.SetMaxOpenConns(1)

	if err := sqlite.ApplySchema(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	logger := zap.NewNop()
	return &TestDB{
		DB:     sqlite.NewDBForTest(db, logger),
		Logger: logger,
	}
}

// Cleanup очищает все таблицы между тестами
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range []string{"locations", "taxonomy_corrections", "taxonomy_entries"} {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Close закрывает тестовую базу
func (tdb *TestDB) Close() {
	_ = tdb.DB.Close()
}
