package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cleberrangel/project-estimator-api/internal/config"
	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/migration"
	"github.com/cleberrangel/project-estimator-api/internal/repository"
)

// Backend agrupa o adaptador de persistência e os recursos abertos para ele
type Backend struct {
	Driver    string
	Adapter   *Adapter
	ExportLog *repository.ExportLogRepository // nil para memory/file
	DB        *sql.DB                         // nil para memory/file

	closers []func() error
}

// Close libera os recursos do backend
func (b *Backend) Close() error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open escolhe o store conforme STORAGE_DRIVER
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	log := logger.Get(ctx)
	b := &Backend{Driver: cfg.StorageDriver}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		b.Adapter = NewAdapter(NewMemoryStore())

	case config.DriverFile:
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		b.Adapter = NewAdapter(fs)

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := b.useSQL(ctx, db, database.DialectSQLite, cfg); err != nil {
			db.Close()
			return nil, err
		}

	case config.DriverPostgres:
		db, err := database.Connect(ctx, database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			return nil, err
		}
		if err := b.useSQL(ctx, db, database.DialectPostgres, cfg); err != nil {
			db.Close()
			return nil, err
		}

	default:
		return nil, fmt.Errorf("driver de armazenamento desconhecido: %q", cfg.StorageDriver)
	}

	log.Info().Str("driver", cfg.StorageDriver).Msg("Armazenamento de estado pronto")
	return b, nil
}

// useSQL executa as migrações e monta os repositórios sobre db
func (b *Backend) useSQL(ctx context.Context, db *sql.DB, dialect database.Dialect, cfg *config.Config) error {
	if err := migration.NewMigrator(db, dialect).Run(ctx); err != nil {
		return fmt.Errorf("migrações: %w", err)
	}

	var store Store = repository.NewStateRepository(db, dialect)
	if cfg.StateCacheTTL > 0 {
		cached := NewCachedStore(store, cfg.StateCacheTTL)
		b.closers = append(b.closers, cached.Close)
		store = cached
	}

	b.DB = db
	b.Adapter = NewAdapter(store)
	b.ExportLog = repository.NewExportLogRepository(db, dialect)
	b.closers = append([]func() error{db.Close}, b.closers...)
	return nil
}
