package migration

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/logger"
)

// Migration representa uma migração de banco de dados.
// UpSQLite substitui Up no SQLite quando a sintaxe difere.
type Migration struct {
	Version  int
	Name     string
	Up       string
	UpSQLite string
	Down     string
}

// statement retorna o SQL de subida para o dialeto
func (m Migration) statement(dialect database.Dialect) string {
	if dialect == database.DialectSQLite && m.UpSQLite != "" {
		return m.UpSQLite
	}
	return m.Up
}

// Migrator gerencia as migrações do banco de dados
type Migrator struct {
	db         *sql.DB
	dialect    database.Dialect
	migrations []Migration
}

// NewMigrator cria um novo migrator
func NewMigrator(db *sql.DB, dialect database.Dialect) *Migrator {
	return &Migrator{
		db:         db,
		dialect:    dialect,
		migrations: getAllMigrations(),
	}
}

// Run executa todas as migrações pendentes
func (m *Migrator) Run(ctx context.Context) error {
	log := logger.Get(ctx)

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("erro ao obter versão atual: %w", err)
	}

	log.Debug().
		Int("current_version", currentVersion).
		Str("dialect", string(m.dialect)).
		Msg("Versão atual do banco de dados")

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Info().
			Int("version", migration.Version).
			Str("name", migration.Name).
			Msg("Executando migração")

		if err := m.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("erro ao executar migração %d (%s): %w",
				migration.Version, migration.Name, err)
		}
	}

	return nil
}

// createMigrationsTable cria a tabela de controle de migrações
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// CurrentVersion obtém a versão atual do banco
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	query := "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"
	if err := m.db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// runMigration executa uma migração específica
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.statement(m.dialect)); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO schema_migrations (version, applied_at) VALUES (%s, %s)",
		m.dialect.Placeholder(1), m.dialect.Placeholder(2))
	if _, err := tx.ExecContext(ctx, insert, migration.Version, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}
