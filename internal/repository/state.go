package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/logger"
)

// StateRepository persiste o estado serializado da aplicação na tabela app_state
type StateRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewStateRepository cria um novo repositório de estado
func NewStateRepository(db *sql.DB, dialect database.Dialect) *StateRepository {
	return &StateRepository{db: db, dialect: dialect}
}

// Get obtém o valor armazenado em key
func (r *StateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf("SELECT state_value FROM app_state WHERE state_key = %s", r.dialect.Placeholder(1))

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("erro ao buscar estado %s: %w", key, err)
	}

	return value, true, nil
}

// Set insere ou atualiza o valor de key
func (r *StateRepository) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO app_state (state_key, state_value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (state_key) DO UPDATE SET
			state_value = EXCLUDED.state_value,
			updated_at = CURRENT_TIMESTAMP
	`, r.dialect.Placeholder(1), r.dialect.Placeholder(2))

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		logger.Get(ctx).Error().Err(err).Str("key", key).Msg("Erro ao salvar estado")
		return fmt.Errorf("erro ao salvar estado %s: %w", key, err)
	}

	logger.Get(ctx).Debug().Str("key", key).Int("bytes", len(value)).Msg("Estado salvo")
	return nil
}

// Ping verifica a conectividade com o banco
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
