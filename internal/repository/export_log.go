package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cleberrangel/project-estimator-api/internal/database"
)

// ExportRecord representa uma planilha exportada
type ExportRecord struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	FileName  string    `json:"file_name"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportLogRepository registra as exportações realizadas
type ExportLogRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewExportLogRepository cria um novo repositório de exportações
func NewExportLogRepository(db *sql.DB, dialect database.Dialect) *ExportLogRepository {
	return &ExportLogRepository{db: db, dialect: dialect}
}

// Record grava uma exportação
func (r *ExportLogRepository) Record(ctx context.Context, rec ExportRecord) error {
	p := r.dialect.Placeholder
	query := fmt.Sprintf(`
		INSERT INTO export_log (kind, title, file_name, row_count, created_at)
		VALUES (%s, %s, %s, %s, %s)
	`, p(1), p(2), p(3), p(4), p(5))

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := r.db.ExecContext(ctx, query, rec.Kind, rec.Title, rec.FileName, rec.RowCount, createdAt); err != nil {
		return fmt.Errorf("erro ao registrar exportação: %w", err)
	}
	return nil
}

// Recent retorna as últimas exportações, mais recentes primeiro
func (r *ExportLogRepository) Recent(ctx context.Context, limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT id, kind, title, file_name, row_count, created_at
		FROM export_log
		ORDER BY created_at DESC, id DESC
		LIMIT %s
	`, r.dialect.Placeholder(1))

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar exportações: %w", err)
	}
	defer rows.Close()

	records := []ExportRecord{}
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Title, &rec.FileName, &rec.RowCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler exportação: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
