package migration

// getAllMigrations retorna todas as migrações disponíveis
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_app_state",
			Up: `
				-- Espelho chave/valor do estado da aplicação (valores JSON)
				CREATE TABLE IF NOT EXISTS app_state (
					state_key VARCHAR(100) PRIMARY KEY,
					state_value TEXT NOT NULL,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`,
			Down: `
				DROP TABLE IF EXISTS app_state;
			`,
		},
		{
			Version: 2,
			Name:    "create_export_log",
			Up: `
				-- Registro das planilhas exportadas
				CREATE TABLE IF NOT EXISTS export_log (
					id SERIAL PRIMARY KEY,
					kind VARCHAR(20) NOT NULL,
					title VARCHAR(255) NOT NULL,
					file_name VARCHAR(300) NOT NULL,
					row_count INTEGER NOT NULL DEFAULT 0,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_export_log_created_at ON export_log(created_at);
			`,
			UpSQLite: `
				CREATE TABLE IF NOT EXISTS export_log (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					kind VARCHAR(20) NOT NULL,
					title VARCHAR(255) NOT NULL,
					file_name VARCHAR(300) NOT NULL,
					row_count INTEGER NOT NULL DEFAULT 0,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_export_log_created_at ON export_log(created_at);
			`,
			Down: `
				DROP TABLE IF EXISTS export_log;
			`,
		},
	}
}
