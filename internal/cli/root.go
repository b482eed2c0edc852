package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleberrangel/project-estimator-api/internal/config"
	"github.com/cleberrangel/project-estimator-api/internal/service"
	"github.com/cleberrangel/project-estimator-api/internal/storage"
)

// RootCommand é o comando base do estimatorctl
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config

	driver  string
	dataDir string

	backend *storage.Backend
	app     *service.App
}

// NewRootCommand cria o comando raiz com as flags globais
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "estimatorctl",
		Short: "Acesso offline à estimativa e ao relatório de KPIs",
		Long: `estimatorctl lê e altera o mesmo estado salvo usado pela API.

EXAMPLES:
  estimatorctl summary
  estimatorctl export estimate --out ./exports
  estimatorctl reset kpi --yes
  estimatorctl --driver file --data-dir ./data summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.open(cmd.Context())
		},
	}

	flags := root.cmd.PersistentFlags()
	flags.StringVar(&root.driver, "driver", "", "Driver de armazenamento: memory, file, sqlite, postgres (sobrescreve STORAGE_DRIVER)")
	flags.StringVar(&root.dataDir, "data-dir", "", "Diretório de dados (sobrescreve DATA_DIR)")

	root.cmd.AddCommand(
		root.newSummaryCommand(),
		root.newExportCommand(),
		root.newResetCommand(),
	)
	return root
}

// Command expõe o cobra.Command (usado nos testes)
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
// o backend é fechado mesmo quando o comando falha
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// applyFlags aplica as flags sobre a configuração carregada
func (r *RootCommand) applyFlags() error {
	if r.driver != "" {
		switch r.driver {
		case config.DriverMemory, config.DriverFile, config.DriverSQLite, config.DriverPostgres:
		default:
			return fmt.Errorf("driver inválido: %q", r.driver)
		}
		r.config.StorageDriver = r.driver
	}
	if r.dataDir != "" {
		r.config.DataDir = r.dataDir
		r.config.SQLitePath = filepath.Join(r.dataDir, "estimator.db")
	}
	return nil
}

func (r *RootCommand) open(ctx context.Context) error {
	if err := r.applyFlags(); err != nil {
		return err
	}

	backend, err := storage.Open(ctx, r.config)
	if err != nil {
		return err
	}

	opts := service.AppOptions{
		Store:    backend.Adapter,
		Exporter: service.NewSpreadsheetExporter(r.config.ExportAuthor),
	}
	if backend.ExportLog != nil {
		opts.ExportLog = backend.ExportLog
	}

	r.backend = backend
	r.app = service.NewApp(ctx, opts)
	return nil
}

func (r *RootCommand) close() error {
	if r.backend == nil {
		return nil
	}
	err := r.backend.Close()
	r.backend = nil
	return err
}
