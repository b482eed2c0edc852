package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/metrics"
	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/repository"
	"github.com/cleberrangel/project-estimator-api/internal/storage"
)

// ExportLog guarda o histórico de exportações (só nos backends SQL)
type ExportLog interface {
	Record(ctx context.Context, rec repository.ExportRecord) error
	Recent(ctx context.Context, limit int) ([]repository.ExportRecord, error)
}

// AppOptions reúne as dependências do controlador
type AppOptions struct {
	Store     *storage.Adapter
	Notifier  Notifier
	Clock     Clock
	Exporter  *SpreadsheetExporter
	ExportLog ExportLog
}

// App é o estado da aplicação: página ativa e os dois módulos
type App struct {
	mu   sync.Mutex
	page model.Page

	store     *storage.Adapter
	notifier  Notifier
	exporter  *SpreadsheetExporter
	exportLog ExportLog

	Estimate *EstimateService
	KPI      *KPIService
}

// NewApp restaura o estado salvo de todos os módulos
func NewApp(ctx context.Context, opts AppOptions) *App {
	if opts.Exporter == nil {
		opts.Exporter = NewSpreadsheetExporter(DefaultExportAuthor)
	}

	a := &App{
		page:      model.PageEstimator,
		store:     opts.Store,
		notifier:  notifierOrNop(opts.Notifier),
		exporter:  opts.Exporter,
		exportLog: opts.ExportLog,
		Estimate:  NewEstimateService(ctx, opts.Store, opts.Notifier, opts.Clock),
		KPI:       NewKPIService(ctx, opts.Store, opts.Notifier, opts.Clock),
	}

	var page model.Page
	if a.store.Load(ctx, storage.KeyCurrentPage, &page) && page.Valid() {
		a.page = page
	}

	logger.Get(ctx).Info().Str("page", string(a.page)).Msg("Estado da aplicação carregado")
	return a
}

// Page retorna a página ativa
func (a *App) Page() model.Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

// SetPage troca a página ativa
func (a *App) SetPage(ctx context.Context, page string) error {
	p := model.Page(page)
	if !p.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidPage, page)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.page = p
	if err := a.store.Save(ctx, storage.KeyCurrentPage, a.page); err != nil {
		return err
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionPageChange,
		Resource:   "page",
		ResourceID: page,
		Success:    true,
	})
	metrics.Get().IncrementMutation(metrics.ModulePage)
	a.notifier.NotifyStateChanged(ModuleApp, ActionPage)
	return nil
}

// ExportEstimate gera a planilha da estimativa
func (a *App) ExportEstimate(ctx context.Context) (*ExportResult, error) {
	res, err := a.Estimate.Export(a.exporter)
	a.afterExport(ctx, logger.AuditActionExportEstimate, res, err)
	return res, err
}

// ExportKPI gera a planilha do relatório semanal
func (a *App) ExportKPI(ctx context.Context) (*ExportResult, error) {
	res, err := a.KPI.Export(a.exporter)
	a.afterExport(ctx, logger.AuditActionExportKPI, res, err)
	return res, err
}

func (a *App) afterExport(ctx context.Context, action logger.AuditAction, res *ExportResult, err error) {
	if err != nil {
		logger.AuditExport(ctx, action, "", 0, err)
		return
	}
	logger.AuditExport(ctx, action, res.FileName, res.Rows, nil)

	if a.exportLog == nil {
		return
	}
	rec := repository.ExportRecord{
		Kind:     res.Kind,
		Title:    res.Title,
		FileName: res.FileName,
		RowCount: res.Rows,
	}
	// falha no histórico não impede o download
	if err := a.exportLog.Record(ctx, rec); err != nil {
		logger.Get(ctx).Warn().Err(err).Str("file", res.FileName).Msg("Erro ao registrar exportação")
	}
}

// RecentExports lista as últimas exportações; vazio quando não há histórico
func (a *App) RecentExports(ctx context.Context, limit int) ([]repository.ExportRecord, error) {
	if a.exportLog == nil {
		return []repository.ExportRecord{}, nil
	}
	return a.exportLog.Recent(ctx, limit)
}

// Ping verifica o armazenamento de estado
func (a *App) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}
