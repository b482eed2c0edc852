package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/middleware"
	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/service"
)

// KPIHandler manipula requisições do relatório semanal
type KPIHandler struct {
	app *service.App
}

// NewKPIHandler cria um novo handler de KPIs
func NewKPIHandler(app *service.App) *KPIHandler {
	return &KPIHandler{app: app}
}

// Get retorna o relatório com a semana e os KPIs
// @Router /api/v1/kpi [get]
func (h *KPIHandler) Get(c *gin.Context) {
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// SetTitle altera o título do relatório
// @Router /api/v1/kpi/title [put]
func (h *KPIHandler) SetTitle(c *gin.Context) {
	var req model.TitleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.KPI.SetTitle(c.Request.Context(), middleware.SanitizeTitle(req.Title)); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// AddTask adiciona uma tarefa com prazo no fim da semana selecionada
// @Router /api/v1/kpi/tasks [post]
func (h *KPIHandler) AddTask(c *gin.Context) {
	task, err := h.app.KPI.AddTask(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	logger.FromGin(c).Debug().Str("task_id", task.ID).Msg("Tarefa adicionada")
	ok(c, http.StatusCreated, h.app.KPI.Report())
}

// UpdateTask altera um campo da tarefa
// @Router /api/v1/kpi/tasks/{id} [patch]
func (h *KPIHandler) UpdateTask(c *gin.Context) {
	var req model.FieldUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	id := middleware.SanitizeID(c.Param("id"))
	if _, err := h.app.KPI.UpdateTask(c.Request.Context(), id, req.Field, sanitizeValue(req.Value)); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// RemoveTask remove a tarefa
// @Router /api/v1/kpi/tasks/{id} [delete]
func (h *KPIHandler) RemoveTask(c *gin.Context) {
	id := middleware.SanitizeID(c.Param("id"))
	if _, err := h.app.KPI.RemoveTask(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// NavigateWeek vai para a semana anterior, próxima ou atual
// @Router /api/v1/kpi/week [post]
func (h *KPIHandler) NavigateWeek(c *gin.Context) {
	var req model.WeekNavigateRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.app.KPI.NavigateWeek(c.Request.Context(), req.Direction); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// SelectWeek seleciona a semana que contém a data
// @Router /api/v1/kpi/week [put]
func (h *KPIHandler) SelectWeek(c *gin.Context) {
	var req model.WeekSelectRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.app.KPI.SelectDate(c.Request.Context(), req.Date); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// Reset limpa as tarefas após confirmação
// @Router /api/v1/kpi/reset [post]
func (h *KPIHandler) Reset(c *gin.Context) {
	var req model.ResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.KPI.Reset(c.Request.Context(), req.Confirm); err != nil {
		handleError(c, err)
		return
	}

	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:   logger.AuditActionKPIReset,
		Resource: "kpi",
		ClientIP: c.ClientIP(),
		Success:  true,
	})
	ok(c, http.StatusOK, h.app.KPI.Report())
}

// Export baixa a planilha do relatório
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/v1/kpi/export [get]
func (h *KPIHandler) Export(c *gin.Context) {
	res, err := h.app.ExportKPI(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	writeSpreadsheet(c, res)
}
