package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/middleware"
	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/service"
)

// EstimateHandler manipula requisições da estimativa de horas
type EstimateHandler struct {
	app *service.App
}

// NewEstimateHandler cria um novo handler da estimativa
func NewEstimateHandler(app *service.App) *EstimateHandler {
	return &EstimateHandler{app: app}
}

// Get retorna título, itens e totais
// @Router /api/v1/estimate [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	ok(c, http.StatusOK, h.app.Estimate.Document())
}

// SetTitle altera o título da estimativa
// @Router /api/v1/estimate/title [put]
func (h *EstimateHandler) SetTitle(c *gin.Context) {
	var req model.TitleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.Estimate.SetTitle(c.Request.Context(), middleware.SanitizeTitle(req.Title)); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.Estimate.Document())
}

// AddItem adiciona um item zerado ao final
// @Router /api/v1/estimate/items [post]
func (h *EstimateHandler) AddItem(c *gin.Context) {
	item, err := h.app.Estimate.AddItem(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	logger.FromGin(c).Debug().Str("item_id", item.ID).Msg("Item adicionado")
	ok(c, http.StatusCreated, h.app.Estimate.Document())
}

// UpdateItem altera um campo do item
// @Router /api/v1/estimate/items/{id} [patch]
func (h *EstimateHandler) UpdateItem(c *gin.Context) {
	var req model.FieldUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	id := middleware.SanitizeID(c.Param("id"))
	if _, err := h.app.Estimate.UpdateItem(c.Request.Context(), id, req.Field, sanitizeValue(req.Value)); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, h.app.Estimate.Document())
}

// RemoveItem remove o item; o último item nunca é removido
// @Router /api/v1/estimate/items/{id} [delete]
func (h *EstimateHandler) RemoveItem(c *gin.Context) {
	id := middleware.SanitizeID(c.Param("id"))
	removed, err := h.app.Estimate.RemoveItem(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	if !removed {
		logger.FromGin(c).Debug().Str("item_id", id).Msg("Remoção ignorada")
	}
	ok(c, http.StatusOK, h.app.Estimate.Document())
}

// Reset volta ao documento padrão após confirmação
// @Router /api/v1/estimate/reset [post]
func (h *EstimateHandler) Reset(c *gin.Context) {
	var req model.ResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.Estimate.Reset(c.Request.Context(), req.Confirm); err != nil {
		handleError(c, err)
		return
	}

	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:   logger.AuditActionEstimateReset,
		Resource: "estimate",
		ClientIP: c.ClientIP(),
		Success:  true,
	})
	ok(c, http.StatusOK, h.app.Estimate.Document())
}

// Export baixa a planilha da estimativa
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/v1/estimate/export [get]
func (h *EstimateHandler) Export(c *gin.Context) {
	res, err := h.app.ExportEstimate(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	writeSpreadsheet(c, res)
}

// sanitizeValue limpa valores texto antes de chegarem ao serviço; nomes são gravados sem aparar
func sanitizeValue(v interface{}) interface{} {
	if s, isString := v.(string); isString {
		return middleware.SanitizeText(s, middleware.DefaultSanitizeConfig())
	}
	return v
}
