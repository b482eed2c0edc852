package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/service"
)

// PageHandler manipula a página ativa
type PageHandler struct {
	app *service.App
}

// NewPageHandler cria um novo handler de página
func NewPageHandler(app *service.App) *PageHandler {
	return &PageHandler{app: app}
}

// Get retorna a página ativa
// @Router /api/v1/page [get]
func (h *PageHandler) Get(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"page": h.app.Page()})
}

// Set troca a página ativa
// @Router /api/v1/page [put]
func (h *PageHandler) Set(c *gin.Context) {
	var req model.PageRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.SetPage(c.Request.Context(), req.Page); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"page": h.app.Page()})
}
