package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/middleware"
	"github.com/cleberrangel/project-estimator-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeSpreadsheet envia o arquivo gerado como download
func writeSpreadsheet(c *gin.Context, res *service.ExportResult) {
	filename := middleware.SanitizeFilename(res.FileName)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Length", strconv.Itoa(len(res.Data)))
	c.Header("X-Export-Rows", strconv.Itoa(res.Rows))

	c.Data(http.StatusOK, xlsxContentType, res.Data)
}

// ExportHandler lista o histórico de exportações
type ExportHandler struct {
	app *service.App
}

// NewExportHandler cria um novo handler de exportações
func NewExportHandler(app *service.App) *ExportHandler {
	return &ExportHandler{app: app}
}

// ListRecent retorna as últimas exportações (vazio nos backends sem banco)
// @Router /api/v1/exports [get]
func (h *ExportHandler) ListRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := h.app.RecentExports(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, records)
}
