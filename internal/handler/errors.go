package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/model"
)

// handleError trata erros e retorna resposta apropriada
func handleError(c *gin.Context, err error) {
	log := logger.FromGin(c)

	switch {
	case errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrReadOnlyField),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidDirection),
		errors.Is(err, model.ErrInvalidPage):
		log.Debug().Err(err).Msg("Requisição rejeitada")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "requisição inválida",
			Details: err.Error(),
		})

	case errors.Is(err, model.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, model.ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Details: `envie {"confirm": true}`,
		})

	default:
		log.Error().Err(err).Msg("Erro ao processar requisição")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}

// bindJSON decodifica o corpo; responde 400 e retorna false em caso de erro
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return false
	}
	return true
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, model.Response{Success: true, Data: data})
}
