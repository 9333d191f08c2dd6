package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Camiones godoc
// @Summary Exporta la flota a xlsx
// @Tags export
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param full query bool false "incluye inactivos y asignaciones"
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/camiones/export [get]
func (h *ExportHandler) Camiones(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	full := c.Query("full") == "true"
	data, filename, err := h.svc.ExportarCamiones(c.Request.Context(), userID,
		c.Query("start_date"), c.Query("end_date"), full)
	if err != nil {
		writeExportError(c, "camiones", err)
		return
	}
	writeAttachment(c, filename, data)
}

func (h *ExportHandler) Guias(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.ExportarGuias(c.Request.Context(), userID,
		c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeExportError(c, "guias", err)
		return
	}
	writeAttachment(c, filename, data)
}

// writeExportError keeps bad query dates a 400; anything else (store or
// workbook failure) is a 500 with the generic envelope, logged with detail.
func writeExportError(c *gin.Context, export string, err error) {
	if errors.Is(err, service.ErrFechaInvalida) {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	log.Error().Err(err).Str("export", export).Msg("Error generando exportacion")
	c.JSON(http.StatusInternalServerError, apierror.New("Error al generar la exportacion"))
}

func writeAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
