package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

type GuiasHandler struct{ svc service.GuiaService }

func NewGuiasHandler(svc service.GuiaService) *GuiasHandler {
	return &GuiasHandler{svc: svc}
}

func (h *GuiasHandler) Crear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearGuiaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GuiasHandler) Listar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var query dto.GuiaFilterQuery
	if !bindQueryAndValidate(c, &query) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuiasHandler) ObtenerPorID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Guia no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuiasHandler) Eliminar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// PDF streams the dispatch note as an attachment.
func (h *GuiasHandler) PDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.GenerarPDF(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
