package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

type FundosHandler struct{ svc service.FundoService }

func NewFundosHandler(svc service.FundoService) *FundosHandler {
	return &FundosHandler{svc: svc}
}

func (h *FundosHandler) Crear(c *gin.Context) {
	var req dto.CrearFundoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FundosHandler) Listar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), userID, incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar fundos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FundosHandler) ObtenerPorID(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, apierror.New("Fundo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FundosHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarFundoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FundosHandler) Desactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
