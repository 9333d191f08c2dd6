package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

type AcopioHandler struct{ svc service.AcopioService }

func NewAcopioHandler(svc service.AcopioService) *AcopioHandler {
	return &AcopioHandler{svc: svc}
}

func (h *AcopioHandler) CrearRecepcion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRecepcion(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AcopioHandler) ListarRecepciones(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var query dto.GuiaFilterQuery
	if !bindQueryAndValidate(c, &query) {
		return
	}
	resp, err := h.svc.ListarRecepciones(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AcopioHandler) ActualizarRecepcion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarRecepcion(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AcopioHandler) EliminarRecepcion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarRecepcion(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AcopioHandler) CrearPallet(c *gin.Context) {
	var req dto.CrearPalletRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPallet(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AcopioHandler) ListarPallets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPallets(c.Request.Context(), userID, c.Query("estado"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pallets"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AcopioHandler) DespacharPallet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.DespacharPallet(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AcopioHandler) CrearCarga(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearCargaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCarga(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AcopioHandler) ListarCargas(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarCargas(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cargas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
