package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

type CamionesHandler struct{ svc service.CamionService }

func NewCamionesHandler(svc service.CamionService) *CamionesHandler {
	return &CamionesHandler{svc: svc}
}

func (h *CamionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCamionRequest
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

func (h *CamionesHandler) Listar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), userID, incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar camiones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CamionesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Camion no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CamionesHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCamionRequest
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

func (h *CamionesHandler) Desactivar(c *gin.Context) {
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

func (h *CamionesHandler) Reactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
