package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

type AvatarHandler struct{ svc service.AvatarService }

func NewAvatarHandler(svc service.AvatarService) *AvatarHandler {
	return &AvatarHandler{svc: svc}
}

// Subir handles multipart avatar uploads under the form field "file".
func (h *AvatarHandler) Subir(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el campo file"))
		return
	}
	if fileHeader.Size > service.MaxAvatarSize {
		c.JSON(http.StatusBadRequest, apierror.New("El archivo supera el limite de 5MB"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxAvatarSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.svc.Subir(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
