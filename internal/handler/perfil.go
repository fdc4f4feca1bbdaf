package handler

import (
	"net/http"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/middleware"
	"github.com/JhoonerO/TuckFlow/internal/service"

	"github.com/gin-gonic/gin"
)

type PerfilHandler struct{ svc service.PerfilService }

func NewPerfilHandler(svc service.PerfilService) *PerfilHandler {
	return &PerfilHandler{svc: svc}
}

func (h *PerfilHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), middleware.GetUsuarioID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PerfilHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarPerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
