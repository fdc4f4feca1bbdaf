package handler

import (
	"net/http"

	"github.com/JhoonerO/TuckFlow/internal/apierror"
	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/middleware"
	"github.com/JhoonerO/TuckFlow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// ListarMovimientos godoc
// @Summary      Historial de movimientos de stock
// @Description  Lista el historial ordenado del mas reciente al mas antiguo, con filtro por tipo y busqueda por producto o motivo.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        tipo        query string false "entrada | salida | ajuste"
// @Param        busqueda    query string false "Subcadena sobre nombre de producto o motivo"
// @Param        producto_id query string false "UUID del producto"
// @Success      200 {object} dto.MovimientoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido"))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), middleware.GetUsuarioID(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReconciliarProducto verifies that the stored stock of a product equals the
// signed sum of its movement ledger.
func (h *InventarioHandler) ReconciliarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ReconciliarProducto(c.Request.Context(), middleware.GetUsuarioID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
