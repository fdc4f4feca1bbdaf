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

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Finaliza el carrito en una transaccion: venta, items, descuento de stock y movimientos. Devuelve el recibo.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.Recibo
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Retorna lista paginada de ventas filtrada por rango de fechas.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta query string false "Fecha YYYY-MM-DD inclusive"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 50)"
// @Success      200   {object} dto.VentaListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), middleware.GetUsuarioID(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerRecibo godoc
// @Summary      Reimprimir recibo
// @Description  Devuelve el snapshot del recibo de una venta ya registrada. Solo lectura.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.Recibo
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/recibo [get]
func (h *VentasHandler) ObtenerRecibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerRecibo(c.Request.Context(), middleware.GetUsuarioID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
