package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MatyCastillo/cashdesk-webapp/internal/apierror"
	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"
	"github.com/MatyCastillo/cashdesk-webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	svc service.PaymentService
	cfg *config.Config
}

func NewPaymentsHandler(svc service.PaymentService, cfg *config.Config) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, cfg: cfg}
}

// Crear registers a new ledger entry.
func (h *PaymentsHandler) Crear(c *gin.Context) {
	var req dto.CrearPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns the day's non-deleted payments for one branch, plus the
// reconciliation summary.
func (h *PaymentsHandler) Listar(c *gin.Context) {
	fecha := c.Query("date")
	branch := c.Query("branch")
	if fecha == "" || branch == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametros date y branch requeridos"))
		return
	}
	resp, err := h.svc.ListarPorFecha(c.Request.Context(), fecha, branch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar soft-deletes one payment. The row stays stored for audit.
func (h *PaymentsHandler) Eliminar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Fechas lists the distinct business dates with at least one active payment.
func (h *PaymentsHandler) Fechas(c *gin.Context) {
	fechas, err := h.svc.Fechas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FechasResponse{Fechas: fechas})
}

// Descargar streams the day's ledger as an XLSX workbook.
func (h *PaymentsHandler) Descargar(c *gin.Context) {
	fecha := c.Param("date")
	branch := c.DefaultQuery("branch", "01")

	pagos, resumen, err := h.svc.DatosDelDia(c.Request.Context(), fecha, branch)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := infra.GenerateDailyXLSX(fecha, pagos, resumen)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pagos_%s.xlsx"`, fecha))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Reporte generates and serves the daily reconciliation PDF.
func (h *PaymentsHandler) Reporte(c *gin.Context) {
	fecha := c.Param("date")
	branch := c.DefaultQuery("branch", "01")

	pagos, resumen, err := h.svc.DatosDelDia(c.Request.Context(), fecha, branch)
	if err != nil {
		respondError(c, err)
		return
	}

	path, err := infra.GenerateDailyReportPDF(fecha, branch, pagos, resumen, h.cfg.ExportStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, fmt.Sprintf("cierre_%s.pdf", fecha))
}
