package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/middleware"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"
	"github.com/MatyCastillo/cashdesk-webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentService answers from canned fields so the handler layer can be
// exercised without storage.
type stubPaymentService struct {
	pago       *dto.PagoResponse
	lista      *dto.ListaPagosResponse
	fechas     []string
	err        error
	eliminados []uint
}

var _ service.PaymentService = (*stubPaymentService)(nil)

func (s *stubPaymentService) Registrar(_ context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.pago != nil {
		return s.pago, nil
	}
	return &dto.PagoResponse{
		ID:       1,
		Metodo:   req.Metodo,
		Monto:    req.Monto,
		Fecha:    req.Fecha,
		BranchID: req.BranchID,
		Usuario:  req.Usuario,
		Turno:    "mañana",
	}, nil
}

func (s *stubPaymentService) ListarPorFecha(context.Context, string, string) (*dto.ListaPagosResponse, error) {
	return s.lista, s.err
}

func (s *stubPaymentService) Eliminar(_ context.Context, id uint) error {
	if s.err != nil {
		return s.err
	}
	s.eliminados = append(s.eliminados, id)
	return nil
}

func (s *stubPaymentService) Fechas(context.Context) ([]string, error) { return s.fechas, s.err }

func (s *stubPaymentService) DatosDelDia(context.Context, string, string) ([]model.Payment, dto.ResumenResponse, error) {
	return nil, dto.ResumenResponse{}, s.err
}

func (s *stubPaymentService) RefreshTotales(context.Context, string, string) error { return s.err }

func (s *stubPaymentService) Auditoria(context.Context) (int64, error) { return 0, s.err }

func newPaymentsRouter(svc service.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewPaymentsHandler(svc, &config.Config{})
	r.POST("/pagos", h.Crear)
	r.GET("/pagos", h.Listar)
	r.DELETE("/pagos/:id", h.Eliminar)
	r.GET("/pagos/dates", h.Fechas)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCrearPago(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	w := doJSON(t, r, http.MethodPost, "/pagos",
		`{"method":"efectivo","amount":150.50,"date":"2024-05-01T10:00:00Z","branchId":"01","user":"cajero1"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.PagoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "efectivo", resp.Metodo)
	assert.True(t, resp.Monto.Equal(decimal.RequireFromString("150.50")))
}

func TestCrearPagoMontoComoTexto(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	// Clients that serialize amounts as strings still get through
	w := doJSON(t, r, http.MethodPost, "/pagos",
		`{"method":"qr","amount":"99.90","date":"2024-05-01T10:00:00Z","branchId":"01","user":"cajero1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCrearPagoMetodoDesconocido(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	w := doJSON(t, r, http.MethodPost, "/pagos",
		`{"method":"cripto","amount":10,"date":"2024-05-01T10:00:00Z","branchId":"01","user":"cajero1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCrearPagoCuerpoInvalido(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	w := doJSON(t, r, http.MethodPost, "/pagos", `{"method":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrearPagoErrorDeValidacionDelServicio(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{
		err: fmt.Errorf("%w: monto invalido", service.ErrValidacion),
	})

	w := doJSON(t, r, http.MethodPost, "/pagos",
		`{"method":"efectivo","amount":-5,"date":"2024-05-01T10:00:00Z","branchId":"01","user":"cajero1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListarPagos(t *testing.T) {
	lista := &dto.ListaPagosResponse{
		Data: []dto.PagoResponse{{ID: 1, Metodo: "efectivo", Monto: decimal.NewFromInt(100)}},
		Resumen: dto.ResumenResponse{
			Totales: map[string]decimal.Decimal{"efectivo": decimal.NewFromInt(100)},
			Total:   decimal.NewFromInt(100),
		},
	}
	r := newPaymentsRouter(&stubPaymentService{lista: lista})

	w := doJSON(t, r, http.MethodGet, "/pagos?date=2024-05-01&branch=01", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListaPagosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Resumen.Total.Equal(decimal.NewFromInt(100)))
}

func TestListarPagosSinParametros(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/pagos", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/pagos?date=2024-05-01", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/pagos?branch=01", "").Code)
}

func TestEliminarPago(t *testing.T) {
	svc := &stubPaymentService{}
	r := newPaymentsRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/pagos/7", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uint{7}, svc.eliminados)
}

func TestEliminarPagoIDInvalido(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{})

	w := doJSON(t, r, http.MethodDelete, "/pagos/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEliminarPagoInexistente(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{err: service.ErrNoEncontrado})

	w := doJSON(t, r, http.MethodDelete, "/pagos/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFechas(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{fechas: []string{"2024-05-02", "2024-05-01"}})

	w := doJSON(t, r, http.MethodGet, "/pagos/dates", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.FechasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-05-02", "2024-05-01"}, resp.Fechas)
}

func TestErrorDesconocidoRespondeOpaco(t *testing.T) {
	r := newPaymentsRouter(&stubPaymentService{err: errors.New("disco lleno")})

	w := doJSON(t, r, http.MethodGet, "/pagos/dates", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disco lleno")
}
