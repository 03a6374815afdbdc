package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"
	"github.com/MatyCastillo/cashdesk-webapp/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory PaymentRepository ───────────────────────────────────────────────

type stubPaymentRepo struct {
	pagos  []*model.Payment
	nextID uint
}

func newStubPaymentRepo() *stubPaymentRepo { return &stubPaymentRepo{nextID: 1} }

func (r *stubPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now().UTC()
	r.pagos = append(r.pagos, p)
	return nil
}

func (r *stubPaymentRepo) ListByDateAndBranch(_ context.Context, day time.Time, branchID string) ([]model.Payment, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)
	var out []model.Payment
	for _, p := range r.pagos {
		if p.Deleted || p.BranchID != branchID {
			continue
		}
		if p.Fecha.Before(start) || !p.Fecha.Before(end) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uint) (*model.Payment, error) {
	for _, p := range r.pagos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) SoftDelete(_ context.Context, id uint) (bool, error) {
	for _, p := range r.pagos {
		if p.ID == id && !p.Deleted {
			p.Deleted = true
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPaymentRepo) ListDistinctDates(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var fechas []string
	for _, p := range r.pagos {
		if p.Deleted {
			continue
		}
		dia := p.Fecha.UTC().Format("2006-01-02")
		if !seen[dia] {
			seen[dia] = true
			fechas = append(fechas, dia)
		}
	}
	return fechas, nil
}

func (r *stubPaymentRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.pagos)), nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestPaymentService(repo repository.PaymentRepository) PaymentService {
	cfg := &config.Config{Timezone: "America/Argentina/Buenos_Aires"}
	return NewPaymentService(repo, nil, nil, cfg)
}

func crearReq(metodo, monto, fecha, branch string) dto.CrearPagoRequest {
	return dto.CrearPagoRequest{
		Metodo:   metodo,
		Monto:    decimal.RequireFromString(monto),
		Fecha:    fecha,
		BranchID: branch,
		Usuario:  "cajero1",
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarYListarRoundTrip(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)

	creado, err := svc.Registrar(context.Background(), crearReq("efectivo", "150.50", "2024-05-01T10:00:00Z", "01"))
	require.NoError(t, err)
	assert.Equal(t, "efectivo", creado.Metodo)

	lista, err := svc.ListarPorFecha(context.Background(), "2024-05-01", "01")
	require.NoError(t, err)
	require.Len(t, lista.Data, 1)

	p := lista.Data[0]
	assert.Equal(t, "efectivo", p.Metodo)
	assert.Equal(t, "150.5", p.Monto.String())
	assert.Equal(t, "01", p.BranchID)
	assert.Equal(t, "cajero1", p.Usuario)
}

func TestRegistrarRechazaMontoInvalido(t *testing.T) {
	svc := newTestPaymentService(newStubPaymentRepo())

	_, err := svc.Registrar(context.Background(), crearReq("efectivo", "-5", "2024-05-01T10:00:00Z", "01"))
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = svc.Registrar(context.Background(), crearReq("qr", "0", "2024-05-01T10:00:00Z", "01"))
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestRegistrarPermiteDiferenciaNegativa(t *testing.T) {
	svc := newTestPaymentService(newStubPaymentRepo())

	creado, err := svc.Registrar(context.Background(), crearReq("diferencia", "-10", "2024-05-01T10:00:00Z", "01"))
	require.NoError(t, err)
	assert.Equal(t, "diferencia", creado.Metodo)
}

func TestRegistrarRechazaFechaMalformada(t *testing.T) {
	svc := newTestPaymentService(newStubPaymentRepo())

	_, err := svc.Registrar(context.Background(), crearReq("efectivo", "10", "no-es-fecha", "01"))
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestRegistrarRechazaMetodoDesconocido(t *testing.T) {
	svc := newTestPaymentService(newStubPaymentRepo())

	req := crearReq("cheque", "10", "2024-05-01T10:00:00Z", "01")
	_, err := svc.Registrar(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestListarFiltraPorFechaYSucursal(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, crearReq("efectivo", "100", "2024-05-01T10:00:00Z", "01"))
	require.NoError(t, err)

	lista, err := svc.ListarPorFecha(ctx, "2024-05-01", "01")
	require.NoError(t, err)
	assert.Len(t, lista.Data, 1)

	otraFecha, err := svc.ListarPorFecha(ctx, "2024-05-02", "01")
	require.NoError(t, err)
	assert.Empty(t, otraFecha.Data)

	otraSucursal, err := svc.ListarPorFecha(ctx, "2024-05-01", "02")
	require.NoError(t, err)
	assert.Empty(t, otraSucursal.Data)
}

func TestEliminarExcluyeDelListadoPeroConservaLaFila(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	creado, err := svc.Registrar(ctx, crearReq("tarjeta", "80", "2024-05-01T12:00:00Z", "01"))
	require.NoError(t, err)

	antes, err := svc.Auditoria(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, creado.ID))

	lista, err := svc.ListarPorFecha(ctx, "2024-05-01", "01")
	require.NoError(t, err)
	assert.Empty(t, lista.Data)

	despues, err := svc.Auditoria(ctx)
	require.NoError(t, err)
	assert.Equal(t, antes, despues, "el soft delete no debe borrar filas")
}

func TestEliminarInexistente(t *testing.T) {
	svc := newTestPaymentService(newStubPaymentRepo())

	err := svc.Eliminar(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestEliminarDosVeces(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	creado, err := svc.Registrar(ctx, crearReq("qr", "20", "2024-05-01T12:00:00Z", "01"))
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, creado.ID))
	assert.ErrorIs(t, svc.Eliminar(ctx, creado.ID), ErrNoEncontrado)
}

func TestFechasOmiteEliminados(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, crearReq("efectivo", "10", "2024-05-01T09:00:00Z", "01"))
	require.NoError(t, err)
	solo, err := svc.Registrar(ctx, crearReq("efectivo", "10", "2024-05-02T09:00:00Z", "01"))
	require.NoError(t, err)
	require.NoError(t, svc.Eliminar(ctx, solo.ID))

	fechas, err := svc.Fechas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01"}, fechas)
}

func TestTurnoSegunHoraLocal(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	// 12:00 UTC = 09:00 in Buenos Aires (UTC-3) → mañana
	manana, err := svc.Registrar(ctx, crearReq("efectivo", "10", "2024-05-01T12:00:00Z", "01"))
	require.NoError(t, err)
	assert.Equal(t, "mañana", manana.Turno)

	// 20:00 UTC = 17:00 in Buenos Aires → tarde
	tarde, err := svc.Registrar(ctx, crearReq("efectivo", "10", "2024-05-01T20:00:00Z", "01"))
	require.NoError(t, err)
	assert.Equal(t, "tarde", tarde.Turno)
}

func TestListarIncluyeResumen(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, crearReq("efectivo", "100", "2024-05-01T10:00:00Z", "01"))
	require.NoError(t, err)
	_, err = svc.Registrar(ctx, crearReq("diferencia", "-10", "2024-05-01T11:00:00Z", "01"))
	require.NoError(t, err)

	lista, err := svc.ListarPorFecha(ctx, "2024-05-01", "01")
	require.NoError(t, err)
	assert.True(t, lista.Resumen.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, lista.Resumen.Totales["diferencia"].Equal(decimal.NewFromInt(-10)))
}

// Storage failures must propagate untouched — no retries in this layer.
type failingPaymentRepo struct{ stubPaymentRepo }

func (r *failingPaymentRepo) Create(context.Context, *model.Payment) error {
	return errors.New("disk I/O error")
}

func TestRegistrarPropagaErrorDeStorage(t *testing.T) {
	svc := newTestPaymentService(&failingPaymentRepo{})

	_, err := svc.Registrar(context.Background(), crearReq("efectivo", "10", "2024-05-01T10:00:00Z", "01"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidacion)
}

var errDisco = errors.New("disk I/O error")

type failingFindRepo struct{ stubPaymentRepo }

func (r *failingFindRepo) FindByID(context.Context, uint) (*model.Payment, error) {
	return nil, errDisco
}

// A lookup that fails for storage reasons is not a missing row: Eliminar must
// surface the original error, never ErrNoEncontrado.
func TestEliminarDistingueFallaDeStorageDeNotFound(t *testing.T) {
	svc := newTestPaymentService(&failingFindRepo{})

	err := svc.Eliminar(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisco)
	assert.NotErrorIs(t, err, ErrNoEncontrado)
}

// Resumen is always derived from the same rows returned in Data, so a write
// between two listings shows up in both halves of the next response.
func TestListarResumenConsistenteConData(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := newTestPaymentService(repo)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, crearReq("efectivo", "100", "2024-05-01T10:00:00Z", "01"))
	require.NoError(t, err)

	primera, err := svc.ListarPorFecha(ctx, "2024-05-01", "01")
	require.NoError(t, err)
	assert.True(t, primera.Resumen.Total.Equal(decimal.NewFromInt(100)))

	_, err = svc.Registrar(ctx, crearReq("qr", "50", "2024-05-01T11:00:00Z", "01"))
	require.NoError(t, err)

	segunda, err := svc.ListarPorFecha(ctx, "2024-05-01", "01")
	require.NoError(t, err)
	require.Len(t, segunda.Data, 2)
	assert.True(t, segunda.Resumen.Total.Equal(decimal.NewFromInt(150)))
	assert.True(t, segunda.Resumen.Totales["qr"].Equal(decimal.NewFromInt(50)))
}
