package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"
	"github.com/MatyCastillo/cashdesk-webapp/internal/repository"
	"github.com/MatyCastillo/cashdesk-webapp/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	fechaDia       = "2006-01-02"
	totalesTTL     = 5 * time.Minute
	turnoCorteHora = 14 // before 14:00 local: mañana; after: tarde
)

type PaymentService interface {
	Registrar(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error)
	// ListarPorFecha returns the non-deleted rows for one business date and
	// branch plus their reconciliation summary.
	ListarPorFecha(ctx context.Context, fecha, branchID string) (*dto.ListaPagosResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Fechas(ctx context.Context) ([]string, error)
	// DatosDelDia feeds the XLSX/PDF exports: raw rows plus summary.
	DatosDelDia(ctx context.Context, fecha, branchID string) ([]model.Payment, dto.ResumenResponse, error)
	// RefreshTotales recomputes and caches the summary for one scope.
	// Invoked by the worker pool after every ledger write.
	RefreshTotales(ctx context.Context, fecha, branchID string) error
	// Auditoria returns the physical row count including soft-deleted rows.
	Auditoria(ctx context.Context) (int64, error)
}

type paymentService struct {
	repo       repository.PaymentRepository
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
	loc        *time.Location
}

func NewPaymentService(repo repository.PaymentRepository, rdb *redis.Client, dispatcher *worker.Dispatcher, cfg *config.Config) PaymentService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Err(err).Msg("zona horaria desconocida, usando UTC")
		loc = time.UTC
	}
	return &paymentService{repo: repo, rdb: rdb, dispatcher: dispatcher, loc: loc}
}

func (s *paymentService) Registrar(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error) {
	if !model.MetodoValido(req.Metodo) {
		return nil, fmt.Errorf("%w: metodo %q", ErrValidacion, req.Metodo)
	}
	// Normal entries must be positive; "diferencia" corrections can carry
	// either sign but never zero.
	if req.Metodo != model.MetodoDiferencia && req.Monto.Sign() <= 0 {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", ErrValidacion)
	}
	if req.Monto.IsZero() {
		return nil, fmt.Errorf("%w: el monto no puede ser cero", ErrValidacion)
	}

	fecha, err := time.Parse(time.RFC3339, req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", ErrValidacion, req.Fecha)
	}

	pago := &model.Payment{
		Metodo:   req.Metodo,
		Monto:    req.Monto,
		Fecha:    fecha.UTC(), // stored in UTC so date-range filters compare uniformly
		BranchID: req.BranchID,
		Usuario:  req.Usuario,
		Turno:    s.turnoPara(fecha),
	}
	if err := s.repo.Create(ctx, pago); err != nil {
		return nil, err
	}

	s.encolarRefresh(ctx, pago)

	resp := toPagoResponse(pago)
	return &resp, nil
}

func (s *paymentService) ListarPorFecha(ctx context.Context, fecha, branchID string) (*dto.ListaPagosResponse, error) {
	dia, err := time.Parse(fechaDia, fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", ErrValidacion, fecha)
	}

	pagos, err := s.repo.ListByDateAndBranch(ctx, dia, branchID)
	if err != nil {
		return nil, err
	}

	// The totals are always recomputed from the rows just read, so Data and
	// Resumen can never disagree. The redis copy is refreshed as a side
	// effect for consumers that only poll the cache.
	resumen := Summarize(pagos)
	s.cachearResumen(ctx, fecha, branchID, resumen)
	if resumen.Ignorados > 0 {
		log.Warn().
			Str("fecha", fecha).
			Str("branch", branchID).
			Int("ignorados", resumen.Ignorados).
			Msg("filas con metodo no reconocido excluidas del resumen")
	}

	data := make([]dto.PagoResponse, len(pagos))
	for i, p := range pagos {
		data[i] = toPagoResponse(&p)
	}
	return &dto.ListaPagosResponse{Data: data, Resumen: resumen}, nil
}

func (s *paymentService) Eliminar(ctx context.Context, id uint) error {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Only a missing row maps to 404; a storage failure stays a
		// storage failure.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}

	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoEncontrado
	}

	s.encolarRefresh(ctx, pago)
	return nil
}

func (s *paymentService) Fechas(ctx context.Context) ([]string, error) {
	return s.repo.ListDistinctDates(ctx)
}

func (s *paymentService) DatosDelDia(ctx context.Context, fecha, branchID string) ([]model.Payment, dto.ResumenResponse, error) {
	dia, err := time.Parse(fechaDia, fecha)
	if err != nil {
		return nil, dto.ResumenResponse{}, fmt.Errorf("%w: fecha %q", ErrValidacion, fecha)
	}
	pagos, err := s.repo.ListByDateAndBranch(ctx, dia, branchID)
	if err != nil {
		return nil, dto.ResumenResponse{}, err
	}
	return pagos, Summarize(pagos), nil
}

func (s *paymentService) RefreshTotales(ctx context.Context, fecha, branchID string) error {
	dia, err := time.Parse(fechaDia, fecha)
	if err != nil {
		return fmt.Errorf("%w: fecha %q", ErrValidacion, fecha)
	}
	pagos, err := s.repo.ListByDateAndBranch(ctx, dia, branchID)
	if err != nil {
		return err
	}
	s.cachearResumen(ctx, fecha, branchID, Summarize(pagos))
	return nil
}

func (s *paymentService) Auditoria(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// turnoPara derives the work shift from the business timestamp in the
// register's local timezone.
func (s *paymentService) turnoPara(t time.Time) string {
	if t.In(s.loc).Hour() < turnoCorteHora {
		return "mañana"
	}
	return "tarde"
}

func (s *paymentService) encolarRefresh(ctx context.Context, pago *model.Payment) {
	if s.dispatcher == nil {
		return
	}
	fecha := pago.Fecha.UTC().Format(fechaDia)
	if err := s.dispatcher.EnqueueTotales(ctx, fecha, pago.BranchID); err != nil {
		// The cache is an optimization; a failed enqueue never fails the write.
		log.Warn().Str("fecha", fecha).Str("branch", pago.BranchID).Err(err).
			Msg("no se pudo encolar el refresh de totales")
	}
}

func cacheKeyTotales(fecha, branchID string) string {
	return "totales:" + fecha + ":" + branchID
}

// The redis client is nil in the seed tools and in unit tests; caching
// degrades to a no-op in that case.
func (s *paymentService) cachearResumen(ctx context.Context, fecha, branchID string, resumen dto.ResumenResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(resumen)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKeyTotales(fecha, branchID), data, totalesTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo cachear el resumen")
	}
}

func toPagoResponse(p *model.Payment) dto.PagoResponse {
	return dto.PagoResponse{
		ID:        p.ID,
		Metodo:    p.Metodo,
		Monto:     p.Monto.Round(2),
		Fecha:     p.Fecha.UTC().Format(time.RFC3339),
		BranchID:  p.BranchID,
		Usuario:   p.Usuario,
		Turno:     p.Turno,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
