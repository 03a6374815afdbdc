package repository

import (
	"context"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	// ListByDateAndBranch returns non-deleted rows whose business timestamp
	// falls on the given UTC day, ordered by insertion (id).
	ListByDateAndBranch(ctx context.Context, day time.Time, branchID string) ([]model.Payment, error)
	FindByID(ctx context.Context, id uint) (*model.Payment, error)
	// SoftDelete flips the deleted flag; reports false when the row does not
	// exist or was already deleted.
	SoftDelete(ctx context.Context, id uint) (bool, error)
	ListDistinctDates(ctx context.Context) ([]string, error)
	// CountAll includes soft-deleted rows — audit visibility into retention.
	CountAll(ctx context.Context) (int64, error)
}

type paymentRepo struct {
	db  *gorm.DB
	run *infra.Runner
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db, run: infra.NewRunner(db)}
}

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) ListByDateAndBranch(ctx context.Context, day time.Time, branchID string) ([]model.Payment, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var pagos []model.Payment
	err := r.db.WithContext(ctx).
		Where("deleted = ? AND branch_id = ? AND date >= ? AND date < ?", false, branchID, start, end).
		Order("id ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *paymentRepo) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res, err := r.run.Exec(ctx, infra.Write(
		"UPDATE payments SET deleted = 1 WHERE id = ? AND deleted = 0", id))
	if err != nil {
		return false, err
	}
	return res.AffectedRows > 0, nil
}

func (r *paymentRepo) ListDistinctDates(ctx context.Context) ([]string, error) {
	rows, err := r.run.Query(ctx, infra.Read(
		"SELECT DISTINCT substr(date, 1, 10) AS dia FROM payments WHERE deleted = 0 ORDER BY dia DESC"))
	if err != nil {
		return nil, err
	}
	fechas := make([]string, 0, len(rows))
	for _, row := range rows {
		if dia, ok := row["dia"].(string); ok {
			fechas = append(fechas, dia)
		}
	}
	return fechas, nil
}

func (r *paymentRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).Count(&count).Error
	return count, err
}
