package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

type PaymentFilter struct {
	LeaseID   *uuid.UUID
	ManagerID *uuid.UUID
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, f PaymentFilter, limit, offset int) ([]*models.Payment, int64, error)
	Update(ctx context.Context, p *models.Payment) error
	UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Payment) error) error
	SetProofURL(ctx context.Context, id uuid.UUID, proofURL string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type paymentRepo struct {
	*BaseVersionedRepo[*models.Payment]
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	r := &paymentRepo{db: db}
	selectStmt := baseSelectPayment() + " WHERE pm.id=$1 AND pm.deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanPayment)
	return r
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (
			id, lease_id, payment_mode_id, amount, period_start, period_end,
			invoice_number, proof_url, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
	`, p.ID, p.LeaseID, p.PaymentModeID, p.Amount, p.PeriodStart, p.PeriodEnd,
		p.InvoiceNumber, p.ProofURL)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *paymentRepo) GetByIDAny(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE pm.id=$1", id)
	return scanPayment(row)
}

func (r *paymentRepo) List(ctx context.Context, f PaymentFilter, limit, offset int) ([]*models.Payment, int64, error) {
	where := " WHERE pm.deleted_at IS NULL"
	args := []any{}
	if f.LeaseID != nil {
		args = append(args, *f.LeaseID)
		where += fmt.Sprintf(" AND pm.lease_id=$%d", len(args))
	}
	if f.ManagerID != nil {
		args = append(args, *f.ManagerID)
		where += fmt.Sprintf(
			` AND pm.lease_id IN (
				SELECT le.id FROM leases le
				JOIN locals lo ON lo.id = le.local_id
				JOIN properties pr ON pr.id = lo.property_id
				WHERE pr.manager_id=$%d AND pr.deleted_at IS NULL
			)`, len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM payments pm"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := baseSelectPayment() + where +
		fmt.Sprintf(" ORDER BY pm.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *paymentRepo) UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *paymentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Payment) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *paymentRepo) update(ctx context.Context, p *models.Payment, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE payments SET
			lease_id=$1, payment_mode_id=$2, amount=$3,
			period_start=$4, period_end=$5, invoice_number=$6, proof_url=$7,
			updated_at=NOW()
	`
	args := []any{
		p.LeaseID, p.PaymentModeID, p.Amount,
		p.PeriodStart, p.PeriodEnd, p.InvoiceNumber, p.ProofURL,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$8 AND row_version=$9`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$8`
		args = append(args, p.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *paymentRepo) SetProofURL(ctx context.Context, id uuid.UUID, proofURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments SET proof_url=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		proofURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) Restore(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments SET deleted_at=NULL, updated_at=NOW() WHERE id=$1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectPayment() string {
	return `
		SELECT pm.id, pm.lease_id, pm.payment_mode_id, pm.amount,
		       pm.period_start, pm.period_end, pm.invoice_number, pm.proof_url,
		       pm.created_at, pm.updated_at, pm.row_version, pm.deleted_at
		FROM payments pm`
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	var proofURL pgtype.Text
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&p.ID, &p.LeaseID, &p.PaymentModeID, &p.Amount,
		&p.PeriodStart, &p.PeriodEnd, &p.InvoiceNumber, &proofURL,
		&p.CreatedAt, &p.UpdatedAt, &p.RowVersion, &deletedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if proofURL.Status == pgtype.Present {
		p.ProofURL = &proofURL.String
	}
	if deletedAt.Status == pgtype.Present {
		p.DeletedAt = &deletedAt.Time
	}
	return &p, nil
}
