package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

type PaymentModeRepository interface {
	Create(ctx context.Context, m *models.PaymentMode) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentMode, error)
	GetByCode(ctx context.Context, code string) (*models.PaymentMode, error)
	List(ctx context.Context, limit, offset int) ([]*models.PaymentMode, int64, error)
	Update(ctx context.Context, m *models.PaymentMode) error
	UpdateIfVersion(ctx context.Context, m *models.PaymentMode, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.PaymentMode) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type paymentModeRepo struct {
	*BaseVersionedRepo[*models.PaymentMode]
	db DB
}

func NewPaymentModeRepository(db DB) PaymentModeRepository {
	r := &paymentModeRepo{db: db}
	selectStmt := baseSelectPaymentMode() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanPaymentMode)
	return r
}

func (r *paymentModeRepo) Create(ctx context.Context, m *models.PaymentMode) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payment_modes (
			id, code, display_name, requires_proof, description,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5, NOW(), NOW(), 1)
	`, m.ID, m.Code, m.DisplayName, m.RequiresProof, m.Description)
	return err
}

func (r *paymentModeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentMode, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *paymentModeRepo) GetByCode(ctx context.Context, code string) (*models.PaymentMode, error) {
	row := r.db.QueryRow(ctx,
		baseSelectPaymentMode()+" WHERE code=$1 AND deleted_at IS NULL", code)
	return scanPaymentMode(row)
}

func (r *paymentModeRepo) List(ctx context.Context, limit, offset int) ([]*models.PaymentMode, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_modes WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		baseSelectPaymentMode()+" WHERE deleted_at IS NULL ORDER BY code LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.PaymentMode
	for rows.Next() {
		m, err := scanPaymentMode(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *paymentModeRepo) Update(ctx context.Context, m *models.PaymentMode) error {
	_, err := r.update(ctx, m, false, 0)
	return err
}

func (r *paymentModeRepo) UpdateIfVersion(ctx context.Context, m *models.PaymentMode, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, m, true, expected)
}

func (r *paymentModeRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.PaymentMode) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *paymentModeRepo) update(ctx context.Context, m *models.PaymentMode, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE payment_modes SET
			code=$1, display_name=$2, requires_proof=$3, description=$4, updated_at=NOW()
	`
	args := []any{m.Code, m.DisplayName, m.RequiresProof, m.Description}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$5 AND row_version=$6`
		args = append(args, m.ID, expected)
	} else {
		sql += ` WHERE id=$5`
		args = append(args, m.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *paymentModeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payment_modes SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectPaymentMode() string {
	return `
		SELECT id, code, display_name, requires_proof, description,
		       created_at, updated_at, row_version, deleted_at
		FROM payment_modes`
}

func scanPaymentMode(row pgx.Row) (*models.PaymentMode, error) {
	var m models.PaymentMode
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&m.ID, &m.Code, &m.DisplayName, &m.RequiresProof, &m.Description,
		&m.CreatedAt, &m.UpdatedAt, &m.RowVersion, &deletedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deletedAt.Status == pgtype.Present {
		m.DeletedAt = &deletedAt.Time
	}
	return &m, nil
}
