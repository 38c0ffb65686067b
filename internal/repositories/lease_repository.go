package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

type LeaseFilter struct {
	Status    *models.LeaseStatusType
	TenantID  *uuid.UUID
	LocalID   *uuid.UUID
	ManagerID *uuid.UUID
}

// UpcomingLease pairs a lease with the end of its most recent paid
// period (the lease start date when no payment exists yet).
type UpcomingLease struct {
	Lease     *models.Lease
	PeriodEnd time.Time
}

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context, f LeaseFilter, limit, offset int) ([]*models.Lease, int64, error)
	ListAll(ctx context.Context, f LeaseFilter) ([]*models.Lease, error)
	Update(ctx context.Context, l *models.Lease) error
	UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ExpireDue flips active leases whose end date has passed to expired
	// and reports how many rows changed. Safe to run repeatedly.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)

	// ListUpcomingDue returns active leases whose latest paid period ends
	// within [now, until].
	ListUpcomingDue(ctx context.Context, now, until time.Time) ([]UpcomingLease, error)
}

type leaseRepo struct {
	*BaseVersionedRepo[*models.Lease]
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	r := &leaseRepo{db: db}
	selectStmt := baseSelectLease() + " WHERE l.id=$1 AND l.deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLease)
	return r
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leases (
			id, reference, tenant_id, local_id, start_date, end_date,
			lease_amount, status, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
	`, l.ID, l.Reference, l.TenantID, l.LocalID, l.StartDate, l.EndDate, l.LeaseAmount, l.Status)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *leaseRepo) buildWhere(f LeaseFilter) (string, []any) {
	where := " WHERE l.deleted_at IS NULL"
	args := []any{}
	if f.Status != nil {
		args = append(args, *f.Status)
		where += fmt.Sprintf(" AND l.status=$%d", len(args))
	}
	if f.TenantID != nil {
		args = append(args, *f.TenantID)
		where += fmt.Sprintf(" AND l.tenant_id=$%d", len(args))
	}
	if f.LocalID != nil {
		args = append(args, *f.LocalID)
		where += fmt.Sprintf(" AND l.local_id=$%d", len(args))
	}
	if f.ManagerID != nil {
		args = append(args, *f.ManagerID)
		where += fmt.Sprintf(
			` AND l.local_id IN (
				SELECT lo.id FROM locals lo
				JOIN properties p ON p.id = lo.property_id
				WHERE p.manager_id=$%d AND p.deleted_at IS NULL
			)`, len(args))
	}
	return where, args
}

func (r *leaseRepo) List(ctx context.Context, f LeaseFilter, limit, offset int) ([]*models.Lease, int64, error) {
	where, args := r.buildWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM leases l"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := baseSelectLease() + where +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *leaseRepo) ListAll(ctx context.Context, f LeaseFilter) ([]*models.Lease, error) {
	where, args := r.buildWhere(f)
	rows, err := r.db.Query(ctx, baseSelectLease()+where+" ORDER BY l.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leaseRepo) Update(ctx context.Context, l *models.Lease) error {
	_, err := r.update(ctx, l, false, 0)
	return err
}

func (r *leaseRepo) UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, l, true, expected)
}

func (r *leaseRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *leaseRepo) update(ctx context.Context, l *models.Lease, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE leases SET
			tenant_id=$1, local_id=$2, start_date=$3, end_date=$4,
			lease_amount=$5, status=$6, updated_at=NOW()
	`
	args := []any{l.TenantID, l.LocalID, l.StartDate, l.EndDate, l.LeaseAmount, l.Status}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$7 AND row_version=$8`
		args = append(args, l.ID, expected)
	} else {
		sql += ` WHERE id=$7`
		args = append(args, l.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *leaseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leases SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE leases SET status='expired', row_version=row_version+1, updated_at=NOW()
		WHERE status='active' AND end_date < $1 AND deleted_at IS NULL
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *leaseRepo) ListUpcomingDue(ctx context.Context, now, until time.Time) ([]UpcomingLease, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.reference, l.tenant_id, l.local_id, l.start_date, l.end_date,
		       l.lease_amount, l.status, l.created_at, l.updated_at, l.row_version, l.deleted_at,
		       COALESCE(
		           (SELECT MAX(p.period_end) FROM payments p
		            WHERE p.lease_id = l.id AND p.deleted_at IS NULL),
		           l.start_date
		       ) AS period_end
		FROM leases l
		WHERE l.status='active' AND l.deleted_at IS NULL
		  AND COALESCE(
		          (SELECT MAX(p.period_end) FROM payments p
		           WHERE p.lease_id = l.id AND p.deleted_at IS NULL),
		          l.start_date
		      ) BETWEEN $1 AND $2
		ORDER BY period_end
	`, now, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UpcomingLease
	for rows.Next() {
		var l models.Lease
		var deletedAt pgtype.Timestamptz
		var periodEnd time.Time
		if err := rows.Scan(
			&l.ID, &l.Reference, &l.TenantID, &l.LocalID, &l.StartDate, &l.EndDate,
			&l.LeaseAmount, &l.Status, &l.CreatedAt, &l.UpdatedAt, &l.RowVersion, &deletedAt,
			&periodEnd,
		); err != nil {
			return nil, err
		}
		if deletedAt.Status == pgtype.Present {
			l.DeletedAt = &deletedAt.Time
		}
		out = append(out, UpcomingLease{Lease: &l, PeriodEnd: periodEnd})
	}
	return out, rows.Err()
}

func baseSelectLease() string {
	return `
		SELECT l.id, l.reference, l.tenant_id, l.local_id, l.start_date, l.end_date,
		       l.lease_amount, l.status, l.created_at, l.updated_at, l.row_version, l.deleted_at
		FROM leases l`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&l.ID, &l.Reference, &l.TenantID, &l.LocalID, &l.StartDate, &l.EndDate,
		&l.LeaseAmount, &l.Status, &l.CreatedAt, &l.UpdatedAt, &l.RowVersion, &deletedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deletedAt.Status == pgtype.Present {
		l.DeletedAt = &deletedAt.Time
	}
	return &l, nil
}
