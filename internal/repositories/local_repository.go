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

type LocalFilter struct {
	Status     *models.LocalStatusType
	PropertyID *uuid.UUID
	FloorID    *uuid.UUID
	ManagerID  *uuid.UUID
}

// StatusCounts aggregates a floor's locals by status.
type StatusCounts struct {
	Total       int `json:"total_locals"`
	Occupied    int `json:"occupied"`
	Available   int `json:"available"`
	Maintenance int `json:"maintenance"`
}

type LocalRepository interface {
	Create(ctx context.Context, l *models.Local) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Local, error)
	// GetByIDAny also returns soft-deleted rows, for restore.
	GetByIDAny(ctx context.Context, id uuid.UUID) (*models.Local, error)
	List(ctx context.Context, f LocalFilter, limit, offset int) ([]*models.Local, int64, error)
	Update(ctx context.Context, l *models.Local) error
	UpdateIfVersion(ctx context.Context, l *models.Local, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Local) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	CountByFloorID(ctx context.Context, floorID uuid.UUID) (StatusCounts, error)
}

type localRepo struct {
	*BaseVersionedRepo[*models.Local]
	db DB
}

func NewLocalRepository(db DB) LocalRepository {
	r := &localRepo{db: db}
	selectStmt := baseSelectLocal() + " WHERE l.id=$1 AND l.deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLocal)
	return r
}

func (r *localRepo) Create(ctx context.Context, l *models.Local) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO locals (
			id, reference_code, status, size_m2, property_id, floor_id,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
	`, l.ID, l.ReferenceCode, l.Status, l.SizeM2, l.PropertyID, l.FloorID)
	return err
}

func (r *localRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Local, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *localRepo) GetByIDAny(ctx context.Context, id uuid.UUID) (*models.Local, error) {
	row := r.db.QueryRow(ctx, baseSelectLocal()+" WHERE l.id=$1", id)
	return scanLocal(row)
}

func (r *localRepo) List(ctx context.Context, f LocalFilter, limit, offset int) ([]*models.Local, int64, error) {
	where := " WHERE l.deleted_at IS NULL"
	args := []any{}
	if f.Status != nil {
		args = append(args, *f.Status)
		where += fmt.Sprintf(" AND l.status=$%d", len(args))
	}
	if f.PropertyID != nil {
		args = append(args, *f.PropertyID)
		where += fmt.Sprintf(" AND l.property_id=$%d", len(args))
	}
	if f.FloorID != nil {
		args = append(args, *f.FloorID)
		where += fmt.Sprintf(" AND l.floor_id=$%d", len(args))
	}
	if f.ManagerID != nil {
		args = append(args, *f.ManagerID)
		where += fmt.Sprintf(
			" AND l.property_id IN (SELECT id FROM properties WHERE manager_id=$%d AND deleted_at IS NULL)",
			len(args),
		)
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM locals l"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := baseSelectLocal() + where +
		fmt.Sprintf(" ORDER BY l.reference_code LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Local
	for rows.Next() {
		l, err := scanLocal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *localRepo) Update(ctx context.Context, l *models.Local) error {
	_, err := r.update(ctx, l, false, 0)
	return err
}

func (r *localRepo) UpdateIfVersion(ctx context.Context, l *models.Local, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, l, true, expected)
}

func (r *localRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Local) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *localRepo) update(ctx context.Context, l *models.Local, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE locals SET
			reference_code=$1, status=$2, size_m2=$3,
			property_id=$4, floor_id=$5, updated_at=NOW()
	`
	args := []any{l.ReferenceCode, l.Status, l.SizeM2, l.PropertyID, l.FloorID}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, l.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, l.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *localRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE locals SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *localRepo) Restore(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE locals SET deleted_at=NULL, updated_at=NOW() WHERE id=$1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *localRepo) CountByFloorID(ctx context.Context, floorID uuid.UUID) (StatusCounts, error) {
	var c StatusCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status='occupied'),
			COUNT(*) FILTER (WHERE status='available'),
			COUNT(*) FILTER (WHERE status='maintenance')
		FROM locals
		WHERE floor_id=$1 AND deleted_at IS NULL
	`, floorID).Scan(&c.Total, &c.Occupied, &c.Available, &c.Maintenance)
	return c, err
}

func baseSelectLocal() string {
	return `
		SELECT l.id, l.reference_code, l.status, l.size_m2,
		       l.property_id, l.floor_id,
		       l.created_at, l.updated_at, l.row_version, l.deleted_at
		FROM locals l`
}

func scanLocal(row pgx.Row) (*models.Local, error) {
	var l models.Local
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&l.ID, &l.ReferenceCode, &l.Status, &l.SizeM2,
		&l.PropertyID, &l.FloorID,
		&l.CreatedAt, &l.UpdatedAt, &l.RowVersion, &deletedAt,
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
