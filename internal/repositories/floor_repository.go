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

type FloorFilter struct {
	PropertyID *uuid.UUID
	// ManagerID scopes the listing to floors of properties assigned to
	// that manager.
	ManagerID *uuid.UUID
}

type FloorRepository interface {
	Create(ctx context.Context, f *models.Floor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error)
	List(ctx context.Context, f FloorFilter, limit, offset int) ([]*models.Floor, int64, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Floor, error)
	ListVisible(ctx context.Context, managerID *uuid.UUID) ([]*models.Floor, error)
	Update(ctx context.Context, f *models.Floor) error
	UpdateIfVersion(ctx context.Context, f *models.Floor, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Floor) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type floorRepo struct {
	*BaseVersionedRepo[*models.Floor]
	db DB
}

func NewFloorRepository(db DB) FloorRepository {
	r := &floorRepo{db: db}
	selectStmt := baseSelectFloor() + " WHERE f.id=$1 AND f.deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanFloor)
	return r
}

func (r *floorRepo) Create(ctx context.Context, f *models.Floor) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO floors (
			id, property_id, name, level, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4, NOW(), NOW(), 1)
	`, f.ID, f.PropertyID, f.Name, f.Level)
	return err
}

func (r *floorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *floorRepo) List(ctx context.Context, f FloorFilter, limit, offset int) ([]*models.Floor, int64, error) {
	where := " WHERE f.deleted_at IS NULL"
	args := []any{}
	if f.PropertyID != nil {
		args = append(args, *f.PropertyID)
		where += fmt.Sprintf(" AND f.property_id=$%d", len(args))
	}
	if f.ManagerID != nil {
		args = append(args, *f.ManagerID)
		where += fmt.Sprintf(
			" AND f.property_id IN (SELECT id FROM properties WHERE manager_id=$%d AND deleted_at IS NULL)",
			len(args),
		)
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM floors f"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := baseSelectFloor() + where +
		fmt.Sprintf(" ORDER BY f.property_id, f.level LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Floor
	for rows.Next() {
		fl, err := scanFloor(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, fl)
	}
	return out, total, rows.Err()
}

func (r *floorRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Floor, error) {
	rows, err := r.db.Query(ctx,
		baseSelectFloor()+" WHERE f.property_id=$1 AND f.deleted_at IS NULL ORDER BY f.level",
		propertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *floorRepo) ListVisible(ctx context.Context, managerID *uuid.UUID) ([]*models.Floor, error) {
	sql := baseSelectFloor() + " WHERE f.deleted_at IS NULL"
	args := []any{}
	if managerID != nil {
		sql += " AND f.property_id IN (SELECT id FROM properties WHERE manager_id=$1 AND deleted_at IS NULL)"
		args = append(args, *managerID)
	}
	sql += " ORDER BY f.property_id, f.level"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *floorRepo) Update(ctx context.Context, f *models.Floor) error {
	_, err := r.update(ctx, f, false, 0)
	return err
}

func (r *floorRepo) UpdateIfVersion(ctx context.Context, f *models.Floor, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, f, true, expected)
}

func (r *floorRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Floor) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *floorRepo) update(ctx context.Context, f *models.Floor, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE floors SET name=$1, level=$2, updated_at=NOW()
	`
	args := []any{f.Name, f.Level}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$3 AND row_version=$4`
		args = append(args, f.ID, expected)
	} else {
		sql += ` WHERE id=$3`
		args = append(args, f.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *floorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE floors SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectFloor() string {
	return `
		SELECT f.id, f.property_id, f.name, f.level,
		       f.created_at, f.updated_at, f.row_version, f.deleted_at
		FROM floors f`
}

func scanFloor(row pgx.Row) (*models.Floor, error) {
	var f models.Floor
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&f.ID, &f.PropertyID, &f.Name, &f.Level,
		&f.CreatedAt, &f.UpdatedAt, &f.RowVersion, &deletedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deletedAt.Status == pgtype.Present {
		f.DeletedAt = &deletedAt.Time
	}
	return &f, nil
}
