package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyFilter struct {
	ManagerID *uuid.UUID
}

type PropertyRepository interface {
	// CreateWithFloors inserts the property and its floors atomically.
	CreateWithFloors(ctx context.Context, p *models.Property, floors []*models.Floor) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, f PropertyFilter, limit, offset int) ([]*models.Property, int64, error)
	ListAll(ctx context.Context, f PropertyFilter) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	AssignManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error

	// SoftDelete marks the property and its floors and locals deleted in
	// one transaction.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) CreateWithFloors(ctx context.Context, p *models.Property, floors []*models.Floor) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO properties (
			id, manager_id, name, location, description,
			number_of_floors, has_basement,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
	`,
		p.ID,
		p.ManagerID,
		p.Name,
		p.Location,
		p.Description,
		p.NumberOfFloors,
		p.HasBasement,
	)
	if err != nil {
		return err
	}

	for _, f := range floors {
		_, err = tx.Exec(ctx, `
			INSERT INTO floors (
				id, property_id, name, level, created_at, updated_at, row_version
			) VALUES ($1,$2,$3,$4, NOW(), NOW(), 1)
		`, f.ID, f.PropertyID, f.Name, f.Level)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) List(ctx context.Context, f PropertyFilter, limit, offset int) ([]*models.Property, int64, error) {
	where := " WHERE deleted_at IS NULL"
	args := []any{}
	if f.ManagerID != nil {
		args = append(args, *f.ManagerID)
		where += " AND manager_id=$1"
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := baseSelectProperty() + where + " ORDER BY created_at"
	if f.ManagerID != nil {
		sql += " LIMIT $2 OFFSET $3"
	} else {
		sql += " LIMIT $1 OFFSET $2"
	}
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *propertyRepo) ListAll(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	sql := baseSelectProperty() + " WHERE deleted_at IS NULL"
	args := []any{}
	if f.ManagerID != nil {
		sql += " AND manager_id=$1"
		args = append(args, *f.ManagerID)
	}
	sql += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE properties SET
			name=$1, location=$2, description=$3,
			number_of_floors=$4, has_basement=$5, updated_at=NOW()
	`
	args := []any{
		p.Name, p.Location, p.Description,
		p.NumberOfFloors, p.HasBasement,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, p.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) AssignManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE properties SET manager_id=$1, updated_at=NOW()
		WHERE id=$2 AND deleted_at IS NULL
	`, managerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE properties SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
		return err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE floors SET deleted_at=NOW() WHERE property_id=$1 AND deleted_at IS NULL
	`, id); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE locals SET deleted_at=NOW() WHERE property_id=$1 AND deleted_at IS NULL
	`, id)
	return err
}

func baseSelectProperty() string {
	return `
		SELECT
			id, manager_id, name, location, description,
			number_of_floors, has_basement,
			created_at, updated_at, row_version, deleted_at
		FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	var managerID pgtype.UUID
	var deletedAt pgtype.Timestamptz
	err := row.Scan(
		&p.ID,
		&managerID,
		&p.Name,
		&p.Location,
		&p.Description,
		&p.NumberOfFloors,
		&p.HasBasement,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
		&deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if managerID.Status == pgtype.Present {
		id := uuid.UUID(managerID.Bytes)
		p.ManagerID = &id
	}
	if deletedAt.Status == pgtype.Present {
		p.DeletedAt = &deletedAt.Time
	}
	return &p, nil
}
