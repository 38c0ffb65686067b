package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role *models.RoleType, limit, offset int) ([]*models.User, int64, error)
	ListAdmins(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type userRepo struct {
	*BaseVersionedRepo[*models.User]
	db DB
}

func NewUserRepository(db DB) UserRepository {
	r := &userRepo{db: db}
	selectStmt := baseSelectUser() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanUser)
	return r
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, full_name, email, password_hash, role, avatar, is_active,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
	`, u.ID, u.FullName, u.Email, u.PasswordHash, u.Role, u.Avatar, u.IsActive)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx,
		baseSelectUser()+" WHERE email=$1 AND deleted_at IS NULL", email)
	return scanUser(row)
}

func (r *userRepo) List(ctx context.Context, role *models.RoleType, limit, offset int) ([]*models.User, int64, error) {
	where := " WHERE deleted_at IS NULL"
	args := []any{}
	if role != nil {
		args = append(args, *role)
		where += " AND role=$1"
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := baseSelectUser() + where + " ORDER BY full_name"
	if role != nil {
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

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *userRepo) ListAdmins(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx,
		baseSelectUser()+" WHERE role='admin' AND is_active AND deleted_at IS NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	_, err := r.update(ctx, u, false, 0)
	return err
}

func (r *userRepo) UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, u, true, expected)
}

func (r *userRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *userRepo) update(ctx context.Context, u *models.User, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE users SET
			full_name=$1, email=$2, password_hash=$3, role=$4,
			avatar=$5, is_active=$6, updated_at=NOW()
	`
	args := []any{u.FullName, u.Email, u.PasswordHash, u.Role, u.Avatar, u.IsActive}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$7 AND row_version=$8`
		args = append(args, u.ID, expected)
	} else {
		sql += ` WHERE id=$7`
		args = append(args, u.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *userRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectUser() string {
	return `
		SELECT id, full_name, email, password_hash, role, avatar, is_active,
		       created_at, updated_at, row_version, deleted_at
		FROM users`
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var avatar pgtype.Text
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &avatar, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion, &deletedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if avatar.Status == pgtype.Present {
		u.Avatar = &avatar.String
	}
	if deletedAt.Status == pgtype.Present {
		u.DeletedAt = &deletedAt.Time
	}
	return &u, nil
}
