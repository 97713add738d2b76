package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"checksheet-system/internal/dto"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
	"checksheet-system/pkg/utils"
)

type dbUser struct {
	ID           uint64
	Username     string
	FullName     string
	Email        sql.NullString
	PasswordHash string
	RoleID       uint64
	RoleName     sql.NullString
	SectionID    sql.NullInt64
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbUser) ToDTO() dto.UserDTO {
	out := dto.UserDTO{
		ID:        db.ID,
		Username:  db.Username,
		FullName:  db.FullName,
		Email:     utils.NullStringToString(db.Email),
		RoleID:    db.RoleID,
		SectionID: utils.NullInt64ToUint64Ptr(db.SectionID),
		CreatedAt: db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.RoleName.Valid {
		out.Role = &dto.ShortRefDTO{ID: db.RoleID, Name: db.RoleName.String}
	}
	return out
}

const (
	userTable      = "users"
	userJoinFields = "u.id, u.username, u.full_name, u.email, u.password_hash, u.role_id, r.name, u.section_id, u.created_at, u.updated_at"
)

var userListColumns = map[string]string{
	"username":   "u.username",
	"full_name":  "u.full_name",
	"role_id":    "u.role_id",
	"section_id": "u.section_id",
	"created_at": "u.created_at",
}

// AuthUser carries the credential fields needed by the login flow.
type AuthUser struct {
	ID           uint64
	Username     string
	PasswordHash string
	RoleID       uint64
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	FindAuthUserByUsername(ctx context.Context, username string) (*AuthUser, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type userRepository struct{ storage Querier }

func NewUserRepository(storage Querier) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func (r *userRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(userJoinFields).
		From(userTable + " u").
		LeftJoin("roles r ON r.id = u.role_id")
}

func (r *userRepository) scanRow(row pgx.Row) (*dto.UserDTO, error) {
	var dbRow dbUser
	err := row.Scan(&dbRow.ID, &dbRow.Username, &dbRow.FullName, &dbRow.Email, &dbRow.PasswordHash,
		&dbRow.RoleID, &dbRow.RoleName, &dbRow.SectionID, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	userDTO := dbRow.ToDTO()
	return &userDTO, nil
}

func (r *userRepository) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	where := sq.And{sq.Eq{"u.deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"u.username": pattern}, sq.ILike{"u.full_name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(userTable + " u").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.UserDTO{}, 0, nil
	}

	query, args, err := applyListParams(r.baseSelect().Where(where), filter, userListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]dto.UserDTO, 0)
	for rows.Next() {
		var dbRow dbUser
		if err := rows.Scan(&dbRow.ID, &dbRow.Username, &dbRow.FullName, &dbRow.Email, &dbRow.PasswordHash,
			&dbRow.RoleID, &dbRow.RoleName, &dbRow.SectionID, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, dbRow.ToDTO())
	}
	return users, total, rows.Err()
}

func (r *userRepository) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"u.id": id, "u.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *userRepository) FindAuthUserByUsername(ctx context.Context, username string) (*AuthUser, error) {
	query, args, err := psql.Select("id, username, password_hash, role_id").
		From(userTable).
		Where(sq.Eq{"username": username, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var user AuthUser
	err = r.storage.QueryRow(ctx, query, args...).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.RoleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error) {
	query, args, err := psql.Insert(userTable).
		Columns("username", "full_name", "email", "password_hash", "role_id", "section_id").
		Values(payload.Username, payload.FullName, payload.Email, passwordHash, payload.RoleID, payload.SectionID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, translatePgError(err)
	}
	return r.FindUser(ctx, id)
}

func (r *userRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error) {
	builder := psql.Update(userTable)
	changed := false

	if payload.FullName != nil {
		builder = builder.Set("full_name", *payload.FullName)
		changed = true
	}
	if payload.Email != nil {
		builder = builder.Set("email", *payload.Email)
		changed = true
	}
	if passwordHash != nil {
		builder = builder.Set("password_hash", *passwordHash)
		changed = true
	}
	if payload.RoleID.Valid {
		builder = builder.Set("role_id", payload.RoleID.Uint64)
		changed = true
	}
	if payload.SectionID.Valid {
		builder = builder.Set("section_id", payload.SectionID.Uint64)
		changed = true
	}
	if !changed {
		return r.FindUser(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindUser(ctx, id)
}

func (r *userRepository) DeleteUser(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(userTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
