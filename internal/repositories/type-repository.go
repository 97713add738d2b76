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

type dbType struct {
	ID          uint64
	TypeCode    string
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbType) ToDTO() dto.TypeDTO {
	return dto.TypeDTO{
		ID:          db.ID,
		TypeCode:    db.TypeCode,
		Name:        db.Name,
		Description: utils.NullStringToString(db.Description),
		CreatedAt:   db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	typeTable  = "types"
	typeFields = "id, type_code, name, description, created_at, updated_at"
)

var typeListColumns = map[string]string{
	"type_code":  "type_code",
	"name":       "name",
	"created_at": "created_at",
}

type TypeRepositoryInterface interface {
	GetTypes(ctx context.Context, filter types.Filter) ([]dto.TypeDTO, uint64, error)
	FindType(ctx context.Context, id uint64) (*dto.TypeDTO, error)
	CreateType(ctx context.Context, payload dto.CreateTypeDTO) (*dto.TypeDTO, error)
	UpdateType(ctx context.Context, id uint64, payload dto.UpdateTypeDTO) (*dto.TypeDTO, error)
	DeleteType(ctx context.Context, id uint64) error
}

type typeRepository struct{ storage Querier }

func NewTypeRepository(storage Querier) TypeRepositoryInterface {
	return &typeRepository{storage: storage}
}

func (r *typeRepository) GetTypes(ctx context.Context, filter types.Filter) ([]dto.TypeDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"type_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(typeTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.TypeDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(typeFields).From(typeTable).Where(where), filter, typeListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	types := make([]dto.TypeDTO, 0)
	for rows.Next() {
		var dbRow dbType
		if err := rows.Scan(&dbRow.ID, &dbRow.TypeCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		types = append(types, dbRow.ToDTO())
	}
	return types, total, rows.Err()
}

func (r *typeRepository) FindType(ctx context.Context, id uint64) (*dto.TypeDTO, error) {
	query, args, err := psql.Select(typeFields).From(typeTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbType
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.TypeCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	typeDTO := dbRow.ToDTO()
	return &typeDTO, nil
}

func (r *typeRepository) CreateType(ctx context.Context, payload dto.CreateTypeDTO) (*dto.TypeDTO, error) {
	query, args, err := psql.Insert(typeTable).
		Columns("type_code", "name", "description").
		Values(payload.TypeCode, payload.Name, payload.Description).
		Suffix("RETURNING " + typeFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbType
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.TypeCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	typeDTO := dbRow.ToDTO()
	return &typeDTO, nil
}

func (r *typeRepository) UpdateType(ctx context.Context, id uint64, payload dto.UpdateTypeDTO) (*dto.TypeDTO, error) {
	builder := psql.Update(typeTable)
	changed := false

	if payload.TypeCode != nil {
		builder = builder.Set("type_code", *payload.TypeCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
		changed = true
	}
	if !changed {
		return r.FindType(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + typeFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbType
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.TypeCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	typeDTO := dbRow.ToDTO()
	return &typeDTO, nil
}

func (r *typeRepository) DeleteType(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(typeTable).
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
