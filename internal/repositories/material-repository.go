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

type dbMaterial struct {
	ID           uint64
	MaterialCode string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbMaterial) ToDTO() dto.MaterialDTO {
	return dto.MaterialDTO{
		ID:           db.ID,
		MaterialCode: db.MaterialCode,
		Name:         db.Name,
		CreatedAt:    db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:    utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	materialTable  = "materials"
	materialFields = "id, material_code, name, created_at, updated_at"
)

var materialListColumns = map[string]string{
	"material_code": "material_code",
	"name":          "name",
	"created_at":    "created_at",
}

type MaterialRepositoryInterface interface {
	GetMaterials(ctx context.Context, filter types.Filter) ([]dto.MaterialDTO, uint64, error)
	FindMaterial(ctx context.Context, id uint64) (*dto.MaterialDTO, error)
	CreateMaterial(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error)
	UpdateMaterial(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error)
	DeleteMaterial(ctx context.Context, id uint64) error
}

type materialRepository struct{ storage Querier }

func NewMaterialRepository(storage Querier) MaterialRepositoryInterface {
	return &materialRepository{storage: storage}
}

func (r *materialRepository) GetMaterials(ctx context.Context, filter types.Filter) ([]dto.MaterialDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"material_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(materialTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.MaterialDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(materialFields).From(materialTable).Where(where), filter, materialListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	materials := make([]dto.MaterialDTO, 0)
	for rows.Next() {
		var dbRow dbMaterial
		if err := rows.Scan(&dbRow.ID, &dbRow.MaterialCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		materials = append(materials, dbRow.ToDTO())
	}
	return materials, total, rows.Err()
}

func (r *materialRepository) FindMaterial(ctx context.Context, id uint64) (*dto.MaterialDTO, error) {
	query, args, err := psql.Select(materialFields).From(materialTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbMaterial
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.MaterialCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	materialDTO := dbRow.ToDTO()
	return &materialDTO, nil
}

func (r *materialRepository) CreateMaterial(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error) {
	query, args, err := psql.Insert(materialTable).
		Columns("material_code", "name").
		Values(payload.MaterialCode, payload.Name).
		Suffix("RETURNING " + materialFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbMaterial
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.MaterialCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	materialDTO := dbRow.ToDTO()
	return &materialDTO, nil
}

func (r *materialRepository) UpdateMaterial(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error) {
	builder := psql.Update(materialTable)
	changed := false

	if payload.MaterialCode != nil {
		builder = builder.Set("material_code", *payload.MaterialCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if !changed {
		return r.FindMaterial(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + materialFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbMaterial
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.MaterialCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	materialDTO := dbRow.ToDTO()
	return &materialDTO, nil
}

func (r *materialRepository) DeleteMaterial(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(materialTable).
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
