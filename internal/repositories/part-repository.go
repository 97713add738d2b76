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

type dbPart struct {
	ID        uint64
	PartCode  string
	Name      string
	ModelID   uint64
	ModelName sql.NullString
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (db *dbPart) ToDTO() dto.PartDTO {
	out := dto.PartDTO{
		ID:        db.ID,
		PartCode:  db.PartCode,
		Name:      db.Name,
		ModelID:   db.ModelID,
		CreatedAt: db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.ModelName.Valid {
		out.Model = &dto.ShortRefDTO{ID: db.ModelID, Name: db.ModelName.String}
	}
	return out
}

const (
	partTable      = "parts"
	partJoinFields = "m.id, m.part_code, m.name, m.model_id, c.name, m.created_at, m.updated_at"
)

var partListColumns = map[string]string{
	"part_code":  "m.part_code",
	"name":       "m.name",
	"model_id":   "m.model_id",
	"created_at": "m.created_at",
}

type PartRepositoryInterface interface {
	GetParts(ctx context.Context, filter types.Filter) ([]dto.PartDTO, uint64, error)
	FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error)
	CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error)
	UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error)
	DeletePart(ctx context.Context, id uint64) error
}

type partRepository struct{ storage Querier }

func NewPartRepository(storage Querier) PartRepositoryInterface {
	return &partRepository{storage: storage}
}

func (r *partRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(partJoinFields).
		From(partTable + " m").
		LeftJoin("models c ON c.id = m.model_id")
}

func (r *partRepository) scanRow(row pgx.Row) (*dto.PartDTO, error) {
	var dbRow dbPart
	err := row.Scan(&dbRow.ID, &dbRow.PartCode, &dbRow.Name, &dbRow.ModelID, &dbRow.ModelName, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	partDTO := dbRow.ToDTO()
	return &partDTO, nil
}

func (r *partRepository) GetParts(ctx context.Context, filter types.Filter) ([]dto.PartDTO, uint64, error) {
	where := sq.And{sq.Eq{"m.deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"m.part_code": pattern}, sq.ILike{"m.name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(partTable + " m").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.PartDTO{}, 0, nil
	}

	query, args, err := applyListParams(r.baseSelect().Where(where), filter, partListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	parts := make([]dto.PartDTO, 0)
	for rows.Next() {
		var dbRow dbPart
		if err := rows.Scan(&dbRow.ID, &dbRow.PartCode, &dbRow.Name, &dbRow.ModelID, &dbRow.ModelName, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		parts = append(parts, dbRow.ToDTO())
	}
	return parts, total, rows.Err()
}

func (r *partRepository) FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"m.id": id, "m.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *partRepository) CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error) {
	query, args, err := psql.Insert(partTable).
		Columns("part_code", "name", "model_id").
		Values(payload.PartCode, payload.Name, payload.ModelID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, translatePgError(err)
	}
	return r.FindPart(ctx, id)
}

func (r *partRepository) UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error) {
	builder := psql.Update(partTable)
	changed := false

	if payload.PartCode != nil {
		builder = builder.Set("part_code", *payload.PartCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.ModelID.Valid {
		builder = builder.Set("model_id", payload.ModelID.Uint64)
		changed = true
	}
	if !changed {
		return r.FindPart(ctx, id)
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
	return r.FindPart(ctx, id)
}

func (r *partRepository) DeletePart(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(partTable).
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
