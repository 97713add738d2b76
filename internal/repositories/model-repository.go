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

type dbModel struct {
	ID           uint64
	ModelCode    string
	Name         string
	CustomerID   uint64
	CustomerName sql.NullString
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbModel) ToDTO() dto.ModelDTO {
	out := dto.ModelDTO{
		ID:         db.ID,
		ModelCode:  db.ModelCode,
		Name:       db.Name,
		CustomerID: db.CustomerID,
		CreatedAt:  db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:  utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.CustomerName.Valid {
		out.Customer = &dto.ShortRefDTO{ID: db.CustomerID, Name: db.CustomerName.String}
	}
	return out
}

const (
	modelTable      = "models"
	modelJoinFields = "m.id, m.model_code, m.name, m.customer_id, c.name, m.created_at, m.updated_at"
)

var modelListColumns = map[string]string{
	"model_code":  "m.model_code",
	"name":        "m.name",
	"customer_id": "m.customer_id",
	"created_at":  "m.created_at",
}

type ModelRepositoryInterface interface {
	GetModels(ctx context.Context, filter types.Filter) ([]dto.ModelDTO, uint64, error)
	FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error)
	CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error)
	UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error)
	DeleteModel(ctx context.Context, id uint64) error
}

type modelRepository struct{ storage Querier }

func NewModelRepository(storage Querier) ModelRepositoryInterface {
	return &modelRepository{storage: storage}
}

func (r *modelRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(modelJoinFields).
		From(modelTable + " m").
		LeftJoin("customers c ON c.id = m.customer_id")
}

func (r *modelRepository) scanRow(row pgx.Row) (*dto.ModelDTO, error) {
	var dbRow dbModel
	err := row.Scan(&dbRow.ID, &dbRow.ModelCode, &dbRow.Name, &dbRow.CustomerID, &dbRow.CustomerName, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	modelDTO := dbRow.ToDTO()
	return &modelDTO, nil
}

func (r *modelRepository) GetModels(ctx context.Context, filter types.Filter) ([]dto.ModelDTO, uint64, error) {
	where := sq.And{sq.Eq{"m.deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"m.model_code": pattern}, sq.ILike{"m.name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(modelTable + " m").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ModelDTO{}, 0, nil
	}

	query, args, err := applyListParams(r.baseSelect().Where(where), filter, modelListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	models := make([]dto.ModelDTO, 0)
	for rows.Next() {
		var dbRow dbModel
		if err := rows.Scan(&dbRow.ID, &dbRow.ModelCode, &dbRow.Name, &dbRow.CustomerID, &dbRow.CustomerName, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		models = append(models, dbRow.ToDTO())
	}
	return models, total, rows.Err()
}

func (r *modelRepository) FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"m.id": id, "m.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *modelRepository) CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error) {
	query, args, err := psql.Insert(modelTable).
		Columns("model_code", "name", "customer_id").
		Values(payload.ModelCode, payload.Name, payload.CustomerID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, translatePgError(err)
	}
	return r.FindModel(ctx, id)
}

func (r *modelRepository) UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error) {
	builder := psql.Update(modelTable)
	changed := false

	if payload.ModelCode != nil {
		builder = builder.Set("model_code", *payload.ModelCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.CustomerID.Valid {
		builder = builder.Set("customer_id", payload.CustomerID.Uint64)
		changed = true
	}
	if !changed {
		return r.FindModel(ctx, id)
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
	return r.FindModel(ctx, id)
}

func (r *modelRepository) DeleteModel(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(modelTable).
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
