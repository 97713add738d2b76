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

type dbRejectReason struct {
	ID         uint64
	ReasonCode string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  sql.NullTime
}

func (db *dbRejectReason) ToDTO() dto.RejectReasonDTO {
	return dto.RejectReasonDTO{
		ID:         db.ID,
		ReasonCode: db.ReasonCode,
		Name:       db.Name,
		CreatedAt:  db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:  utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	rejectReasonTable  = "reject_reasons"
	rejectReasonFields = "id, reason_code, name, created_at, updated_at"
)

var rejectReasonListColumns = map[string]string{
	"reason_code": "reason_code",
	"name":        "name",
	"created_at":  "created_at",
}

type RejectReasonRepositoryInterface interface {
	GetRejectReasons(ctx context.Context, filter types.Filter) ([]dto.RejectReasonDTO, uint64, error)
	FindRejectReason(ctx context.Context, id uint64) (*dto.RejectReasonDTO, error)
	CreateRejectReason(ctx context.Context, payload dto.CreateRejectReasonDTO) (*dto.RejectReasonDTO, error)
	UpdateRejectReason(ctx context.Context, id uint64, payload dto.UpdateRejectReasonDTO) (*dto.RejectReasonDTO, error)
	DeleteRejectReason(ctx context.Context, id uint64) error
}

type rejectReasonRepository struct{ storage Querier }

func NewRejectReasonRepository(storage Querier) RejectReasonRepositoryInterface {
	return &rejectReasonRepository{storage: storage}
}

func (r *rejectReasonRepository) GetRejectReasons(ctx context.Context, filter types.Filter) ([]dto.RejectReasonDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"reason_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(rejectReasonTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.RejectReasonDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(rejectReasonFields).From(rejectReasonTable).Where(where), filter, rejectReasonListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rejectReasons := make([]dto.RejectReasonDTO, 0)
	for rows.Next() {
		var dbRow dbRejectReason
		if err := rows.Scan(&dbRow.ID, &dbRow.ReasonCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		rejectReasons = append(rejectReasons, dbRow.ToDTO())
	}
	return rejectReasons, total, rows.Err()
}

func (r *rejectReasonRepository) FindRejectReason(ctx context.Context, id uint64) (*dto.RejectReasonDTO, error) {
	query, args, err := psql.Select(rejectReasonFields).From(rejectReasonTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbRejectReason
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ReasonCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	rejectReasonDTO := dbRow.ToDTO()
	return &rejectReasonDTO, nil
}

func (r *rejectReasonRepository) CreateRejectReason(ctx context.Context, payload dto.CreateRejectReasonDTO) (*dto.RejectReasonDTO, error) {
	query, args, err := psql.Insert(rejectReasonTable).
		Columns("reason_code", "name").
		Values(payload.ReasonCode, payload.Name).
		Suffix("RETURNING " + rejectReasonFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbRejectReason
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ReasonCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	rejectReasonDTO := dbRow.ToDTO()
	return &rejectReasonDTO, nil
}

func (r *rejectReasonRepository) UpdateRejectReason(ctx context.Context, id uint64, payload dto.UpdateRejectReasonDTO) (*dto.RejectReasonDTO, error) {
	builder := psql.Update(rejectReasonTable)
	changed := false

	if payload.ReasonCode != nil {
		builder = builder.Set("reason_code", *payload.ReasonCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if !changed {
		return r.FindRejectReason(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + rejectReasonFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbRejectReason
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ReasonCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	rejectReasonDTO := dbRow.ToDTO()
	return &rejectReasonDTO, nil
}

func (r *rejectReasonRepository) DeleteRejectReason(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(rejectReasonTable).
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
