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

type dbShift struct {
	ID        uint64
	ShiftCode string
	Name      string
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (db *dbShift) ToDTO() dto.ShiftDTO {
	return dto.ShiftDTO{
		ID:        db.ID,
		ShiftCode: db.ShiftCode,
		Name:      db.Name,
		CreatedAt: db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	shiftTable  = "shifts"
	shiftFields = "id, shift_code, name, created_at, updated_at"
)

var shiftListColumns = map[string]string{
	"shift_code": "shift_code",
	"name":       "name",
	"created_at": "created_at",
}

type ShiftRepositoryInterface interface {
	GetShifts(ctx context.Context, filter types.Filter) ([]dto.ShiftDTO, uint64, error)
	FindShift(ctx context.Context, id uint64) (*dto.ShiftDTO, error)
	CreateShift(ctx context.Context, payload dto.CreateShiftDTO) (*dto.ShiftDTO, error)
	UpdateShift(ctx context.Context, id uint64, payload dto.UpdateShiftDTO) (*dto.ShiftDTO, error)
	DeleteShift(ctx context.Context, id uint64) error
}

type shiftRepository struct{ storage Querier }

func NewShiftRepository(storage Querier) ShiftRepositoryInterface {
	return &shiftRepository{storage: storage}
}

func (r *shiftRepository) GetShifts(ctx context.Context, filter types.Filter) ([]dto.ShiftDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"shift_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(shiftTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ShiftDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(shiftFields).From(shiftTable).Where(where), filter, shiftListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	shifts := make([]dto.ShiftDTO, 0)
	for rows.Next() {
		var dbRow dbShift
		if err := rows.Scan(&dbRow.ID, &dbRow.ShiftCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		shifts = append(shifts, dbRow.ToDTO())
	}
	return shifts, total, rows.Err()
}

func (r *shiftRepository) FindShift(ctx context.Context, id uint64) (*dto.ShiftDTO, error) {
	query, args, err := psql.Select(shiftFields).From(shiftTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbShift
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ShiftCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	shiftDTO := dbRow.ToDTO()
	return &shiftDTO, nil
}

func (r *shiftRepository) CreateShift(ctx context.Context, payload dto.CreateShiftDTO) (*dto.ShiftDTO, error) {
	query, args, err := psql.Insert(shiftTable).
		Columns("shift_code", "name").
		Values(payload.ShiftCode, payload.Name).
		Suffix("RETURNING " + shiftFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbShift
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ShiftCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	shiftDTO := dbRow.ToDTO()
	return &shiftDTO, nil
}

func (r *shiftRepository) UpdateShift(ctx context.Context, id uint64, payload dto.UpdateShiftDTO) (*dto.ShiftDTO, error) {
	builder := psql.Update(shiftTable)
	changed := false

	if payload.ShiftCode != nil {
		builder = builder.Set("shift_code", *payload.ShiftCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if !changed {
		return r.FindShift(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + shiftFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbShift
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.ShiftCode, &dbRow.Name, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	shiftDTO := dbRow.ToDTO()
	return &shiftDTO, nil
}

func (r *shiftRepository) DeleteShift(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(shiftTable).
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
