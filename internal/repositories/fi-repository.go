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

type dbFi struct {
	ID               uint64
	IDFi             string
	FiNumber         string
	TemplateID       uint64
	ModelID          uint64
	CustomerID       uint64
	ShiftID          uint64
	SectionID        uint64
	OperatorID       uint64
	Status           string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        sql.NullTime
	OperatorUsername sql.NullString
	OperatorFullName sql.NullString
}

func (db *dbFi) ToDTO() dto.FiDTO {
	fiDTO := dto.FiDTO{
		ID:         db.ID,
		IDFi:       db.IDFi,
		FiNumber:   db.FiNumber,
		TemplateID: db.TemplateID,
		ModelID:    db.ModelID,
		CustomerID: db.CustomerID,
		ShiftID:    db.ShiftID,
		SectionID:  db.SectionID,
		OperatorID: db.OperatorID,
		Status:     db.Status,
		Version:    db.Version,
		CreatedAt:  db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:  utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.OperatorUsername.Valid {
		fiDTO.Operator = &dto.ShortUserDTO{
			ID:       db.OperatorID,
			Username: db.OperatorUsername.String,
			FullName: utils.NullStringToString(db.OperatorFullName),
		}
	}
	return fiDTO
}

const (
	fiTable      = "fis"
	fiFields     = "f.id, f.id_fi, f.fi_number, f.template_id, f.model_id, f.customer_id, f.shift_id, f.section_id, f.operator_id, f.status, f.version, f.created_at, f.updated_at, u.username, u.full_name"
	fiJoinedFrom = "fis f"

	visualInspectionTable  = "visual_inspections"
	visualInspectionFields = "id, fi_id, item_name, status, remark"
)

var fiListColumns = map[string]string{
	"id_fi":       "f.id_fi",
	"fi_number":   "f.fi_number",
	"status":      "f.status",
	"template_id": "f.template_id",
	"model_id":    "f.model_id",
	"shift_id":    "f.shift_id",
	"section_id":  "f.section_id",
	"operator_id": "f.operator_id",
	"created_at":  "f.created_at",
}

type FiRepositoryInterface interface {
	GetFis(ctx context.Context, filter types.Filter) ([]dto.FiDTO, uint64, error)
	FindFi(ctx context.Context, id uint64) (*dto.FiDTO, error)
	CreateFi(ctx context.Context, q Querier, payload dto.CreateFiDTO, operatorID uint64, status string) (uint64, error)
	CreateVisualInspections(ctx context.Context, q Querier, fiID uint64, items []dto.CreateVisualInspectionDTO) error
	UpdateFi(ctx context.Context, id uint64, payload dto.UpdateFiDTO) error
	DeleteFi(ctx context.Context, id uint64) error
	GetFiStatus(ctx context.Context, q Querier, id uint64) (string, int, error)
	UpdateFiStatus(ctx context.Context, q Querier, id uint64, status string, expectedVersion int) error
	GetVisualInspections(ctx context.Context, fiID uint64) ([]dto.VisualInspectionDTO, error)
}

type fiRepository struct{ storage Querier }

func NewFiRepository(storage Querier) FiRepositoryInterface {
	return &fiRepository{storage: storage}
}

func fiBaseSelect() sq.SelectBuilder {
	return psql.Select(fiFields).From(fiJoinedFrom).
		LeftJoin("users u ON u.id = f.operator_id")
}

func scanFi(row pgx.Row) (*dbFi, error) {
	var dbRow dbFi
	err := row.Scan(&dbRow.ID, &dbRow.IDFi, &dbRow.FiNumber, &dbRow.TemplateID, &dbRow.ModelID,
		&dbRow.CustomerID, &dbRow.ShiftID, &dbRow.SectionID, &dbRow.OperatorID,
		&dbRow.Status, &dbRow.Version, &dbRow.CreatedAt, &dbRow.UpdatedAt,
		&dbRow.OperatorUsername, &dbRow.OperatorFullName)
	if err != nil {
		return nil, err
	}
	return &dbRow, nil
}

func (r *fiRepository) GetFis(ctx context.Context, filter types.Filter) ([]dto.FiDTO, uint64, error) {
	where := sq.And{sq.Eq{"f.deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"f.id_fi": pattern}, sq.ILike{"f.fi_number": pattern}})
	}
	for key, value := range filter.Filter {
		if column, ok := fiListColumns[key]; ok {
			where = append(where, sq.Eq{column: value})
		}
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(fiJoinedFrom).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.FiDTO{}, 0, nil
	}

	listFilter := filter
	listFilter.Filter = nil
	query, args, err := applyListParams(fiBaseSelect().Where(where), listFilter, fiListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	fis := make([]dto.FiDTO, 0)
	for rows.Next() {
		dbRow, err := scanFi(rows)
		if err != nil {
			return nil, 0, err
		}
		fis = append(fis, dbRow.ToDTO())
	}
	return fis, total, rows.Err()
}

func (r *fiRepository) FindFi(ctx context.Context, id uint64) (*dto.FiDTO, error) {
	query, args, err := fiBaseSelect().
		Where(sq.Eq{"f.id": id, "f.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	dbRow, err := scanFi(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	fiDTO := dbRow.ToDTO()
	inspections, err := r.GetVisualInspections(ctx, id)
	if err != nil {
		return nil, err
	}
	fiDTO.VisualInspections = inspections
	return &fiDTO, nil
}

func (r *fiRepository) CreateFi(ctx context.Context, q Querier, payload dto.CreateFiDTO, operatorID uint64, status string) (uint64, error) {
	query, args, err := psql.Insert(fiTable).
		Columns("id_fi", "fi_number", "template_id", "model_id", "customer_id",
			"shift_id", "section_id", "operator_id", "status").
		Values(payload.IDFi, payload.FiNumber, payload.TemplateID, payload.ModelID,
			payload.CustomerID, payload.ShiftID, payload.SectionID, operatorID, status).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *fiRepository) CreateVisualInspections(ctx context.Context, q Querier, fiID uint64, items []dto.CreateVisualInspectionDTO) error {
	builder := psql.Insert(visualInspectionTable).
		Columns("fi_id", "item_name", "status", "remark")
	for _, item := range items {
		builder = builder.Values(fiID, item.ItemName, item.Status, item.Remark)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *fiRepository) UpdateFi(ctx context.Context, id uint64, payload dto.UpdateFiDTO) error {
	builder := psql.Update(fiTable)
	changed := false

	if payload.FiNumber != nil {
		builder = builder.Set("fi_number", *payload.FiNumber)
		changed = true
	}
	if payload.ModelID != nil {
		builder = builder.Set("model_id", *payload.ModelID)
		changed = true
	}
	if payload.ShiftID != nil {
		builder = builder.Set("shift_id", *payload.ShiftID)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
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

func (r *fiRepository) DeleteFi(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(fiTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *fiRepository) GetFiStatus(ctx context.Context, q Querier, id uint64) (string, int, error) {
	query, args, err := psql.Select("status", "version").From(fiTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return "", 0, err
	}

	var status string
	var version int
	err = q.QueryRow(ctx, query, args...).Scan(&status, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, apperrors.ErrNotFound
		}
		return "", 0, err
	}
	return status, version, nil
}

func (r *fiRepository) UpdateFiStatus(ctx context.Context, q Querier, id uint64, status string, expectedVersion int) error {
	query, args, err := psql.Update(fiTable).
		Set("status", status).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "version": expectedVersion, "deleted_at": nil}).ToSql()
	if err != nil {
		return err
	}

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		if _, _, err := r.GetFiStatus(ctx, q, id); err != nil {
			return err
		}
		return apperrors.ErrVersionMismatch
	}
	return nil
}

func (r *fiRepository) GetVisualInspections(ctx context.Context, fiID uint64) ([]dto.VisualInspectionDTO, error) {
	query, args, err := psql.Select(visualInspectionFields).From(visualInspectionTable).
		Where(sq.Eq{"fi_id": fiID}).
		OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inspections := make([]dto.VisualInspectionDTO, 0)
	for rows.Next() {
		var item dto.VisualInspectionDTO
		var remark sql.NullString
		if err := rows.Scan(&item.ID, &item.FiID, &item.ItemName, &item.Status, &remark); err != nil {
			return nil, err
		}
		item.Remark = utils.NullStringToString(remark)
		inspections = append(inspections, item)
	}
	return inspections, rows.Err()
}
