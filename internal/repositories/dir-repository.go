package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"checksheet-system/internal/dto"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
	"checksheet-system/pkg/utils"
)

type dbDir struct {
	ID               uint64
	IDDir            string
	TemplateID       uint64
	ModelID          uint64
	PartID           uint64
	CustomerID       uint64
	MaterialID       uint64
	ShiftID          uint64
	SectionID        uint64
	OperatorID       uint64
	Status           string
	Recommendation   sql.NullString
	GeneralNote      sql.NullString
	Version          int
	CreatedAt        time.Time
	UpdatedAt        sql.NullTime
	OperatorUsername sql.NullString
	OperatorFullName sql.NullString
}

func (db *dbDir) ToDTO() dto.DirDTO {
	dirDTO := dto.DirDTO{
		ID:             db.ID,
		IDDir:          db.IDDir,
		TemplateID:     db.TemplateID,
		ModelID:        db.ModelID,
		PartID:         db.PartID,
		CustomerID:     db.CustomerID,
		MaterialID:     db.MaterialID,
		ShiftID:        db.ShiftID,
		SectionID:      db.SectionID,
		OperatorID:     db.OperatorID,
		Status:         db.Status,
		Recommendation: utils.NullStringToString(db.Recommendation),
		GeneralNote:    utils.NullStringToString(db.GeneralNote),
		Version:        db.Version,
		CreatedAt:      db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:      utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.OperatorUsername.Valid {
		dirDTO.Operator = &dto.ShortUserDTO{
			ID:       db.OperatorID,
			Username: db.OperatorUsername.String,
			FullName: utils.NullStringToString(db.OperatorFullName),
		}
	}
	return dirDTO
}

// MeasurementRecord is a fully evaluated measurement ready for insert.
// Status is decided by the service before it reaches the repository.
type MeasurementRecord struct {
	Dimensional  int
	Nominal      decimal.NullDecimal
	ToleranceMin decimal.NullDecimal
	ToleranceMax decimal.NullDecimal
	Actual       decimal.Decimal
	Status       string
}

const (
	dirTable      = "dirs"
	dirFields     = "d.id, d.id_dir, d.template_id, d.model_id, d.part_id, d.customer_id, d.material_id, d.shift_id, d.section_id, d.operator_id, d.status, d.recommendation, d.general_note, d.version, d.created_at, d.updated_at, u.username, u.full_name"
	dirJoinedFrom = "dirs d"

	measurementTable  = "measurements"
	measurementFields = "id, dir_id, dimensional, nominal, tolerance_min, tolerance_max, actual, status"

	measurementPhotoTable  = "measurement_photos"
	measurementPhotoFields = "id, measurement_id, photo_path, remark, reject_reason_id"
)

var dirListColumns = map[string]string{
	"id_dir":      "d.id_dir",
	"status":      "d.status",
	"template_id": "d.template_id",
	"model_id":    "d.model_id",
	"shift_id":    "d.shift_id",
	"section_id":  "d.section_id",
	"operator_id": "d.operator_id",
	"created_at":  "d.created_at",
}

type DirRepositoryInterface interface {
	GetDirs(ctx context.Context, filter types.Filter) ([]dto.DirDTO, uint64, error)
	FindDir(ctx context.Context, id uint64) (*dto.DirDTO, error)
	CreateDir(ctx context.Context, q Querier, payload dto.CreateDirDTO, operatorID uint64, status string) (uint64, error)
	CreateMeasurements(ctx context.Context, q Querier, dirID uint64, records []MeasurementRecord) error
	UpdateDir(ctx context.Context, id uint64, payload dto.UpdateDirDTO) error
	DeleteDir(ctx context.Context, id uint64) error
	GetDirStatus(ctx context.Context, q Querier, id uint64) (string, int, error)
	UpdateDirStatus(ctx context.Context, q Querier, id uint64, status string, expectedVersion int) error
	GetMeasurements(ctx context.Context, dirID uint64) ([]dto.MeasurementDTO, error)
	FindMeasurement(ctx context.Context, id uint64) (*dto.MeasurementDTO, error)
	CreateMeasurementPhoto(ctx context.Context, measurementID uint64, photoPath string, payload dto.CreateMeasurementPhotoDTO) (*dto.MeasurementPhotoDTO, error)
}

type dirRepository struct{ storage Querier }

func NewDirRepository(storage Querier) DirRepositoryInterface {
	return &dirRepository{storage: storage}
}

func dirBaseSelect() sq.SelectBuilder {
	return psql.Select(dirFields).From(dirJoinedFrom).
		LeftJoin("users u ON u.id = d.operator_id")
}

func scanDir(row pgx.Row) (*dbDir, error) {
	var dbRow dbDir
	err := row.Scan(&dbRow.ID, &dbRow.IDDir, &dbRow.TemplateID, &dbRow.ModelID, &dbRow.PartID,
		&dbRow.CustomerID, &dbRow.MaterialID, &dbRow.ShiftID, &dbRow.SectionID, &dbRow.OperatorID,
		&dbRow.Status, &dbRow.Recommendation, &dbRow.GeneralNote, &dbRow.Version,
		&dbRow.CreatedAt, &dbRow.UpdatedAt, &dbRow.OperatorUsername, &dbRow.OperatorFullName)
	if err != nil {
		return nil, err
	}
	return &dbRow, nil
}

func (r *dirRepository) GetDirs(ctx context.Context, filter types.Filter) ([]dto.DirDTO, uint64, error) {
	where := sq.And{sq.Eq{"d.deleted_at": nil}}
	if filter.Search != "" {
		where = append(where, sq.ILike{"d.id_dir": "%" + filter.Search + "%"})
	}
	for key, value := range filter.Filter {
		if column, ok := dirListColumns[key]; ok {
			where = append(where, sq.Eq{column: value})
		}
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(dirJoinedFrom).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.DirDTO{}, 0, nil
	}

	// Filters are already part of where; strip them before applying
	// sort and pagination so conditions are not duplicated.
	listFilter := filter
	listFilter.Filter = nil
	query, args, err := applyListParams(dirBaseSelect().Where(where), listFilter, dirListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	dirs := make([]dto.DirDTO, 0)
	for rows.Next() {
		dbRow, err := scanDir(rows)
		if err != nil {
			return nil, 0, err
		}
		dirs = append(dirs, dbRow.ToDTO())
	}
	return dirs, total, rows.Err()
}

func (r *dirRepository) FindDir(ctx context.Context, id uint64) (*dto.DirDTO, error) {
	query, args, err := dirBaseSelect().
		Where(sq.Eq{"d.id": id, "d.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	dbRow, err := scanDir(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	dirDTO := dbRow.ToDTO()
	measurements, err := r.GetMeasurements(ctx, id)
	if err != nil {
		return nil, err
	}
	dirDTO.Measurements = measurements
	return &dirDTO, nil
}

func (r *dirRepository) CreateDir(ctx context.Context, q Querier, payload dto.CreateDirDTO, operatorID uint64, status string) (uint64, error) {
	query, args, err := psql.Insert(dirTable).
		Columns("id_dir", "template_id", "model_id", "part_id", "customer_id", "material_id",
			"shift_id", "section_id", "operator_id", "status", "recommendation", "general_note").
		Values(payload.IDDir, payload.TemplateID, payload.ModelID, payload.PartID, payload.CustomerID,
			payload.MaterialID, payload.ShiftID, payload.SectionID, operatorID, status,
			payload.Recommendation, payload.GeneralNote).
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

func (r *dirRepository) CreateMeasurements(ctx context.Context, q Querier, dirID uint64, records []MeasurementRecord) error {
	builder := psql.Insert(measurementTable).
		Columns("dir_id", "dimensional", "nominal", "tolerance_min", "tolerance_max", "actual", "status")
	for _, record := range records {
		builder = builder.Values(dirID, record.Dimensional, record.Nominal,
			record.ToleranceMin, record.ToleranceMax, record.Actual, record.Status)
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

func (r *dirRepository) UpdateDir(ctx context.Context, id uint64, payload dto.UpdateDirDTO) error {
	builder := psql.Update(dirTable)
	changed := false

	if payload.Recommendation != nil {
		builder = builder.Set("recommendation", *payload.Recommendation)
		changed = true
	}
	if payload.GeneralNote != nil {
		builder = builder.Set("general_note", *payload.GeneralNote)
		changed = true
	}
	if payload.ModelID != nil {
		builder = builder.Set("model_id", *payload.ModelID)
		changed = true
	}
	if payload.PartID != nil {
		builder = builder.Set("part_id", *payload.PartID)
		changed = true
	}
	if payload.MaterialID != nil {
		builder = builder.Set("material_id", *payload.MaterialID)
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

func (r *dirRepository) DeleteDir(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(dirTable).
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

// GetDirStatus reads the current status and version. Run it on the same
// transaction as UpdateDirStatus when performing a workflow action.
func (r *dirRepository) GetDirStatus(ctx context.Context, q Querier, id uint64) (string, int, error) {
	query, args, err := psql.Select("status", "version").From(dirTable).
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

// UpdateDirStatus bumps the version and fails with ErrVersionMismatch
// when another review landed first.
func (r *dirRepository) UpdateDirStatus(ctx context.Context, q Querier, id uint64, status string, expectedVersion int) error {
	query, args, err := psql.Update(dirTable).
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
		if _, _, err := r.GetDirStatus(ctx, q, id); err != nil {
			return err
		}
		return apperrors.ErrVersionMismatch
	}
	return nil
}

func (r *dirRepository) GetMeasurements(ctx context.Context, dirID uint64) ([]dto.MeasurementDTO, error) {
	query, args, err := psql.Select(measurementFields).From(measurementTable).
		Where(sq.Eq{"dir_id": dirID}).
		OrderBy("dimensional ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := make([]dto.MeasurementDTO, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		measurement, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, *measurement)
		ids = append(ids, measurement.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return measurements, nil
	}

	photosByMeasurement, err := r.getPhotosByMeasurementIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range measurements {
		measurements[i].Photos = photosByMeasurement[measurements[i].ID]
	}
	return measurements, nil
}

func (r *dirRepository) FindMeasurement(ctx context.Context, id uint64) (*dto.MeasurementDTO, error) {
	query, args, err := psql.Select(measurementFields).From(measurementTable).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	measurement, err := scanMeasurement(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return measurement, nil
}

func scanMeasurement(row pgx.Row) (*dto.MeasurementDTO, error) {
	var (
		measurement dto.MeasurementDTO
		nominal     decimal.NullDecimal
		tolMin      decimal.NullDecimal
		tolMax      decimal.NullDecimal
		actual      decimal.Decimal
	)
	err := row.Scan(&measurement.ID, &measurement.DirID, &measurement.Dimensional,
		&nominal, &tolMin, &tolMax, &actual, &measurement.Status)
	if err != nil {
		return nil, err
	}
	measurement.Nominal = nullDecimalToString(nominal)
	measurement.ToleranceMin = nullDecimalToString(tolMin)
	measurement.ToleranceMax = nullDecimalToString(tolMax)
	measurement.Actual = actual.String()
	return &measurement, nil
}

func (r *dirRepository) getPhotosByMeasurementIDs(ctx context.Context, ids []uint64) (map[uint64][]dto.MeasurementPhotoDTO, error) {
	query, args, err := psql.Select(measurementPhotoFields).From(measurementPhotoTable).
		Where(sq.Eq{"measurement_id": ids}).
		OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make(map[uint64][]dto.MeasurementPhotoDTO)
	for rows.Next() {
		var photo dto.MeasurementPhotoDTO
		var remark sql.NullString
		var rejectReasonID sql.NullInt64
		if err := rows.Scan(&photo.ID, &photo.MeasurementID, &photo.PhotoPath, &remark, &rejectReasonID); err != nil {
			return nil, err
		}
		photo.Remark = utils.NullStringToString(remark)
		photo.RejectReasonID = utils.NullInt64ToUint64Ptr(rejectReasonID)
		photos[photo.MeasurementID] = append(photos[photo.MeasurementID], photo)
	}
	return photos, rows.Err()
}

func (r *dirRepository) CreateMeasurementPhoto(ctx context.Context, measurementID uint64, photoPath string, payload dto.CreateMeasurementPhotoDTO) (*dto.MeasurementPhotoDTO, error) {
	query, args, err := psql.Insert(measurementPhotoTable).
		Columns("measurement_id", "photo_path", "remark", "reject_reason_id").
		Values(measurementID, photoPath, payload.Remark, payload.RejectReasonID).
		Suffix("RETURNING " + measurementPhotoFields).ToSql()
	if err != nil {
		return nil, err
	}

	var photo dto.MeasurementPhotoDTO
	var remark sql.NullString
	var rejectReasonID sql.NullInt64
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&photo.ID, &photo.MeasurementID, &photo.PhotoPath, &remark, &rejectReasonID)
	if err != nil {
		return nil, translatePgError(err)
	}
	photo.Remark = utils.NullStringToString(remark)
	photo.RejectReasonID = utils.NullInt64ToUint64Ptr(rejectReasonID)
	return &photo, nil
}
