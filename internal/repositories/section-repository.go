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

type dbSection struct {
	ID          uint64
	SectionCode string
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbSection) ToDTO() dto.SectionDTO {
	return dto.SectionDTO{
		ID:          db.ID,
		SectionCode: db.SectionCode,
		Name:        db.Name,
		Description: utils.NullStringToString(db.Description),
		CreatedAt:   db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	sectionTable  = "sections"
	sectionFields = "id, section_code, name, description, created_at, updated_at"
)

var sectionListColumns = map[string]string{
	"section_code": "section_code",
	"name":         "name",
	"created_at":   "created_at",
}

type SectionRepositoryInterface interface {
	GetSections(ctx context.Context, filter types.Filter) ([]dto.SectionDTO, uint64, error)
	FindSection(ctx context.Context, id uint64) (*dto.SectionDTO, error)
	CreateSection(ctx context.Context, payload dto.CreateSectionDTO) (*dto.SectionDTO, error)
	UpdateSection(ctx context.Context, id uint64, payload dto.UpdateSectionDTO) (*dto.SectionDTO, error)
	DeleteSection(ctx context.Context, id uint64) error
}

type sectionRepository struct{ storage Querier }

func NewSectionRepository(storage Querier) SectionRepositoryInterface {
	return &sectionRepository{storage: storage}
}

func (r *sectionRepository) GetSections(ctx context.Context, filter types.Filter) ([]dto.SectionDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"section_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(sectionTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.SectionDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(sectionFields).From(sectionTable).Where(where), filter, sectionListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sections := make([]dto.SectionDTO, 0)
	for rows.Next() {
		var dbRow dbSection
		if err := rows.Scan(&dbRow.ID, &dbRow.SectionCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		sections = append(sections, dbRow.ToDTO())
	}
	return sections, total, rows.Err()
}

func (r *sectionRepository) FindSection(ctx context.Context, id uint64) (*dto.SectionDTO, error) {
	query, args, err := psql.Select(sectionFields).From(sectionTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbSection
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.SectionCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	sectionDTO := dbRow.ToDTO()
	return &sectionDTO, nil
}

func (r *sectionRepository) CreateSection(ctx context.Context, payload dto.CreateSectionDTO) (*dto.SectionDTO, error) {
	query, args, err := psql.Insert(sectionTable).
		Columns("section_code", "name", "description").
		Values(payload.SectionCode, payload.Name, payload.Description).
		Suffix("RETURNING " + sectionFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbSection
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.SectionCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	sectionDTO := dbRow.ToDTO()
	return &sectionDTO, nil
}

func (r *sectionRepository) UpdateSection(ctx context.Context, id uint64, payload dto.UpdateSectionDTO) (*dto.SectionDTO, error) {
	builder := psql.Update(sectionTable)
	changed := false

	if payload.SectionCode != nil {
		builder = builder.Set("section_code", *payload.SectionCode)
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
		return r.FindSection(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + sectionFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbSection
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.SectionCode, &dbRow.Name, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	sectionDTO := dbRow.ToDTO()
	return &sectionDTO, nil
}

func (r *sectionRepository) DeleteSection(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(sectionTable).
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
