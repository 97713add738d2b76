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

type dbTemplate struct {
	ID          uint64
	Code        string
	Name        string
	Type        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbTemplate) ToDTO() dto.ChecksheetTemplateDTO {
	return dto.ChecksheetTemplateDTO{
		ID:          db.ID,
		Code:        db.Code,
		Name:        db.Name,
		Type:        db.Type,
		Description: utils.NullStringToString(db.Description),
		CreatedAt:   db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	templateTable  = "checksheet_templates"
	templateFields = "id, code, name, type, description, created_at, updated_at"
)

var templateListColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
}

type TemplateRepositoryInterface interface {
	GetTemplates(ctx context.Context, filter types.Filter) ([]dto.ChecksheetTemplateDTO, uint64, error)
	FindTemplate(ctx context.Context, id uint64) (*dto.ChecksheetTemplateDTO, error)
	CreateTemplate(ctx context.Context, q Querier, payload dto.CreateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error)
	UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error)
	DeleteTemplate(ctx context.Context, id uint64) error
}

type templateRepository struct{ storage Querier }

func NewTemplateRepository(storage Querier) TemplateRepositoryInterface {
	return &templateRepository{storage: storage}
}

func (r *templateRepository) GetTemplates(ctx context.Context, filter types.Filter) ([]dto.ChecksheetTemplateDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(templateTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ChecksheetTemplateDTO{}, 0, nil
	}

	query, args, err := applyListParams(psql.Select(templateFields).From(templateTable).Where(where), filter, templateListColumns).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	templates := make([]dto.ChecksheetTemplateDTO, 0)
	for rows.Next() {
		var dbRow dbTemplate
		if err := rows.Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Type, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		templates = append(templates, dbRow.ToDTO())
	}
	return templates, total, rows.Err()
}

func (r *templateRepository) FindTemplate(ctx context.Context, id uint64) (*dto.ChecksheetTemplateDTO, error) {
	query, args, err := psql.Select(templateFields).From(templateTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbTemplate
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Type, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	templateDTO := dbRow.ToDTO()
	return &templateDTO, nil
}

// CreateTemplate runs on the given Querier so the service can create
// the header and its items in one transaction.
func (r *templateRepository) CreateTemplate(ctx context.Context, q Querier, payload dto.CreateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	query, args, err := psql.Insert(templateTable).
		Columns("code", "name", "type", "description").
		Values(payload.Code, payload.Name, payload.Type, payload.Description).
		Suffix("RETURNING " + templateFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbTemplate
	err = q.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Type, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	templateDTO := dbRow.ToDTO()
	return &templateDTO, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	builder := psql.Update(templateTable)
	changed := false

	if payload.Code != nil {
		builder = builder.Set("code", *payload.Code)
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
		return r.FindTemplate(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + templateFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbTemplate
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Type, &dbRow.Description, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	templateDTO := dbRow.ToDTO()
	return &templateDTO, nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(templateTable).
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
