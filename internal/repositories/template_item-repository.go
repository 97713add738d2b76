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
	"checksheet-system/pkg/utils"
)

type dbTemplateItem struct {
	ID           uint64
	TemplateID   uint64
	ItemName     string
	Nominal      decimal.NullDecimal
	ToleranceMin decimal.NullDecimal
	ToleranceMax decimal.NullDecimal
	Sequence     int
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbTemplateItem) ToDTO() dto.TemplateItemDTO {
	return dto.TemplateItemDTO{
		ID:           db.ID,
		TemplateID:   db.TemplateID,
		ItemName:     db.ItemName,
		Nominal:      nullDecimalToString(db.Nominal),
		ToleranceMin: nullDecimalToString(db.ToleranceMin),
		ToleranceMax: nullDecimalToString(db.ToleranceMax),
		Sequence:     db.Sequence,
		CreatedAt:    db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:    utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

func nullDecimalToString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func stringToNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, apperrors.ErrBadRequest
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

const (
	templateItemTable  = "template_items"
	templateItemFields = "id, template_id, item_name, nominal, tolerance_min, tolerance_max, sequence, created_at, updated_at"
)

type TemplateItemRepositoryInterface interface {
	GetItemsByTemplate(ctx context.Context, templateID uint64) ([]dto.TemplateItemDTO, error)
	FindItem(ctx context.Context, id uint64) (*dto.TemplateItemDTO, error)
	CreateItems(ctx context.Context, q Querier, templateID uint64, items []dto.CreateTemplateItemDTO) ([]dto.TemplateItemDTO, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateTemplateItemDTO) (*dto.TemplateItemDTO, error)
	DeleteItem(ctx context.Context, id uint64) error
}

type templateItemRepository struct{ storage Querier }

func NewTemplateItemRepository(storage Querier) TemplateItemRepositoryInterface {
	return &templateItemRepository{storage: storage}
}

func scanTemplateItem(row pgx.Row) (*dbTemplateItem, error) {
	var dbRow dbTemplateItem
	err := row.Scan(&dbRow.ID, &dbRow.TemplateID, &dbRow.ItemName, &dbRow.Nominal,
		&dbRow.ToleranceMin, &dbRow.ToleranceMax, &dbRow.Sequence, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &dbRow, nil
}

func (r *templateItemRepository) GetItemsByTemplate(ctx context.Context, templateID uint64) ([]dto.TemplateItemDTO, error) {
	query, args, err := psql.Select(templateItemFields).From(templateItemTable).
		Where(sq.Eq{"template_id": templateID}).
		OrderBy("sequence ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.TemplateItemDTO, 0)
	for rows.Next() {
		dbRow, err := scanTemplateItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, dbRow.ToDTO())
	}
	return items, rows.Err()
}

func (r *templateItemRepository) FindItem(ctx context.Context, id uint64) (*dto.TemplateItemDTO, error) {
	query, args, err := psql.Select(templateItemFields).From(templateItemTable).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	dbRow, err := scanTemplateItem(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	itemDTO := dbRow.ToDTO()
	return &itemDTO, nil
}

// CreateItems inserts the given items for the template. Sequence values
// must already be assigned by the caller.
func (r *templateItemRepository) CreateItems(ctx context.Context, q Querier, templateID uint64, items []dto.CreateTemplateItemDTO) ([]dto.TemplateItemDTO, error) {
	builder := psql.Insert(templateItemTable).
		Columns("template_id", "item_name", "nominal", "tolerance_min", "tolerance_max", "sequence")

	for _, item := range items {
		nominal, err := stringToNullDecimal(item.Nominal)
		if err != nil {
			return nil, err
		}
		tolMin, err := stringToNullDecimal(item.ToleranceMin)
		if err != nil {
			return nil, err
		}
		tolMax, err := stringToNullDecimal(item.ToleranceMax)
		if err != nil {
			return nil, err
		}
		builder = builder.Values(templateID, item.ItemName, nominal, tolMin, tolMax, item.Sequence)
	}

	query, args, err := builder.Suffix("RETURNING " + templateItemFields).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	created := make([]dto.TemplateItemDTO, 0, len(items))
	for rows.Next() {
		dbRow, err := scanTemplateItem(rows)
		if err != nil {
			return nil, err
		}
		created = append(created, dbRow.ToDTO())
	}
	return created, rows.Err()
}

func (r *templateItemRepository) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateTemplateItemDTO) (*dto.TemplateItemDTO, error) {
	builder := psql.Update(templateItemTable)
	changed := false

	if payload.ItemName != nil {
		builder = builder.Set("item_name", *payload.ItemName)
		changed = true
	}
	if payload.Nominal != nil {
		value, err := stringToNullDecimal(*payload.Nominal)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("nominal", value)
		changed = true
	}
	if payload.ToleranceMin != nil {
		value, err := stringToNullDecimal(*payload.ToleranceMin)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("tolerance_min", value)
		changed = true
	}
	if payload.ToleranceMax != nil {
		value, err := stringToNullDecimal(*payload.ToleranceMax)
		if err != nil {
			return nil, err
		}
		builder = builder.Set("tolerance_max", value)
		changed = true
	}
	if payload.Sequence != nil {
		builder = builder.Set("sequence", *payload.Sequence)
		changed = true
	}
	if !changed {
		return r.FindItem(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + templateItemFields).ToSql()
	if err != nil {
		return nil, err
	}

	dbRow, err := scanTemplateItem(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	itemDTO := dbRow.ToDTO()
	return &itemDTO, nil
}

func (r *templateItemRepository) DeleteItem(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(templateItemTable).Where(sq.Eq{"id": id}).ToSql()
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
