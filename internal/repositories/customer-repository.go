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

type dbCustomer struct {
	ID           uint64
	CustomerCode string
	Name         string
	Address      sql.NullString
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbCustomer) ToDTO() dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:           db.ID,
		CustomerCode: db.CustomerCode,
		Name:         db.Name,
		Address:      utils.NullStringToString(db.Address),
		CreatedAt:    db.CreatedAt.Local().Format(time.DateTime),
		UpdatedAt:    utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	customerTable  = "customers"
	customerFields = "id, customer_code, name, address, created_at, updated_at"
)

var customerListColumns = map[string]string{
	"customer_code": "customer_code",
	"name":          "name",
	"created_at":    "created_at",
}

type CustomerRepositoryInterface interface {
	GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error)
	FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error)
	DeleteCustomer(ctx context.Context, id uint64) error
}

type customerRepository struct{ storage Querier }

func NewCustomerRepository(storage Querier) CustomerRepositoryInterface {
	return &customerRepository{storage: storage}
}

func (r *customerRepository) GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{sq.ILike{"customer_code": pattern}, sq.ILike{"name": pattern}})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(customerTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.CustomerDTO{}, 0, nil
	}

	builder := applyListParams(psql.Select(customerFields).From(customerTable).Where(where), filter, customerListColumns)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := make([]dto.CustomerDTO, 0)
	for rows.Next() {
		var dbRow dbCustomer
		if err := rows.Scan(&dbRow.ID, &dbRow.CustomerCode, &dbRow.Name, &dbRow.Address, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, dbRow.ToDTO())
	}
	return customers, total, rows.Err()
}

func (r *customerRepository) FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error) {
	query, args, err := psql.Select(customerFields).From(customerTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbCustomer
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.CustomerCode, &dbRow.Name, &dbRow.Address, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	customerDTO := dbRow.ToDTO()
	return &customerDTO, nil
}

func (r *customerRepository) CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error) {
	query, args, err := psql.Insert(customerTable).
		Columns("customer_code", "name", "address").
		Values(payload.CustomerCode, payload.Name, payload.Address).
		Suffix("RETURNING " + customerFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbCustomer
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.CustomerCode, &dbRow.Name, &dbRow.Address, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	customerDTO := dbRow.ToDTO()
	return &customerDTO, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error) {
	builder := psql.Update(customerTable)
	changed := false

	if payload.CustomerCode != nil {
		builder = builder.Set("customer_code", *payload.CustomerCode)
		changed = true
	}
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Address != nil {
		builder = builder.Set("address", *payload.Address)
		changed = true
	}
	if !changed {
		return r.FindCustomer(ctx, id)
	}

	query, args, err := builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + customerFields).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbCustomer
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.CustomerCode, &dbRow.Name, &dbRow.Address, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	customerDTO := dbRow.ToDTO()
	return &customerDTO, nil
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, id uint64) error {
	query, args, err := psql.Update(customerTable).
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
