package repositories

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"checksheet-system/internal/dto"
	"checksheet-system/pkg/utils"
)

// ReportFilter narrows the checksheet report by date range and type.
// Zero values mean "no restriction".
type ReportFilter struct {
	DateFrom time.Time
	DateTo   time.Time
	Type     string
}

type ReportRepositoryInterface interface {
	GetChecksheetReport(ctx context.Context, filter ReportFilter) ([]dto.ReportRowDTO, error)
	GetDashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type reportRepository struct{ storage Querier }

func NewReportRepository(storage Querier) ReportRepositoryInterface {
	return &reportRepository{storage: storage}
}

func reportWhere(alias string, filter ReportFilter) sq.And {
	where := sq.And{sq.Eq{alias + ".deleted_at": nil}}
	if !filter.DateFrom.IsZero() {
		where = append(where, sq.GtOrEq{alias + ".created_at": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		where = append(where, sq.LtOrEq{alias + ".created_at": filter.DateTo})
	}
	return where
}

func (r *reportRepository) GetChecksheetReport(ctx context.Context, filter ReportFilter) ([]dto.ReportRowDTO, error) {
	result := make([]dto.ReportRowDTO, 0)

	if filter.Type == "" || filter.Type == "dir" {
		rows, err := r.dirReportRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		result = append(result, rows...)
	}
	if filter.Type == "" || filter.Type == "fi" {
		rows, err := r.fiReportRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		result = append(result, rows...)
	}
	return result, nil
}

func (r *reportRepository) dirReportRows(ctx context.Context, filter ReportFilter) ([]dto.ReportRowDTO, error) {
	query, args, err := psql.Select(
		"d.id_dir", "mo.name", "c.name", "s.name", "u.full_name", "d.status", "d.created_at",
		"(SELECT COUNT(*) FROM measurements m WHERE m.dir_id = d.id)",
		"(SELECT COUNT(*) FROM measurements m WHERE m.dir_id = d.id AND m.status = 'reject')").
		From("dirs d").
		LeftJoin("models mo ON mo.id = d.model_id").
		LeftJoin("customers c ON c.id = d.customer_id").
		LeftJoin("sections s ON s.id = d.section_id").
		LeftJoin("users u ON u.id = d.operator_id").
		Where(reportWhere("d", filter)).
		OrderBy("d.created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]dto.ReportRowDTO, 0)
	for rows.Next() {
		row, err := scanReportRow(rows, "dir")
		if err != nil {
			return nil, err
		}
		report = append(report, *row)
	}
	return report, rows.Err()
}

func (r *reportRepository) fiReportRows(ctx context.Context, filter ReportFilter) ([]dto.ReportRowDTO, error) {
	query, args, err := psql.Select(
		"f.fi_number", "mo.name", "c.name", "s.name", "u.full_name", "f.status", "f.created_at",
		"(SELECT COUNT(*) FROM visual_inspections v WHERE v.fi_id = f.id)",
		"(SELECT COUNT(*) FROM visual_inspections v WHERE v.fi_id = f.id AND v.status = 'ng')").
		From("fis f").
		LeftJoin("models mo ON mo.id = f.model_id").
		LeftJoin("customers c ON c.id = f.customer_id").
		LeftJoin("sections s ON s.id = f.section_id").
		LeftJoin("users u ON u.id = f.operator_id").
		Where(reportWhere("f", filter)).
		OrderBy("f.created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]dto.ReportRowDTO, 0)
	for rows.Next() {
		row, err := scanReportRow(rows, "fi")
		if err != nil {
			return nil, err
		}
		report = append(report, *row)
	}
	return report, rows.Err()
}

type reportScanner interface {
	Scan(dest ...any) error
}

func scanReportRow(row reportScanner, checksheetType string) (*dto.ReportRowDTO, error) {
	var (
		report       dto.ReportRowDTO
		modelName    sql.NullString
		customerName sql.NullString
		sectionName  sql.NullString
		operatorName sql.NullString
		createdAt    time.Time
	)
	err := row.Scan(&report.Number, &modelName, &customerName, &sectionName,
		&operatorName, &report.Status, &createdAt, &report.ItemCount, &report.RejectCount)
	if err != nil {
		return nil, err
	}
	report.ChecksheetType = checksheetType
	report.ModelName = utils.NullStringToString(modelName)
	report.CustomerName = utils.NullStringToString(customerName)
	report.SectionName = utils.NullStringToString(sectionName)
	report.OperatorName = utils.NullStringToString(operatorName)
	report.CreatedAt = createdAt.Local().Format(time.DateTime)
	return &report, nil
}

func (r *reportRepository) GetDashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	summary := &dto.DashboardSummaryDTO{
		DirByStatus: make(map[string]uint64),
		FiByStatus:  make(map[string]uint64),
	}

	if err := r.countByStatus(ctx, "dirs", summary.DirByStatus); err != nil {
		return nil, err
	}
	if err := r.countByStatus(ctx, "fis", summary.FiByStatus); err != nil {
		return nil, err
	}

	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE m.status = 'reject')
		FROM measurements m
		JOIN dirs d ON d.id = m.dir_id
		WHERE d.deleted_at IS NULL`
	if err := r.storage.QueryRow(ctx, query).Scan(&summary.MeasurementsTotal, &summary.MeasurementsRejected); err != nil {
		return nil, err
	}
	if summary.MeasurementsTotal > 0 {
		summary.RejectRate = float64(summary.MeasurementsRejected) / float64(summary.MeasurementsTotal)
	}
	return summary, nil
}

func (r *reportRepository) countByStatus(ctx context.Context, table string, out map[string]uint64) error {
	query, args, err := psql.Select("status", "COUNT(*)").From(table).
		Where(sq.Eq{"deleted_at": nil}).
		GroupBy("status").ToSql()
	if err != nil {
		return err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count uint64
		if err := rows.Scan(&status, &count); err != nil {
			return err
		}
		out[status] = count
	}
	return rows.Err()
}
