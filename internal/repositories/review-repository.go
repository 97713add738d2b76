package repositories

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/pkg/utils"
)

const (
	approvalTable  = "checksheet_approvals"
	approvalFields = "a.id, a.reference_type, a.reference_id, a.decision, a.approved_by, a.approved_at, a.note, u.username, u.full_name"

	revisionTable  = "checksheet_revisions"
	revisionFields = "r.id, r.reference_type, r.reference_id, r.revision_number, r.revision_note, r.revised_by, r.created_at, u.username, u.full_name"
)

type ReviewRepositoryInterface interface {
	CreateApproval(ctx context.Context, q Querier, ref inspection.Reference, decision string, approvedBy uint64, note string) error
	GetApprovals(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetApprovalDTO, error)
	CreateRevision(ctx context.Context, q Querier, ref inspection.Reference, note string, revisedBy uint64) error
	GetRevisions(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetRevisionDTO, error)
}

type reviewRepository struct{ storage Querier }

func NewReviewRepository(storage Querier) ReviewRepositoryInterface {
	return &reviewRepository{storage: storage}
}

func (r *reviewRepository) CreateApproval(ctx context.Context, q Querier, ref inspection.Reference, decision string, approvedBy uint64, note string) error {
	query, args, err := psql.Insert(approvalTable).
		Columns("reference_type", "reference_id", "decision", "approved_by", "note").
		Values(string(ref.Type), ref.ID, decision, approvedBy, note).ToSql()
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *reviewRepository) GetApprovals(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetApprovalDTO, error) {
	query, args, err := psql.Select(approvalFields).
		From(approvalTable + " a").
		LeftJoin("users u ON u.id = a.approved_by").
		Where(sq.Eq{"a.reference_type": string(ref.Type), "a.reference_id": ref.ID}).
		OrderBy("a.approved_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	approvals := make([]dto.ChecksheetApprovalDTO, 0)
	for rows.Next() {
		var (
			approval   dto.ChecksheetApprovalDTO
			approvedAt time.Time
			note       sql.NullString
			username   sql.NullString
			fullName   sql.NullString
		)
		err := rows.Scan(&approval.ID, &approval.ReferenceType, &approval.ReferenceID,
			&approval.Decision, &approval.ApprovedBy, &approvedAt, &note, &username, &fullName)
		if err != nil {
			return nil, err
		}
		approval.ApprovedAt = approvedAt.Local().Format(time.DateTime)
		approval.Note = utils.NullStringToString(note)
		if username.Valid {
			approval.Approver = &dto.ShortUserDTO{
				ID:       approval.ApprovedBy,
				Username: username.String,
				FullName: utils.NullStringToString(fullName),
			}
		}
		approvals = append(approvals, approval)
	}
	return approvals, rows.Err()
}

// CreateRevision assigns the next revision number per reference inside
// the insert itself, so concurrent requests cannot produce duplicates.
func (r *reviewRepository) CreateRevision(ctx context.Context, q Querier, ref inspection.Reference, note string, revisedBy uint64) error {
	query := `
		INSERT INTO checksheet_revisions (reference_type, reference_id, revision_number, revision_note, revised_by)
		SELECT $1, $2, COALESCE(MAX(revision_number), 0) + 1, $3, $4
		FROM checksheet_revisions
		WHERE reference_type = $1 AND reference_id = $2`
	if _, err := q.Exec(ctx, query, string(ref.Type), ref.ID, note, revisedBy); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *reviewRepository) GetRevisions(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetRevisionDTO, error) {
	query, args, err := psql.Select(revisionFields).
		From(revisionTable + " r").
		LeftJoin("users u ON u.id = r.revised_by").
		Where(sq.Eq{"r.reference_type": string(ref.Type), "r.reference_id": ref.ID}).
		OrderBy("r.revision_number ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revisions := make([]dto.ChecksheetRevisionDTO, 0)
	for rows.Next() {
		var (
			revision  dto.ChecksheetRevisionDTO
			note      sql.NullString
			createdAt time.Time
			username  sql.NullString
			fullName  sql.NullString
		)
		err := rows.Scan(&revision.ID, &revision.ReferenceType, &revision.ReferenceID,
			&revision.RevisionNumber, &note, &revision.RevisedBy, &createdAt, &username, &fullName)
		if err != nil {
			return nil, err
		}
		revision.RevisionNote = utils.NullStringToString(note)
		revision.CreatedAt = createdAt.Local().Format(time.DateTime)
		if username.Valid {
			revision.Reviser = &dto.ShortUserDTO{
				ID:       revision.RevisedBy,
				Username: username.String,
				FullName: utils.NullStringToString(fullName),
			}
		}
		revisions = append(revisions, revision)
	}
	return revisions, rows.Err()
}
