package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vexa-app/vexa-web/internal/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// submissionColumns is the shared list of columns for submission queries.
var submissionColumns = []string{
	"id", "full_name", "email", "consent", "user_agent", "ip", "created_at",
}

// SubmissionRepository handles database operations for prejoin submissions.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// scanSubmission scans a single row into a Submission struct.
func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var sub domain.Submission
	err := row.Scan(
		&sub.ID,
		&sub.FullName,
		&sub.Email,
		&sub.Consent,
		&sub.UserAgent,
		&sub.IP,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	return &sub, nil
}

// scanSubmissions scans multiple rows into a slice of Submission structs.
func scanSubmissions(rows pgx.Rows) ([]*domain.Submission, error) {
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return subs, nil
}

// Create inserts a new submission. Returns ErrDuplicateEmail if the email
// is already registered. ID and CreatedAt are populated on success.
func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	query, args, err := psql.
		Insert("prejoin_submissions").
		Columns("full_name", "email", "consent", "user_agent", "ip").
		Values(sub.FullName, sub.Email, sub.Consent, sub.UserAgent, sub.IP).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for submission: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	return sub, nil
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query, args, err := psql.
		Select(submissionColumns...).
		From("prejoin_submissions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for submission: %w", err)
	}

	return scanSubmission(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a submission by ID. Returns ErrSubmissionNotFound if no
// row matched.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.
		Delete("prejoin_submissions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for submission %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}

	return nil
}

// searchCondition returns the ILIKE filter for a name/email substring search,
// or nil when the search string is empty.
func searchCondition(search string) sq.Sqlizer {
	if search == "" {
		return nil
	}
	like := "%" + search + "%"
	return sq.Or{
		sq.ILike{"full_name": like},
		sq.ILike{"email": like},
	}
}

// List retrieves submissions matching an optional search string, newest
// first, with pagination. Returns the page of submissions and the total
// count of matches.
func (r *SubmissionRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.Submission, int, error) {
	qb := psql.
		Select(submissionColumns...).
		From("prejoin_submissions").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	countQb := psql.Select("COUNT(*)").From("prejoin_submissions")

	if cond := searchCondition(search); cond != nil {
		qb = qb.Where(cond)
		countQb = countQb.Where(cond)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query submissions: %w", err)
	}

	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	return subs, total, nil
}

// All retrieves every submission matching an optional search string,
// newest first. Used by CSV export.
func (r *SubmissionRepository) All(ctx context.Context, search string) ([]*domain.Submission, error) {
	qb := psql.
		Select(submissionColumns...).
		From("prejoin_submissions").
		OrderBy("created_at DESC")

	if cond := searchCondition(search); cond != nil {
		qb = qb.Where(cond)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build All query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	return scanSubmissions(rows)
}
