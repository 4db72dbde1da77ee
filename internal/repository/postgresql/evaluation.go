package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/evaluation"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type evaluationRepository struct {
	db *database.DB
}

func NewEvaluationRepository(db *database.DB) evaluation.EvaluationRepository {
	return &evaluationRepository{db: db}
}

const evaluationColumns = `
	ev.id, ev.worker_id, ev.worker_type, ev.evaluator_id, ev.period_month,
	ev.period_year, ev.quality, ev.productivity, ev.punctuality, ev.teamwork,
	ev.overall_rating, ev.comments, ev.created_at, ev.updated_at`

const evaluationWorkerName = `
	COALESCE(dw.first_name || ' ' || dw.last_name, e.first_name || ' ' || e.last_name) AS worker_name`

const evaluationJoins = `
	LEFT JOIN daily_workers dw ON ev.worker_type = 'daily' AND dw.id = ev.worker_id
	LEFT JOIN employees e ON ev.worker_type = 'regular' AND e.id = ev.worker_id`

// Create implements evaluation.EvaluationRepository.
func (r *evaluationRepository) Create(ctx context.Context, e evaluation.Evaluation) (evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_evaluations (
			worker_id, worker_type, evaluator_id, period_month, period_year,
			quality, productivity, punctuality, teamwork, overall_rating, comments
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.WorkerID, e.WorkerType, e.EvaluatorID, e.PeriodMonth, e.PeriodYear,
		e.Quality, e.Productivity, e.Punctuality, e.Teamwork, e.OverallRating, e.Comments,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return evaluation.Evaluation{}, evaluation.ErrDuplicatePeriod
		}
		return evaluation.Evaluation{}, fmt.Errorf("failed to create evaluation: %w", err)
	}

	return e, nil
}

// GetByID implements evaluation.EvaluationRepository.
func (r *evaluationRepository) GetByID(ctx context.Context, id string) (evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + evaluationColumns + `, ` + evaluationWorkerName + `
		FROM performance_evaluations ev` + evaluationJoins + `
		WHERE ev.id = $1`

	e, err := scanEvaluation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return evaluation.Evaluation{}, evaluation.ErrEvaluationNotFound
		}
		return evaluation.Evaluation{}, fmt.Errorf("failed to get evaluation by ID: %w", err)
	}

	return e, nil
}

// GetByWorkerAndPeriod implements evaluation.EvaluationRepository. Returns
// (nil, nil) when no evaluation exists for the worker and period.
func (r *evaluationRepository) GetByWorkerAndPeriod(ctx context.Context, workerID string, month, year int) (*evaluation.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + evaluationColumns + `, ` + evaluationWorkerName + `
		FROM performance_evaluations ev` + evaluationJoins + `
		WHERE ev.worker_id = $1 AND ev.period_month = $2 AND ev.period_year = $3`

	e, err := scanEvaluation(q.QueryRow(ctx, query, workerID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation by worker and period: %w", err)
	}

	return &e, nil
}

// List implements evaluation.EvaluationRepository.
func (r *evaluationRepository) List(ctx context.Context, filter evaluation.EvaluationFilter) ([]evaluation.Evaluation, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND ev.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	if filter.WorkerType != nil && *filter.WorkerType != "" {
		baseWhere += fmt.Sprintf(" AND ev.worker_type = $%d", argIdx)
		args = append(args, *filter.WorkerType)
		argIdx++
	}

	if filter.PeriodYear != nil {
		baseWhere += fmt.Sprintf(" AND ev.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}

	if filter.PeriodMonth != nil {
		baseWhere += fmt.Sprintf(" AND ev.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM performance_evaluations ev WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	query := `SELECT ` + evaluationColumns + `, ` + evaluationWorkerName + `
		FROM performance_evaluations ev` + evaluationJoins + `
		WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY ev.period_year DESC, ev.period_month DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []evaluation.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, e)
	}

	return evaluations, total, rows.Err()
}

// Summary implements evaluation.EvaluationRepository.
func (r *evaluationRepository) Summary(ctx context.Context, year int) ([]evaluation.WorkerSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ev.worker_id, ` + evaluationWorkerName + `,
			COUNT(*) AS evaluations, AVG(ev.overall_rating) AS average_rating
		FROM performance_evaluations ev` + evaluationJoins + `
		WHERE ev.period_year = $1
		GROUP BY ev.worker_id, worker_name
		ORDER BY average_rating DESC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize evaluations: %w", err)
	}
	defer rows.Close()

	var summaries []evaluation.WorkerSummary
	for rows.Next() {
		var (
			s   evaluation.WorkerSummary
			avg decimal.Decimal
		)
		if err := rows.Scan(&s.WorkerID, &s.WorkerName, &s.Evaluations, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation summary: %w", err)
		}
		s.AverageRating = avg.Round(2).String()
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func scanEvaluation(row pgx.Row) (evaluation.Evaluation, error) {
	var e evaluation.Evaluation
	err := row.Scan(
		&e.ID, &e.WorkerID, &e.WorkerType, &e.EvaluatorID, &e.PeriodMonth,
		&e.PeriodYear, &e.Quality, &e.Productivity, &e.Punctuality, &e.Teamwork,
		&e.OverallRating, &e.Comments, &e.CreatedAt, &e.UpdatedAt, &e.WorkerName,
	)
	return e, err
}
