package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cp_tracker/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	// List returns every submission in insertion order.
	List(ctx context.Context) ([]model.Submission, error)
}

const submissionColumns = `id, name, date, solved_status, problem_count, problems, why_not, created_at, updated_at`

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	problems, err := encodeProblems(sub.Problems)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	query := `INSERT INTO submissions (` + submissionColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		sub.ID, sub.Name, sub.Date, string(sub.SolvedStatus), sub.ProblemCount,
		problems, sub.WhyNot, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) List(ctx context.Context) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+submissionColumns+` FROM submissions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.List: %w", err)
	}
	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.List: %w", err)
	}
	return subs, nil
}

func encodeProblems(problems []model.Problem) (string, error) {
	if problems == nil {
		problems = []model.Problem{}
	}
	b, err := json.Marshal(problems)
	if err != nil {
		return "", fmt.Errorf("encode problems: %w", err)
	}
	return string(b), nil
}

func scanSubmissions(rows *sql.Rows) ([]model.Submission, error) {
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		var (
			sub      model.Submission
			status   string
			problems []byte
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Date, &status, &sub.ProblemCount,
			&problems, &sub.WhyNot, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		sub.SolvedStatus = model.SolvedStatus(status)
		sub.Problems = []model.Problem{}
		if len(problems) > 0 {
			if err := json.Unmarshal(problems, &sub.Problems); err != nil {
				return nil, fmt.Errorf("decode problems of %s: %w", sub.ID, err)
			}
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
