package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cp_tracker/internal/domain/model"
)

type sqliteSubmissionRepository struct {
	db *sql.DB
}

func NewSQLiteSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &sqliteSubmissionRepository{db: db}
}

func (r *sqliteSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	problems, err := encodeProblems(sub.Problems)
	if err != nil {
		return fmt.Errorf("sqliteSubmissionRepository.Create: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO submissions (`+submissionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Date, string(sub.SolvedStatus), sub.ProblemCount,
		problems, sub.WhyNot, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sqliteSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *sqliteSubmissionRepository) List(ctx context.Context) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+submissionColumns+` FROM submissions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqliteSubmissionRepository.List: %w", err)
	}
	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, fmt.Errorf("sqliteSubmissionRepository.List: %w", err)
	}
	return subs, nil
}
