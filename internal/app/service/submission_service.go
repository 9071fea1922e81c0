package service

import (
	"context"
	"fmt"
	"time"

	"cp_tracker/internal/common"
	"cp_tracker/internal/domain/model"
	"cp_tracker/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionCache holds the full listing returned by ListSubmissions.
type SubmissionCache interface {
	Get(ctx context.Context) ([]model.Submission, bool, error)
	Set(ctx context.Context, subs []model.Submission) error
	Invalidate(ctx context.Context) error
}

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	cache          SubmissionCache
	maxProblems    int
}

func NewSubmissionService(subRepo repository.SubmissionRepository, cache SubmissionCache, maxProblems int) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		cache:          cache,
		maxProblems:    maxProblems,
	}
}

// CreateSubmission validates the form, assembles its problems and stores
// the resulting record.
func (s *SubmissionService) CreateSubmission(ctx context.Context, form SubmissionForm) (*model.Submission, error) {
	name := form.String("name")
	date := form.String("date")
	status := model.SolvedStatus(form.String("solvedStatus"))
	if name == "" || date == "" || status == "" {
		return nil, fmt.Errorf("%w: required fields are missing", common.ErrValidation)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: solvedStatus must be \"yes\" or \"no\"", common.ErrValidation)
	}

	count := form.ProblemCount()
	if status == model.SolvedYes && count > s.maxProblems {
		return nil, fmt.Errorf("%w: problemCount must be at most %d", common.ErrValidation, s.maxProblems)
	}

	problems, err := form.Problems(status, count)
	if err != nil {
		return nil, err
	}

	whyNot := ""
	if status == model.SolvedNo {
		whyNot = form.String("whyNot")
	}

	now := time.Now().UTC()
	submission := &model.Submission{
		ID:           uuid.NewString(),
		Name:         name,
		Date:         date,
		SolvedStatus: status,
		ProblemCount: count,
		Problems:     problems,
		WhyNot:       whyNot,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, common.Errorf("failed to save submission: %w", err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("could not invalidate submissions cache", zap.Error(err))
	}

	zap.L().Info("submission stored",
		zap.String("submission_id", submission.ID),
		zap.String("solved_status", string(status)),
		zap.Int("problems", len(problems)))
	return submission, nil
}

// ListSubmissions returns every stored submission, oldest first.
func (s *SubmissionService) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	subs, ok, err := s.cache.Get(ctx)
	if err != nil {
		zap.L().Warn("submissions cache read failed", zap.Error(err))
	}
	if ok {
		return subs, nil
	}

	subs, err = s.submissionRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to fetch submissions: %w", err)
	}

	if err := s.cache.Set(ctx, subs); err != nil {
		zap.L().Warn("submissions cache write failed", zap.Error(err))
	}
	return subs, nil
}
