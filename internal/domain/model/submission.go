package model

import (
	"fmt"
	"time"

	"cp_tracker/internal/common"
)

type SolvedStatus string

const (
	SolvedYes SolvedStatus = "yes"
	SolvedNo  SolvedStatus = "no"
)

func (s SolvedStatus) Valid() bool {
	return s == SolvedYes || s == SolvedNo
}

// Submission is one day's practice record. Problems is only populated when
// SolvedStatus is "yes"; WhyNot only when it is "no".
type Submission struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Date         string       `json:"date"`
	SolvedStatus SolvedStatus `json:"solvedStatus"`
	ProblemCount int          `json:"problemCount"`
	Problems     []Problem    `json:"problems"`
	WhyNot       string       `json:"whyNot"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Problem is embedded in a Submission and has no identity of its own.
type Problem struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Link       string  `json:"link"`
	Tags       string  `json:"tags"`
	SourceCode string  `json:"sourceCode"`
	HowSolved  string  `json:"howSolved"`
	Rating     float64 `json:"rating"`
}

// Validate checks the fields a stored problem must carry.
func (p Problem) Validate() error {
	switch {
	case p.Title == "":
		return fmt.Errorf("%w: problem title is required", common.ErrValidation)
	case p.Link == "":
		return fmt.Errorf("%w: problem link is required", common.ErrValidation)
	case p.SourceCode == "":
		return fmt.Errorf("%w: problem source code is required", common.ErrValidation)
	}
	return nil
}

// Validate enforces the record-level invariants before persistence.
func (s *Submission) Validate() error {
	if s.Name == "" || s.Date == "" || s.SolvedStatus == "" {
		return fmt.Errorf("%w: name, date and solvedStatus are required", common.ErrValidation)
	}
	if !s.SolvedStatus.Valid() {
		return fmt.Errorf("%w: solvedStatus must be \"yes\" or \"no\"", common.ErrValidation)
	}
	if s.ProblemCount < 0 {
		return fmt.Errorf("%w: problemCount must not be negative", common.ErrValidation)
	}
	if s.SolvedStatus == SolvedNo && len(s.Problems) > 0 {
		return fmt.Errorf("%w: unsolved submissions cannot carry problems", common.ErrValidation)
	}
	if s.SolvedStatus == SolvedYes && s.WhyNot != "" {
		return fmt.Errorf("%w: solved submissions cannot carry whyNot", common.ErrValidation)
	}
	for i, p := range s.Problems {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("problem %d: %w", i+1, err)
		}
	}
	return nil
}
