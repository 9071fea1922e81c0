package service

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cp_tracker/internal/common"
	"cp_tracker/internal/domain/model"

	"github.com/gosimple/slug"
)

// SubmissionForm is the flat JSON object posted to /api/submit.
//
// Problems are flattened with a 1-based index suffix: the i-th problem is
// read from problem_title_i, problem_link_i, tags_i, source_code_i,
// how_solved_i and problem_rating_i. problemFields is the only place that
// knows these keys.
type SubmissionForm map[string]any

var problemFields = []struct {
	key    string
	assign func(p *model.Problem, v any) error
}{
	{"problem_title", func(p *model.Problem, v any) error {
		p.Title = formString(v)
		p.Slug = slug.Make(p.Title)
		return nil
	}},
	{"problem_link", func(p *model.Problem, v any) error { p.Link = formString(v); return nil }},
	{"tags", func(p *model.Problem, v any) error { p.Tags = formString(v); return nil }},
	{"source_code", func(p *model.Problem, v any) error { p.SourceCode = formString(v); return nil }},
	{"how_solved", func(p *model.Problem, v any) error { p.HowSolved = formString(v); return nil }},
	{"problem_rating", func(p *model.Problem, v any) (err error) { p.Rating, err = formRating(v); return err }},
}

// DecodeSubmissionForm reads a JSON object, keeping numbers as json.Number.
func DecodeSubmissionForm(r io.Reader) (SubmissionForm, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var form SubmissionForm
	if err := dec.Decode(&form); err != nil {
		return nil, fmt.Errorf("%w: invalid request payload: %v", common.ErrBadRequest, err)
	}
	if form == nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", common.ErrBadRequest)
	}
	return form, nil
}

// String returns the value at key as text; absent and null give "".
func (f SubmissionForm) String(key string) string {
	return formString(f[key])
}

// ProblemCount coerces problemCount to a non-negative integer, reading only
// the leading digits of strings. Non-numeric input gives 0.
func (f SubmissionForm) ProblemCount() int {
	switch v := f["problemCount"].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return clampCount(float64(n))
		}
		if fl, err := v.Float64(); err == nil {
			return clampCount(fl)
		}
		return leadingInt(v.String())
	case float64:
		return clampCount(v)
	case string:
		return leadingInt(v)
	default:
		return 0
	}
}

// Problems assembles count problems in index order when status is "yes" and
// returns an empty list otherwise. Missing keys leave the field empty;
// required fields are checked later by model.Problem.Validate.
func (f SubmissionForm) Problems(status model.SolvedStatus, count int) ([]model.Problem, error) {
	problems := []model.Problem{}
	if status != model.SolvedYes {
		return problems, nil
	}
	for i := 1; i <= count; i++ {
		var p model.Problem
		for _, field := range problemFields {
			key := field.key + "_" + strconv.Itoa(i)
			if err := field.assign(&p, f[key]); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", common.ErrValidation, key, err)
			}
		}
		problems = append(problems, p)
	}
	return problems, nil
}

func formString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// formRating accepts numbers and numeric strings. Absent or blank means 0.
func formRating(v any) (float64, error) {
	var (
		r   float64
		err error
	)
	switch x := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		r, err = x.Float64()
	case float64:
		r = x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, nil
		}
		r, err = strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("rating must be a number")
	}
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("rating must be a number")
	}
	return r, nil
}

func clampCount(f float64) int {
	if math.IsNaN(f) || f < 1 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '-' {
		return 0
	}
	if s[0] == '+' {
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > math.MaxInt32 {
		return math.MaxInt32
	}
	return n
}
