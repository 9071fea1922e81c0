package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common"
	"cp_tracker/internal/domain/model"
)

// memoryCache counts calls so tests can see when the store is bypassed.
type memoryCache struct {
	subs        []model.Submission
	ok          bool
	gets        int
	invalidates int
}

func (c *memoryCache) Get(context.Context) ([]model.Submission, bool, error) {
	c.gets++
	return c.subs, c.ok, nil
}

func (c *memoryCache) Set(_ context.Context, subs []model.Submission) error {
	c.subs, c.ok = subs, true
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.invalidates++
	c.subs, c.ok = nil, false
	return nil
}

func solvedForm(name string, titles ...string) service.SubmissionForm {
	form := service.SubmissionForm{
		"name":         name,
		"date":         "2024-05-01",
		"solvedStatus": "yes",
		"problemCount": fmt.Sprint(len(titles)),
		"whyNot":       "ignored when solved",
	}
	for i, title := range titles {
		n := i + 1
		form[fmt.Sprintf("problem_title_%d", n)] = title
		form[fmt.Sprintf("problem_link_%d", n)] = "https://codeforces.com/problem/" + title
		form[fmt.Sprintf("source_code_%d", n)] = "int main() {}"
		form[fmt.Sprintf("problem_rating_%d", n)] = "1400"
	}
	return form
}

func TestSubmissionService_CreateSolved(t *testing.T) {
	svc, repos := newTestSubmissionService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, solvedForm("Alice", "A", "B"))
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if sub.WhyNot != "" {
		t.Fatalf("expected whyNot to be forced empty, got %q", sub.WhyNot)
	}
	if sub.ProblemCount != 2 || len(sub.Problems) != 2 {
		t.Fatalf("expected 2 problems, got count=%d len=%d", sub.ProblemCount, len(sub.Problems))
	}

	stored, err := repos.Submissions.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 1 || stored[0].WhyNot != "" || stored[0].Problems[1].Title != "B" {
		t.Fatalf("unexpected stored record %+v", stored)
	}
}

func TestSubmissionService_CreateUnsolvedKeepsWhyNot(t *testing.T) {
	svc, repos := newTestSubmissionService(t)
	ctx := context.Background()

	form := service.SubmissionForm{
		"name": "Bob", "date": "2024-05-02", "solvedStatus": "no",
		"problemCount": "3", "whyNot": "exams",
		"problem_title_1": "should be ignored",
	}
	sub, err := svc.CreateSubmission(ctx, form)
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if sub.WhyNot != "exams" || len(sub.Problems) != 0 {
		t.Fatalf("unexpected record %+v", sub)
	}

	stored, _ := repos.Submissions.List(ctx)
	if len(stored) != 1 || stored[0].WhyNot != "exams" {
		t.Fatalf("expected whyNot to be stored, got %+v", stored)
	}
}

func TestSubmissionService_UnsolvedIgnoresProblemCap(t *testing.T) {
	svc, repos := newTestSubmissionService(t)
	ctx := context.Background()

	form := service.SubmissionForm{
		"name": "Bob", "date": "2024-05-03", "solvedStatus": "no",
		"problemCount": "500", "whyNot": "contest week",
	}
	sub, err := svc.CreateSubmission(ctx, form)
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if sub.ProblemCount != 500 || len(sub.Problems) != 0 {
		t.Fatalf("unexpected record %+v", sub)
	}
	if stored, _ := repos.Submissions.List(ctx); len(stored) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(stored))
	}
}

func TestSubmissionService_MissingRequiredFields(t *testing.T) {
	svc, repos := newTestSubmissionService(t)
	ctx := context.Background()

	for _, key := range []string{"name", "date", "solvedStatus"} {
		form := solvedForm("Alice", "A")
		delete(form, key)
		if _, err := svc.CreateSubmission(ctx, form); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("missing %s: expected ErrValidation, got %v", key, err)
		}
	}

	stored, _ := repos.Submissions.List(ctx)
	if len(stored) != 0 {
		t.Fatalf("expected nothing persisted, got %d records", len(stored))
	}
}

func TestSubmissionService_Rejections(t *testing.T) {
	svc, repos := newTestSubmissionService(t)
	ctx := context.Background()

	badStatus := solvedForm("A", "x")
	badStatus["solvedStatus"] = "maybe"

	incomplete := solvedForm("A", "x")
	delete(incomplete, "source_code_1")

	tooMany := solvedForm("A")
	tooMany["problemCount"] = "101"

	for name, form := range map[string]service.SubmissionForm{
		"bad status":         badStatus,
		"incomplete problem": incomplete,
		"too many problems":  tooMany,
	} {
		if _, err := svc.CreateSubmission(ctx, form); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
	if stored, _ := repos.Submissions.List(ctx); len(stored) != 0 {
		t.Fatalf("expected nothing persisted, got %d", len(stored))
	}
}

func TestSubmissionService_ListReturnsEverySubmission(t *testing.T) {
	svc, _ := newTestSubmissionService(t)
	ctx := context.Background()

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := svc.CreateSubmission(ctx, solvedForm(fmt.Sprintf("user-%d", i), "P")); err != nil {
			t.Fatalf("CreateSubmission %d: %v", i, err)
		}
	}

	subs, err := svc.ListSubmissions(ctx)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(subs) != n {
		t.Fatalf("expected %d submissions, got %d", n, len(subs))
	}
	for i, sub := range subs {
		if want := fmt.Sprintf("user-%d", i); sub.Name != want {
			t.Fatalf("expected %s at %d, got %s", want, i, sub.Name)
		}
	}
}

func TestSubmissionService_ListUsesCache(t *testing.T) {
	repos := newTestRepos(t)
	c := &memoryCache{}
	svc := service.NewSubmissionService(repos.Submissions, c, 100)
	ctx := context.Background()

	if _, err := svc.CreateSubmission(ctx, solvedForm("first", "A")); err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if c.invalidates != 1 {
		t.Fatalf("expected one invalidation, got %d", c.invalidates)
	}

	subs, err := svc.ListSubmissions(ctx)
	if err != nil || len(subs) != 1 {
		t.Fatalf("ListSubmissions: %v (%d)", err, len(subs))
	}
	if !c.ok {
		t.Fatal("expected listing to be cached after a miss")
	}

	// A cached listing is served without touching the store.
	c.subs = append(c.subs, model.Submission{ID: "from-cache"})
	subs, _ = svc.ListSubmissions(ctx)
	if len(subs) != 2 || subs[1].ID != "from-cache" {
		t.Fatalf("expected cached listing, got %+v", subs)
	}

	if _, err := svc.CreateSubmission(ctx, solvedForm("second", "B")); err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	subs, _ = svc.ListSubmissions(ctx)
	if len(subs) != 2 || subs[1].Name != "second" {
		t.Fatalf("expected fresh listing after invalidation, got %+v", subs)
	}
}
