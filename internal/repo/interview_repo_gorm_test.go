package repo

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
	"selectiq/internal/testutil"
)

func newInterviewRepo(t *testing.T) *InterviewRepo {
	t.Helper()
	return NewInterviewRepo(testutil.NewGateway(t), zap.NewNop())
}

func scheduleInterview(t *testing.T, r *InterviewRepo) *domain.Interview {
	t.Helper()
	iv := domain.Interview{
		CandidateName: "John Doe",
		InterviewDate: "2026-09-15",
		InterviewTime: "14:30",
		Interviewer:   "Sarah Johnson",
		InterviewType: "Online",
	}
	if err := r.Create(context.Background(), &iv); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	return &iv
}

func TestInterviewCreateDefaultsScheduled(t *testing.T) {
	r := newInterviewRepo(t)
	iv := scheduleInterview(t, r)
	if iv.Status != domain.InterviewStatusScheduled {
		t.Fatalf("status = %q, want %q", iv.Status, domain.InterviewStatusScheduled)
	}
}

func TestInterviewCreateRejectsBadClock(t *testing.T) {
	r := newInterviewRepo(t)

	iv := domain.Interview{
		CandidateName: "John Doe",
		InterviewDate: "2026-09-15",
		InterviewTime: "2:30 PM",
		Interviewer:   "Sarah Johnson",
		InterviewType: "Online",
	}
	err := r.Create(context.Background(), &iv)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	fields := apperr.FieldsOf(err)
	if len(fields) != 1 || fields[0] != "interview_time" {
		t.Fatalf("fields = %v, want [interview_time]", fields)
	}
}

func TestInterviewCreateRejectsBadDate(t *testing.T) {
	r := newInterviewRepo(t)

	iv := domain.Interview{
		CandidateName: "John Doe",
		InterviewDate: "15/09/2026",
		InterviewTime: "14:30",
		Interviewer:   "Sarah Johnson",
		InterviewType: "Online",
	}
	err := r.Create(context.Background(), &iv)
	fields := apperr.FieldsOf(err)
	if len(fields) != 1 || fields[0] != "interview_date" {
		t.Fatalf("fields = %v, want [interview_date]", fields)
	}
}

func TestInterviewCommentFlow(t *testing.T) {
	r := newInterviewRepo(t)
	ctx := context.Background()
	iv := scheduleInterview(t, r)

	for _, c := range []string{"strong on system design", "follow up on references"} {
		if err := r.AppendComment(ctx, iv.ID, c); err != nil {
			t.Fatalf("append %q: %v", c, err)
		}
	}

	got, err := r.GetByID(ctx, iv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	list := got.CommentList()
	if len(list) != 2 || list[0] != "strong on system design" {
		t.Fatalf("comments = %v", list)
	}

	if err := r.DeleteCommentAt(ctx, iv.ID, 0); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	got, err = r.GetByID(ctx, iv.ID)
	if err != nil {
		t.Fatalf("re-get: %v", err)
	}
	list = got.CommentList()
	if len(list) != 1 || list[0] != "follow up on references" {
		t.Fatalf("comments after delete = %v", list)
	}
}

func TestInterviewAppendBlankComment(t *testing.T) {
	r := newInterviewRepo(t)
	iv := scheduleInterview(t, r)

	err := r.AppendComment(context.Background(), iv.ID, "   ")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestInterviewDeleteCommentFromEmptyThread(t *testing.T) {
	r := newInterviewRepo(t)
	iv := scheduleInterview(t, r)

	err := r.DeleteCommentAt(context.Background(), iv.ID, 0)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestInterviewDeleteCommentOutOfRange(t *testing.T) {
	r := newInterviewRepo(t)
	ctx := context.Background()
	iv := scheduleInterview(t, r)
	if err := r.AppendComment(ctx, iv.ID, "only one"); err != nil {
		t.Fatalf("append: %v", err)
	}

	err := r.DeleteCommentAt(ctx, iv.ID, 5)
	if apperr.KindOf(err) != apperr.KindIndex {
		t.Fatalf("err = %v, want index error", err)
	}
}

func TestInterviewListDegradesToEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	gw := testutil.NewGatewayFor(t, db)
	r := NewInterviewRepo(gw, zap.NewNop())

	if err := db.Migrator().DropTable(&domain.Interview{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	got := r.List(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("list = %v, want empty non-nil slice", got)
	}
}
