package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"selectiq/internal/core/auth"
	"selectiq/internal/domain"
	"selectiq/internal/repo"
	"selectiq/internal/testutil"
)

const (
	testEmail    = "admin@selectiq.local"
	testPassword = "change-me"
)

type env struct {
	engine *gin.Engine
	cookie *http.Cookie
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := testutil.NewGateway(t)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "selectiq", TTL: time.Hour}
	sessions := auth.NewMemorySessionStore()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := repo.NewUserRepo(gw)
	u := domain.User{Username: "admin", Email: testEmail, PasswordHash: hash}
	if err := users.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &env{engine: NewAPIEngine(zap.NewNop(), gw, jwter, sessions)}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *env) login(t *testing.T) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/login", gin.H{"email": testEmail, "password": testPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "selectiq_session" && c.Value != "" {
			e.cookie = c
			return
		}
	}
	t.Fatal("login did not set the session cookie")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/login", gin.H{"email": testEmail, "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := decode(t, w)["error"]; got != "invalid email or password" {
		t.Fatalf("error = %v", got)
	}
}

func TestRecruiterSurfaceRequiresSession(t *testing.T) {
	e := newEnv(t)
	for _, probe := range []struct{ method, path string }{
		{http.MethodPost, "/api/job-offers"},
		{http.MethodGet, "/api/interviews"},
		{http.MethodGet, "/api/dashboard-stats"},
		{http.MethodDelete, "/api/applications/1"},
	} {
		w := e.do(t, probe.method, probe.path, gin.H{})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", probe.method, probe.path, w.Code)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	if w := e.do(t, http.MethodGet, "/api/dashboard-stats", nil); w.Code != http.StatusOK {
		t.Fatalf("pre-logout status = %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/api/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	// Cookie still carries a valid token but the server session is gone.
	if w := e.do(t, http.MethodGet, "/api/dashboard-stats", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout status = %d, want 401", w.Code)
	}
}

func TestCheckAuthReflectsSession(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/check-auth", nil)
	if w.Code != http.StatusOK || decode(t, w)["authenticated"] != false {
		t.Fatalf("anonymous check-auth: %d %s", w.Code, w.Body.String())
	}

	e.login(t)
	w = e.do(t, http.MethodGet, "/api/check-auth", nil)
	body := decode(t, w)
	if w.Code != http.StatusOK || body["authenticated"] != true {
		t.Fatalf("authenticated check-auth: %d %s", w.Code, w.Body.String())
	}
	if _, ok := body["user"]; !ok {
		t.Fatal("check-auth must include the user")
	}
}

func TestApplicationSubmitAndList(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/applications", gin.H{
		"full_name": "Jane Doe",
		"email":     "jane@example.com",
		"job_title": "Backend Engineer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	app := decode(t, w)["application"].(map[string]any)
	if app["status"] != "pending" {
		t.Fatalf("status = %v, want pending", app["status"])
	}

	e.do(t, http.MethodPost, "/api/applications", gin.H{
		"full_name": "John Roe", "email": "john@example.com", "job_title": "Data Analyst",
	})

	w = e.do(t, http.MethodGet, "/api/applications", nil)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 || list[0]["email"] != "john@example.com" {
		t.Fatalf("list must be newest first, got %v", list)
	}
}

func TestApplicationSubmitMissingFields(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/applications", gin.H{"full_name": "Jane Doe"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestApplicationStatusGuardOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	w := e.do(t, http.MethodPost, "/api/applications", gin.H{
		"full_name": "Jane Doe", "email": "jane@example.com", "job_title": "Backend Engineer",
	})
	id := uint(decode(t, w)["application"].(map[string]any)["id"].(float64))

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d", id), gin.H{"status": "hired"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("pending->hired status = %d, want 400", w.Code)
	}
	if decode(t, w)["kind"] != "invalid_transition" {
		t.Fatalf("kind = %v", decode(t, w)["kind"])
	}

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d", id), gin.H{"status": "interview"})
	if w.Code != http.StatusOK {
		t.Fatalf("pending->interview status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCandidateDedupOverHTTP(t *testing.T) {
	e := newEnv(t)
	payload := gin.H{"full_name": "Jane Doe", "email": "jane@example.com", "job_title": "Backend Engineer"}

	w := e.do(t, http.MethodPost, "/api/candidates", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("first status = %d, body %s", w.Code, w.Body.String())
	}
	firstID := decode(t, w)["candidate"].(map[string]any)["id"]

	w = e.do(t, http.MethodPost, "/api/candidates", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["message"] != "Candidate already exists" {
		t.Fatalf("message = %v", body["message"])
	}
	if body["candidate"].(map[string]any)["id"] != firstID {
		t.Fatal("duplicate must resolve to the existing candidate")
	}
}

func TestInterviewValidationOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	w := e.do(t, http.MethodPost, "/api/interviews", gin.H{
		"candidate_name": "John Doe",
		"interview_date": "2026-09-15",
		"interview_time": "2:30 PM",
		"interviewer":    "Sarah Johnson",
		"interview_type": "Online",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	fields, _ := decode(t, w)["fields"].([]any)
	if len(fields) != 1 || fields[0] != "interview_time" {
		t.Fatalf("fields = %v, want [interview_time]", fields)
	}

	w = e.do(t, http.MethodPost, "/api/interviews", gin.H{
		"candidate_name": "John Doe",
		"interview_date": "2026-09-15",
		"interview_time": "14:30",
		"interviewer":    "Sarah Johnson",
		"interview_type": "Online",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestInterviewCommentsOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	w := e.do(t, http.MethodPost, "/api/interviews", gin.H{
		"candidate_name": "John Doe",
		"interview_date": "2026-09-15",
		"interview_time": "14:30",
		"interviewer":    "Sarah Johnson",
		"interview_type": "Online",
	})
	id := uint(decode(t, w)["interview"].(map[string]any)["id"].(float64))
	base := fmt.Sprintf("/api/interviews/%d/comments", id)

	w = e.do(t, http.MethodGet, base, nil)
	comments, ok := decode(t, w)["comments"].([]any)
	if !ok || len(comments) != 0 {
		t.Fatalf("fresh thread = %s, want empty array", w.Body.String())
	}

	if w = e.do(t, http.MethodPost, base, gin.H{"comment": "strong candidate"}); w.Code != http.StatusOK {
		t.Fatalf("add status = %d, body %s", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodGet, base, nil)
	comments, _ = decode(t, w)["comments"].([]any)
	if len(comments) != 1 || comments[0] != "strong candidate" {
		t.Fatalf("comments = %v", comments)
	}

	if w = e.do(t, http.MethodDelete, base+"/5", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range delete status = %d, want 400", w.Code)
	}
	if w = e.do(t, http.MethodDelete, base+"/0", nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestFormCallbackCreatesCompleted(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/forms/google-callback", gin.H{
		"full_name": "Form User", "email": "form@example.com", "job_title": "Data Analyst",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true || body["application_id"] == nil {
		t.Fatalf("body = %v", body)
	}

	w = e.do(t, http.MethodGet, "/api/applications", nil)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["status"] != "completed" {
		t.Fatalf("list = %v, want one completed application", list)
	}
}

func TestOfferCRUDOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	w := e.do(t, http.MethodPost, "/api/job-offers", gin.H{
		"title": "Backend Engineer", "company": "Acme", "description": "Go services",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	id := uint(decode(t, w)["id"].(float64))

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/job-offers/%d", id), gin.H{"is_active": false})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/api/job-offers", nil)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deactivated offer still listed: %v", list)
	}

	if w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/job-offers/%d", id), nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/job-offers/%d", id), nil); w.Code != http.StatusNotFound {
		t.Fatalf("double delete status = %d, want 404", w.Code)
	}
}

func TestNonNumericPathID(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	w := e.do(t, http.MethodDelete, "/api/job-offers/abc", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDashboardStatsOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	e.do(t, http.MethodPost, "/api/applications", gin.H{
		"full_name": "Jane Doe", "email": "jane@example.com", "job_title": "Backend Engineer",
	})
	e.do(t, http.MethodPost, "/api/job-offers", gin.H{
		"title": "Backend Engineer", "company": "Acme", "description": "Go services",
	})

	w := e.do(t, http.MethodGet, "/api/dashboard-stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total_offers"] != float64(1) || body["total_applications"] != float64(1) ||
		body["pending_applications"] != float64(1) || body["interview_applications"] != float64(0) {
		t.Fatalf("stats = %v", body)
	}
}
