package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"event-planner/internal/auth"
	"event-planner/internal/models"
	"event-planner/internal/notify"
	"event-planner/internal/service"
	"event-planner/internal/storage"
)

type fakeInviter struct {
	ids     []int64
	message string
}

func (f *fakeInviter) SendInvitations(_ context.Context, ids []int64, message string) (notify.Report, error) {
	f.ids, f.message = ids, message
	return notify.Report{Outcomes: []notify.Outcome{
		{PhoneNumber: "+15550001"},
		{PhoneNumber: "+15550002", Err: &models.SendError{PhoneNumber: "+15550002", Err: context.DeadlineExceeded}},
	}}, nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
	inviter *fakeInviter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st, err := storage.NewStorage(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := zerolog.Nop()
	inviter := &fakeInviter{}
	deps := Deps{
		Events:      service.NewEventService(st, log),
		Guests:      service.NewGuestService(st, nil, log),
		Tasks:       service.NewTaskService(st, log),
		Budget:      service.NewBudgetService(st, log),
		Invitations: inviter,
		Auth:        auth.NewLocal(st, "test-secret", time.Hour, log),
	}
	return &testServer{
		t:       t,
		handler: NewHandler(deps, Options{CORSOrigins: []string{"*"}}, log),
		inviter: inviter,
	}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signUp() {
	s.t.Helper()
	rec := s.do("POST", "/api/v1/auth/signup", map[string]string{"email": "host@example.com", "password": "secret1"})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("signup status = %d: %s", rec.Code, rec.Body)
	}
	var sess auth.Session
	decodeBody(s.t, rec, &sess)
	s.token = sess.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHealthIsOpen(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do("GET", "/api/v1/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do("GET", "/api/v1/events", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d", rec.Code)
	}
	s.token = "garbage"
	if rec := s.do("GET", "/api/v1/events", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d", rec.Code)
	}
}

func TestSignInAndSignOut(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	rec := s.do("POST", "/api/v1/auth/signin", map[string]string{"email": "host@example.com", "password": "nope-nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d", rec.Code)
	}
	rec = s.do("POST", "/api/v1/auth/signup", map[string]string{"email": "host@example.com", "password": "secret1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: status = %d", rec.Code)
	}

	if rec := s.do("POST", "/api/v1/auth/signout", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("signout: status = %d", rec.Code)
	}
	if rec := s.do("GET", "/api/v1/events", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("after signout: status = %d", rec.Code)
	}
}

func TestEventLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	rec := s.do("POST", "/api/v1/events", map[string]string{"name": "Wedding", "date": "2025-06-01", "location": "Hall"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body)
	}
	var e models.Event
	decodeBody(t, rec, &e)

	rec = s.do("POST", "/api/v1/events", map[string]string{"name": "", "date": "2025-06-01"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d", rec.Code)
	}

	rec = s.do("PUT", "/api/v1/events/999", map[string]string{"name": "X", "date": "Y"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: status = %d", rec.Code)
	}

	if rec := s.do("DELETE", "/api/v1/events/999", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete missing: status = %d", rec.Code)
	}

	var events []models.Event
	decodeBody(t, s.do("GET", "/api/v1/events", nil), &events)
	if len(events) != 1 || events[0].Name != "Wedding" || events[0].ID != e.ID {
		t.Fatalf("events = %+v", events)
	}
}

func TestGuestsAndSummary(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	var g models.Guest
	rec := s.do("POST", "/api/v1/guests", map[string]string{"name": "Jane Doe", "phone_number": "+15550001"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create guest: status = %d", rec.Code)
	}
	decodeBody(t, rec, &g)

	rec = s.do("PUT", "/api/v1/guests/"+itoa(g.ID)+"/rsvp", map[string]string{"rsvp_status": "Attending"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rsvp: status = %d: %s", rec.Code, rec.Body)
	}
	rec = s.do("PUT", "/api/v1/guests/"+itoa(g.ID)+"/rsvp", map[string]string{"rsvp_status": "maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad rsvp: status = %d", rec.Code)
	}

	var summary models.RSVPSummary
	decodeBody(t, s.do("GET", "/api/v1/guests/summary", nil), &summary)
	if summary != (models.RSVPSummary{Attending: 1}) {
		t.Fatalf("summary = %+v", summary)
	}

	rec = s.do("POST", "/api/v1/guests/import", map[string]string{"ref": "1"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("import without address book: status = %d", rec.Code)
	}
}

func TestSendInvitations(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	rec := s.do("POST", "/api/v1/guests/invitations", map[string]any{"guest_ids": []int64{1, 2}, "message": "Come!"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp invitationsResponse
	decodeBody(t, rec, &resp)
	if resp.Sent != 1 || resp.Failed != 1 || resp.Result[1].Error == "" {
		t.Fatalf("response = %+v", resp)
	}
	if s.inviter.message != "Come!" || len(s.inviter.ids) != 2 {
		t.Fatalf("inviter got %v %q", s.inviter.ids, s.inviter.message)
	}

	if rec := s.do("POST", "/api/v1/guests/invitations", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty selection: status = %d", rec.Code)
	}
}

func TestTasks(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	var task models.Task
	decodeBody(t, s.do("POST", "/api/v1/tasks", map[string]string{"title": "Book DJ", "description": "Call around"}), &task)

	rec := s.do("PUT", "/api/v1/tasks/"+itoa(task.ID)+"/completion", map[string]bool{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: status = %d", rec.Code)
	}
	decodeBody(t, rec, &task)
	if !task.IsCompleted || task.Title != "Book DJ" {
		t.Fatalf("task = %+v", task)
	}
}

func TestBudget(t *testing.T) {
	s := newTestServer(t)
	s.signUp()

	for _, body := range []map[string]any{
		{"name": "Venue", "amount": 500, "category": "Location"},
		{"name": "Catering", "amount": "300", "category": "Food"},
	} {
		if rec := s.do("POST", "/api/v1/budget", body); rec.Code != http.StatusCreated {
			t.Fatalf("create %v: status = %d: %s", body["name"], rec.Code, rec.Body)
		}
	}
	rec := s.do("POST", "/api/v1/budget", map[string]any{"name": "Bad", "amount": "-5", "category": "X"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative amount: status = %d", rec.Code)
	}

	var total totalResponse
	decodeBody(t, s.do("GET", "/api/v1/budget/total", nil), &total)
	if total.Total != 800 {
		t.Fatalf("total = %v", total.Total)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
