package applications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
)

type memoryStore struct {
	mu    sync.Mutex
	items []storage.Application
	err   error
}

func (s *memoryStore) CreateApplication(_ context.Context, application storage.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, application)
	return nil
}

func (s *memoryStore) GetApplication(_ context.Context, id string) (storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return storage.Application{}, storage.ErrNotFound
}

func (s *memoryStore) ListApplications(context.Context, int) ([]storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.Application(nil), s.items...), nil
}

var fixedNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func mount(t *testing.T, store storage.ApplicationStore) http.Handler {
	t.Helper()
	m, err := New().Mount(module.Dependencies{Applications: store, Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return m.Handler
}

func postJSON(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr, payload
}

func TestMountRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := New().Mount(module.Dependencies{}); err == nil {
		t.Fatal("expected missing store error")
	}
}

func TestAPICreatesApplication(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	rr, payload := postJSON(t, mount(t, store), `{"fullName":"Ada Lovelace","email":"ada@example.com","interest":"GPU clusters for art","newsletter":true}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if payload["success"] != true || payload["message"] != "Application submitted successfully" {
		t.Fatalf("payload = %v", payload)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected id in response")
	}

	got, err := store.GetApplication(context.Background(), id)
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	want := storage.Application{
		ID:         id,
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Interest:   "GPU clusters for art",
		Newsletter: true,
		CreatedAt:  fixedNow,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stored application mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	rr, payload := postJSON(t, mount(t, store), `{"fullName":"A","email":"nope","interest":"short","newsletter":false}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if payload["success"] != false || payload["message"] != "Validation error" {
		t.Fatalf("payload = %v", payload)
	}
	var body struct {
		Errors []Issue `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	want := []Issue{
		{Code: CodeTooSmall, Path: []string{"fullName"}, Message: "Name must be at least 2 characters"},
		{Code: CodeInvalidString, Path: []string{"email"}, Message: "Please enter a valid email address"},
		{Code: CodeTooSmall, Path: []string{"interest"}, Message: "Please tell us more about your interest (minimum 10 characters)"},
	}
	if diff := cmp.Diff(want, body.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(store.items) != 0 {
		t.Fatal("invalid application must not be stored")
	}
}

func TestAPIReportsTypeErrorsPerField(t *testing.T) {
	t.Parallel()

	rr, _ := postJSON(t, mount(t, &memoryStore{}), `{"fullName":42,"email":"ada@example.com","interest":"long enough interest"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var body struct {
		Errors []Issue `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	want := []Issue{
		{Code: CodeInvalidType, Path: []string{"fullName"}, Message: "Expected string"},
		{Code: CodeInvalidType, Path: []string{"newsletter"}, Message: "Required"},
	}
	if diff := cmp.Diff(want, body.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	rr, payload := postJSON(t, mount(t, &memoryStore{}), `{"fullName":`)
	if rr.Code != http.StatusBadRequest || payload["message"] != "Invalid JSON body" {
		t.Fatalf("response = %d %v", rr.Code, payload)
	}
}

func TestAPIStoreFailureIsInternalError(t *testing.T) {
	t.Parallel()

	rr, payload := postJSON(t, mount(t, &memoryStore{err: errors.New("disk full")}), `{"fullName":"Ada","email":"ada@example.com","interest":"long enough interest","newsletter":false}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if diff := cmp.Diff(map[string]any{"success": false, "message": "Internal server error"}, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIRejectsOtherMethods(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mount(t, &memoryStore{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/applications", nil))
	if rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("response = %d allow=%q", rr.Code, rr.Header().Get("Allow"))
	}
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFormRendersAndShowsSuccess(t *testing.T) {
	t.Parallel()

	h := mount(t, &memoryStore{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/apply", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `<form class="apply-form" method="post" action="/apply"`) {
		t.Fatalf("form response = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/apply?submitted=1", nil))
	if !strings.Contains(rr.Body.String(), "Application Submitted!") {
		t.Fatal("body missing success copy")
	}
}

func TestFormSubmitRedirectsOnSuccess(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	rr := postForm(mount(t, store), url.Values{
		"fullName":   {"Grace Hopper"},
		"email":      {"grace@example.com"},
		"interest":   {"Compilers and robots"},
		"newsletter": {"true"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/apply?submitted=1" {
		t.Fatalf("Location = %q", got)
	}
	if len(store.items) != 1 || !store.items[0].Newsletter {
		t.Fatalf("stored = %+v", store.items)
	}
}

func TestFormSubmitRerendersErrors(t *testing.T) {
	t.Parallel()

	rr := postForm(mount(t, &memoryStore{}), url.Values{
		"fullName": {"G"},
		"email":    {"grace@example.com"},
		"interest": {"robots"},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		"Name must be at least 2 characters",
		"Please tell us more about your interest (minimum 10 characters)",
		`value="grace@example.com"`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestFormSubmitStoreFailure(t *testing.T) {
	t.Parallel()

	rr := postForm(mount(t, &memoryStore{err: errors.New("locked")}), url.Values{
		"fullName": {"Grace"},
		"email":    {"grace@example.com"},
		"interest": {"Compilers and robots"},
	})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rr.Body.String(), "There was an error submitting your application.") {
		t.Fatal("body missing failure notice")
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{
		"ada@example.com":       true,
		"a.b+tag@sub.example.f": true,
		"":                      false,
		"ada":                   false,
		"ada@localhost":         false,
		"Ada <ada@example.com>": false,
		" ada@example.com":      false,
	} {
		if got := validEmail(value); got != want {
			t.Fatalf("validEmail(%q) = %t, want %t", value, got, want)
		}
	}
}
