package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivakushwah143/SecondBrain/internal/auth"
	"github.com/Shivakushwah143/SecondBrain/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

// newTestRouter builds a router with no backing services. The cases below
// exercise request validation, which rejects before any repository call.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}
	s := NewServer(cfg, nil, time.UTC, nil, nil, nil, nil)
	return s.Router()
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, "user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"username":"alice"}`},
		{"short username", `{"username":"ab","password":"longenough"}`},
		{"short password", `{"username":"alice","password":"short"}`},
		{"malformed json", `{"username":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/signup", tc.body, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
		})
	}
}

func TestSigninRequiresCredentials(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/signin", `{"username":"alice"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/content", "/api/v1/reminders"} {
		w := doJSON(t, r, http.MethodGet, path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", path, w.Code)
		}
	}
}

func TestProtectedRoutesRejectBadToken(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/me", "", "Bearer not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestCreateReminderValidation(t *testing.T) {
	r := newTestRouter(t)
	header := authHeader(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"reminderTime":"2030-01-01T09:00:00"}`},
		{"missing time", `{"title":"drink water"}`},
		{"bad repeat", `{"title":"drink water","reminderTime":"2030-01-01T09:00:00","repeat":"hourly"}`},
		{"bad time format", `{"title":"drink water","reminderTime":"tomorrow at nine"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/reminders", tc.body, header)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
		})
	}
}

func TestAddContentValidation(t *testing.T) {
	r := newTestRouter(t)
	header := authHeader(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing link", `{"title":"a video","type":"youtube"}`},
		{"bad type", `{"title":"a video","link":"https://example.com","type":"podcast"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/content", tc.body, header)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
		})
	}
}

func TestPDFChatRequiresQueryAndCollection(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/pdf/chat", `{"query":"what is this"}`, authHeader(t))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestShareRequiresBoolean(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/brain/share", `{}`, authHeader(t))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestTelegramLinkValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/telegram/link", `{"telegramChatId":"123"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing token: status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/telegram/link", `{"telegramChatId":"123","token":"bogus"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", w.Code)
	}
}

func TestTelegramContentValidatesType(t *testing.T) {
	r := newTestRouter(t)
	body := `{"telegramChatId":"123","link":"https://example.com","type":"pdf","title":"doc"}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/telegram/content", body, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestParseReminderTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	s := &Server{loc: loc}

	// A zoneless timestamp is wall clock in the reference timezone.
	got, err := s.parseReminderTime("2030-01-15T14:30:00")
	if err != nil {
		t.Fatalf("parseReminderTime: %v", err)
	}
	want := time.Date(2030, 1, 15, 14, 30, 0, 0, loc).UTC()
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	// An explicit zone is respected as-is.
	got, err = s.parseReminderTime("2030-01-15T14:30:00Z")
	if err != nil {
		t.Fatalf("parseReminderTime: %v", err)
	}
	if !got.Equal(time.Date(2030, 1, 15, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("zoned time mishandled: %s", got)
	}

	if _, err := s.parseReminderTime("next tuesday"); err == nil {
		t.Error("expected an error for unparseable input")
	}
}
