package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"whatsapp-console/internal/auth"
	"whatsapp-console/internal/console"
	"whatsapp-console/internal/probe"
	"whatsapp-console/internal/settings"
	"whatsapp-console/internal/whatsapp"
	"whatsapp-console/internal/ws"
	"whatsapp-console/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type stubAI struct{}

func (stubAI) GenerateReply(ctx context.Context, apiKey, prompt string) (string, error) {
	return "Sure, let me check that for you.", nil
}

type testServer struct {
	router *gin.Engine
	graph  *httptest.Server
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token."}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1098765","display_phone_number":"+1 555-0100"}`))
	}))
	t.Cleanup(graph.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hub := ws.NewHub(nil)
	con, err := console.New(
		settings.NewRedisStore(rdb),
		whatsapp.NewClient(graph.URL, time.Second),
		probe.New(time.Second, nil),
		stubAI{},
		console.Options{
			SimulationInterval: time.Hour,
			DeliveredDelay:     10 * time.Millisecond,
			ReadDelay:          20 * time.Millisecond,
			Notifier:           hub,
		},
	)
	if err != nil {
		t.Fatalf("console.New() error: %v", err)
	}
	t.Cleanup(con.Close)

	return &testServer{
		router: NewRouter(auth.NewManager("1234", 4), con, hub),
		graph:  graph,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{OTP: "1234"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	s.token = resp.Token
}

func (s *testServer) saveConfig(t *testing.T, token string) {
	t.Helper()
	cfg := models.DefaultAPIConfig()
	cfg.PhoneNumberID = "1098765"
	cfg.BusinessAccountID = "waba-42"
	cfg.APIToken = token
	w := s.do(t, http.MethodPost, "/api/settings", cfg)
	if w.Code != http.StatusOK {
		t.Fatalf("save settings: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	decode(t, w, &resp)
	return resp["error"]
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodOptions, "/api/dashboard", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{OTP: "12"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for short otp, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != auth.ErrInvalidOTP.Error() {
		t.Fatalf("unexpected error %q", msg)
	}

	s.login(t)
	if s.token == "" {
		t.Fatalf("expected a token")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/dashboard", "/api/settings", "/api/chat/contacts", "/api/logs"} {
		w := s.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}

	s.token = "not-a-session"
	if w := s.do(t, http.MethodGet, "/api/dashboard", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", w.Code)
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	if w := s.do(t, http.MethodPost, "/api/auth/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/dashboard", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestSettingsFlow(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do(t, http.MethodPost, "/api/settings", models.APIConfig{PhoneNumberID: "1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/settings/load", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without saved config, got %d", w.Code)
	}

	s.saveConfig(t, "good-token")

	w = s.do(t, http.MethodGet, "/api/settings", nil)
	var got SettingsResponse
	decode(t, w, &got)
	if !got.ConfigSaved || got.Config.APIToken != "good-token" {
		t.Fatalf("unexpected settings %+v", got)
	}

	w = s.do(t, http.MethodPut, "/api/settings", models.APIConfig{WebhookURL: "https://hooks.example.com"})
	decode(t, w, &got)
	if got.Config.WebhookURL != "https://hooks.example.com" || got.Config.APIToken != "" {
		t.Fatalf("draft update should replace the draft, got %+v", got.Config)
	}

	if w := s.do(t, http.MethodPost, "/api/settings/load", nil); w.Code != http.StatusOK {
		t.Fatalf("load: expected 200, got %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/settings", nil); w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/settings", nil)
	decode(t, w, &got)
	if got.ConfigSaved || got.Config.VerifyToken != models.DefaultVerifyToken {
		t.Fatalf("unexpected settings after reset %+v", got)
	}
}

func TestSettingsProbes(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	if w := s.do(t, http.MethodPost, "/api/settings/test/webhook", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without webhook url, got %d", w.Code)
	}

	s.do(t, http.MethodPut, "/api/settings", models.APIConfig{BackendAPIURL: backend.URL})
	w := s.do(t, http.MethodPost, "/api/settings/test/backend", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res probe.Result
	decode(t, w, &res)
	if !res.Reachable {
		t.Fatalf("backend should be reachable: %+v", res)
	}
}

func TestConnect(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	if w := s.do(t, http.MethodPost, "/api/whatsapp/connect", nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 without saved config, got %d", w.Code)
	}

	s.saveConfig(t, "bad-token")
	w := s.do(t, http.MethodPost, "/api/whatsapp/connect", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for rejected credentials, got %d", w.Code)
	}

	s.saveConfig(t, "good-token")
	w = s.do(t, http.MethodPost, "/api/whatsapp/connect", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var d console.Dashboard
	decode(t, s.do(t, http.MethodGet, "/api/dashboard", nil), &d)
	if !d.Connected || d.APIStatus.PhoneNumber != "+1 555-0100" || d.Stats.TotalMessages != 6 {
		t.Fatalf("unexpected dashboard %+v", d)
	}

	s.do(t, http.MethodPost, "/api/whatsapp/disconnect", nil)
	decode(t, s.do(t, http.MethodGet, "/api/dashboard", nil), &d)
	if d.Connected {
		t.Fatalf("expected disconnected dashboard")
	}
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.saveConfig(t, "good-token")
	if w := s.do(t, http.MethodPost, "/api/whatsapp/connect", nil); w.Code != http.StatusOK {
		t.Fatalf("connect: expected 200, got %d", w.Code)
	}

	var contacts []models.Contact
	decode(t, s.do(t, http.MethodGet, "/api/chat/contacts?q=eve", nil), &contacts)
	if len(contacts) != 1 || contacts[0].ID != 105 {
		t.Fatalf("unexpected search result %+v", contacts)
	}

	if w := s.do(t, http.MethodPost, "/api/chat/messages", SendRequest{Content: "hi"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without selection, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/chat/contacts/abc/select", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/chat/contacts/999/select", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown contact, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/chat/contacts/105/select", nil); w.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d", w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/chat/messages", SendRequest{Content: "Use the reset link."})
	if w.Code != http.StatusOK {
		t.Fatalf("send: expected 200, got %d", w.Code)
	}

	if w := s.do(t, http.MethodPost, "/api/chat/ai-reply", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without ai key, got %d", w.Code)
	}
	s.do(t, http.MethodPut, "/api/ai/key", AIKeyRequest{APIKey: "gemini-key"})
	w = s.do(t, http.MethodPost, "/api/chat/ai-reply", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ai reply: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var reply models.Message
	decode(t, w, &reply)
	if !reply.IsBot {
		t.Fatalf("ai reply should be a bot message")
	}

	var conv ConversationResponse
	decode(t, s.do(t, http.MethodGet, "/api/chat/messages", nil), &conv)
	if conv.Contact == nil || conv.Contact.ID != 105 || len(conv.Messages) != 4 {
		t.Fatalf("unexpected conversation %+v", conv)
	}

	var logs []models.FeedItem
	decode(t, s.do(t, http.MethodGet, "/api/logs", nil), &logs)
	if len(logs) != 5 {
		t.Fatalf("expected 5 agent log entries, got %d", len(logs))
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{console.ErrMissingRequiredFields, http.StatusBadRequest},
		{console.ErrContactNotFound, http.StatusNotFound},
		{console.ErrConnecting, http.StatusConflict},
		{console.ErrAIFailed, http.StatusBadGateway},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
