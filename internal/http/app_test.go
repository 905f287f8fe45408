package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopadmin/internal/api"
	"shopadmin/internal/http/handlers"
	applog "shopadmin/internal/log"
	"shopadmin/internal/mockapi"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
)

const (
	adminEmail = "admin@shop.test"
	adminPass  = "Passw0rd!"
)

type testApp struct {
	*fiber.App
	backend *mockapi.Backend
	auth    *services.AuthService
	csrf    string
	sid     string
}

type appOpts struct {
	apiURL     string // overrides the mock backend when set
	loginMax   int
	limits     handlers.Limits
	bodyLimit  int
	storeAudit bool
}

// newApp wires the dashboard the way main does, against an in-memory backend.
func newApp(t *testing.T, o appOpts) *testApp {
	t.Helper()
	backend := mockapi.New(mockapi.Options{Secret: "test-secret"})
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	if o.apiURL == "" {
		o.apiURL = srv.URL
	}
	if o.loginMax == 0 {
		o.loginMax = 100
	}
	if o.limits.MaxFiles == 0 {
		o.limits = handlers.Limits{MaxFiles: 10, MaxFileSize: 1 << 20}
	}

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sessions := repos.NewSessionRepo(db, repos.NewSealer("test-secret"))
	authSvc := services.NewAuthService(api.New(o.apiURL, 5*time.Second), sessions)
	if o.storeAudit {
		authSvc.OnEvent = handlers.LogStoreEvent
	}
	deps := handlers.NewDeps(authSvc, o.limits)

	app := fiber.New(fiber.Config{Views: handlers.NewEngine("../../web/templates"), ErrorHandler: handlers.ErrorHandler})
	if o.bodyLimit > 0 {
		app.Server().MaxRequestBodySize = o.bodyLimit
	}
	app.Use(requestid.New())
	app.Use(applog.Timing())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	app.Use(handlers.AttachAdmin(authSvc))

	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        o.loginMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	deps.Mount(app.Group("/admin", handlers.RequireAuth(authSvc)))
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	ta := &testApp{App: app, backend: backend, auth: authSvc}
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	ta.csrf = cookieOf(resp, "csrf_")
	if ta.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return ta
}

func cookieOf(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (a *testApp) cookies(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: a.csrf})
	if a.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: a.sid})
	}
}

// submitLogin posts the sign-in form and remembers the session cookie.
func (a *testApp) submitLogin(t *testing.T, email, pass string) *http.Response {
	t.Helper()
	resp := a.post(t, "/login", url.Values{"email": {email}, "password": {pass}})
	if sid := cookieOf(resp, "sid"); sid != "" {
		a.sid = sid
	}
	return resp
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp := a.submitLogin(t, adminEmail, adminPass)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: expected redirect, got %d", resp.StatusCode)
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	a.cookies(req)
	resp, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", a.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.cookies(req)
	resp, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

type upload struct {
	name string
	mime string
	data []byte
}

func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, files ...upload) *http.Response {
	t.Helper()
	resp, err := a.postMultipartErr(t, path, fields, files...)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// postMultipartErr hands back app.Test's error, which is how fiber reports a
// body over the server limit.
func (a *testApp) postMultipartErr(t *testing.T, path string, fields map[string]string, files ...upload) (*http.Response, error) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("csrf", a.csrf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="media"; filename="` + f.name + `"`}
		h["Content-Type"] = []string{f.mime}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(f.data)
	}
	_ = w.Close()
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	a.cookies(req)
	return a.Test(req, -1)
}

func bodyOf(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

type logEntry struct {
	Level  string                 `json:"level"`
	Action string                 `json:"action"`
	UserID string                 `json:"user_id"`
	Err    string                 `json:"err"`
	Fields map[string]interface{} `json:"fields"`
}

// captureLogs temporarily replaces the standard logger output.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
