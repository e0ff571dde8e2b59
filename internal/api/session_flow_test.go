package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Vince489/Auth/internal/api/handler"
	"github.com/Vince489/Auth/internal/api/middleware"
	"github.com/Vince489/Auth/internal/core/domain"
	"github.com/Vince489/Auth/internal/core/service"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UserName]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.nextID++
	clone.ID = fmt.Sprintf("id-%d", r.nextID)
	stored := clone
	r.users[stored.UserName] = &stored
	return &clone, nil
}

func (r *memoryUserRepo) FindByUserName(_ context.Context, userName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userName]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) ListUsers(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

// newTestServer wires the real account service behind the real routes, with
// an in-memory store standing in for Mongo.
func newTestServer(tokenTTL time.Duration) (*echo.Echo, *memoryUserRepo) {
	repo := newMemoryUserRepo()
	svc := service.NewAccountService(repo, nil, nil, "test-secret", tokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewUserHandler(svc, handler.CookieProfile{})
	v1 := e.Group("/api/v1")
	v1.GET("/", h.List)
	v1.POST("/register", h.Register)
	v1.POST("/login", h.Login)
	v1.GET("/getUser", h.GetUser, middleware.Session(svc))
	v1.GET("/logout", h.Logout)
	v1.GET("/:id", h.GetByID)

	return e, repo
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionFlow_RegisterLoginGetUserLogout(t *testing.T) {
	e, _ := newTestServer(time.Hour)

	// Register.
	rec := doJSON(e, http.MethodPost, "/api/v1/register", `{"userName":"alice","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reg map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("register: invalid json: %v", err)
	}
	if reg["codeName"] == "" || reg["codeName"] == nil {
		t.Fatalf("register: expected codeName, got %v", reg)
	}

	// Duplicate registration conflicts.
	rec = doJSON(e, http.MethodPost, "/api/v1/register", `{"userName":"alice","password":"other"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	// Login.
	rec = doJSON(e, http.MethodPost, "/api/v1/login", `{"userName":"alice","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var login map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("login: invalid json: %v", err)
	}
	token, _ := login["token"].(string)
	if token == "" {
		t.Fatalf("login: expected token")
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || !sessionCookie.HttpOnly {
		t.Fatalf("login: expected httpOnly session cookie, got %+v", sessionCookie)
	}

	// Session lookup resolves the issuing identity.
	rec = doJSON(e, http.MethodGet, "/api/v1/getUser", "", sessionCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("getUser: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var got map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("getUser: invalid json: %v", err)
	}
	if got["user"]["userName"] != "alice" {
		t.Fatalf("getUser: expected alice, got %v", got["user"])
	}
	if strings.Contains(rec.Body.String(), "passwordHash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("getUser: hash leaked")
	}

	// Logout clears the cookie...
	rec = doJSON(e, http.MethodGet, "/api/v1/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("logout: expected cleared session cookie")
	}

	// ...but an already-issued token still validates until expiry. There is
	// no server-side session table to revoke it against.
	rec = doJSON(e, http.MethodGet, "/api/v1/getUser", "", sessionCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("getUser after logout: expected 200, got %d", rec.Code)
	}
}

func TestSessionFlow_LoginFailures(t *testing.T) {
	e, _ := newTestServer(time.Hour)

	rec := doJSON(e, http.MethodPost, "/api/v1/register", `{"userName":"bob","password":"goodpass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/login", `{"userName":"bob","password":"badpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid password") {
		t.Fatalf("wrong password: unexpected body %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/login", `{"userName":"ghost","password":"whatever"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username") {
		t.Fatalf("unknown user: unexpected body %s", rec.Body.String())
	}
}

func TestSessionFlow_ExpiredToken(t *testing.T) {
	e, _ := newTestServer(time.Hour)

	rec := doJSON(e, http.MethodPost, "/api/v1/register", `{"userName":"carol","password":"pass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	claims := jwt.MapClaims{
		"user_id":   "id-1",
		"user_name": "carol",
		"exp":       time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/getUser", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: expired})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rec.Code)
	}
}

func TestSessionFlow_SessionForDeletedRecord(t *testing.T) {
	e, repo := newTestServer(time.Hour)

	rec := doJSON(e, http.MethodPost, "/api/v1/register", `{"userName":"dave","password":"pass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodPost, "/api/v1/login", `{"userName":"dave","password":"pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}

	repo.mu.Lock()
	delete(repo.users, "dave")
	repo.mu.Unlock()

	rec = doJSON(e, http.MethodGet, "/api/v1/getUser", "", sessionCookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("orphaned session: expected 404, got %d", rec.Code)
	}
}

func TestSessionFlow_ListNeverLeaksHashes(t *testing.T) {
	e, _ := newTestServer(time.Hour)

	for _, name := range []string{"erin", "frank"} {
		body := fmt.Sprintf(`{"userName":%q,"password":"pass-%s"}`, name, name)
		if rec := doJSON(e, http.MethodPost, "/api/v1/register", body); rec.Code != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d", name, rec.Code)
		}
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "$2a$") || strings.Contains(body, "passwordHash") || strings.Contains(body, "password_hash") {
		t.Fatalf("list leaked hash material: %s", body)
	}

	// The by-id path must apply the same projection.
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("list: invalid json: %v", err)
	}
	id, _ := users[0]["id"].(string)
	rec = doJSON(e, http.MethodGet, "/api/v1/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("by id: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("by id leaked hash material: %s", rec.Body.String())
	}
}
