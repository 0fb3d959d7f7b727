package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/repository"
	"athletic-metrics/internal/service"
)

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(user.Username)
	if _, ok := m.users[key]; ok {
		return domain.User{}, repository.ErrDuplicate
	}
	m.users[key] = user
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[strings.ToLower(username)]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Replace(_ context.Context, oldUsername string, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[strings.ToLower(oldUsername)]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, strings.ToLower(oldUsername))
	m.users[strings.ToLower(user.Username)] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[strings.ToLower(username)]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, strings.ToLower(username))
	return nil
}

type mockTeamRepo struct {
	mu    sync.Mutex
	teams map[string]domain.Team
	calls int
}

func (m *mockTeamRepo) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.teams[strings.ToLower(team.Name)] = team
	return team, nil
}

func (m *mockTeamRepo) GetByName(_ context.Context, name string) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[strings.ToLower(name)]
	if !ok {
		return domain.Team{}, repository.ErrNotFound
	}
	return team, nil
}

func (m *mockTeamRepo) List(_ context.Context) ([]domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Team, 0, len(m.teams))
	for _, team := range m.teams {
		out = append(out, team)
	}
	return out, nil
}

func (m *mockTeamRepo) Replace(_ context.Context, originalName string, team domain.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.teams[strings.ToLower(originalName)]; !ok {
		return repository.ErrNotFound
	}
	delete(m.teams, strings.ToLower(originalName))
	m.teams[strings.ToLower(team.Name)] = team
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.teams[strings.ToLower(name)]; !ok {
		return repository.ErrNotFound
	}
	delete(m.teams, strings.ToLower(name))
	return nil
}

type nopPlayerRepo struct{}

func (nopPlayerRepo) Create(_ context.Context, p domain.Player) (domain.Player, error) {
	return p, nil
}

func (nopPlayerRepo) GetByName(context.Context, string) (domain.Player, error) {
	return domain.Player{}, repository.ErrNotFound
}

func (nopPlayerRepo) List(context.Context) ([]domain.Player, error) {
	return []domain.Player{}, nil
}

func (nopPlayerRepo) Replace(context.Context, string, domain.Player) error {
	return nil
}

func (nopPlayerRepo) Delete(context.Context, string) error {
	return nil
}

type nopGameRepo struct{}

func (nopGameRepo) Create(_ context.Context, g domain.Game) (domain.Game, error) {
	return g, nil
}

func (nopGameRepo) GetByTeamAndDate(context.Context, string, string) (domain.Game, error) {
	return domain.Game{}, repository.ErrNotFound
}

func (nopGameRepo) List(context.Context) ([]domain.Game, error) {
	return []domain.Game{}, nil
}

func (nopGameRepo) Replace(context.Context, string, string, domain.Game) error {
	return nil
}

func (nopGameRepo) Delete(context.Context, string, string) error {
	return nil
}

type testServer struct {
	router   *gin.Engine
	sessions *service.SessionService
	store    *service.SessionStore
	users    *mockUserRepo
	teams    *mockTeamRepo
}

type testServerOption func(*testServerOptions)

type testServerOptions struct {
	limiter service.LoginRateLimiter
	ttl     time.Duration
	origins []string
	logger  *zap.Logger
}

func withLimiter(l service.LoginRateLimiter) testServerOption {
	return func(o *testServerOptions) { o.limiter = l }
}

func withLogger(l *zap.Logger) testServerOption {
	return func(o *testServerOptions) { o.logger = l }
}

func withOrigins(origins ...string) testServerOption {
	return func(o *testServerOptions) { o.origins = origins }
}

func newTestServer(t *testing.T, opts ...testServerOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	o := testServerOptions{ttl: 15 * time.Minute, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	users := &mockUserRepo{users: make(map[string]domain.User)}
	teams := &mockTeamRepo{teams: make(map[string]domain.Team)}

	userSvc := service.NewUserServiceWithCost(logger, users, 2, bcrypt.MinCost)
	ctx := context.Background()
	if _, _, err := userSvc.EnsureAdmin(ctx, "root", "admin-secret"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if _, err := userSvc.Register(ctx, "alice", "correct-horse"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	store := service.NewSessionStore()
	sessions := service.NewSessionService(logger, store, userSvc, o.limiter, o.ttl)

	router := NewRouter(logger, o.origins, Handlers{
		Guard:    NewSessionGuard(logger, sessions, false),
		Sessions: NewSessionHandler(logger, sessions, false),
		Teams:    NewTeamHandler(logger, service.NewTeamService(logger, teams)),
		Players:  NewPlayerHandler(logger, service.NewPlayerService(logger, nopPlayerRepo{})),
		Games:    NewGameHandler(logger, service.NewGameService(logger, nopGameRepo{})),
		Users:    NewUserHandler(logger, userSvc),
	})
	return &testServer{router: router, sessions: sessions, store: store, users: users, teams: teams}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return s.doFrom(t, "", method, path, body, cookies...)
}

// doFrom envía la petición desde remoteAddr ("ip:puerto"); vacío usa el de httptest.
func (s *testServer) doFrom(t *testing.T, remoteAddr, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := s.do(t, http.MethodPost, "/session/login", map[string]string{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	cookie := responseCookie(w)
	if cookie == nil {
		t.Fatalf("login %s: missing session cookie", username)
	}
	return cookie
}

func responseCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func newPreflight(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/teams", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return req
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
