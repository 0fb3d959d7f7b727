package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
)

type fakeAccount struct {
	password string
	admin    bool
}

type fakeVerifier struct {
	calls atomic.Int32
	users map[string]fakeAccount
	err   error
}

func newFakeVerifier() *fakeVerifier {
	v := &fakeVerifier{users: map[string]fakeAccount{}}
	v.add("alice", "correct-horse", false)
	v.add("root", "admin-secret", true)
	return v
}

func (v *fakeVerifier) add(username, password string, admin bool) {
	v.users[username] = fakeAccount{password: password, admin: admin}
}

func (v *fakeVerifier) VerifyCredentials(_ context.Context, username, password string) (domain.Identity, error) {
	v.calls.Add(1)
	if v.err != nil {
		return domain.Identity{}, v.err
	}
	u, ok := v.users[username]
	if !ok || u.password != password {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return domain.Identity{Username: username, Administrator: u.admin}, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingLimiter struct {
	blocked  bool
	checked  []string
	failures []string
	resets   []string
}

func (r *recordingLimiter) Blocked(key string) bool {
	r.checked = append(r.checked, key)
	return r.blocked
}

func (r *recordingLimiter) RecordFailure(key string) { r.failures = append(r.failures, key) }

func (r *recordingLimiter) Reset(key string) { r.resets = append(r.resets, key) }

func newTestSessionService(t *testing.T, ttl time.Duration) (*SessionService, *SessionStore, *fakeVerifier, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewSessionStore()
	store.now = clock.Now
	verifier := newFakeVerifier()
	return NewSessionService(zap.NewNop(), store, verifier, nil, ttl), store, verifier, clock
}

func TestSessionServiceLoginAndAuthenticate(t *testing.T) {
	svc, _, _, clock := newTestSessionService(t, 15*time.Minute)

	sess, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Username != "alice" || sess.Administrator {
		t.Fatalf("unexpected session %+v", sess)
	}
	if !sess.ExpiresAt.Equal(clock.Now().Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", sess.ExpiresAt)
	}

	got, err := svc.Authenticate(sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Token != sess.Token || got.Username != "alice" {
		t.Fatalf("unexpected authenticated session %+v", got)
	}

	// Authenticate no renueva.
	clock.Advance(10 * time.Minute)
	got, err = svc.Authenticate(sess.Token)
	if err != nil || !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Fatalf("authenticate must not extend expiry, got %+v err=%v", got, err)
	}
}

func TestSessionServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, store, verifier, _ := newTestSessionService(t, time.Minute)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "mallory", "correct-horse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.username, tc.password); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
	if verifier.calls.Load() != 2 {
		t.Fatalf("expected 2 verifier calls, got %d", verifier.calls.Load())
	}
	if store.count() != 0 {
		t.Fatalf("failed logins must not create sessions")
	}
}

func TestSessionServiceLoginEmptyCredentialsSkipVerifier(t *testing.T) {
	svc, _, verifier, _ := newTestSessionService(t, time.Minute)

	for _, pair := range [][2]string{{"", "correct-horse"}, {"alice", ""}, {"", ""}} {
		if _, err := svc.Login(context.Background(), pair[0], pair[1]); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q/%q, got %v", pair[0], pair[1], err)
		}
	}
	if verifier.calls.Load() != 0 {
		t.Fatalf("verifier must not be called for empty credentials, got %d calls", verifier.calls.Load())
	}
}

func TestSessionServiceLoginVerifierFailure(t *testing.T) {
	svc, store, verifier, _ := newTestSessionService(t, time.Minute)
	verifier.err = errors.New("mongo unavailable")

	if _, err := svc.Login(context.Background(), "alice", "correct-horse"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("expected no session")
	}
}

func TestSessionServiceLoginRateLimited(t *testing.T) {
	limiter := &recordingLimiter{blocked: true}
	verifier := newFakeVerifier()
	svc := NewSessionService(zap.NewNop(), NewSessionStore(), verifier, limiter, time.Minute)

	if _, err := svc.LoginFrom(context.Background(), "10.0.0.1", "  Alice ", "correct-horse"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if verifier.calls.Load() != 0 {
		t.Fatalf("rate limited logins must not reach the verifier")
	}
	if len(limiter.checked) != 1 || limiter.checked[0] != "10.0.0.1|alice" {
		t.Fatalf("expected client and normalized username key, got %v", limiter.checked)
	}
}

func TestSessionServiceLimiterCountsOnlyRejectedCredentials(t *testing.T) {
	limiter := &recordingLimiter{}
	verifier := newFakeVerifier()
	svc := NewSessionService(zap.NewNop(), NewSessionStore(), verifier, limiter, time.Minute)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice", "wrong-horse"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "correct-horse"); err != nil {
		t.Fatalf("login: %v", err)
	}
	verifier.err = errors.New("mongo unavailable")
	if _, err := svc.Login(ctx, "alice", "correct-horse"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if len(limiter.failures) != 1 || limiter.failures[0] != "|alice" {
		t.Fatalf("only the rejected password counts as a failure, got %v", limiter.failures)
	}
	if len(limiter.resets) != 1 {
		t.Fatalf("a successful login resets the key, got %v", limiter.resets)
	}
}

func TestSessionServiceRepeatedValidLoginsNeverThrottled(t *testing.T) {
	const max = 10
	svc := NewSessionService(zap.NewNop(), NewSessionStore(), newFakeVerifier(), NewLoginRateLimiter(5*time.Minute, max), time.Minute)

	for i := 0; i < max+5; i++ {
		if _, err := svc.Login(context.Background(), "root", "admin-secret"); err != nil {
			t.Fatalf("valid login #%d failed: %v", i+1, err)
		}
	}
}

func TestSessionServiceFailuresThrottleOnlyOffendingClient(t *testing.T) {
	const max = 3
	svc := NewSessionService(zap.NewNop(), NewSessionStore(), newFakeVerifier(), NewLoginRateLimiter(5*time.Minute, max), time.Minute)
	ctx := context.Background()

	for i := 0; i < max; i++ {
		if _, err := svc.LoginFrom(ctx, "203.0.113.9", "root", "guess"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("attempt %d: expected ErrUnauthorized, got %v", i+1, err)
		}
	}
	if _, err := svc.LoginFrom(ctx, "203.0.113.9", "root", "admin-secret"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected offending client to be throttled, got %v", err)
	}
	if _, err := svc.LoginFrom(ctx, "198.51.100.7", "root", "admin-secret"); err != nil {
		t.Fatalf("administrator must still log in from another client: %v", err)
	}
}

func TestSessionServiceSuccessClearsFailures(t *testing.T) {
	const max = 3
	svc := NewSessionService(zap.NewNop(), NewSessionStore(), newFakeVerifier(), NewLoginRateLimiter(5*time.Minute, max), time.Minute)
	ctx := context.Background()

	for round := 0; round < 3; round++ {
		for i := 0; i < max-1; i++ {
			if _, err := svc.Login(ctx, "alice", "wrong-horse"); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("round %d: expected ErrUnauthorized, got %v", round, err)
			}
		}
		if _, err := svc.Login(ctx, "alice", "correct-horse"); err != nil {
			t.Fatalf("round %d: valid login after failures: %v", round, err)
		}
	}
}

func TestSessionServiceExpiredSessionIsPurged(t *testing.T) {
	svc, store, _, clock := newTestSessionService(t, time.Millisecond)

	sess, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(time.Millisecond)

	if _, err := svc.Authenticate(sess.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated at expiry, got %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("expired session must be purged, store has %d", store.count())
	}
	if _, err := svc.Renew(sess.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expired session must not renew, got %v", err)
	}
}

func TestSessionServiceRenewRotatesToken(t *testing.T) {
	svc, store, _, clock := newTestSessionService(t, 15*time.Minute)

	sess, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(10 * time.Minute)

	renewed, err := svc.Renew(sess.Token)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if renewed.Token == sess.Token {
		t.Fatalf("renew must issue a new token")
	}
	if !renewed.ExpiresAt.Equal(clock.Now().Add(15 * time.Minute)) {
		t.Fatalf("renew must grant a full ttl, got %v", renewed.ExpiresAt)
	}
	if renewed.Username != "alice" || renewed.Administrator {
		t.Fatalf("renew must preserve identity, got %+v", renewed)
	}
	if _, err := svc.Authenticate(sess.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("old token must be invalid after renew, got %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("expected exactly one live session, got %d", store.count())
	}

	clock.Advance(10 * time.Minute)
	if _, err := svc.Authenticate(renewed.Token); err != nil {
		t.Fatalf("renewed session should outlive the original expiry: %v", err)
	}
}

func TestSessionServiceRequireAdministrator(t *testing.T) {
	svc, _, _, _ := newTestSessionService(t, 15*time.Minute)
	ctx := context.Background()

	admin, err := svc.Login(ctx, "root", "admin-secret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	user, err := svc.Login(ctx, "alice", "correct-horse")
	if err != nil {
		t.Fatalf("user login: %v", err)
	}

	renewed, err := svc.RequireAdministrator(admin.Token)
	if err != nil {
		t.Fatalf("admin gate: %v", err)
	}
	if renewed.Token == admin.Token || !renewed.Administrator {
		t.Fatalf("admin gate must rotate the session, got %+v", renewed)
	}
	if _, err := svc.Authenticate(admin.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("old admin token must be invalid, got %v", err)
	}

	if _, err := svc.RequireAdministrator(user.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non admin must be rejected, got %v", err)
	}
	if got, err := svc.Authenticate(user.Token); err != nil || got.Token != user.Token {
		t.Fatalf("rejected non admin keeps its session untouched, got %+v err=%v", got, err)
	}

	for _, token := range []string{"", "never-issued", admin.Token} {
		if _, err := svc.RequireAdministrator(token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", token, err)
		}
	}
}

func TestSessionServiceLogout(t *testing.T) {
	svc, store, _, _ := newTestSessionService(t, time.Minute)

	sess, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("logout must delete the session")
	}
	if err := svc.Logout(sess.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("second logout must fail, got %v", err)
	}
	if err := svc.Logout(""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("blank logout must fail, got %v", err)
	}
}

func TestSessionServiceIndependentSessions(t *testing.T) {
	svc, _, _, _ := newTestSessionService(t, time.Minute)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	second, err := svc.Login(ctx, "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.Token == second.Token {
		t.Fatalf("each login must get its own token")
	}
	if err := svc.Logout(first.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(second.Token); err != nil {
		t.Fatalf("other sessions survive logout: %v", err)
	}
}

func TestSessionServiceConcurrentRenewSingleWinner(t *testing.T) {
	svc, store, _, _ := newTestSessionService(t, time.Minute)

	sess, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	const workers = 32
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		start   = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.Renew(sess.Token); err == nil {
				winners.Add(1)
			} else if !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("unexpected renew error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if winners.Load() != 1 {
		t.Fatalf("expected exactly one renew to win, got %d", winners.Load())
	}
	if store.count() != 1 {
		t.Fatalf("expected one live session, got %d", store.count())
	}
}

func TestSessionServiceConcurrentLogins(t *testing.T) {
	svc, store, _, _ := newTestSessionService(t, time.Minute)

	const workers = 20
	var wg sync.WaitGroup
	tokens := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := svc.Login(context.Background(), "alice", "correct-horse")
			if err != nil {
				t.Errorf("login: %v", err)
				return
			}
			tokens[i] = sess.Token
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token issued: %s", tok)
		}
		seen[tok] = struct{}{}
	}
	if store.count() != workers {
		t.Fatalf("expected %d sessions, got %d", workers, store.count())
	}
}

func TestNewSessionServiceDefaults(t *testing.T) {
	svc := NewSessionService(zap.NewNop(), nil, newFakeVerifier(), nil, 0)
	if svc.TTL() != DefaultSessionTTL {
		t.Fatalf("expected default ttl, got %v", svc.TTL())
	}
	if _, err := svc.Login(context.Background(), "alice", "correct-horse"); err != nil {
		t.Fatalf("login with default store: %v", err)
	}
}
