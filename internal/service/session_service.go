package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
)

// DefaultSessionTTL es la vida de una sesión sin renovación.
const DefaultSessionTTL = 15 * time.Minute

var (
	// ErrUnauthenticated indica que no hay una sesión válida para el token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized indica credenciales rechazadas o privilegios insuficientes.
	ErrUnauthorized = errors.New("unauthorized")
)

// CredentialVerifier valida usuario y contraseña contra el hash guardado.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (domain.Identity, error)
}

// LoginRateLimiter cuenta logins fallidos por clave. Una clave bloqueada no
// llega al verificador hasta que sus fallos salen de la ventana.
type LoginRateLimiter interface {
	Blocked(key string) bool
	RecordFailure(key string)
	Reset(key string)
}

// SessionService concentra la política de sesiones: emisión, expiración
// perezosa, renovación deslizante y control de administrador.
type SessionService struct {
	logger   *zap.Logger
	store    *SessionStore
	verifier CredentialVerifier
	limiter  LoginRateLimiter
	ttl      time.Duration

	// mu serializa las operaciones compuestas (lookup+purga, renovación,
	// logout) para que nadie observe un estado intermedio.
	mu sync.Mutex
}

func NewSessionService(logger *zap.Logger, store *SessionStore, verifier CredentialVerifier, limiter LoginRateLimiter, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if store == nil {
		store = NewSessionStore()
	}
	return &SessionService{
		logger:   logger,
		store:    store,
		verifier: verifier,
		limiter:  limiter,
		ttl:      ttl,
	}
}

// TTL devuelve la duración con la que se emiten las sesiones.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Login verifica credenciales y abre una sesión. Credenciales vacías nunca
// llegan al verificador.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return s.LoginFrom(ctx, "", username, password)
}

// LoginFrom es Login con la dirección del cliente, que junto con el username
// forma la clave del limitador. Sólo los fallos consumen cupo.
func (s *SessionService) LoginFrom(ctx context.Context, client, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, ErrUnauthorized
	}
	key := limiterKey(client, username)
	if s.limiter != nil && s.limiter.Blocked(key) {
		return domain.Session{}, ErrRateLimited
	}
	if s.verifier == nil {
		return domain.Session{}, errors.New("session service not configured")
	}

	identity, err := s.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			if s.limiter != nil {
				s.limiter.RecordFailure(key)
			}
		} else {
			s.logger.Error("credential verification failed", zap.String("username", username), zap.Error(err))
		}
		return domain.Session{}, ErrUnauthorized
	}
	if s.limiter != nil {
		s.limiter.Reset(key)
	}

	sess := s.store.Create(identity.Username, identity.Administrator, s.ttl)
	s.logger.Info("session created",
		zap.String("username", sess.Username),
		zap.Bool("administrator", sess.Administrator),
	)
	return sess, nil
}

func limiterKey(client, username string) string {
	return strings.TrimSpace(client) + "|" + strings.ToLower(strings.TrimSpace(username))
}

// Authenticate devuelve la sesión del token sin renovarla. Una sesión
// expirada se elimina y se reporta como ausente.
func (s *SessionService) Authenticate(token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticateLocked(token)
}

// Renew reemplaza la sesión por una nueva con TTL completo. El token viejo
// deja de ser válido en el mismo paso.
func (s *SessionService) Renew(token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.authenticateLocked(token)
	if err != nil {
		return domain.Session{}, err
	}
	return s.rotateLocked(current), nil
}

// RequireAdministrator autoriza sólo sesiones válidas de administrador y, en
// ese caso, renueva la sesión. No distingue entre "sin sesión" y "sin permiso".
func (s *SessionService) RequireAdministrator(token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.authenticateLocked(token)
	if err != nil || !current.Administrator {
		return domain.Session{}, ErrUnauthorized
	}
	return s.rotateLocked(current), nil
}

// Logout elimina la sesión del token.
func (s *SessionService) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.authenticateLocked(token)
	if err != nil {
		return err
	}
	s.store.Delete(current.Token)
	s.logger.Info("session closed", zap.String("username", current.Username))
	return nil
}

func (s *SessionService) authenticateLocked(token string) (domain.Session, error) {
	sess, ok := s.store.Get(token)
	if !ok {
		return domain.Session{}, ErrUnauthenticated
	}
	if domain.IsExpired(sess.ExpiresAt, s.store.now()) {
		s.store.Delete(token)
		return domain.Session{}, ErrUnauthenticated
	}
	return sess, nil
}

func (s *SessionService) rotateLocked(current domain.Session) domain.Session {
	next := s.store.Create(current.Username, current.Administrator, s.ttl)
	s.store.Delete(current.Token)
	return next
}
