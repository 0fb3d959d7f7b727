package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"athletic-metrics/internal/domain"
)

// SessionStore guarda sesiones en memoria indexadas por token. No aplica
// política de expiración: eso lo hace SessionService.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
	newToken func() string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// Create registra una sesión nueva con expiración now+ttl y devuelve una copia.
func (s *SessionStore) Create(username string, administrator bool, ttl time.Duration) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.newToken()
	for {
		if _, taken := s.sessions[token]; !taken && token != "" {
			break
		}
		token = s.newToken()
	}

	sess := domain.Session{
		Token:         token,
		Username:      username,
		Administrator: administrator,
		ExpiresAt:     s.now().Add(ttl),
	}
	s.sessions[token] = sess
	return sess
}

// Get devuelve la sesión asociada al token, aunque haya expirado.
func (s *SessionStore) Get(token string) (domain.Session, bool) {
	if strings.TrimSpace(token) == "" {
		return domain.Session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// Delete elimina la sesión. Borrar un token inexistente no es un error.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
