package service

import (
	"sync"
	"time"
)

// loginFailureLimiter cuenta logins fallidos por clave en una ventana
// deslizante. Los logins exitosos no consumen cupo.
type loginFailureLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	failures  map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginRateLimiter crea el limitador en memoria. Una clave queda bloqueada
// cuando acumula max fallos dentro de window.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &loginFailureLimiter{
		window:   window,
		max:      max,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (l *loginFailureLimiter) Blocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweepLocked(now)
	return len(l.pruneLocked(key, now)) >= l.max
}

func (l *loginFailureLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweepLocked(now)
	l.failures[key] = append(l.pruneLocked(key, now), now)
}

func (l *loginFailureLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
}

// pruneLocked descarta los fallos fuera de la ventana y borra la clave si no
// queda ninguno.
func (l *loginFailureLimiter) pruneLocked(key string, now time.Time) []time.Time {
	entries, ok := l.failures[key]
	if !ok {
		return nil
	}
	cutoff := now.Add(-l.window)
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = kept
	return kept
}

// sweepLocked limpia todas las claves vencidas como mucho una vez por ventana.
func (l *loginFailureLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key := range l.failures {
		l.pruneLocked(key, now)
	}
}

func (l *loginFailureLimiter) keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.failures)
}
