package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLock блокировка в памяти процесса, для запуска без Redis
type LocalLock struct {
	mu    sync.Mutex
	held  map[string]holder
	clock func() time.Time
}

type holder struct {
	token     string
	expiresAt time.Time
}

// NewLocalLock создает блокировку в памяти
func NewLocalLock() *LocalLock {
	return &LocalLock{
		held:  make(map[string]holder),
		clock: time.Now,
	}
}

func (l *LocalLock) Lock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = holder{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLock) Unlock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
