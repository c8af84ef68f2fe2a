package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"xiangqi/internal/xiangqi"
)

var ErrNotFound = errors.New("game not found")

// Session 是一局棋。Game 本身不加锁，所有调用都要经过 Do。
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *xiangqi.Game
	updatedAt time.Time
}

// Do 在会话锁内执行 fn。
func (s *Session) Do(fn func(g *xiangqi.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.game)
	s.updatedAt = time.Now()
	return err
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Session)}
}

// NewGame 按 cfg 开一局；fen 非空时从该局面开始。
func (m *Manager) NewGame(cfg xiangqi.Config, fen string) (*Session, error) {
	var (
		g   *xiangqi.Game
		err error
	)
	if fen != "" {
		g, err = xiangqi.NewGameFromFEN(cfg, fen)
	} else {
		g, err = xiangqi.New(cfg)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		game:      g,
		updatedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[s.ID] = s
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return errors.Wrapf(ErrNotFound, "id %q", id)
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune 删除超过 maxIdle 没动过的对局，返回删除数量。
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.games {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
