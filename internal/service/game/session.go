package game

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/analytics"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/player"
	"github.com/ttriggs/Connect-Four/pkg/uid"
)

// Notifier is told about every state change of a session and about
// sessions going away. The websocket hub implements it.
type Notifier interface {
	Notify(matchID string, snapshot Snapshot)
	CloseMatch(matchID, reason string)
}

type Session struct {
	ID        string
	CreatedAt time.Time

	// unix nanos of the last accepted command; read without mu by cleanup
	lastActive atomic.Int64

	match     *Match
	mu        sync.Mutex
	publisher *analytics.Publisher
	notifier  Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// SessionManager manages independent local matches keyed by match id.
type SessionManager struct {
	sessions  map[string]*Session
	mu        sync.RWMutex
	publisher *analytics.Publisher
	notifier  Notifier
	seed      int64
	noise     bot.Noise
	log       zerolog.Logger
	now       func() time.Time
}

type ManagerOptions struct {
	Publisher *analytics.Publisher
	Seed      int64
	Noise     bot.Noise
	Log       zerolog.Logger
}

func NewSessionManager(opts ManagerOptions) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		publisher: opts.Publisher,
		seed:      opts.Seed,
		noise:     opts.Noise,
		log:       opts.Log,
		now:       time.Now,
	}
}

// SetNotifier must be called before sessions are created.
func (sm *SessionManager) SetNotifier(n Notifier) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.notifier = n
}

// CreateSession starts a new match with the given seats. AI opening moves
// are already played when it returns.
func (sm *SessionManager) CreateSession(p1, p2 player.Spec) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	id := uid.GenerateMatchID()
	now := sm.now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		match:     NewMatch(bot.NewSeededPicker(sm.seed, sm.noise)),
		publisher: sm.publisher,
		notifier:  sm.notifier,
		log:       sm.log.With().Str("match", id).Logger(),
		now:       sm.now,
	}
	s.lastActive.Store(now.UnixNano())
	s.wireHooks()

	if _, err := s.start(p1, p2); err != nil {
		return nil, err
	}

	sm.sessions[id] = s
	sm.log.Info().Str("match", id).Str("p1", string(p1.Kind)).Str("p2", string(p2.Kind)).Msg("session created")
	return s, nil
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[id]
	return s, ok
}

func (sm *SessionManager) RemoveSession(id string) error {
	sm.mu.Lock()
	if _, ok := sm.sessions[id]; !ok {
		sm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	notifier := sm.notifier
	sm.mu.Unlock()

	sm.log.Info().Str("match", id).Msg("session removed")
	if notifier != nil {
		notifier.CloseMatch(id, "match removed")
	}
	return nil
}

func (sm *SessionManager) ActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// MatchSummary is the listing view of a session.
type MatchSummary struct {
	ID        string       `json:"id"`
	State     State        `json:"state"`
	Players   []PlayerView `json:"players,omitempty"`
	MoveCount int          `json:"moveCount"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ListSessions returns every live session, oldest first.
func (sm *SessionManager) ListSessions() []MatchSummary {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	out := make([]MatchSummary, 0, len(sessions))
	for _, s := range sessions {
		snap := s.Snapshot()
		out = append(out, MatchSummary{
			ID:        s.ID,
			State:     snap.State,
			Players:   snap.Players,
			MoveCount: snap.MoveCount,
			CreatedAt: s.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CleanupStaleSessions drops sessions idle for longer than ttl and returns
// how many went. It never waits on a session lock, so a match busy with a
// slow watcher cannot hold up the registry.
func (sm *SessionManager) CleanupStaleSessions(ttl time.Duration) int {
	sm.mu.Lock()
	cutoff := sm.now().Add(-ttl)
	var removed []string
	for id, s := range sm.sessions {
		if s.LastActivity().Before(cutoff) {
			delete(sm.sessions, id)
			removed = append(removed, id)
		}
	}
	remaining := len(sm.sessions)
	notifier := sm.notifier
	sm.mu.Unlock()

	if len(removed) > 0 {
		sm.log.Info().Int("removed", len(removed)).Int("remaining", remaining).Msg("stale sessions cleaned")
	}
	if notifier != nil {
		for _, id := range removed {
			notifier.CloseMatch(id, "match expired")
		}
	}
	return len(removed)
}

func (s *Session) wireHooks() {
	s.match.OnMove = func(m player.Move) {
		s.log.Debug().Int("player", int(m.Player)).Int("column", m.Column).Int("row", m.Row).Msg("move")
		s.publisher.Emit(analytics.EventMove, s.ID, map[string]any{
			"player": int(m.Player),
			"column": m.Column,
			"row":    m.Row,
		})
	}
	s.match.OnEnd = func(o domain.Outcome, result string) {
		s.log.Info().Str("status", string(o.Status)).Int("winner", int(o.Winner)).Msg(result)
		s.publisher.Emit(analytics.EventMatchEnd, s.ID, map[string]any{
			"status": string(o.Status),
			"winner": int(o.Winner),
			"moves":  s.match.Board().Pieces(),
		})
	}
}

// LastActivity is the time of the last accepted command.
func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(s.now().UnixNano())
}

// Start seats a new pair of players. Valid only when the match is back in
// the menu.
func (s *Session) Start(p1, p2 player.Spec) (Snapshot, error) {
	snap, err := s.locked(func() (Snapshot, error) { return s.start(p1, p2) })
	if err != nil {
		return snap, err
	}
	s.notify(snap)
	return snap, nil
}

// locked runs fn under mu; notification happens after it returns.
func (s *Session) locked(fn func() (Snapshot, error)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Session) start(p1, p2 player.Spec) (Snapshot, error) {
	if err := s.match.Start(p1, p2); err != nil {
		return s.match.Snapshot(), err
	}
	s.touch()
	s.publisher.Emit(analytics.EventMatchStart, s.ID, map[string]any{
		"p1": specData(p1),
		"p2": specData(p2),
	})
	s.match.Advance()
	return s.match.Snapshot(), nil
}

// Move plays column for the human on turn, then lets any AI answer.
// applied is false when the move was ignored.
func (s *Session) Move(column int) (Snapshot, bool) {
	applied := false
	snap, _ := s.locked(func() (Snapshot, error) {
		if applied = s.match.HumanMove(column); applied {
			s.touch()
			s.match.Advance()
		}
		return s.match.Snapshot(), nil
	})
	if applied {
		s.notify(snap)
	}
	return snap, applied
}

// Reset brings a finished match back to the menu.
func (s *Session) Reset() (Snapshot, bool) {
	applied := false
	snap, _ := s.locked(func() (Snapshot, error) {
		if applied = s.match.Reset(); applied {
			s.touch()
		}
		return s.match.Snapshot(), nil
	})
	if applied {
		s.notify(snap)
	}
	return snap, applied
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot()
}

// notify must run without mu held: watchers may be slow to write to.
func (s *Session) notify(snap Snapshot) {
	if s.notifier != nil {
		s.notifier.Notify(s.ID, snap)
	}
}

func specData(spec player.Spec) map[string]any {
	data := map[string]any{"kind": string(spec.Kind)}
	if spec.Kind == domain.KindAI {
		data["difficulty"] = string(spec.Difficulty)
	}
	return data
}
