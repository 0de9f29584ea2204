package repository

import (
	"fmt"
	"time"

	"github.com/fadilmartias/resume-ats-scanner/internal/session"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// SessionRepository keeps session state in memory. Sessions idle for longer
// than the ttl, or pushed out once maxSessions is reached, are discarded.
type SessionRepository struct {
	sessions *expirable.LRU[string, *session.State]
	opts     session.Options
	logger   *zap.Logger
}

func NewSessionRepository(maxSessions int, ttl time.Duration, opts session.Options, logger *zap.Logger) *SessionRepository {
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &SessionRepository{opts: opts, logger: logger}
	r.sessions = expirable.NewLRU[string, *session.State](maxSessions, func(id string, _ *session.State) {
		r.logger.Debug("session discarded", zap.String("session_id", id))
	}, ttl)
	return r
}

func (r *SessionRepository) Create() (*session.State, error) {
	state, err := session.New(uuid.NewString(), r.opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	r.sessions.Add(state.ID, state)
	r.logger.Debug("session created", zap.String("session_id", state.ID))
	return state, nil
}

// Find returns the session and restarts its idle timer.
func (r *SessionRepository) Find(id string) (*session.State, bool) {
	if id == "" {
		return nil, false
	}
	state, ok := r.sessions.Get(id)
	if !ok {
		return nil, false
	}
	r.sessions.Add(id, state)
	return state, true
}

// FindOrCreate returns the session for id, or a new one when id is unknown
// or expired.
func (r *SessionRepository) FindOrCreate(id string) (*session.State, bool, error) {
	if state, ok := r.Find(id); ok {
		return state, false, nil
	}
	state, err := r.Create()
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (r *SessionRepository) Delete(id string) bool {
	return r.sessions.Remove(id)
}

func (r *SessionRepository) Len() int {
	return r.sessions.Len()
}
