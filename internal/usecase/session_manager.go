package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/pkg/logger"
)

type turnJob struct {
	ctx  context.Context
	req  *TurnRequest
	resp chan *TurnResponse
}

type managedSession struct {
	state          *entity.Session
	turns          chan turnJob
	done           chan struct{}
	closeOnce      sync.Once
	hasReservation atomic.Bool
}

// SessionManager owns one Session and one turn worker per active
// conversation. Turns for a session are processed strictly in arrival order;
// different sessions run in parallel. Closing a session lets the in-flight
// turn finish but dispatches nothing further.
type SessionManager struct {
	dispatcher *Dispatcher
	logger     logger.Logger
	mu         sync.Mutex
	sessions   map[string]*managedSession
}

// NewSessionManager creates a new session manager
func NewSessionManager(dispatcher *Dispatcher, logger logger.Logger) *SessionManager {
	return &SessionManager{
		dispatcher: dispatcher,
		logger:     logger,
		sessions:   make(map[string]*managedSession),
	}
}

// Submit queues one turn for the session and waits for its response. The
// session is created on first use.
func (m *SessionManager) Submit(ctx context.Context, sessionID string, req *TurnRequest) (*TurnResponse, error) {
	ms := m.getOrCreate(sessionID)

	job := turnJob{ctx: ctx, req: req, resp: make(chan *TurnResponse, 1)}
	select {
	case ms.turns <- job:
	case <-ms.done:
		return nil, entity.ErrSessionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case resp := <-job.resp:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HasReservation reports whether the session currently holds a reservation.
// The transport layer uses this to pick its instruction template each turn.
func (m *SessionManager) HasReservation(sessionID string) bool {
	m.mu.Lock()
	ms, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return ms.hasReservation.Load()
}

// Close tears the session down. In-flight work completes on its own terms;
// later submissions fail with entity.ErrSessionClosed.
func (m *SessionManager) Close(sessionID string) {
	m.mu.Lock()
	ms, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if !ok {
		return
	}
	ms.closeOnce.Do(func() { close(ms.done) })
	m.logger.Info("Session closed", "session", sessionID)
}

// CloseAll tears down every session, for process shutdown
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*managedSession)
	m.mu.Unlock()
	for id, ms := range sessions {
		ms.closeOnce.Do(func() { close(ms.done) })
		m.logger.Info("Session closed", "session", id)
	}
}

func (m *SessionManager) getOrCreate(sessionID string) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ms, ok := m.sessions[sessionID]; ok {
		return ms
	}
	ms := &managedSession{
		state: entity.NewSession(sessionID),
		turns: make(chan turnJob),
		done:  make(chan struct{}),
	}
	m.sessions[sessionID] = ms
	go m.run(ms)
	m.logger.Info("Session opened", "session", sessionID)
	return ms
}

func (m *SessionManager) run(ms *managedSession) {
	for {
		select {
		case <-ms.done:
			return
		case job := <-ms.turns:
			resp := m.dispatcher.Dispatch(job.ctx, ms.state, job.req)
			ms.hasReservation.Store(ms.state.HasReservation())
			job.resp <- resp
		}
	}
}
