package main

import (
	"fmt"
	"sync"
	"time"
)

const maxSessions = 100

// Vars so tests can shrink the reap cycle
var (
	SessionIdleTimeout = 5 * time.Minute
	reapInterval       = 30 * time.Second
)

const (
	// Opposition seeded into every new encounter
	hostileTeam       = 2
	seedFighterCount  = 3
	seedCapitalClass  = ClassCruiser
	seedSpawnDistance = 2500.0
)

// Session is one joinable encounter
type Session struct {
	ID        string
	Name      string
	Encounter *Encounter

	mu         sync.Mutex
	lastActive time.Time
}

// MarkActive refreshes the session's idle timer
func (s *Session) MarkActive() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clog     *CombatLog

	stopReaper chan struct{}
	reaperOnce sync.Once
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(clog *CombatLog) *SessionManager {
	sm := &SessionManager{
		sessions:   make(map[string]*Session),
		clog:       clog,
		stopReaper: make(chan struct{}),
	}
	go sm.reapLoop()
	return sm
}

// Stop shuts down the idle reaper and every running encounter
func (sm *SessionManager) Stop() {
	sm.reaperOnce.Do(func() { close(sm.stopReaper) })
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Encounter.Stop()
		delete(sm.sessions, id)
	}
}

// CreateSession creates a new encounter session seeded with an AI wing.
// Returns nil if the session limit is reached.
func (sm *SessionManager) CreateSession(name string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := GenerateUUID()
	enc := NewEncounter()
	enc.SetCombatLog(sm.clog, id)
	seedOpposition(enc)

	sess := &Session{
		ID:         id,
		Name:       name,
		Encounter:  enc,
		lastActive: time.Now(),
	}
	sm.sessions[id] = sess
	go enc.Run()
	if sm.clog != nil {
		sm.clog.Track(EvtEncounterStart, 0, id, "")
	}
	return sess
}

// seedOpposition spawns the hostile AI wing: a capital ship escorted by
// fighters, spread out so they don't collide on the first tick.
func seedOpposition(enc *Encounter) {
	enc.AddPilotedCraft("Warden", seedCapitalClass, hostileTeam,
		Vec3{0, 0, seedSpawnDistance}, PilotCapital)
	for i := 0; i < seedFighterCount; i++ {
		offset := Vec3{
			float64(i-1) * 300,
			randSigned() * 150,
			seedSpawnDistance - 400,
		}
		enc.AddPilotedCraft(fmt.Sprintf("Drone-%d", i+1), ClassFighter,
			hostileTeam, offset, PilotAgile)
	}
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveCraft removes a craft from a session
func (sm *SessionManager) RemoveCraft(sessionID, actorID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Encounter.RemoveCraft(actorID)
	sess.MarkActive()
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:    sess.ID,
			Name:  sess.Name,
			Craft: sess.Encounter.CraftCount(),
		})
	}
	return list
}

// reapLoop stops encounters that have had no player activity for
// SessionIdleTimeout. AI-only sessions burn CPU for nobody.
func (sm *SessionManager) reapLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sm.reapIdle()
		case <-sm.stopReaper:
			return
		}
	}
}

func (sm *SessionManager) reapIdle() {
	cutoff := time.Now().Add(-SessionIdleTimeout)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		if sess.idleSince().Before(cutoff) {
			sess.Encounter.Stop()
			delete(sm.sessions, id)
			if sm.clog != nil {
				sm.clog.Track(EvtEncounterEnd, 0, id, "")
			}
		}
	}
}
