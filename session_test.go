package main

import (
	"testing"
	"time"
)

func TestCreateSessionSeedsOpposition(t *testing.T) {
	sm := NewSessionManager(nil)
	defer sm.Stop()

	sess := sm.CreateSession("Patrol Zone")
	if sess == nil {
		t.Fatal("CreateSession returned nil")
	}
	if !uuidRegex.MatchString(sess.ID) {
		t.Errorf("session ID %q is not a v4 UUID", sess.ID)
	}
	// One capital plus its fighter escort
	if got := sess.Encounter.CraftCount(); got != 1+seedFighterCount {
		t.Errorf("seeded craft = %d, want %d", got, 1+seedFighterCount)
	}

	got := sm.GetSession(sess.ID)
	if got != sess {
		t.Error("GetSession should find the created session")
	}
	if sm.GetSession("nonexistent") != nil {
		t.Error("unknown ID should return nil")
	}
}

func TestListSessions(t *testing.T) {
	sm := NewSessionManager(nil)
	defer sm.Stop()

	if got := sm.ListSessions(); len(got) != 0 {
		t.Errorf("fresh manager lists %d sessions", len(got))
	}
	sm.CreateSession("Alpha")
	sm.CreateSession("Beta")

	list := sm.ListSessions()
	if len(list) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(list))
	}
	for _, info := range list {
		if info.Craft != 1+seedFighterCount {
			t.Errorf("session %q reports %d craft", info.Name, info.Craft)
		}
	}
}

func TestRemoveCraftFromSession(t *testing.T) {
	sm := NewSessionManager(nil)
	defer sm.Stop()

	sess := sm.CreateSession("X")
	a := sess.Encounter.AddCraft("p", ClassFighter, 1, Vec3{})
	before := sess.Encounter.CraftCount()

	sm.RemoveCraft(sess.ID, a.ID)
	if got := sess.Encounter.CraftCount(); got != before-1 {
		t.Errorf("craft count = %d after removal, want %d", got, before-1)
	}
	// Unknown session: no panic
	sm.RemoveCraft("nope", a.ID)
}

func TestIdleSessionsAreReaped(t *testing.T) {
	prevIdle, prevReap := SessionIdleTimeout, reapInterval
	SessionIdleTimeout = 50 * time.Millisecond
	reapInterval = 20 * time.Millisecond
	defer func() {
		SessionIdleTimeout = prevIdle
		reapInterval = prevReap
	}()

	sm := NewSessionManager(nil)
	defer sm.Stop()

	sess := sm.CreateSession("Ghost Town")
	deadline := time.Now().Add(2 * time.Second)
	for sm.GetSession(sess.ID) != nil {
		if time.Now().After(deadline) {
			t.Fatal("idle session never reaped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestActiveSessionSurvivesReaper(t *testing.T) {
	prevIdle, prevReap := SessionIdleTimeout, reapInterval
	SessionIdleTimeout = 80 * time.Millisecond
	reapInterval = 20 * time.Millisecond
	defer func() {
		SessionIdleTimeout = prevIdle
		reapInterval = prevReap
	}()

	sm := NewSessionManager(nil)
	defer sm.Stop()

	sess := sm.CreateSession("Busy")
	for i := 0; i < 10; i++ {
		sess.MarkActive()
		time.Sleep(30 * time.Millisecond)
		if sm.GetSession(sess.ID) == nil {
			t.Fatal("active session was reaped")
		}
	}
}

func TestSessionManagerStopHaltsEncounters(t *testing.T) {
	sm := NewSessionManager(nil)
	sess := sm.CreateSession("Shutdown")
	sm.Stop()
	if sm.GetSession(sess.ID) != nil {
		t.Error("Stop should drop all sessions")
	}
	// A second Stop is safe
	sm.Stop()
}
