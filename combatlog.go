package main

import (
	"database/sql"
	"log"
	"sync"
	"time"
)

// Event types for combat telemetry
const (
	EvtEncounterStart = "encounter_start"
	EvtEncounterEnd   = "encounter_end"
	EvtKill           = "kill"
	EvtShotFired      = "shot_fired"
	EvtPilotLogin     = "pilot_login"
	EvtSortieStart    = "sortie_start"
	EvtSortieEnd      = "sortie_end"
)

// CombatEvent is a single trackable telemetry event
type CombatEvent struct {
	Type      string
	PilotID   int64
	SessionID string
	Data      string // JSON metadata (optional)
	Timestamp time.Time
}

// CombatLog batches telemetry events to the database off the simulation
// thread; the encounter loop must never wait on a disk write.
type CombatLog struct {
	db     *DB
	events chan CombatEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewCombatLog creates and starts the background writer
func NewCombatLog(db *DB) *CombatLog {
	c := &CombatLog{
		db:     db,
		events: make(chan CombatEvent, 1024),
		stop:   make(chan struct{}),
	}
	c.wg.Add(1)
	go c.writer()
	return c
}

// Track enqueues an event for async persistence (non-blocking)
func (c *CombatLog) Track(evtType string, pilotID int64, sessionID string, data string) {
	select {
	case c.events <- CombatEvent{
		Type:      evtType,
		PilotID:   pilotID,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full — drop the event rather than stall a tick
	}
}

// Stop gracefully shuts down the writer
func (c *CombatLog) Stop() {
	close(c.stop)
	c.wg.Wait()
}

// writer batches events and writes them to the database
func (c *CombatLog) writer() {
	defer c.wg.Done()

	batch := make([]CombatEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-c.events:
			batch = append(batch, evt)
			if len(batch) >= 50 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-c.stop:
			// Drain without closing: stragglers may still Track during
			// shutdown and must not panic.
			for {
				select {
				case evt := <-c.events:
					batch = append(batch, evt)
				default:
					if len(batch) > 0 {
						c.flush(batch)
					}
					return
				}
			}
		}
	}
}

// flush writes a batch of events to the database
func (c *CombatLog) flush(events []CombatEvent) {
	if c.db == nil || len(events) == 0 {
		return
	}
	tx, err := c.db.conn.Begin()
	if err != nil {
		log.Printf("combatlog: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO combat_events (event_type, pilot_id, session_id, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("combatlog: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		pid := sql.NullInt64{Int64: evt.PilotID, Valid: evt.PilotID > 0}
		sid := sql.NullString{String: evt.SessionID, Valid: evt.SessionID != ""}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		if _, err := stmt.Exec(evt.Type, pid, sid, data, evt.Timestamp.Format(time.RFC3339)); err != nil {
			log.Printf("combatlog: insert error: %v", err)
		}
	}
	tx.Commit()
}

// KillCounts returns kill counts per pilot over the last N days
func (c *CombatLog) KillCounts(days int) (map[int64]int, error) {
	if c.db == nil {
		return nil, nil
	}
	rows, err := c.db.conn.Query(`
		SELECT pilot_id, COUNT(*) FROM combat_events
		WHERE event_type = ? AND pilot_id IS NOT NULL
		  AND created_at >= date('now', '-' || ? || ' days')
		GROUP BY pilot_id
	`, EvtKill, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]int)
	for rows.Next() {
		var pid int64
		var count int
		if err := rows.Scan(&pid, &count); err != nil {
			continue
		}
		result[pid] = count
	}
	return result, rows.Err()
}

// EventCounts returns counts of each event type for the last N days
func (c *CombatLog) EventCounts(days int) (map[string]int, error) {
	if c.db == nil {
		return nil, nil
	}
	rows, err := c.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM combat_events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			continue
		}
		result[evtType] = count
	}
	return result, rows.Err()
}
