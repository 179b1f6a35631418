package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgInput    = "input"
	MsgCreate   = "create" // create encounter session
	MsgList     = "list"   // list sessions
	MsgCheck    = "check"  // check if session exists
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth" // token re-auth
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgState       = "state"
	MsgWelcome     = "welcome"
	MsgDeath       = "death"
	MsgKill        = "kill"
	MsgSessions    = "sessions"
	MsgJoined      = "joined"
	MsgCreated     = "created"
	MsgError       = "error"
	MsgChecked     = "checked"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput carries a player's maneuver intent, sent at 20Hz
type ClientInput struct {
	Yaw      float64 `json:"yw"` // -1..1
	Pitch    float64 `json:"pt"`
	Roll     float64 `json:"rl"`
	Throttle float64 `json:"th"` // -1..1
	Fire     bool    `json:"f"`
	Boost    bool    `json:"b"`
}

// JoinMsg is sent when a player wants to join an encounter
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
	Class     int    `json:"cls"`
}

// CreateMsg is sent when a player wants to create an encounter
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
}

// CraftState is broadcast per craft each state frame
type CraftState struct {
	ID    string  `msgpack:"id" json:"id"`
	Name  string  `msgpack:"n" json:"n"`
	X     float64 `msgpack:"x" json:"x"`
	Y     float64 `msgpack:"y" json:"y"`
	Z     float64 `msgpack:"z" json:"z"`
	FX    float64 `msgpack:"fx" json:"fx"` // forward vector
	FY    float64 `msgpack:"fy" json:"fy"`
	FZ    float64 `msgpack:"fz" json:"fz"`
	UX    float64 `msgpack:"ux" json:"ux"` // up vector
	UY    float64 `msgpack:"uy" json:"uy"`
	UZ    float64 `msgpack:"uz" json:"uz"`
	VX    float64 `msgpack:"vx" json:"vx"`
	VY    float64 `msgpack:"vy" json:"vy"`
	VZ    float64 `msgpack:"vz" json:"vz"`
	HP    int     `msgpack:"hp" json:"hp"`
	MaxHP int     `msgpack:"mhp" json:"mhp"`
	Class int     `msgpack:"c" json:"c"`
	Team  int     `msgpack:"tm" json:"tm"`
	Kills int     `msgpack:"k" json:"k"`
	Alive bool    `msgpack:"a" json:"a"`
}

// BoltState is broadcast per in-flight bolt
type BoltState struct {
	X     float64 `msgpack:"x" json:"x"`
	Y     float64 `msgpack:"y" json:"y"`
	Z     float64 `msgpack:"z" json:"z"`
	VX    float64 `msgpack:"vx" json:"vx"`
	VY    float64 `msgpack:"vy" json:"vy"`
	VZ    float64 `msgpack:"vz" json:"vz"`
	Owner string  `msgpack:"o" json:"o"`
}

// ParticleState is broadcast per live particle
type ParticleState struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
	Z float64 `msgpack:"z" json:"z"`
}

// EncounterState is the full state frame, msgpack-encoded on the wire
type EncounterState struct {
	Craft     []CraftState    `msgpack:"c" json:"c"`
	Bolts     []BoltState     `msgpack:"b" json:"b"`
	Particles []ParticleState `msgpack:"p" json:"p"`
	Tick      uint64          `msgpack:"tick" json:"tick"`
}

// WelcomeMsg is sent to a player when they join
type WelcomeMsg struct {
	ID    string `json:"id"`
	Class int    `json:"cls"`
}

// DeathMsg notifies a player they died
type DeathMsg struct {
	KillerID   string `json:"kid"`
	KillerName string `json:"kn"`
}

// KillMsg is broadcast to all players in a session
type KillMsg struct {
	KillerID   string `json:"kid"`
	KillerName string `json:"kn"`
	VictimID   string `json:"vid"`
	VictimName string `json:"vn"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Craft int    `json:"craft"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// CheckMsg is sent by a client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID    string `json:"sid"`
	Exists bool   `json:"exists"`
	Name   string `json:"name,omitempty"`
	Craft  int    `json:"craft,omitempty"`
}

// RegisterMsg creates a pilot account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates a pilot account
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg re-authenticates with a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg returns a pilot's persistent stats
type ProfileDataMsg struct {
	Username string  `json:"username"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Sorties  int     `json:"sorties"`
	Playtime float64 `json:"playtime"`
}

// ToState converts an actor to its broadcast form
func (a *Actor) ToState() CraftState {
	return CraftState{
		ID:    a.ID,
		Name:  a.Name,
		X:     round1(a.Pos.X),
		Y:     round1(a.Pos.Y),
		Z:     round1(a.Pos.Z),
		FX:    a.Basis.Forward.X,
		FY:    a.Basis.Forward.Y,
		FZ:    a.Basis.Forward.Z,
		UX:    a.Basis.Up.X,
		UY:    a.Basis.Up.Y,
		UZ:    a.Basis.Up.Z,
		VX:    round1(a.Vel.X),
		VY:    round1(a.Vel.Y),
		VZ:    round1(a.Vel.Z),
		HP:    a.HP,
		MaxHP: a.MaxHP,
		Class: int(a.Class),
		Team:  a.Team,
		Kills: a.Kills,
		Alive: a.Alive,
	}
}

// ToState converts a bolt to its broadcast form
func (b *Bolt) ToState() BoltState {
	owner := ""
	if b.Owner != nil {
		owner = b.Owner.ID
	}
	return BoltState{
		X:     round1(b.Pos.X),
		Y:     round1(b.Pos.Y),
		Z:     round1(b.Pos.Z),
		VX:    round1(b.Vel.X),
		VY:    round1(b.Vel.Y),
		VZ:    round1(b.Vel.Z),
		Owner: owner,
	}
}
