package entity

import "strconv"

// Session State
const (
	StateIdle       = "IDLE"
	StateIdentified = "IDENTIFIED"
	StateConfirmed  = "CONFIRMED"
)

// Session holds the per-conversation reservation state. It lives for one
// conversation only and is never persisted.
type Session struct {
	ID     string
	State  string
	Name   string
	Phone  string
	Date   string
	Time   string
	Guests int

	// LastVerdict remembers the most recent availability check so a later
	// create turn for the same slot does not have to re-query the hours.
	LastVerdict *Verdict
}

// NewSession creates an empty session in the idle state
func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateIdle,
	}
}

// HasReservation reports whether a reservation is loaded or being built,
// derived from the phone field
func (s *Session) HasReservation() bool {
	return s.Phone != ""
}

// LoadReservation populates the session from a stored record and moves it
// to the confirmed state
func (s *Session) LoadReservation(r *Reservation) {
	s.Name = r.Name
	s.Phone = r.Phone
	s.Date = r.Date
	s.Time = r.Time
	s.Guests = r.Guests
	s.State = StateConfirmed
}

// Reset clears all collected fields and returns the session to idle
func (s *Session) Reset() {
	s.Name = ""
	s.Phone = ""
	s.Date = ""
	s.Time = ""
	s.Guests = 0
	s.LastVerdict = nil
	s.State = StateIdle
}

// GuestsStr returns the guest count as text, empty when not collected
func (s *Session) GuestsStr() string {
	if s.Guests <= 0 {
		return ""
	}
	return strconv.Itoa(s.Guests)
}
