package models

import (
	"slices"
	"time"

	id "medsim/pkg/domain"
)

// Session is one practice run of a scenario. It moves from open to completed
// exactly once.
type Session struct {
	ID           id.SessionID  `json:"id"`
	ScenarioID   id.ScenarioID `json:"scenario_id"`
	Instructor   id.Identity   `json:"instructor"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Participants []string      `json:"participants"`
	Completed    bool          `json:"completed"`
}

// NewSession opens a session led by instructor. Participants are kept as
// given, duplicates included.
func NewSession(sessionID id.SessionID, scenarioID id.ScenarioID, instructor id.Identity, participants []string, now time.Time) *Session {
	p := slices.Clone(participants)
	if p == nil {
		p = []string{}
	}
	return &Session{
		ID:           sessionID,
		ScenarioID:   scenarioID,
		Instructor:   instructor,
		StartTime:    now,
		Participants: p,
	}
}

func (s *Session) Clone() *Session {
	c := *s
	c.Participants = slices.Clone(s.Participants)
	return &c
}

// IsEnded reports whether an end time has been recorded.
func (s *Session) IsEnded() bool {
	return !s.EndTime.IsZero()
}

func (s *Session) IsLedBy(caller id.Identity) bool {
	return s.Instructor == caller
}

// ApplyCompletion closes the session at now.
func (s *Session) ApplyCompletion(now time.Time) {
	s.EndTime = now
	s.Completed = true
}
