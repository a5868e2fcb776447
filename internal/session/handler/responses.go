package handler

import (
	"time"

	"medsim/internal/session/models"
)

// SessionResponse is the JSON view of a session. EndTime is omitted while
// the session is open.
type SessionResponse struct {
	SessionID    string     `json:"session_id"`
	ScenarioID   string     `json:"scenario_id"`
	Instructor   string     `json:"instructor"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Participants []string   `json:"participants"`
	Completed    bool       `json:"completed"`
}

func FromSession(s *models.Session) SessionResponse {
	resp := SessionResponse{
		SessionID:    s.ID.String(),
		ScenarioID:   s.ScenarioID.String(),
		Instructor:   s.Instructor.String(),
		StartTime:    s.StartTime,
		Participants: s.Participants,
		Completed:    s.Completed,
	}
	if s.IsEnded() {
		end := s.EndTime
		resp.EndTime = &end
	}
	return resp
}
